package gamification

import "sort"

const (
	XPPerTransaction = 10
	XPPerLevel       = 100
)

type Level struct {
	Number     int
	XP         int
	InLevelXP  int
	BarPercent float64
	Remaining  int
	Title      string
}

type titleThreshold struct {
	minLevel int
	title    string
}

// отсортированы по возрастанию minLevel
var titles = []titleThreshold{
	{1, "Iniciante Financeiro"},
	{5, "Poupador Aprendiz"},
	{10, "Gerente do Próprio Bolso"},
	{20, "Investidor Focado"},
	{50, "Magnata das Finanças"},
}

// LevelFor уровень по количеству транзакций.
func LevelFor(transactions int) Level {
	if transactions < 0 {
		transactions = 0
	}
	xp := transactions * XPPerTransaction
	inLevel := xp % XPPerLevel
	number := xp/XPPerLevel + 1
	return Level{
		Number:     number,
		XP:         xp,
		InLevelXP:  inLevel,
		BarPercent: float64(inLevel) / XPPerLevel * 100,
		Remaining:  (XPPerLevel - inLevel + XPPerTransaction - 1) / XPPerTransaction,
		Title:      TitleFor(number),
	}
}

func TitleFor(level int) string {
	i := sort.Search(len(titles), func(i int) bool { return titles[i].minLevel > level })
	if i == 0 {
		return titles[0].title
	}
	return titles[i-1].title
}
