package gamification

import (
	"strconv"
	"time"

	"github.com/valeriaulyamaeva/ga-financas/utils"
)

// Streak серия дней подряд с входом. LastLogin в формате dd/mm/yyyy.
type Streak struct {
	Count     int
	LastLogin string
}

// ParseStreak восстанавливает состояние из строк сессии.
func ParseStreak(count, lastLogin string) Streak {
	n, err := strconv.Atoi(count)
	if err != nil || n < 0 {
		n = 0
	}
	return Streak{Count: n, LastLogin: lastLogin}
}

// Advance продвигает серию на день today (в его часовом поясе).
// Тот же день: без изменений; вчера: +1; иначе: 1.
func Advance(s Streak, today time.Time) Streak {
	todayKey := utils.FormatLocaleDate(today)
	if s.LastLogin == todayKey && s.Count > 0 {
		return s
	}

	last, err := utils.ParseLocaleDate(s.LastLogin, today.Location())
	if err == nil && s.Count > 0 && calendarDaysBetween(last, today) == 1 {
		return Streak{Count: s.Count + 1, LastLogin: todayKey}
	}
	return Streak{Count: 1, LastLogin: todayKey}
}

func calendarDaysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

type WeekDay struct {
	Label    string
	Active   bool
	Complete bool
}

var weekLabels = [7]string{"D", "S", "T", "Q", "Q", "S", "S"}

// WeekView семь дней начиная с воскресенья. Отмечены последние streak дней
// до сегодняшнего включительно, нижняя граница не выходит за начало недели.
func WeekView(today time.Time, streak int) [7]WeekDay {
	var days [7]WeekDay
	wd := int(today.Weekday())
	low := wd - (streak - 1)
	if low < 0 {
		low = 0
	}
	for i := range days {
		days[i] = WeekDay{
			Label:    weekLabels[i],
			Active:   i == wd,
			Complete: streak > 0 && i >= low && i <= wd,
		}
	}
	return days
}
