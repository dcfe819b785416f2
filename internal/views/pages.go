package views

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/ga-financas/internal/dashboard"
	"github.com/valeriaulyamaeva/ga-financas/internal/gamification"
	"github.com/valeriaulyamaeva/ga-financas/models"
	"github.com/valeriaulyamaeva/ga-financas/utils"
)

// Панели входа и регистрации на одной странице.
const (
	PanelLogin    = "login"
	PanelRegister = "registro"
)

type LoginPage struct {
	Page
	Panel    string
	Username string
	Error    string
	Info     string
}

// RecentLimit сколько последних транзакций показывает панель.
const RecentLimit = 5

type DashboardPage struct {
	Page
	Loading bool
	Snap    *dashboard.Snapshot
	Recent  []TransactionCard
	Goals   []GoalCard
	Limit   string
}

func NewDashboardPage(page Page, snap *dashboard.Snapshot) DashboardPage {
	p := DashboardPage{Page: page, Snap: snap, Loading: snap == nil}
	if snap == nil {
		return p
	}
	recent := snap.Transactions
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	p.Recent = TransactionCards(recent)
	p.Goals = GoalCards(snap.Goals)
	p.Limit = snap.Health.Limit.StringFixed(2)
	return p
}

type CategoriesPage struct {
	Page
	Cards     []CategoryCard
	Form      CategoryForm
	Icons     []string
	LoadError string
}

// KindText тексты страницы транзакций одного типа.
type KindText struct {
	Heading   string
	Path      string
	Empty     string
	LoadError string
	Added     string
	Updated   string
	Deleted   string
	SaveError string
	Confirm   string
	NoOptions string
}

var kindTexts = map[models.Kind]KindText{
	models.KindExpense: {
		Heading:   "Despesas",
		Path:      "/despesas",
		Empty:     "Nenhuma despesa registrada.",
		LoadError: "Erro ao carregar despesas.",
		Added:     "Despesa adicionada!",
		Updated:   "Despesa atualizada!",
		Deleted:   "Despesa excluída!",
		SaveError: "Erro ao salvar.",
		Confirm:   "Excluir esta despesa?",
		NoOptions: "Selecione uma categoria",
	},
	models.KindIncome: {
		Heading:   "Receitas",
		Path:      "/receitas",
		Empty:     "Nenhuma receita registrada.",
		LoadError: "Erro ao carregar receitas.",
		Added:     "Receita adicionada!",
		Updated:   "Receita atualizada!",
		Deleted:   "Receita excluída!",
		SaveError: "Erro ao salvar. Verifique os campos.",
		Confirm:   "Tem certeza que deseja excluir esta receita?",
		NoOptions: "Nenhuma categoria encontrada",
	},
}

func TextsFor(kind models.Kind) KindText {
	return kindTexts[kind]
}

type TransactionsPage struct {
	Page
	Kind       models.Kind
	Text       KindText
	Cards      []TransactionCard
	Form       TransactionForm
	Categories []models.Category
	Total      string
	LoadError  string
}

type GoalsPage struct {
	Page
	Cards     []GoalCard
	Form      GoalForm
	LoadError string
}

// AvatarSeeds варианты аватара в профиле.
var AvatarSeeds = []string{"Felix", "Aneka", "Bob", "Jack", "Milo", "Bandit", "Tinkerbell", "Gizmo", "Sheba"}

const avatarBase = "https://api.dicebear.com/7.x/avataaars/svg?seed="

func AvatarURL(seed string) string {
	return avatarBase + seed
}

type Avatar struct {
	Seed     string
	URL      string
	Selected bool
}

func Avatars(current string) []Avatar {
	out := make([]Avatar, len(AvatarSeeds))
	for i, s := range AvatarSeeds {
		url := AvatarURL(s)
		out[i] = Avatar{Seed: s, URL: url, Selected: url == current}
	}
	return out
}

type ProfileStats struct {
	Income       string
	Expenses     string
	Balance      string
	Negative     bool
	Goals        int
	Transactions int
}

type ProfilePage struct {
	Page
	User        models.User
	MemberSince string
	Stats       ProfileStats
	Level       gamification.Level
	Trophies    []gamification.TrophyState
	Avatars     []Avatar
	LoadError   string
}

func NewProfileStats(stats models.Statistics, goals, transactions int) ProfileStats {
	balance := stats.Balance()
	return ProfileStats{
		Income:       utils.FormatBRL(stats.TotalIncome),
		Expenses:     utils.FormatBRL(stats.TotalExpenses),
		Balance:      utils.FormatBRL(balance),
		Negative:     balance.IsNegative(),
		Goals:        goals,
		Transactions: transactions,
	}
}

// MemberSince дата регистрации или "-".
func MemberSince(joined *time.Time, loc *time.Location) string {
	if joined == nil || joined.IsZero() {
		return "-"
	}
	return utils.FormatLocaleDate(joined.In(loc))
}

type Option struct {
	Value    string
	Label    string
	Selected bool
}

var monthNames = []string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

type Bar struct {
	Label   string
	Amount  string
	Percent float64
	Color   string
}

type TimelineRow struct {
	Label    string
	Income   Bar
	Expenses Bar
}

type AnalyticsPage struct {
	Page
	Months    []Option
	Years     []Option
	Income    string
	Expenses  string
	Balance   string
	Negative  bool
	IncomeBy  []Bar
	ExpenseBy []Bar
	Timeline  []TimelineRow
	LoadError string
}

func NewAnalyticsPage(page Page, a gamification.Analytics) AnalyticsPage {
	p := AnalyticsPage{
		Page:      page,
		Income:    utils.FormatBRL(a.Totals.Income),
		Expenses:  utils.FormatBRL(a.Totals.Expenses),
		Balance:   utils.FormatBRL(a.Totals.Balance),
		Negative:  a.Totals.Balance.IsNegative(),
		IncomeBy:  sliceBars(a.Income),
		ExpenseBy: sliceBars(a.Expenses),
	}
	p.Months = append(p.Months, Option{Value: "", Label: "Todos os meses", Selected: a.Filter.Month == ""})
	for i, name := range monthNames {
		v := fmt.Sprintf("%02d", i+1)
		p.Months = append(p.Months, Option{Value: v, Label: name, Selected: a.Filter.Month == v})
	}
	p.Years = append(p.Years, Option{Value: "", Label: "Todos os anos", Selected: a.Filter.Year == ""})
	for _, y := range a.Years {
		p.Years = append(p.Years, Option{Value: y, Label: y, Selected: a.Filter.Year == y})
	}

	peak := decimal.Zero
	for _, m := range a.Timeline {
		peak = decimal.Max(peak, m.Income, m.Expenses)
	}
	for _, m := range a.Timeline {
		p.Timeline = append(p.Timeline, TimelineRow{
			Label:    m.Label,
			Income:   Bar{Amount: utils.FormatBRL(m.Income), Percent: share(m.Income, peak), Color: "#38C172"},
			Expenses: Bar{Amount: utils.FormatBRL(m.Expenses), Percent: share(m.Expenses, peak), Color: "#DB504A"},
		})
	}
	return p
}

func sliceBars(slices []gamification.Slice) []Bar {
	total := decimal.Zero
	for _, s := range slices {
		total = total.Add(s.Total)
	}
	out := make([]Bar, len(slices))
	for i, s := range slices {
		out[i] = Bar{Label: s.Label, Amount: utils.FormatBRL(s.Total), Percent: share(s.Total, total), Color: s.Color}
	}
	return out
}

func share(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	pct, _ := part.Div(whole).Mul(decimal.NewFromInt(100)).Round(1).Float64()
	return pct
}
