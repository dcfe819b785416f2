package views

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/ga-financas/models"
	"github.com/valeriaulyamaeva/ga-financas/utils"
)

// CategoryIcons варианты иконок в форме категории.
var CategoryIcons = []string{
	"bx-folder", "bx-cart", "bx-home", "bx-car", "bx-restaurant", "bx-money",
	"bx-briefcase", "bx-health", "bx-book", "bx-joystick", "bx-gift", "bx-wallet",
}

// parseAmount принимает "1234.56" и "1234,56".
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}

func validDate(s string) bool {
	_, err := time.Parse(models.DateLayout, s)
	return err == nil
}

// ParseID id из скрытого поля; пустое значение означает создание.
func ParseID(s string) int {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id < 0 {
		return 0
	}
	return id
}

type CategoryForm struct {
	ID          int
	Name        string
	Kind        models.Kind
	Icon        string
	Color       string
	Description string
}

func (f CategoryForm) Editing() bool { return f.ID > 0 }

func CategoryFormFrom(c models.Category) CategoryForm {
	return CategoryForm{
		ID:          c.ID,
		Name:        c.Name,
		Kind:        c.Kind,
		Icon:        c.Icon,
		Color:       utils.ColorForDisplay(c.Color),
		Description: c.Description,
	}
}

// Validate проверяет обязательные поля до запроса к API.
func (f CategoryForm) Validate() (models.CategoryInput, error) {
	if strings.TrimSpace(f.Name) == "" || !f.Kind.Valid() || f.Icon == "" {
		return models.CategoryInput{}, errors.New("Preencha o nome, tipo e selecione um ícone.")
	}
	color := f.Color
	if color == "" {
		color = "#3c91e6"
	}
	return models.CategoryInput{
		Name:        strings.TrimSpace(f.Name),
		Kind:        f.Kind,
		Icon:        f.Icon,
		Color:       utils.ColorForAPI(color),
		Description: f.Description,
	}, nil
}

type TransactionForm struct {
	ID          int
	Kind        models.Kind
	Description string
	Amount      string
	Date        string
	CategoryID  int
	Note        string
}

func (f TransactionForm) Editing() bool { return f.ID > 0 }

func TransactionFormFrom(t models.Transaction) TransactionForm {
	f := TransactionForm{
		ID:          t.ID,
		Kind:        t.Kind,
		Description: t.Description,
		Amount:      t.Amount.StringFixed(2),
		Date:        t.Date,
		Note:        t.Note,
	}
	if t.CategoryID != nil {
		f.CategoryID = *t.CategoryID
	}
	return f
}

func (f TransactionForm) Validate() (models.TransactionInput, error) {
	if strings.TrimSpace(f.Description) == "" || f.Date == "" || f.CategoryID <= 0 {
		return models.TransactionInput{}, errors.New("Preencha descrição, valor, data e categoria.")
	}
	amount, err := parseAmount(f.Amount)
	if err != nil || !amount.IsPositive() {
		return models.TransactionInput{}, errors.New("Informe um valor maior que zero.")
	}
	if !validDate(f.Date) {
		return models.TransactionInput{}, errors.New("Data inválida.")
	}
	return models.TransactionInput{
		Description: strings.TrimSpace(f.Description),
		Amount:      amount,
		Date:        f.Date,
		CategoryID:  f.CategoryID,
		Note:        f.Note,
		Kind:        f.Kind,
	}, nil
}

type GoalForm struct {
	ID          int
	Name        string
	Kind        string
	Target      string
	Deadline    string
	Description string
}

func (f GoalForm) Editing() bool { return f.ID > 0 }

func GoalFormFrom(g models.Goal) GoalForm {
	return GoalForm{
		ID:          g.ID,
		Name:        g.Name,
		Kind:        g.Kind,
		Target:      g.Target.StringFixed(2),
		Deadline:    g.Deadline,
		Description: g.Description,
	}
}

func (f GoalForm) Validate() (models.GoalInput, error) {
	if strings.TrimSpace(f.Name) == "" || strings.TrimSpace(f.Kind) == "" || f.Deadline == "" {
		return models.GoalInput{}, errors.New("Preencha nome, tipo, valor alvo e data limite.")
	}
	target, err := parseAmount(f.Target)
	if err != nil || !target.IsPositive() {
		return models.GoalInput{}, errors.New("Informe um valor alvo maior que zero.")
	}
	if !validDate(f.Deadline) {
		return models.GoalInput{}, errors.New("Data limite inválida.")
	}
	return models.GoalInput{
		Name:        strings.TrimSpace(f.Name),
		Kind:        strings.TrimSpace(f.Kind),
		Target:      target,
		Deadline:    f.Deadline,
		Description: f.Description,
	}, nil
}

// RegisterForm данные формы регистрации.
type RegisterForm struct {
	Username string
	Email    string
	Password string
	Confirm  string
}

func (f RegisterForm) Validate() (models.Registration, error) {
	if f.Username == "" || f.Email == "" || f.Password == "" || f.Confirm == "" {
		return models.Registration{}, errors.New("Preencha todos os campos")
	}
	if f.Password != f.Confirm {
		return models.Registration{}, errors.New("As senhas não coincidem")
	}
	if len([]rune(f.Password)) < 6 {
		return models.Registration{}, errors.New("A senha deve ter pelo menos 6 caracteres")
	}
	return models.Registration{Username: f.Username, Email: f.Email, Password: f.Password}, nil
}
