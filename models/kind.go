package models

// Kind классифицирует транзакции и категории: receita или despesa.
type Kind string

const (
	KindIncome  Kind = "receita"
	KindExpense Kind = "despesa"
)

func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Label возвращает подпись для интерфейса.
func (k Kind) Label() string {
	switch k {
	case KindIncome:
		return "Receita"
	case KindExpense:
		return "Despesa"
	}
	return string(k)
}
