package models

import "time"

type Category struct {
	ID          int        `json:"id"`
	Name        string     `json:"nome"`
	Kind        Kind       `json:"tipo"`
	Icon        string     `json:"icone"`
	Color       string     `json:"cor"`
	Description string     `json:"descricao,omitempty"`
	CreatedAt   *time.Time `json:"criada_em,omitempty"`
}

// CategoryInput тело запроса для POST и PUT категории. Цвет без ведущего '#'.
type CategoryInput struct {
	Name        string `json:"nome"`
	Kind        Kind   `json:"tipo"`
	Icon        string `json:"icone"`
	Color       string `json:"cor"`
	Description string `json:"descricao"`
}

// FilterCategoriesByKind оставляет только категории указанного типа.
func FilterCategoriesByKind(categories []Category, kind Kind) []Category {
	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}
