package gamification

import "strings"

type Step struct {
	ID    string
	Label string
	Done  bool
}

type Checklist struct {
	Steps    []Step
	Done     int
	Percent  float64
	Complete bool
}

// Onboarding чек-лист первых шагов.
func Onboarding(hasIncome, hasExpense, hasGoal bool, bio string) Checklist {
	steps := []Step{
		{ID: "step-receita", Label: "Adicionar uma receita", Done: hasIncome},
		{ID: "step-despesa", Label: "Registrar uma despesa", Done: hasExpense},
		{ID: "step-meta", Label: "Criar uma meta", Done: hasGoal},
		{ID: "step-bio", Label: "Escrever sua bio", Done: strings.TrimSpace(bio) != ""},
	}
	c := Checklist{Steps: steps}
	for _, s := range steps {
		if s.Done {
			c.Done++
		}
	}
	c.Percent = float64(c.Done) / float64(len(steps)) * 100
	c.Complete = c.Done == len(steps)
	return c
}
