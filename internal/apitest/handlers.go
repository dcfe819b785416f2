package apitest

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/ga-financas/models"
	"golang.org/x/crypto/bcrypt"
)

type ctxKey struct{}

func userID(r *http.Request) int {
	id, _ := r.Context().Value(ctxKey{}).(int)
	return id
}

func pathID(r *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return id
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Não encontrado."})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "As credenciais de autenticação não foram fornecidas."})
			return
		}
		var claims jwt.RegisteredClaims
		_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
			return s.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "O token informado não é válido para qualquer tipo de token"})
			return
		}
		id, _ := strconv.Atoi(claims.Subject)
		s.mu.Lock()
		_, exists := s.data[id]
		s.mu.Unlock()
		if !exists {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Usuário não encontrado"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "JSON inválido"})
		return
	}
	s.mu.Lock()
	acc, ok := s.accounts[creds.Username]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(acc.hash, []byte(creds.Password)) != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Usuário ou senha inválidos"})
		return
	}
	writeJSON(w, http.StatusOK, models.LoginResponse{
		Access:   s.Token(acc.user.ID),
		Refresh:  s.sign(acc.user.ID, time.Now().Add(24*time.Hour)),
		Username: acc.user.Username,
		Email:    acc.user.Email,
		ID:       acc.user.ID,
	})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var reg models.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "JSON inválido"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[reg.Username]; exists {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"username": {"Um usuário com este nome de usuário já existe."}})
		return
	}
	id := s.addUserLocked(reg.Username, reg.Email, reg.Password)
	writeJSON(w, http.StatusCreated, map[string]any{"id": id, "username": reg.Username, "email": reg.Email})
}

func (s *Server) findAccount(id int) *account {
	for _, a := range s.accounts {
		if a.user.ID == id {
			return a
		}
	}
	return nil
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	acc := s.findAccount(userID(r))
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, acc.user)
}

func (s *Server) updateMe(w http.ResponseWriter, r *http.Request) {
	var in models.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "JSON inválido"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.findAccount(userID(r))
	if in.Username != "" && in.Username != acc.user.Username {
		if _, taken := s.accounts[in.Username]; taken {
			writeJSON(w, http.StatusBadRequest, map[string][]string{"username": {"Um usuário com este nome de usuário já existe."}})
			return
		}
		delete(s.accounts, acc.user.Username)
		acc.user.Username = in.Username
		s.accounts[in.Username] = acc
	}
	if in.Email != "" {
		acc.user.Email = in.Email
	}
	if in.Bio != nil {
		acc.user.Bio = *in.Bio
	}
	if in.Avatar != "" {
		acc.user.Avatar = in.Avatar
	}
	writeJSON(w, http.StatusOK, acc.user)
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	items := append([]models.Category{}, s.data[userID(r)].categories...)
	s.mu.Unlock()
	s.writeList(w, items, len(items))
}

func validateCategory(in models.CategoryInput) map[string][]string {
	errs := map[string][]string{}
	if in.Name == "" {
		errs["nome"] = []string{"Este campo não pode ser em branco."}
	}
	if !in.Kind.Valid() {
		errs["tipo"] = []string{"\"" + string(in.Kind) + "\" não é um escolha válido."}
	}
	if strings.HasPrefix(in.Color, "#") {
		errs["cor"] = []string{"Informe a cor sem '#'."}
	}
	return errs
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var in models.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "JSON inválido"})
		return
	}
	if errs := validateCategory(in); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}
	if in.Icon == "" {
		in.Icon = "bx-folder"
	}
	s.mu.Lock()
	c := models.Category{ID: s.nextID, Name: in.Name, Kind: in.Kind, Icon: in.Icon, Color: in.Color, Description: in.Description}
	s.nextID++
	d := s.data[userID(r)]
	d.categories = append(d.categories, c)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.data[userID(r)].categories {
		if c.ID == pathID(r) {
			writeJSON(w, http.StatusOK, c)
			return
		}
	}
	notFound(w)
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	var in models.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "JSON inválido"})
		return
	}
	if errs := validateCategory(in); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.data[userID(r)]
	for i, c := range d.categories {
		if c.ID == pathID(r) {
			d.categories[i] = models.Category{ID: c.ID, Name: in.Name, Kind: in.Kind, Icon: in.Icon, Color: in.Color, Description: in.Description, CreatedAt: c.CreatedAt}
			writeJSON(w, http.StatusOK, d.categories[i])
			return
		}
	}
	notFound(w)
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.data[userID(r)]
	for i, c := range d.categories {
		if c.ID == pathID(r) {
			d.categories = append(d.categories[:i], d.categories[i+1:]...)
			for j := range d.transactions {
				if t := &d.transactions[j]; t.CategoryID != nil && *t.CategoryID == c.ID {
					t.CategoryID, t.CategoryName = nil, nil
				}
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	notFound(w)
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	kind := models.Kind(r.URL.Query().Get("tipo"))
	s.mu.Lock()
	items := []models.Transaction{}
	for _, t := range s.data[userID(r)].transactions {
		if kind == "" || t.Kind == kind {
			items = append(items, t)
		}
	}
	s.mu.Unlock()
	s.writeList(w, items, len(items))
}

func (d *userData) validateTransaction(in models.TransactionInput) map[string][]string {
	errs := map[string][]string{}
	if in.Description == "" {
		errs["descricao"] = []string{"Este campo não pode ser em branco."}
	}
	if !in.Amount.IsPositive() {
		errs["valor"] = []string{"Certifque-se de que este valor seja maior que 0."}
	}
	if _, err := time.Parse(models.DateLayout, in.Date); err != nil {
		errs["data"] = []string{"Formato inválido para data."}
	}
	if !in.Kind.Valid() {
		errs["tipo"] = []string{"Tipo inválido."}
	}
	found := false
	for _, c := range d.categories {
		if c.ID == in.CategoryID {
			found = true
			if c.Kind != in.Kind {
				errs["categoria"] = []string{"A categoria deve ser do mesmo tipo da transação."}
			}
		}
	}
	if !found {
		errs["categoria"] = []string{"Pk inválido - objeto não existe."}
	}
	return errs
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var in models.TransactionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "JSON inválido"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.data[userID(r)]
	if errs := d.validateTransaction(in); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}
	catID := in.CategoryID
	t := models.Transaction{ID: s.nextID, Description: in.Description, Amount: in.Amount, Kind: in.Kind,
		CategoryID: &catID, Date: in.Date, Note: in.Note}
	t.CategoryName = d.categoryName(t.CategoryID)
	s.nextID++
	d.transactions = append(d.transactions, t)
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.data[userID(r)].transactions {
		if t.ID == pathID(r) {
			writeJSON(w, http.StatusOK, t)
			return
		}
	}
	notFound(w)
}

func (s *Server) updateTransaction(w http.ResponseWriter, r *http.Request) {
	var in models.TransactionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "JSON inválido"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.data[userID(r)]
	for i, t := range d.transactions {
		if t.ID != pathID(r) {
			continue
		}
		if errs := d.validateTransaction(in); len(errs) > 0 {
			writeJSON(w, http.StatusBadRequest, errs)
			return
		}
		catID := in.CategoryID
		d.transactions[i] = models.Transaction{ID: t.ID, Description: in.Description, Amount: in.Amount, Kind: in.Kind,
			CategoryID: &catID, CategoryName: d.categoryName(&catID), Date: in.Date, Note: in.Note}
		writeJSON(w, http.StatusOK, d.transactions[i])
		return
	}
	notFound(w)
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.data[userID(r)]
	for i, t := range d.transactions {
		if t.ID == pathID(r) {
			d.transactions = append(d.transactions[:i], d.transactions[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	notFound(w)
}

func (s *Server) statistics(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := models.Statistics{Income: []models.CategoryTotal{}, Expenses: []models.CategoryTotal{}}
	byKind := map[models.Kind]*[]models.CategoryTotal{models.KindIncome: &stats.Income, models.KindExpense: &stats.Expenses}
	var income, expenses []decimal.Decimal
	for _, t := range s.data[userID(r)].transactions {
		if t.Kind == models.KindIncome {
			income = append(income, t.Amount)
		} else {
			expenses = append(expenses, t.Amount)
		}
		list := byKind[t.Kind]
		matched := false
		for i := range *list {
			if samePtr((*list)[i].Category, t.CategoryName) {
				(*list)[i].Total = (*list)[i].Total.Add(t.Amount)
				matched = true
			}
		}
		if !matched {
			*list = append(*list, models.CategoryTotal{Category: t.CategoryName, Total: t.Amount})
		}
	}
	stats.TotalIncome = sum(income...)
	stats.TotalExpenses = sum(expenses...)
	writeJSON(w, http.StatusOK, stats)
}

func samePtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s *Server) listGoals(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	items := append([]models.Goal{}, s.data[userID(r)].goals...)
	s.mu.Unlock()
	s.writeList(w, items, len(items))
}

func (s *Server) createGoal(w http.ResponseWriter, r *http.Request) {
	var in models.GoalInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "JSON inválido"})
		return
	}
	if in.Name == "" || !in.Target.IsPositive() {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"valor_alvo": {"Informe um valor maior que 0."}})
		return
	}
	g := models.Goal{Name: in.Name, Kind: in.Kind, Target: in.Target, Deadline: in.Deadline, Description: in.Description}
	if in.Current != nil {
		g.Current = *in.Current
	}
	s.mu.Lock()
	g.ID = s.nextID
	s.nextID++
	d := s.data[userID(r)]
	d.goals = append(d.goals, g)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, g)
}

func (s *Server) getGoal(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.data[userID(r)].goals {
		if g.ID == pathID(r) {
			writeJSON(w, http.StatusOK, g)
			return
		}
	}
	notFound(w)
}

func (s *Server) patchGoal(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name        *string          `json:"nome"`
		Kind        *string          `json:"tipo"`
		Target      *decimal.Decimal `json:"valor_alvo"`
		Current     *decimal.Decimal `json:"valor_atual"`
		Deadline    *string          `json:"data_limite"`
		Description *string          `json:"descricao"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "JSON inválido"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.data[userID(r)]
	for i := range d.goals {
		g := &d.goals[i]
		if g.ID != pathID(r) {
			continue
		}
		if in.Name != nil {
			g.Name = *in.Name
		}
		if in.Kind != nil {
			g.Kind = *in.Kind
		}
		if in.Target != nil {
			g.Target = *in.Target
		}
		if in.Current != nil {
			g.Current = *in.Current
		}
		if in.Deadline != nil {
			g.Deadline = *in.Deadline
		}
		if in.Description != nil {
			g.Description = *in.Description
		}
		writeJSON(w, http.StatusOK, *g)
		return
	}
	notFound(w)
}

func (s *Server) deleteGoal(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.data[userID(r)]
	for i, g := range d.goals {
		if g.ID == pathID(r) {
			d.goals = append(d.goals[:i], d.goals[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	notFound(w)
}
