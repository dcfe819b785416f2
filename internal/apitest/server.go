// Package apitest поднимает в памяти поддельный REST API приложения для тестов.
package apitest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/ga-financas/models"
	"golang.org/x/crypto/bcrypt"
)

type account struct {
	user models.User
	hash []byte
}

type failure struct {
	status int
	body   string
}

type userData struct {
	categories   []models.Category
	transactions []models.Transaction
	goals        []models.Goal
}

// Server поддельный API. Все методы безопасны для конкурентного вызова.
type Server struct {
	*httptest.Server

	// Paginate заворачивает списки в {"count": n, "results": [...]}.
	Paginate bool
	TokenTTL time.Duration

	mu       sync.Mutex
	secret   []byte
	nextID   int
	accounts map[string]*account
	data     map[int]*userData
	failures map[string]failure
	gates    map[string]chan struct{}
	hits     map[string]int
	bodies   map[string][]byte
}

func New(t testing.TB) *Server {
	s := &Server{
		TokenTTL: time.Hour,
		secret:   []byte("segredo-de-teste"),
		nextID:   1,
		accounts: make(map[string]*account),
		data:     make(map[int]*userData),
		failures: make(map[string]failure),
		gates:    make(map[string]chan struct{}),
		hits:     make(map[string]int),
		bodies:   make(map[string][]byte),
	}
	s.Server = httptest.NewServer(s.router())
	t.Cleanup(s.Close)
	return s
}

// BaseURL адрес для api.NewClient.
func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

func (s *Server) router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.track)
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/login/", s.login).Methods(http.MethodPost)
	api.HandleFunc("/register/", s.register).Methods(http.MethodPost)

	auth := api.NewRoute().Subrouter()
	auth.Use(s.authenticate)
	auth.HandleFunc("/users/me/", s.me).Methods(http.MethodGet)
	auth.HandleFunc("/users/me/", s.updateMe).Methods(http.MethodPut, http.MethodPatch)

	auth.HandleFunc("/categorias/", s.listCategories).Methods(http.MethodGet)
	auth.HandleFunc("/categorias/", s.createCategory).Methods(http.MethodPost)
	auth.HandleFunc("/categorias/{id:[0-9]+}/", s.getCategory).Methods(http.MethodGet)
	auth.HandleFunc("/categorias/{id:[0-9]+}/", s.updateCategory).Methods(http.MethodPut)
	auth.HandleFunc("/categorias/{id:[0-9]+}/", s.deleteCategory).Methods(http.MethodDelete)

	auth.HandleFunc("/transacoes/estatisticas/", s.statistics).Methods(http.MethodGet)
	auth.HandleFunc("/transacoes/", s.listTransactions).Methods(http.MethodGet)
	auth.HandleFunc("/transacoes/", s.createTransaction).Methods(http.MethodPost)
	auth.HandleFunc("/transacoes/{id:[0-9]+}/", s.getTransaction).Methods(http.MethodGet)
	auth.HandleFunc("/transacoes/{id:[0-9]+}/", s.updateTransaction).Methods(http.MethodPut)
	auth.HandleFunc("/transacoes/{id:[0-9]+}/", s.deleteTransaction).Methods(http.MethodDelete)

	auth.HandleFunc("/metas/", s.listGoals).Methods(http.MethodGet)
	auth.HandleFunc("/metas/", s.createGoal).Methods(http.MethodPost)
	auth.HandleFunc("/metas/{id:[0-9]+}/", s.getGoal).Methods(http.MethodGet)
	auth.HandleFunc("/metas/{id:[0-9]+}/", s.patchGoal).Methods(http.MethodPatch)
	auth.HandleFunc("/metas/{id:[0-9]+}/", s.deleteGoal).Methods(http.MethodDelete)
	return r
}

// track считает запросы, сохраняет тела и применяет внедренные ошибки и задержки.
func (s *Server) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api")
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		s.mu.Lock()
		s.hits[key]++
		s.bodies[key] = body
		f, failing := s.failures[key]
		gate := s.gates[key]
		s.mu.Unlock()

		if gate != nil {
			select {
			case <-gate:
			case <-r.Context().Done():
				return
			}
		}
		if failing {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.status)
			io.WriteString(w, f.body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Fail заставляет запрос "METHOD /path/" отвечать указанным статусом и телом.
func (s *Server) Fail(key string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[key] = failure{status: status, body: body}
}

func (s *Server) Recover(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, key)
}

// Hold задерживает запросы key до вызова возвращенной функции.
func (s *Server) Hold(key string) (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.gates[key] = ch
	s.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.gates, key)
			s.mu.Unlock()
			close(ch)
		})
	}
}

func (s *Server) Hits(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[key]
}

// LastBody тело последнего запроса key.
func (s *Server) LastBody(key string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bodies[key]
}

// AddUser регистрирует пользователя и возвращает его id.
func (s *Server) AddUser(username, email, password string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(username, email, password)
}

func (s *Server) addUserLocked(username, email, password string) int {
	id := s.nextID
	s.nextID++
	joined := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	s.accounts[username] = &account{
		user: models.User{ID: id, Username: username, Email: email, DateJoined: &joined},
		hash: hashPassword(password),
	}
	s.data[id] = &userData{}
	return id
}

// hashPassword bcrypt-хеш с минимальной стоимостью.
func hashPassword(password string) []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return hash
}

// Token выдает действующий access-токен.
func (s *Server) Token(userID int) string {
	return s.sign(userID, time.Now().Add(s.TokenTTL))
}

// ExpiredToken выдает токен с exp в прошлом.
func (s *Server) ExpiredToken(userID int) string {
	return s.sign(userID, time.Now().Add(-time.Hour))
}

func (s *Server) sign(userID int, exp time.Time) string {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		panic(err)
	}
	return token
}

func (s *Server) SeedCategory(userID int, c models.Category) models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.nextID
	s.nextID++
	d := s.data[userID]
	d.categories = append(d.categories, c)
	return c
}

func (s *Server) SeedTransaction(userID int, t models.Transaction) models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextID
	s.nextID++
	d := s.data[userID]
	t.CategoryName = d.categoryName(t.CategoryID)
	d.transactions = append(d.transactions, t)
	return t
}

func (s *Server) SeedGoal(userID int, g models.Goal) models.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	g.ID = s.nextID
	s.nextID++
	s.data[userID].goals = append(s.data[userID].goals, g)
	return g
}

// Transactions копия транзакций пользователя.
func (s *Server) Transactions(userID int) []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Transaction(nil), s.data[userID].transactions...)
}

func (s *Server) Categories(userID int) []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Category(nil), s.data[userID].categories...)
}

func (s *Server) Goals(userID int) []models.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Goal(nil), s.data[userID].goals...)
}

func (s *Server) User(userID int) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.user.ID == userID {
			return a.user
		}
	}
	return models.User{}
}

func (d *userData) categoryName(id *int) *string {
	if id == nil {
		return nil
	}
	for _, c := range d.categories {
		if c.ID == *id {
			name := c.Name
			return &name
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) writeList(w http.ResponseWriter, items any, count int) {
	if s.Paginate {
		writeJSON(w, http.StatusOK, map[string]any{"count": count, "next": nil, "previous": nil, "results": items})
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func sum(values ...decimal.Decimal) decimal.Decimal {
	return decimal.Sum(decimal.Zero, values...)
}
