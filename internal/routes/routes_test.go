package routes_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/ga-financas/internal/api"
	"github.com/valeriaulyamaeva/ga-financas/internal/apitest"
	"github.com/valeriaulyamaeva/ga-financas/internal/dashboard"
	"github.com/valeriaulyamaeva/ga-financas/internal/handlers"
	"github.com/valeriaulyamaeva/ga-financas/internal/routes"
	"github.com/valeriaulyamaeva/ga-financas/internal/session"
	"github.com/valeriaulyamaeva/ga-financas/models"
)

type app struct {
	t        *testing.T
	srv      *apitest.Server
	store    *session.MemoryStore
	registry *dashboard.Registry
	router   *gin.Engine
	cookie   *http.Cookie
	uid      int
}

func fixedNow() time.Time {
	return time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)
}

func newApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := apitest.New(t)
	client := api.NewClient(srv.BaseURL(), 5*time.Second)
	registry := dashboard.NewRegistry(client, dashboard.Options{Location: time.UTC, Now: fixedNow})
	store := session.NewMemoryStore()
	d := &handlers.Deps{
		API:             client,
		Registry:        registry,
		Location:        time.UTC,
		RefreshInterval: 10 * time.Second,
		Now:             fixedNow,
	}
	router, err := routes.SetupRouter(d, store, false)
	if err != nil {
		t.Fatalf("Ошибка создания маршрутизатора: %v", err)
	}
	return &app{t: t, srv: srv, store: store, registry: registry, router: router}
}

func (a *app) do(method, path string, form url.Values, header ...string) *httptest.ResponseRecorder {
	a.t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	if a.cookie != nil {
		req.AddCookie(a.cookie)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			a.cookie = c
		}
	}
	return w
}

func (a *app) login() {
	a.t.Helper()
	a.uid = a.srv.AddUser("maria", "maria@example.com", "segredo1")
	w := a.do(http.MethodPost, "/login", url.Values{"username": {"maria"}, "password": {"segredo1"}})
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/dashboard" {
		a.t.Fatalf("Ожидался редирект на /dashboard, получено %d %q", w.Code, w.Header().Get("Location"))
	}
}

func (a *app) value(key string) string {
	v, _ := a.store.Get(context.Background(), a.cookie.Value, key)
	return v
}

func expectRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != location {
		t.Fatalf("Ожидался редирект на %s, получено %d %q", location, w.Code, w.Header().Get("Location"))
	}
}

func expectBody(t *testing.T, w *httptest.ResponseRecorder, parts ...string) {
	t.Helper()
	body := w.Body.String()
	for _, p := range parts {
		if !strings.Contains(body, p) {
			t.Fatalf("В ответе нет %q", p)
		}
	}
}

func TestProtectedPagesRedirectToLogin(t *testing.T) {
	a := newApp(t)
	for _, path := range []string{"/dashboard", "/categorias", "/despesas", "/receitas", "/metas", "/perfil", "/meus-dados"} {
		expectRedirect(t, a.do(http.MethodGet, path, nil), "/")
	}
}

func TestLoginFlow(t *testing.T) {
	a := newApp(t)
	a.login()

	if a.value(session.KeyUsername) != "maria" || a.value(session.KeyUserID) != strconv.Itoa(a.uid) {
		t.Fatalf("Сессия не заполнена после входа")
	}
	w := a.do(http.MethodGet, "/dashboard", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Ожидался 200, получено %d", w.Code)
	}
	expectBody(t, w, "Login realizado com sucesso!", "Nvl 1", `content="10"`)

	expectRedirect(t, a.do(http.MethodGet, "/", nil), "/dashboard")
}

func TestLogoutOnlyByPost(t *testing.T) {
	a := newApp(t)
	a.login()

	if w := a.do(http.MethodGet, "/logout", nil); w.Code != http.StatusNotFound {
		t.Fatalf("GET /logout не должен существовать, получено %d", w.Code)
	}
	if a.value(session.KeyAccessToken) == "" {
		t.Fatalf("GET не должен завершать сессию")
	}
	expectRedirect(t, a.do(http.MethodPost, "/logout", nil), "/")
	if a.value(session.KeyAccessToken) != "" {
		t.Fatalf("Токен должен удаляться после выхода")
	}
}

func TestLoginRejected(t *testing.T) {
	a := newApp(t)
	a.srv.AddUser("maria", "maria@example.com", "segredo1")

	w := a.do(http.MethodPost, "/login", url.Values{"username": {"maria"}, "password": {"errada"}})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Ожидался 401, получено %d", w.Code)
	}
	expectBody(t, w, "Usuário ou senha inválidos", `value="maria"`)

	w = a.do(http.MethodPost, "/login", url.Values{"username": {""}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Ожидался 400, получено %d", w.Code)
	}
	if a.srv.Hits("POST /login/") != 1 {
		t.Fatalf("Пустая форма не должна отправлять запрос")
	}
}

func TestRegister(t *testing.T) {
	a := newApp(t)

	w := a.do(http.MethodPost, "/registro", url.Values{"username": {"ana"}, "email": {"ana@example.com"}, "password": {"123456"}, "confirm": {"654321"}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Ожидался 400, получено %d", w.Code)
	}
	expectBody(t, w, "As senhas não coincidem", "Criar Conta")
	if a.srv.Hits("POST /register/") != 0 {
		t.Fatalf("Невалидная форма не должна отправлять запрос")
	}

	w = a.do(http.MethodPost, "/registro", url.Values{"username": {"ana"}, "email": {"ana@example.com"}, "password": {"123456"}, "confirm": {"123456"}})
	expectRedirect(t, w, "/?usuario=ana")
	w = a.do(http.MethodGet, "/?usuario=ana", nil)
	expectBody(t, w, "Agora faça login com sua nova conta", `value="ana"`)

	w = a.do(http.MethodPost, "/registro", url.Values{"username": {"ana"}, "email": {"ana@example.com"}, "password": {"123456"}, "confirm": {"123456"}})
	expectBody(t, w, "username: Um usuário com este nome de usuário já existe.")

	if w := a.do(http.MethodGet, "/?painel=registro", nil); !strings.Contains(w.Body.String(), "Criar Conta") {
		t.Fatalf("Ожидалась панель регистрации")
	}
}

func TestCategoryCRUD(t *testing.T) {
	a := newApp(t)
	a.login()

	w := a.do(http.MethodPost, "/categorias", url.Values{"nome": {"Casa"}, "tipo": {"despesa"}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Ожидался 400, получено %d", w.Code)
	}
	expectBody(t, w, "Preencha o nome, tipo e selecione um ícone.")
	if a.srv.Hits("POST /categorias/") != 0 {
		t.Fatalf("Невалидная форма не должна отправлять запрос")
	}

	w = a.do(http.MethodPost, "/categorias", url.Values{"nome": {"Casa"}, "tipo": {"despesa"}, "icone": {"bx-home"}, "cor": {"#ff0000"}})
	expectRedirect(t, w, "/categorias")
	cats := a.srv.Categories(a.uid)
	if len(cats) != 1 || cats[0].Color != "ff0000" {
		t.Fatalf("Ожидалась категория с цветом ff0000, получено %+v", cats)
	}
	expectBody(t, a.do(http.MethodGet, "/categorias", nil), "Categoria adicionada com sucesso!", "Casa", "Sem descrição")

	id := strconv.Itoa(cats[0].ID)
	w = a.do(http.MethodGet, "/categorias/"+id+"/edit", nil)
	expectBody(t, w, "Editar Categoria", `value="#ff0000"`, "Salvar Edição")

	w = a.do(http.MethodPost, "/categorias", url.Values{"id": {id}, "nome": {"Moradia"}, "tipo": {"despesa"}, "icone": {"bx-home"}, "cor": {"#00ff00"}})
	expectRedirect(t, w, "/categorias")
	if cats := a.srv.Categories(a.uid); cats[0].Name != "Moradia" || a.srv.Hits("PUT /categorias/"+id+"/") != 1 {
		t.Fatalf("Категория не обновлена через PUT: %+v", cats)
	}

	expectRedirect(t, a.do(http.MethodPost, "/categorias/"+id+"/delete", nil), "/categorias")
	if len(a.srv.Categories(a.uid)) != 0 {
		t.Fatalf("Категория не удалена")
	}
	expectBody(t, a.do(http.MethodGet, "/categorias", nil), "Nenhuma categoria encontrada.")
}

func TestExpensesSaveAndSearch(t *testing.T) {
	a := newApp(t)
	a.login()
	cat := a.srv.SeedCategory(a.uid, models.Category{Name: "Contas", Kind: models.KindExpense})
	a.srv.SeedCategory(a.uid, models.Category{Name: "Salário", Kind: models.KindIncome})
	a.srv.SeedTransaction(a.uid, models.Transaction{Description: "Cinema", Amount: decimal.NewFromInt(40), Kind: models.KindExpense, CategoryID: &cat.ID, Date: "2025-03-01"})

	w := a.do(http.MethodPost, "/despesas", url.Values{"descricao": {"Conta de luz"}, "valor": {"12,50"}, "data": {"2025-03-10"}, "categoria": {strconv.Itoa(cat.ID)}})
	expectRedirect(t, w, "/despesas")

	var created models.Transaction
	for _, tx := range a.srv.Transactions(a.uid) {
		if tx.Description == "Conta de luz" {
			created = tx
		}
	}
	if created.Kind != models.KindExpense || !created.Amount.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("Неверно сохранена despesa: %+v", created)
	}

	w = a.do(http.MethodGet, "/despesas?q=LUZ", nil)
	expectBody(t, w, "Despesa adicionada!", "Conta de luz", "R$ 52,50", ">Contas<")
	if strings.Contains(w.Body.String(), "Cinema") || strings.Contains(w.Body.String(), ">Salário<") {
		t.Fatalf("Поиск или фильтр категорий не сработал")
	}

	expectBody(t, a.do(http.MethodGet, "/receitas", nil), "Nenhuma receita registrada.", "R$ 0,00")

	w = a.do(http.MethodPost, "/despesas", url.Values{"descricao": {"Luz"}, "valor": {"0"}, "data": {"2025-03-10"}, "categoria": {strconv.Itoa(cat.ID)}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Ожидался 400 для нулевой суммы, получено %d", w.Code)
	}

	id := strconv.Itoa(created.ID)
	expectBody(t, a.do(http.MethodGet, "/despesas/"+id+"/edit", nil), "Salvar Alterações", `value="12.50"`)
	expectRedirect(t, a.do(http.MethodGet, "/receitas/"+id+"/edit", nil), "/receitas")
	expectRedirect(t, a.do(http.MethodPost, "/despesas/"+id+"/delete", nil), "/despesas")
	if len(a.srv.Transactions(a.uid)) != 1 {
		t.Fatalf("Despesa не удалена")
	}
}

func TestGoalUpdateUsesPatchWithoutCurrent(t *testing.T) {
	a := newApp(t)
	a.login()

	expectRedirect(t, a.do(http.MethodPost, "/metas", url.Values{"nome": {"Viagem"}, "tipo": {"economia"}, "valor_alvo": {"200"}, "data_limite": {"2025-12-31"}}), "/metas")
	goals := a.srv.Goals(a.uid)
	if len(goals) != 1 || !goals[0].Current.IsZero() {
		t.Fatalf("Ожидалась цель с valor_atual 0, получено %+v", goals)
	}
	id := strconv.Itoa(goals[0].ID)

	w := a.do(http.MethodPost, "/metas", url.Values{"id": {id}, "nome": {"Viagem longa"}, "tipo": {"economia"}, "valor_alvo": {"300"}, "data_limite": {"2025-12-31"}})
	expectRedirect(t, w, "/metas")
	body := string(a.srv.LastBody("PATCH /metas/" + id + "/"))
	if body == "" || strings.Contains(body, "valor_atual") {
		t.Fatalf("PATCH не должен содержать valor_atual: %s", body)
	}
	expectBody(t, a.do(http.MethodGet, "/metas", nil), "Meta atualizada com sucesso!", "Viagem longa", "0.0% concluído", "Alvo: 31/12/2025")

	expectRedirect(t, a.do(http.MethodPost, "/metas/"+id+"/delete", nil), "/metas")
	expectBody(t, a.do(http.MethodGet, "/metas", nil), "Nenhuma meta encontrada.")
}

func TestUnauthorizedResponseForcesLogout(t *testing.T) {
	a := newApp(t)
	a.login()
	expectRedirect(t, a.do(http.MethodPost, "/tema", nil), "/dashboard")
	if a.value(session.KeyTheme) != session.ThemeDark {
		t.Fatalf("Тема не переключена")
	}

	a.srv.Fail("GET /metas/", http.StatusUnauthorized, `{"detail":"Token inválido"}`)
	expectRedirect(t, a.do(http.MethodGet, "/metas", nil), "/")
	if a.value(session.KeyAccessToken) != "" {
		t.Fatalf("Токен должен быть удален")
	}
	if a.value(session.KeyTheme) != session.ThemeDark {
		t.Fatalf("Тема должна пережить выход")
	}
	expectRedirect(t, a.do(http.MethodGet, "/dashboard", nil), "/")
	if a.srv.Hits("GET /metas/") != 1 {
		t.Fatalf("После 401 не должно быть повторных запросов")
	}
}

func TestExpiredTokenForcesLogout(t *testing.T) {
	a := newApp(t)
	a.login()
	if err := a.store.Set(context.Background(), a.cookie.Value, session.KeyAccessToken, a.srv.ExpiredToken(a.uid)); err != nil {
		t.Fatalf("Ошибка записи токена: %v", err)
	}
	expectRedirect(t, a.do(http.MethodGet, "/categorias", nil), "/")
	if a.srv.Hits("GET /categorias/") != 0 {
		t.Fatalf("С истекшим токеном запрос к API не нужен")
	}
	if a.value(session.KeyUsername) != "" {
		t.Fatalf("Данные пользователя должны быть удалены")
	}
}

func TestDashboardReportsAndChart(t *testing.T) {
	a := newApp(t)
	a.login()
	inc := a.srv.SeedCategory(a.uid, models.Category{Name: "Salário", Kind: models.KindIncome})
	a.srv.SeedTransaction(a.uid, models.Transaction{Description: "Pagamento", Amount: decimal.NewFromInt(1500), Kind: models.KindIncome, CategoryID: &inc.ID, Date: "2025-03-01"})

	expectBody(t, a.do(http.MethodGet, "/dashboard", nil), "R$ 1.500,00", "/dashboard/grafico.png")

	w := a.do(http.MethodGet, "/dashboard/relatorio.pdf", nil)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("Ожидался PDF, получено %d %q", w.Code, w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "Relatorio_Detalhado_12-03-2025.pdf") || !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("Неверный PDF-ответ")
	}

	w = a.do(http.MethodGet, "/dashboard/relatorio.xlsx", nil)
	if w.Code != http.StatusOK || !bytes.HasPrefix(w.Body.Bytes(), []byte("PK")) {
		t.Fatalf("Ожидался XLSX, получено %d", w.Code)
	}

	w = a.do(http.MethodGet, "/dashboard/grafico.png", nil)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("Ожидался PNG, получено %d", w.Code)
	}
}

func TestSpendingLimit(t *testing.T) {
	a := newApp(t)
	a.login()

	expectRedirect(t, a.do(http.MethodPost, "/dashboard/limite", url.Values{"limite": {"abc"}}), "/dashboard")
	if a.value(session.KeySpendingLimit) != "" {
		t.Fatalf("Неверный лимит не должен сохраняться")
	}
	expectBody(t, a.do(http.MethodGet, "/dashboard", nil), "Digite um valor válido maior que zero.")

	expectRedirect(t, a.do(http.MethodPost, "/dashboard/limite", url.Values{"limite": {"500"}}), "/dashboard")
	if a.value(session.KeySpendingLimit) != "500" {
		t.Fatalf("Ожидался лимит 500, получено %q", a.value(session.KeySpendingLimit))
	}
	expectBody(t, a.do(http.MethodGet, "/dashboard", nil), "R$ 500,00")

	expectRedirect(t, a.do(http.MethodPost, "/logout", nil), "/")
	if a.value(session.KeySpendingLimit) != "500" {
		t.Fatalf("Лимит должен пережить выход")
	}
}

func TestProfile(t *testing.T) {
	a := newApp(t)
	a.login()
	a.srv.SeedGoal(a.uid, models.Goal{Name: "Reserva", Target: decimal.NewFromInt(1000)})

	expectBody(t, a.do(http.MethodGet, "/perfil", nil), "maria@example.com", "Membro desde 01/06/2024", "Focado", "Nvl 1")

	w := a.do(http.MethodPost, "/perfil", url.Values{"username": {"maria2"}, "email": {"maria@example.com"}, "bio": {"Economizando"}})
	expectRedirect(t, w, "/perfil")
	if u := a.srv.User(a.uid); u.Bio != "Economizando" || u.Username != "maria2" {
		t.Fatalf("Профиль не сохранен: %+v", u)
	}
	if a.value(session.KeyUsername) != "maria2" {
		t.Fatalf("Имя пользователя в сессии не обновлено")
	}

	expectRedirect(t, a.do(http.MethodPost, "/perfil/avatar", url.Values{"seed": {"Milo"}}), "/perfil")
	if a.srv.User(a.uid).Avatar != "https://api.dicebear.com/7.x/avataaars/svg?seed=Milo" {
		t.Fatalf("Аватар не сохранен")
	}
	if a.srv.User(a.uid).Bio != "Economizando" {
		t.Fatalf("Смена аватара не должна стирать bio")
	}

	hits := a.srv.Hits("PUT /users/me/")
	expectRedirect(t, a.do(http.MethodPost, "/perfil/avatar", url.Values{"seed": {"Hacker"}}), "/perfil")
	if a.srv.Hits("PUT /users/me/") != hits {
		t.Fatalf("Неизвестный аватар не должен отправляться")
	}
	expectBody(t, a.do(http.MethodGet, "/perfil", nil), "Avatar inválido.")
}

func TestAnalyticsFilter(t *testing.T) {
	a := newApp(t)
	a.login()
	a.srv.SeedTransaction(a.uid, models.Transaction{Description: "Bônus", Amount: decimal.NewFromInt(700), Kind: models.KindIncome, Date: "2024-12-20"})
	a.srv.SeedTransaction(a.uid, models.Transaction{Description: "Salário", Amount: decimal.NewFromInt(300), Kind: models.KindIncome, Date: "2025-01-05"})

	w := a.do(http.MethodGet, "/meus-dados?ano=2025", nil)
	expectBody(t, w, "R$ 300,00", "01/2025", `<option value="2024" >2024</option>`)
	if strings.Contains(w.Body.String(), "12/2024") {
		t.Fatalf("Фильтр по году не применен")
	}
}

func TestThemeAndSidebarReturnToReferer(t *testing.T) {
	a := newApp(t)
	a.login()
	expectRedirect(t, a.do(http.MethodPost, "/sidebar", nil, "Referer", "http://example.com/categorias?q=casa"), "/categorias?q=casa")
	if a.value(session.KeySidebar) != "true" {
		t.Fatalf("Меню должно быть свернуто")
	}
	expectBody(t, a.do(http.MethodGet, "/categorias", nil), `id="sidebar" class="hide"`)
}

func TestHealthz(t *testing.T) {
	a := newApp(t)
	w := a.do(http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Fatalf("Неверный ответ healthz: %d %s", w.Code, w.Body.String())
	}
}
