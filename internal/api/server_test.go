package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/clinic-intake-api/internal/config"
	"github.com/vfg2006/clinic-intake-api/internal/domain"
	"github.com/vfg2006/clinic-intake-api/internal/usecases/administering"
	"github.com/vfg2006/clinic-intake-api/internal/usecases/authenticating"
	"github.com/vfg2006/clinic-intake-api/internal/usecases/reporting"
	"github.com/vfg2006/clinic-intake-api/internal/usecases/submitting"
	"github.com/vfg2006/clinic-intake-api/pkg/log"
	"github.com/vfg2006/clinic-intake-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Repositórios em memória com a mesma semântica dos repositórios Postgres

type memUsers struct {
	users map[string]*domain.User
}

func (m *memUsers) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	m.users[user.Username] = user
	return user, nil
}

func (m *memUsers) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, ok := m.users[username]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

type memEntries struct {
	mu      sync.Mutex
	entries []*domain.Entry
	users   *memUsers
}

func (m *memEntries) CreateEntry(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}
	entry.ID = id
	entry.CreatedAt = time.Now()
	m.entries = append(m.entries, entry)
	return entry, nil
}

func (m *memEntries) ListEntriesByWindow(ctx context.Context, start, end time.Time) ([]*domain.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*domain.Entry, 0)
	for _, e := range m.entries {
		if !e.Date.Before(start) && e.Date.Before(end) {
			copied := *e
			for _, u := range m.users.users {
				if u.ID == e.SubmittedBy {
					copied.SubmittedByName = u.Username
				}
			}
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *memEntries) DeleteEntry(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, e := range m.entries {
		if e.ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type memExpenses struct {
	mu       sync.Mutex
	expenses []*domain.Expense
}

func (m *memExpenses) CreateExpense(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}
	expense.ID = id
	expense.CreatedAt = time.Now()
	m.expenses = append(m.expenses, expense)
	return expense, nil
}

func (m *memExpenses) ListExpensesByDate(ctx context.Context, day string) ([]*domain.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*domain.Expense, 0)
	for _, e := range m.expenses {
		if e.Date == day {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *memExpenses) DeleteExpense(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, e := range m.expenses {
		if e.ID == id {
			m.expenses = append(m.expenses[:i], m.expenses[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type testApp struct {
	t       *testing.T
	handler http.Handler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	log.SetupTestLogger()

	hash := func(password string) string {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		require.NoError(t, err)
		return string(hashed)
	}

	users := &memUsers{users: map[string]*domain.User{
		"ana":   {ID: "usr_admin001", Username: "ana", PasswordHash: hash("admin123"), Role: domain.RoleAdmin},
		"maria": {ID: "usr_recep001", Username: "maria", PasswordHash: hash("recep123"), Role: domain.RoleReceptionist},
	}}
	entries := &memEntries{users: users}
	expenses := &memExpenses{}

	cfg := &config.Config{
		Server: config.Server{Host: "127.0.0.1", Port: "0"},
		Auth:   config.Auth{Secret: "segredo-e2e", TokenTTL: time.Hour},
	}

	server := New(
		cfg,
		authenticating.NewService(users, cfg.Auth),
		submitting.NewService(entries, expenses),
		reporting.NewService(entries, expenses),
		administering.NewService(entries, expenses),
	)

	return &testApp{t: t, handler: server.Handler()}
}

func (a *testApp) do(method, target, token, body string) *httptest.ResponseRecorder {
	a.t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) login(username, password string) string {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/login", "", `{"username":"`+username+`","password":"`+password+`"}`)
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())

	var session domain.Session
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &session))
	return session.Token
}

func (a *testApp) report(token string) domain.DailyReportResponse {
	a.t.Helper()

	rec := a.do(http.MethodGet, "/admin/report?year=2024&month=3&day=15", token, "")
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())

	var report domain.DailyReportResponse
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &report))
	return report
}

func TestServer_SubmitAndReport(t *testing.T) {
	app := newTestApp(t)
	token := app.login("maria", "recep123")

	rec := app.do(http.MethodPost, "/submit-form", token, `{
		"pacienteNome": "Ana Souza",
		"date": "2024-03-15",
		"procedimento": "Cardiologia",
		"payments": ["Dinheiro", "Pix", "Cartão de Crédito"],
		"moneyAmount": 100,
		"pixAmount": 0,
		"creditCardAmount": 50
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	report := app.report(token)

	assert.Equal(t, "2024-03-15", report.Date)
	require.Len(t, report.Groups, 1)
	assert.Equal(t, "Cardiologia", report.Groups[0].Procedure)
	assert.Equal(t, "150.00", report.Groups[0].ProcedureTotal.String())
	assert.Equal(t, "150.00", report.GrandTotal.String())
	assert.Equal(t, "100.00", report.CashTotal.String())
	assert.Equal(t, "50.00", report.DigitalTotal.String())
	require.Len(t, report.Groups[0].Entries, 1)
	assert.Equal(t, "maria", report.Groups[0].Entries[0].AddedBy)

	// O dia seguinte continua vazio
	rec = app.do(http.MethodGet, "/admin/report?year=2024&month=3&day=16", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"groups":[]`)
	assert.Contains(t, rec.Body.String(), `"netTotal":0.00`)
}

func TestServer_LoginFailuresShareMessage(t *testing.T) {
	app := newTestApp(t)

	wrongPassword := app.do(http.MethodPost, "/login", "", `{"username":"maria","password":"errada"}`)
	unknownUser := app.do(http.MethodPost, "/login", "", `{"username":"ninguem","password":"errada"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
	assert.Contains(t, wrongPassword.Body.String(), "Usuário ou senha inválidos")
}

func TestServer_DeleteExpenseRaisesNetTotal(t *testing.T) {
	app := newTestApp(t)
	admin := app.login("ana", "admin123")

	rec := app.do(http.MethodPost, "/submit-form", admin, `{
		"pacienteNome": "Bruno",
		"date": "2024-03-15",
		"procedimento": "Exame",
		"payments": ["Pix"],
		"pixAmount": "80,00"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = app.do(http.MethodPost, "/admin/expenses", admin, `{"amount":20,"description":"Material","date":"2024-03-15"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	before := app.report(admin)
	assert.Equal(t, "20.00", before.ExpenseTotal.String())
	assert.Equal(t, "60.00", before.NetTotal.String())

	rec = app.do(http.MethodDelete, "/admin/expenses/"+created.ID, admin, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	after := app.report(admin)
	assert.Equal(t, "0.00", after.ExpenseTotal.String())
	assert.Equal(t, "80.00", after.NetTotal.String())

	// Segunda remoção do mesmo id
	rec = app.do(http.MethodDelete, "/admin/expenses/"+created.ID, admin, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_AccessControl(t *testing.T) {
	app := newTestApp(t)
	receptionist := app.login("maria", "recep123")

	rec := app.do(http.MethodGet, "/admin/report?year=2024&month=3&day=15", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(http.MethodGet, "/admin/report?year=2024&month=3&day=15", "token-invalido", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(http.MethodDelete, "/admin/forms/qualquer", receptionist, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(http.MethodPost, "/admin/expenses", receptionist, `{"amount":1,"description":"x","date":"2024-03-15"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(http.MethodGet, "/healthcheck", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
