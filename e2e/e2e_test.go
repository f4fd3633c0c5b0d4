//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"circlefin-go/internal/config"
	"circlefin-go/internal/db"
	bankdomain "circlefin-go/internal/domain/bank"
	budgetdomain "circlefin-go/internal/domain/budget"
	circledomain "circlefin-go/internal/domain/circle"
	profiledomain "circlefin-go/internal/domain/profile"
	transactiondomain "circlefin-go/internal/domain/transaction"
	bankrepo "circlefin-go/internal/repository/postgres/bank"
	budgetrepo "circlefin-go/internal/repository/postgres/budget"
	circlerepo "circlefin-go/internal/repository/postgres/circle"
	profilerepo "circlefin-go/internal/repository/postgres/profile"
	transactionrepo "circlefin-go/internal/repository/postgres/transaction"
	"circlefin-go/internal/transport/httpserver"
	"circlefin-go/internal/transport/httpserver/handler"
	"circlefin-go/pkg/logger"
	"gorm.io/gorm"
)

type testEnv struct {
	server     *httptest.Server
	authServer *httptest.Server
	db         *gorm.DB
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	log := logger.New(io.Discard, logger.LevelCritical, "text")
	authServer := newAuthServer(t)

	cfg := config.Config{
		SyncEnabled: true,
		DB:          config.DBConfig{DSN: dsn},
		Auth: config.AuthConfig{
			URL:     authServer.URL,
			APIKey:  "test-key",
			Timeout: 2 * time.Second,
		},
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}

	if err := db.Migrate(dbConn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}

	circles := circledomain.NewService(circlerepo.NewPostgres(dbConn))
	profiles := profiledomain.NewService(profilerepo.NewPostgres(dbConn))
	banks := bankdomain.NewService(bankrepo.NewPostgres(dbConn))
	budgets := budgetdomain.NewService(budgetrepo.NewPostgres(dbConn))
	transactions := transactiondomain.NewService(transactionrepo.NewPostgres(dbConn))

	handlers := handler.New(circles, profiles, banks, budgets, transactions, log)
	router := httpserver.NewRouter(cfg, handlers, profiles, log)
	server := httptest.NewServer(router)

	return &testEnv{server: server, authServer: authServer, db: dbConn}
}

func (e *testEnv) Close() {
	e.server.Close()
	e.authServer.Close()
	sqlDB, err := e.db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}

func newAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if token == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		payload := map[string]interface{}{
			"id":    token,
			"email": token + "@example.com",
			"user_metadata": map[string]interface{}{
				"name": "User " + token,
			},
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload)
	}))
}

func cleanDB(dbConn *gorm.DB) error {
	return dbConn.WithContext(context.Background()).Exec(
		"TRUNCATE TABLE transaction_categories, transactions, goals, budget_categories, budgets, banks, members, circles, profiles RESTART IDENTITY CASCADE",
	).Error
}

func requestJSON(t *testing.T, client *http.Client, method, url, token string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	return resp, respBody
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type circleResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

type budgetResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Scope           string   `json:"scope"`
	Type            string   `json:"type"`
	TargetAmount    string   `json:"target_amount"`
	RemainingAmount string   `json:"remaining_amount"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	Duration        int      `json:"duration"`
	Period          string   `json:"period"`
	Progress        int      `json:"progress"`
	Categories      []string `json:"categories"`
}

type chartResponse struct {
	Series []struct {
		Value float64 `json:"value"`
		Color string  `json:"color"`
	} `json:"series"`
	Key []struct {
		Name  string `json:"name"`
		Color string `json:"color"`
		Icon  string `json:"icon"`
	} `json:"key"`
	Total float64 `json:"total"`
}

type syncBatchResponse struct {
	Results []struct {
		ClientID string `json:"client_id"`
		Status   string `json:"status"`
		ID       string `json:"id"`
	} `json:"results"`
	Summary struct {
		Total     int `json:"total"`
		Applied   int `json:"applied"`
		Duplicate int `json:"duplicate"`
		Failed    int `json:"failed"`
	} `json:"summary"`
}

func TestE2EHealthAndAuth(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}

	resp, body := requestJSON(t, client, http.MethodGet, env.server.URL+"/api/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/auth/me", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", resp.StatusCode, string(body))
	}
	var errResp errorEnvelope
	if err := json.Unmarshal(body, &errResp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if errResp.Error.Code != "invalid_token" {
		t.Fatalf("expected invalid_token, got %q", errResp.Error.Code)
	}

	userID := "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/auth/me", userID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var me struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &me); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if me.ID != userID {
		t.Fatalf("expected id %s, got %q", userID, me.ID)
	}
}

func TestE2ECircleFlow(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}

	user1 := "11111111-1111-1111-1111-111111111111"
	user2 := "22222222-2222-2222-2222-222222222222"

	resp, body := requestJSON(t, client, http.MethodPost, env.server.URL+"/api/circles", user1, map[string]string{
		"name": "Petrovs",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, string(body))
	}
	var circle circleResponse
	if err := json.Unmarshal(body, &circle); err != nil {
		t.Fatalf("decode circle: %v", err)
	}
	if circle.ID == "" || len(circle.Code) != 6 {
		t.Fatalf("expected circle id and 6-char code, got %+v", circle)
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/circles/join", user2, map[string]string{
		"code": circle.Code,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}

	// Owner cannot leave while another member remains.
	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/circles/leave", user1, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/circles/me/members", user1, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var members []map[string]interface{}
	if err := json.Unmarshal(body, &members); err != nil {
		t.Fatalf("decode members: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/circles/leave", user2, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/circles/leave", user1, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/circles/me", user1, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.StatusCode, string(body))
	}
}

func TestE2EBudgetChartFlow(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}
	user := "33333333-3333-3333-3333-333333333333"

	resp, body := requestJSON(t, client, http.MethodPost, env.server.URL+"/api/circles", user, map[string]string{
		"name": "Chart Circle",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/budgets", user, map[string]interface{}{
		"name":             "Groceries",
		"scope":            "INCLUSIVE",
		"type":             "Expense",
		"target_amount":    "$300",
		"remaining_amount": "$120",
		"start_date":       "2026-08-01",
		"duration":         1,
		"period":           "monthly",
		"categories":       []string{"Food", "Household"},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, string(body))
	}
	var budget budgetResponse
	if err := json.Unmarshal(body, &budget); err != nil {
		t.Fatalf("decode budget: %v", err)
	}
	if budget.EndDate != "2026-08-31" {
		t.Fatalf("expected end date 2026-08-31, got %q", budget.EndDate)
	}
	if budget.Progress != 40 {
		t.Fatalf("expected progress 40, got %d", budget.Progress)
	}

	// No spending yet: the chart must fall back to the placeholder slice.
	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/budgets/"+budget.ID+"/chart", user, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		t.Fatalf("decode chart: %v", err)
	}
	if len(chart.Series) != 1 || chart.Total != 1 {
		t.Fatalf("expected single placeholder slice, got %+v", chart)
	}
	if chart.Key[0].Name != "No Associated Transactions" {
		t.Fatalf("expected placeholder label, got %q", chart.Key[0].Name)
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/transactions", user, map[string]interface{}{
		"date":       "2026-08-05",
		"amount":     "$25.50",
		"type":       "Expense",
		"categories": []string{"Food"},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/budgets/"+budget.ID+"/chart", user, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	chart = chartResponse{}
	if err := json.Unmarshal(body, &chart); err != nil {
		t.Fatalf("decode chart: %v", err)
	}
	if len(chart.Series) != 1 || chart.Series[0].Value != 25.5 {
		t.Fatalf("expected one Food slice of 25.5, got %+v", chart)
	}
	if chart.Key[0].Name != "Food" {
		t.Fatalf("expected declared casing Food, got %q", chart.Key[0].Name)
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/budgets/"+budget.ID+"/chart.png", user, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !bytes.HasPrefix(body, []byte("\x89PNG")) {
		t.Fatalf("expected PNG payload, got %q", string(body[:min(8, len(body))]))
	}
}

func TestE2ESyncIdempotency(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}
	user := "44444444-4444-4444-4444-444444444444"

	resp, body := requestJSON(t, client, http.MethodPost, env.server.URL+"/api/circles", user, map[string]string{
		"name": "Sync Circle",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, string(body))
	}

	batch := map[string]interface{}{
		"items": []map[string]interface{}{
			{
				"client_id":  "client-op-1",
				"date":       "2026-08-10",
				"amount":     "$10",
				"type":       "Expense",
				"categories": []string{"Coffee"},
			},
		},
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/sync", user, batch)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var first syncBatchResponse
	if err := json.Unmarshal(body, &first); err != nil {
		t.Fatalf("decode sync: %v", err)
	}
	if first.Summary.Applied != 1 {
		t.Fatalf("expected 1 applied, got %+v", first.Summary)
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/sync", user, batch)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var second syncBatchResponse
	if err := json.Unmarshal(body, &second); err != nil {
		t.Fatalf("decode sync: %v", err)
	}
	if second.Summary.Duplicate != 1 || second.Summary.Applied != 0 {
		t.Fatalf("expected replay to report duplicate, got %+v", second.Summary)
	}
	if second.Results[0].ID != first.Results[0].ID {
		t.Fatalf("expected duplicate to reference original id")
	}
}
