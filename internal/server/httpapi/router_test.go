package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/collectkeeper/internal/logging"
	"github.com/dmitrijs2005/collectkeeper/internal/server/config"
	"github.com/dmitrijs2005/collectkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/collectkeeper/internal/server/services"
	"github.com/dmitrijs2005/collectkeeper/internal/server/store"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		SecretKey:                    "test-secret",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
		CORSAllowedOrigin:            "http://localhost:5173",
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	repos := repomanager.NewInMemoryRepositoryManager()

	h := NewHandler(
		services.NewUserService(nil, repos, cfg),
		services.NewMediaService(cfg),
		store.NewManager(nil, repos, logger),
		logger,
	)

	srv := httptest.NewServer(NewRouter(h, cfg.CORSAllowedOrigin))
	t.Cleanup(srv.Close)
	return srv
}

type testClient struct {
	t      *testing.T
	base   string
	token  string
	client *http.Client
}

func (c *testClient) do(method, path string, body any) (*http.Response, []byte) {
	c.t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.base+path, rd)
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func (c *testClient) doJSON(method, path string, body any, wantStatus int, out any) {
	c.t.Helper()

	resp, data := c.do(method, path, body)
	if resp.StatusCode != wantStatus {
		c.t.Fatalf("%s %s: status %d, want %d (body: %s)", method, path, resp.StatusCode, wantStatus, data)
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			c.t.Fatalf("unmarshal response: %v (body: %s)", err, data)
		}
	}
}

func signedInClient(t *testing.T, srv *httptest.Server) *testClient {
	t.Helper()
	c := &testClient{t: t, base: srv.URL, client: srv.Client()}

	c.doJSON(http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Alice", "email": "alice@example.com",
		"username": "alice", "password": "long-enough-password",
	}, http.StatusCreated, nil)

	var session sessionResponse
	c.doJSON(http.MethodPost, "/api/auth/login", map[string]string{
		"username": "alice", "password": "long-enough-password",
	}, http.StatusOK, &session)

	c.token = session.AccessToken
	return c
}

func TestAPI_RequiresAuth(t *testing.T) {
	srv := newTestServer(t)
	c := &testClient{t: t, base: srv.URL, client: srv.Client()}

	resp, _ := c.do(http.MethodGet, "/api/items", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", resp.StatusCode)
	}

	c.token = "not-a-valid-token"
	resp, _ = c.do(http.MethodGet, "/api/items", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401 for bad token, got %d", resp.StatusCode)
	}
}

func TestAPI_LoginSeedsStarterCategories(t *testing.T) {
	srv := newTestServer(t)
	c := signedInClient(t, srv)

	var cats []CategoryDTO
	c.doJSON(http.MethodGet, "/api/categories", nil, http.StatusOK, &cats)
	if len(cats) != 2 {
		t.Fatalf("expected 2 starter categories, got %d", len(cats))
	}
}

func TestAPI_CategoryRenameCascadesIntoItems(t *testing.T) {
	srv := newTestServer(t)
	c := signedInClient(t, srv)

	var cats []CategoryDTO
	c.doJSON(http.MethodGet, "/api/categories", nil, http.StatusOK, &cats)
	var coins CategoryDTO
	for _, cat := range cats {
		if cat.Name == "Coins" {
			coins = cat
		}
	}

	var item CollectionItemDTO
	c.doJSON(http.MethodPost, "/api/items", map[string]any{
		"name": "Morgan Dollar", "condition": "very-good", "price": 95,
		"acquisitionDate": "2024-03-10", "categoryId": coins.ID,
	}, http.StatusCreated, &item)
	if item.CategoryName != "Coins" {
		t.Fatalf("expected resolved category name, got %q", item.CategoryName)
	}

	c.doJSON(http.MethodPatch, "/api/categories/"+coins.ID, map[string]string{
		"name": "Rare Coins",
	}, http.StatusOK, nil)

	var got CollectionItemDTO
	c.doJSON(http.MethodGet, "/api/items/"+item.ID, nil, http.StatusOK, &got)
	if got.CategoryName != "Rare Coins" {
		t.Fatalf("rename did not cascade: %q", got.CategoryName)
	}
}

func TestAPI_DeleteCategoryInUse(t *testing.T) {
	srv := newTestServer(t)
	c := signedInClient(t, srv)

	var cats []CategoryDTO
	c.doJSON(http.MethodGet, "/api/categories", nil, http.StatusOK, &cats)
	coins := cats[0]

	c.doJSON(http.MethodPost, "/api/items", map[string]any{
		"name": "Item", "condition": "good", "price": 1,
		"acquisitionDate": "2024-01-01", "categoryId": coins.ID,
	}, http.StatusCreated, nil)

	resp, _ := c.do(http.MethodDelete, "/api/categories/"+coins.ID, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("want 409 for category in use, got %d", resp.StatusCode)
	}
}

func TestAPI_ItemValidation(t *testing.T) {
	srv := newTestServer(t)
	c := signedInClient(t, srv)

	var cats []CategoryDTO
	c.doJSON(http.MethodGet, "/api/categories", nil, http.StatusOK, &cats)

	resp, _ := c.do(http.MethodPost, "/api/items", map[string]any{
		"name": "Bad", "condition": "pristine", "price": 1,
		"acquisitionDate": "2024-01-01", "categoryId": cats[0].ID,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400 for bad condition, got %d", resp.StatusCode)
	}

	resp, _ = c.do(http.MethodPost, "/api/items", map[string]any{
		"name": "Bad", "condition": "good", "price": 1,
		"acquisitionDate": "01.01.2024", "categoryId": cats[0].ID,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400 for bad date, got %d", resp.StatusCode)
	}
}

func TestAPI_WishlistRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	c := signedInClient(t, srv)

	var cats []CategoryDTO
	c.doJSON(http.MethodGet, "/api/categories", nil, http.StatusOK, &cats)

	var created WishlistItemDTO
	c.doJSON(http.MethodPost, "/api/wishlist", map[string]any{
		"name": "Mercury Dime", "price": 1200, "categoryId": cats[0].ID,
	}, http.StatusCreated, &created)

	var updated WishlistItemDTO
	c.doJSON(http.MethodPatch, "/api/wishlist/"+created.ID, map[string]any{
		"price": 1100,
	}, http.StatusOK, &updated)
	if updated.Price != 1100 {
		t.Fatalf("price not updated: %v", updated.Price)
	}

	resp, _ := c.do(http.MethodDelete, "/api/wishlist/"+created.ID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("want 204, got %d", resp.StatusCode)
	}

	var list []WishlistItemDTO
	c.doJSON(http.MethodGet, "/api/wishlist", nil, http.StatusOK, &list)
	if len(list) != 0 {
		t.Fatalf("expected empty wishlist, got %d", len(list))
	}
}

func TestAPI_ReportsAndExport(t *testing.T) {
	srv := newTestServer(t)
	c := signedInClient(t, srv)

	var cats []CategoryDTO
	c.doJSON(http.MethodGet, "/api/categories", nil, http.StatusOK, &cats)
	catID := cats[0].ID

	for i, date := range []string{"2024-01-15", "2024-06-01", "2023-05-20"} {
		c.doJSON(http.MethodPost, "/api/items", map[string]any{
			"name": fmt.Sprintf("Item %d", i), "condition": "good", "price": 100,
			"acquisitionDate": date, "categoryId": catID,
		}, http.StatusCreated, nil)
	}

	// ad-hoc generation, nothing saved
	var adhoc reportResultResponse
	c.doJSON(http.MethodPost, "/api/reports/generate", map[string]any{
		"type": "time", "startDate": "2024-01-01", "endDate": "2024-12-31",
	}, http.StatusOK, &adhoc)
	if len(adhoc.Items) != 2 || adhoc.TotalValue != 200 {
		t.Fatalf("unexpected ad-hoc result: %d items, total %v", len(adhoc.Items), adhoc.TotalValue)
	}

	var saved ReportDTO
	c.doJSON(http.MethodPost, "/api/reports", map[string]any{
		"name": "2024 acquisitions", "type": "time",
		"startDate": "2024-01-01", "endDate": "2024-12-31",
	}, http.StatusCreated, &saved)

	var result reportResultResponse
	c.doJSON(http.MethodGet, "/api/reports/"+saved.ID+"/result", nil, http.StatusOK, &result)
	if len(result.Items) != 2 {
		t.Fatalf("unexpected saved report result: %d items", len(result.Items))
	}

	resp, data := c.do(http.MethodGet, "/api/reports/"+saved.ID+"/export", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export status %d", resp.StatusCode)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("export is not a readable workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Collection Items")
	if err != nil {
		t.Fatalf("GetRows error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
}

func TestAPI_LogoutClosesSession(t *testing.T) {
	srv := newTestServer(t)
	c := signedInClient(t, srv)

	resp, _ := c.do(http.MethodPost, "/api/auth/logout", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("logout status %d", resp.StatusCode)
	}

	// the token is still valid but the store session is gone
	resp, _ = c.do(http.MethodGet, "/api/items", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401 after logout, got %d", resp.StatusCode)
	}
}

func TestAPI_RefreshRotatesTokens(t *testing.T) {
	srv := newTestServer(t)
	c := &testClient{t: t, base: srv.URL, client: srv.Client()}

	c.doJSON(http.MethodPost, "/api/auth/register", map[string]string{
		"email": "bob@example.com", "username": "bob", "password": "long-enough-password",
	}, http.StatusCreated, nil)

	var session sessionResponse
	c.doJSON(http.MethodPost, "/api/auth/login", map[string]string{
		"username": "bob", "password": "long-enough-password",
	}, http.StatusOK, &session)

	var refreshed map[string]string
	c.doJSON(http.MethodPost, "/api/auth/refresh", map[string]string{
		"refreshToken": session.RefreshToken,
	}, http.StatusOK, &refreshed)
	if refreshed["refreshToken"] == "" || refreshed["refreshToken"] == session.RefreshToken {
		t.Fatalf("refresh token must rotate")
	}

	resp, _ := c.do(http.MethodPost, "/api/auth/refresh", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400 for missing body, got %d", resp.StatusCode)
	}
}
