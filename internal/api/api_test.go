package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/album-index-api/internal/api"
	"github.com/album-index-api/internal/config"
	"github.com/album-index-api/internal/mocks"
	"github.com/album-index-api/internal/models"
	"github.com/album-index-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog"
)

const testSecret = "test-secret"

func adminToken(t *testing.T, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func setupTestRouter() (*gin.Engine, *mocks.MockPostService, *mocks.MockListService, *mocks.MockShareService) {
	gin.SetMode(gin.TestMode)

	mockPost := mocks.NewMockPostService()
	mockList := mocks.NewMockListService()
	mockShare := mocks.NewMockShareService()

	services := &service.Services{
		Post:  mockPost,
		List:  mockList,
		Share: mockShare,
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "8080"},
		Store:  config.StoreConfig{Bucket: "test", KeyPrefix: "posts"},
		Auth:   config.AuthConfig{Secret: testSecret},
		Site:   config.SiteConfig{Name: "Photo Album", ViewerPage: "/post.html", DefaultImage: "/logo.png"},
	}

	log := zerolog.Nop()
	router := api.NewRouter(services, cfg, log)

	return router, mockPost, mockList, mockShare
}

func mockPostRecord(slug string, visible *bool) *models.Post {
	return &models.Post{
		Slug:    slug,
		Title:   "Title " + slug,
		Items:   []models.MediaItem{{URL: "https://cdn.example.com/" + slug + ".jpg"}},
		Visible: visible,
	}
}

func TestHealthEndpoint(t *testing.T) {
	router, _, _, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if response["service"] != "album-index-api" {
		t.Errorf("Expected service name, got %v", response["service"])
	}
}

func TestCreatePost_RequiresToken(t *testing.T) {
	router, mockPost, _, _ := setupTestRouter()

	body := `{"slug":"trip","items":[{"url":"https://cdn.example.com/1.jpg"}]}`
	req := httptest.NewRequest("POST", "/v1/posts", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
	if len(mockPost.Posts) != 0 {
		t.Error("Unauthorized request must not reach the service")
	}
}

func TestCreatePost_InvalidTokenRejected(t *testing.T) {
	router, _, _, _ := setupTestRouter()

	body := `{"slug":"trip","items":[{"url":"https://cdn.example.com/1.jpg"}]}`
	req := httptest.NewRequest("POST", "/v1/posts", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
}

func TestCreatePost_Success(t *testing.T) {
	router, mockPost, _, _ := setupTestRouter()

	body := `{"slug":"trip","title":"Trip","tags":"a, b","items":[{"url":"https://cdn.example.com/1.jpg"}]}`
	req := httptest.NewRequest("POST", "/v1/posts", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken(t, testSecret))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["ok"] != true || response["slug"] != "trip" {
		t.Errorf("unexpected response: %v", response)
	}
	if _, ok := mockPost.Posts["trip"]; !ok {
		t.Error("service did not receive the post")
	}
}

func TestCreatePost_ValidationError(t *testing.T) {
	router, _, _, _ := setupTestRouter()

	body := `{"slug":"","items":[]}`
	req := httptest.NewRequest("POST", "/v1/posts", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken(t, testSecret))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["error"] == nil {
		t.Error("error body missing")
	}
}

func TestListPosts_ShowHiddenOnlyForAdmin(t *testing.T) {
	router, _, mockList, _ := setupTestRouter()

	// Unauthenticated request asking for hidden entries
	req := httptest.NewRequest("GET", "/v1/posts?showHidden=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if mockList.LastOpts.IncludeHidden {
		t.Error("showHidden must be ignored without a valid token")
	}

	// Authenticated request
	req = httptest.NewRequest("GET", "/v1/posts?showHidden=1", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, testSecret))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !mockList.LastOpts.IncludeHidden {
		t.Error("admin with showHidden=1 should include hidden entries")
	}
}

func TestListPosts_QueryParamsForwarded(t *testing.T) {
	router, _, mockList, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/v1/posts?page=3&pageSize=12&q=harbor&sort=title_asc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	opts := mockList.LastOpts
	if opts.Page != 3 || opts.PageSize != 12 || opts.Query != "harbor" || opts.Sort != service.SortTitleAsc {
		t.Errorf("options not forwarded: %+v", opts)
	}
}

func TestListPosts_DefaultsOnJunkParams(t *testing.T) {
	router, _, mockList, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/v1/posts?page=abc&pageSize=xyz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	opts := mockList.LastOpts
	if opts.Page != 1 || opts.PageSize != service.DefaultPageSize {
		t.Errorf("junk params should fall back to defaults: %+v", opts)
	}
}

func TestUpdateVisibility(t *testing.T) {
	router, mockPost, _, _ := setupTestRouter()
	visible := true
	mockPost.Posts["trip"] = mockPostRecord("trip", &visible)

	body := `{"slug":"trip","visible":false}`
	req := httptest.NewRequest("POST", "/v1/posts/visibility", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken(t, testSecret))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["ok"] != true || response["visible"] != false {
		t.Errorf("unexpected response: %v", response)
	}
}

func TestUpdateVisibility_MissingFields(t *testing.T) {
	router, _, _, _ := setupTestRouter()

	tests := []struct {
		name string
		body string
	}{
		{"missing slug", `{"visible":true}`},
		{"missing visible", `{"slug":"trip"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/v1/posts/visibility", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+adminToken(t, testSecret))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", w.Code)
			}
		})
	}
}

func TestUpdateVisibility_UnknownSlug(t *testing.T) {
	router, _, _, _ := setupTestRouter()

	body := `{"slug":"ghost","visible":false}`
	req := httptest.NewRequest("POST", "/v1/posts/visibility", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken(t, testSecret))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestRebuildIndex(t *testing.T) {
	router, mockPost, _, _ := setupTestRouter()
	mockPost.RebuildTotal = 42

	req := httptest.NewRequest("POST", "/v1/index/rebuild", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, testSecret))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["ok"] != true || response["total"].(float64) != 42 {
		t.Errorf("unexpected response: %v", response)
	}
	if mockPost.RebuildCalls != 1 {
		t.Errorf("expected 1 rebuild call, got %d", mockPost.RebuildCalls)
	}
}

func TestSharePost_MissingSlug(t *testing.T) {
	router, _, _, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/share", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestSharePost_RendersMetadata(t *testing.T) {
	router, _, _, mockShare := setupTestRouter()
	mockShare.Previews["sunset"] = &service.SharePreview{
		Title:       "Sunset",
		Description: "Golden hour",
		Image:       "https://cdn.example.com/sunset.jpg",
		ShareURL:    "https://albums.example.com/p/sunset",
		TargetURL:   "https://albums.example.com/post.html?slug=sunset",
	}

	req := httptest.NewRequest("GET", "/share/sunset", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("content type = %q", ct)
	}
	if cc := w.Header().Get("Cache-Control"); cc != "no-store" {
		t.Errorf("cache control = %q", cc)
	}

	html := w.Body.String()
	for _, want := range []string{
		`og:title" content="Sunset"`,
		`og:description" content="Golden hour"`,
		`og:image" content="https://cdn.example.com/sunset.jpg"`,
		`twitter:card" content="summary_large_image"`,
		"location.replace",
	} {
		if !bytes.Contains([]byte(html), []byte(want)) {
			t.Errorf("share HTML missing %q", want)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	router, _, _, _ := setupTestRouter()

	req := httptest.NewRequest("OPTIONS", "/v1/posts", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("CORS origin header missing")
	}
}

func TestEmptySecretFailsClosed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	services := &service.Services{
		Post:  mocks.NewMockPostService(),
		List:  mocks.NewMockListService(),
		Share: mocks.NewMockShareService(),
	}
	cfg := &config.Config{
		Store: config.StoreConfig{Bucket: "test", KeyPrefix: "posts"},
		Auth:  config.AuthConfig{Secret: ""},
	}
	router := api.NewRouter(services, cfg, zerolog.Nop())

	// Even a well-formed token signed with some secret must be rejected
	body := `{"slug":"trip","items":[{"url":"x"}]}`
	req := httptest.NewRequest("POST", "/v1/posts", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken(t, "any-secret"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 with empty secret, got %d", w.Code)
	}
}
