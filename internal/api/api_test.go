package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/fashion-digest/internal/api"
	"github.com/fashion-digest/internal/config"
	"github.com/fashion-digest/internal/mocks"
	"github.com/fashion-digest/internal/models"
	"github.com/fashion-digest/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type fakeDB struct {
	err error
}

func (f *fakeDB) HealthCheck(ctx context.Context) error {
	return f.err
}

type testApp struct {
	router   *gin.Engine
	articles *mocks.MockArticleRepository
	videos   *mocks.MockVideoRepository
	comments *mocks.MockCommentRepository
	db       *fakeDB
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "8080"},
		Security: config.SecurityConfig{
			SecretKey:   "test-secret-key",
			CSRFEnabled: false,
		},
	}
}

func setupTestApp(cfg *config.Config) *testApp {
	gin.SetMode(gin.TestMode)

	repos, articles, videos, comments := mocks.NewMockRepositories()
	services := service.NewServices(repos, zerolog.Nop())
	db := &fakeDB{}

	return &testApp{
		router:   api.NewRouter(services, cfg, db, zerolog.Nop()),
		articles: articles,
		videos:   videos,
		comments: comments,
		db:       db,
	}
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return a.do(req)
}

func (a *testApp) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return a.do(req)
}

func (a *testApp) seed(t *testing.T) {
	t.Helper()
	if w := a.get("/setup"); w.Code != http.StatusFound {
		t.Fatalf("seed: expected 302, got %d", w.Code)
	}
}

func parseHTML(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(w.Body)
	if err != nil {
		t.Fatalf("failed to parse response HTML: %v", err)
	}
	return doc
}

func TestHealthEndpoint(t *testing.T) {
	app := setupTestApp(testConfig())

	w := app.get("/health")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if response["service"] != "fashion-digest" {
		t.Errorf("Expected service name, got %v", response["service"])
	}

	app.db.err = errors.New("connection refused")
	w = app.get("/health")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503 for unreachable database, got %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	app := setupTestApp(testConfig())
	app.get("/news")

	w := app.get("/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "http_requests_total") {
		t.Error("Expected request counter in metrics output")
	}
}

func TestHome_BeforeSeedIsNotFound(t *testing.T) {
	app := setupTestApp(testConfig())

	w := app.get("/")
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404 before seeding, got %d", w.Code)
	}
	doc := parseHTML(t, w)
	if doc.Find(".error-page").Length() != 1 {
		t.Error("Expected the error page to be rendered")
	}
}

func TestSetup_SeedsOnceThenConflicts(t *testing.T) {
	app := setupTestApp(testConfig())

	w := app.get("/setup")
	if w.Code != http.StatusFound {
		t.Fatalf("Expected status 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("Expected redirect to /, got %q", loc)
	}

	w = app.get("/")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected home to render after seeding, got %d", w.Code)
	}
	doc := parseHTML(t, w)
	if got := doc.Find(".featured-article .card-title").Text(); !strings.Contains(got, "Ozempic") {
		t.Errorf("Expected article 1 on the home page, got %q", got)
	}
	if doc.Find(".featured-video").Length() != 1 {
		t.Error("Expected video 1 on the home page")
	}

	w = app.get("/setup")
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected status 409 on second seed, got %d", w.Code)
	}
	if len(app.articles.Articles) != 3 || len(app.videos.Videos) != 3 {
		t.Errorf("Expected 3 articles and 3 videos, got %d and %d", len(app.articles.Articles), len(app.videos.Videos))
	}
}

func TestListings(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		itemLinks string
		prefix    string
	}{
		{name: "news", path: "/news", itemLinks: ".article-item .card-title a", prefix: "/get_news/"},
		{name: "videos", path: "/videos", itemLinks: ".video-item .card-title a", prefix: "/get_vid/"},
	}

	for _, tt := range tests {
		t.Run(tt.name+" empty", func(t *testing.T) {
			app := setupTestApp(testConfig())
			w := app.get(tt.path)
			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200 for empty listing, got %d", w.Code)
			}
			if parseHTML(t, w).Find(".empty").Length() != 1 {
				t.Error("Expected empty-state placeholder")
			}
		})

		t.Run(tt.name+" ordered", func(t *testing.T) {
			app := setupTestApp(testConfig())
			app.seed(t)

			w := app.get(tt.path)
			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", w.Code)
			}

			var hrefs []string
			parseHTML(t, w).Find(tt.itemLinks).Each(func(_ int, s *goquery.Selection) {
				href, _ := s.Attr("href")
				hrefs = append(hrefs, href)
			})
			want := []string{tt.prefix + "1", tt.prefix + "2", tt.prefix + "3"}
			if strings.Join(hrefs, ",") != strings.Join(want, ",") {
				t.Errorf("Expected items in ID order %v, got %v", want, hrefs)
			}
		})
	}
}

func TestListing_RepositoryFailure(t *testing.T) {
	app := setupTestApp(testConfig())
	app.articles.Err = errors.New("connection reset by peer")

	w := app.get("/news")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", w.Code)
	}
}

func TestDetail_Missing(t *testing.T) {
	app := setupTestApp(testConfig())
	app.seed(t)

	for _, path := range []string{"/get_news/99", "/get_vid/99", "/get_news/abc", "/get_vid/0"} {
		if w := app.get(path); w.Code != http.StatusNotFound {
			t.Errorf("GET %s: expected 404, got %d", path, w.Code)
		}
	}

	w := app.postForm("/get_news/99", url.Values{"comment": {"hello"}})
	if w.Code != http.StatusNotFound {
		t.Errorf("POST to missing article: expected 404, got %d", w.Code)
	}
	if len(app.comments.Comments) != 0 {
		t.Errorf("Expected no comments to be stored, got %d", len(app.comments.Comments))
	}
}

func TestArticleDetail_RendersBody(t *testing.T) {
	app := setupTestApp(testConfig())
	app.seed(t)

	w := app.get("/get_news/3")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	doc := parseHTML(t, w)
	if got := doc.Find("article h1").Text(); got != "Citayam Fashion Week" {
		t.Errorf("Expected article title, got %q", got)
	}
	if n := doc.Find("article p").Length(); n < 5 {
		t.Errorf("Expected the body split into paragraphs, got %d", n)
	}
	if doc.Find(".no-comments").Length() != 1 {
		t.Error("Expected no-comments placeholder")
	}
}

func TestCommentOnArticle_RedirectsAndRenders(t *testing.T) {
	app := setupTestApp(testConfig())
	app.seed(t)

	w := app.postForm("/get_news/1", url.Values{"comment": {"Great read!"}})
	if w.Code != http.StatusFound {
		t.Fatalf("Expected status 302, got %d: %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/get_news/1" {
		t.Errorf("Expected redirect to /get_news/1, got %q", loc)
	}

	if len(app.comments.Comments) != 1 {
		t.Fatalf("Expected 1 stored comment, got %d", len(app.comments.Comments))
	}
	stored := app.comments.Comments[0]
	if stored.Kind != models.CommentKindArticle || stored.ParentID != 1 {
		t.Errorf("Comment linked to wrong parent: %+v", stored)
	}

	w = app.get("/get_news/1", w.Result().Cookies()...)
	doc := parseHTML(t, w)
	if got := doc.Find(".comment-text").Text(); !strings.Contains(got, "Great read!") {
		t.Errorf("Expected comment in rendered page, got %q", got)
	}
	if got := doc.Find(".flash").Text(); got != "Comment posted." {
		t.Errorf("Expected flash message after redirect, got %q", got)
	}
	if src, _ := doc.Find(".comment img").Attr("src"); !strings.HasPrefix(src, "http://www.gravatar.com/avatar/") {
		t.Errorf("Expected gravatar avatar, got %q", src)
	}
}

func TestCommentOnVideo_RedirectsAndRenders(t *testing.T) {
	app := setupTestApp(testConfig())
	app.seed(t)

	w := app.postForm("/get_vid/2", url.Values{"comment": {"<p>Love <em>this</em></p><script>x()</script>"}})
	if w.Code != http.StatusFound {
		t.Fatalf("Expected status 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/get_vid/2" {
		t.Errorf("Expected redirect to /get_vid/2, got %q", loc)
	}

	stored := app.comments.Comments[0]
	if stored.Kind != models.CommentKindVideo || stored.ParentID != 2 {
		t.Errorf("Comment linked to wrong parent: %+v", stored)
	}
	if stored.Text != "<p>Love <em>this</em></p>" {
		t.Errorf("Expected sanitized text, got %q", stored.Text)
	}

	doc := parseHTML(t, app.get("/get_vid/2"))
	if doc.Find(".comment-text em").Length() != 1 {
		t.Error("Expected allowed markup to render as HTML")
	}
	if doc.Find(".comment-text script").Length() != 0 {
		t.Error("Script must never be rendered")
	}
	if doc.Find("iframe").Length() != 1 {
		t.Error("Expected the video embed")
	}
}

func TestComment_InvalidSubmissions(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
	}{
		{name: "missing field", form: url.Values{}},
		{name: "empty", form: url.Values{"comment": {""}}},
		{name: "blank editor", form: url.Values{"comment": {"<p>&nbsp;</p>"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupTestApp(testConfig())
			app.seed(t)

			w := app.postForm("/get_news/1", tt.form)
			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("Expected status 422, got %d", w.Code)
			}
			doc := parseHTML(t, w)
			if got := doc.Find(".field-error").Text(); got != "This field is required." {
				t.Errorf("Expected required error, got %q", got)
			}
			if doc.Find("article h1").Length() != 1 {
				t.Error("Expected the detail view to be re-rendered")
			}
			if len(app.comments.Comments) != 0 {
				t.Errorf("Expected no stored comments, got %d", len(app.comments.Comments))
			}
		})
	}
}

func TestComment_TooLongKeepsSubmittedText(t *testing.T) {
	app := setupTestApp(testConfig())
	app.seed(t)

	long := strings.Repeat("x", 1001)
	w := app.postForm("/get_vid/1", url.Values{"comment": {long}})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected status 422, got %d", w.Code)
	}
	doc := parseHTML(t, w)
	if got := doc.Find("textarea#comment").Text(); got != long {
		t.Error("Expected the submitted text to be kept in the form")
	}
	if len(app.comments.Comments) != 0 {
		t.Error("Expected no stored comments")
	}
}

func TestComment_CSRF(t *testing.T) {
	cfg := testConfig()
	cfg.Security.CSRFEnabled = true
	app := setupTestApp(cfg)
	app.seed(t)

	// without a token
	w := app.postForm("/get_news/1", url.Values{"comment": {"Great read!"}})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected status 422 without CSRF token, got %d", w.Code)
	}
	if got := parseHTML(t, w).Find(".form-error").Text(); !strings.Contains(got, "CSRF") {
		t.Errorf("Expected CSRF error, got %q", got)
	}

	// with the token from the rendered form
	page := app.get("/get_news/1")
	cookies := page.Result().Cookies()
	token, ok := parseHTML(t, page).Find(`input[name="csrf_token"]`).Attr("value")
	if !ok || token == "" {
		t.Fatal("Expected a CSRF token in the form")
	}

	w = app.postForm("/get_news/1", url.Values{"comment": {"Great read!"}, "csrf_token": {"forged"}}, cookies...)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected forged token to be rejected, got %d", w.Code)
	}

	w = app.postForm("/get_news/1", url.Values{"comment": {"Great read!"}, "csrf_token": {token}}, cookies...)
	if w.Code != http.StatusFound {
		t.Fatalf("Expected status 302 with a valid token, got %d", w.Code)
	}
	if len(app.comments.Comments) != 1 {
		t.Errorf("Expected exactly 1 stored comment, got %d", len(app.comments.Comments))
	}
}

func TestComment_RateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.Security.CommentRateLimit = 1
	cfg.Security.CommentBurst = 1
	app := setupTestApp(cfg)
	app.seed(t)

	if w := app.postForm("/get_news/1", url.Values{"comment": {"first"}}); w.Code != http.StatusFound {
		t.Fatalf("Expected first comment to pass, got %d", w.Code)
	}
	w := app.postForm("/get_news/1", url.Values{"comment": {"second"}})
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected status 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After header")
	}
	if len(app.comments.Comments) != 1 {
		t.Errorf("Expected 1 stored comment, got %d", len(app.comments.Comments))
	}

	// reading is never limited
	if w := app.get("/get_news/1"); w.Code != http.StatusOK {
		t.Errorf("Expected GET to pass, got %d", w.Code)
	}
}

func TestComment_RateLimitIgnoresForwardedHeaders(t *testing.T) {
	cfg := testConfig()
	cfg.Security.CommentRateLimit = 1
	cfg.Security.CommentBurst = 1
	app := setupTestApp(cfg)
	app.seed(t)

	accepted := 0
	for i := 1; i <= 20; i++ {
		req := httptest.NewRequest(http.MethodPost, "/get_news/1",
			strings.NewReader(url.Values{"comment": {"spam " + strconv.Itoa(i)}}.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("X-Forwarded-For", "10.0.0."+strconv.Itoa(i))
		req.Header.Set("X-Real-IP", "10.1.0."+strconv.Itoa(i))

		w := app.do(req)
		switch w.Code {
		case http.StatusFound:
			accepted++
		case http.StatusTooManyRequests:
		default:
			t.Fatalf("request %d: unexpected status %d", i, w.Code)
		}
	}

	if accepted != 1 {
		t.Errorf("Expected 1 accepted comment from one peer, got %d", accepted)
	}
	if len(app.comments.Comments) != 1 {
		t.Errorf("Expected 1 stored comment, got %d", len(app.comments.Comments))
	}
}

func TestComment_RateLimitTrustedProxy(t *testing.T) {
	cfg := testConfig()
	cfg.Security.CommentRateLimit = 1
	cfg.Security.CommentBurst = 1
	cfg.Security.TrustedProxies = []string{"192.0.2.0/24"} // httptest peer address
	app := setupTestApp(cfg)
	app.seed(t)

	post := func(clientIP string) int {
		req := httptest.NewRequest(http.MethodPost, "/get_news/1",
			strings.NewReader(url.Values{"comment": {"from " + clientIP}}.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("X-Forwarded-For", clientIP)
		return app.do(req).Code
	}

	if code := post("198.51.100.1"); code != http.StatusFound {
		t.Fatalf("Expected first client to pass, got %d", code)
	}
	if code := post("198.51.100.2"); code != http.StatusFound {
		t.Fatalf("Expected second client behind the proxy to have its own budget, got %d", code)
	}
	if code := post("198.51.100.1"); code != http.StatusTooManyRequests {
		t.Fatalf("Expected repeat client to be limited, got %d", code)
	}
}

func TestShopAndUnknownRoutes(t *testing.T) {
	app := setupTestApp(testConfig())

	if w := app.get("/shop"); w.Code != http.StatusOK {
		t.Errorf("Expected shop to render, got %d", w.Code)
	}
	if w := app.get("/nope"); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown route, got %d", w.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	app := setupTestApp(testConfig())

	w := app.get("/shop")
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("Expected a generated request ID")
	}

	req := httptest.NewRequest(http.MethodGet, "/shop", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	if got := app.do(req).Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("Expected incoming request ID to be echoed, got %q", got)
	}
}
