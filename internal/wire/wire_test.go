package wire

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"movie-api/internal/data/repository"
	"movie-api/pkg/middleware"
	"movie-api/pkg/utils"

	"go.uber.org/zap"
)

type envelope struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

type apiClient struct {
	t      *testing.T
	router http.Handler
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	config := &utils.Config{
		App:       utils.AppConfig{Name: "movie-api-test"},
		Database:  utils.DatabaseConfig{Driver: utils.DriverMemory},
		RateLimit: utils.RateLimitConfig{Enabled: false},
	}
	app := Wiring(repository.NewMemoryRepository(zap.NewNop()), config, zap.NewNop())
	return &apiClient{t: t, router: app.Router}
}

func (c *apiClient) do(method, path, body string) (*httptest.ResponseRecorder, envelope) {
	c.t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			c.t.Fatalf("%s %s: decode body %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec, env
}

// create posts body and returns the new resource id.
func (c *apiClient) create(path, body string) int64 {
	c.t.Helper()
	rec, env := c.do(http.MethodPost, path, body)
	if rec.Code != http.StatusCreated {
		c.t.Fatalf("POST %s: status %d, body %s", path, rec.Code, rec.Body.String())
	}

	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		c.t.Fatalf("decode created id: %v", err)
	}
	return created.ID
}

func TestHealth(t *testing.T) {
	api := newAPI(t)
	rec, _ := api.do(http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Errorf("unexpected health response %d %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("expected a request id header")
	}
}

func TestMovieLifecycle(t *testing.T) {
	api := newAPI(t)

	crime := api.create("/api/genres", `{"name":"Crime"}`)
	pacino := api.create("/api/actors", `{"name":"Al Pacino","birthDate":"1940-04-25"}`)

	movieID := api.create("/api/movies", fmt.Sprintf(
		`{"title":"Heat","releaseYear":1995,"duration":170,"genres":[{"id":%d}],"actors":[%d]}`, crime, pacino))

	rec, env := api.do(http.MethodGet, fmt.Sprintf("/api/movies/%d", movieID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get movie: %d %s", rec.Code, rec.Body.String())
	}
	var movie map[string]any
	json.Unmarshal(env.Data, &movie)
	if movie["title"] != "Heat" || movie["releaseYear"] != float64(1995) {
		t.Errorf("unexpected movie %v", movie)
	}
	if _, leaked := movie["releaseDate"]; leaked {
		t.Error("legacy release date must not be exposed")
	}

	rec, env = api.do(http.MethodPatch, fmt.Sprintf("/api/movies/%d", movieID), `{"duration":"171","genres":[]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch movie: %d %s", rec.Code, rec.Body.String())
	}
	json.Unmarshal(env.Data, &movie)
	if movie["duration"] != float64(171) || len(movie["genres"].([]any)) != 0 {
		t.Errorf("unexpected patched movie %v", movie)
	}

	rec, env = api.do(http.MethodGet, fmt.Sprintf("/api/movies/%d/actors", movieID), "")
	var actors []map[string]any
	json.Unmarshal(env.Data, &actors)
	if rec.Code != http.StatusOK || len(actors) != 1 || actors[0]["birthDate"] != "1940-04-25" {
		t.Errorf("unexpected actors %d %s", rec.Code, rec.Body.String())
	}

	rec, _ = api.do(http.MethodDelete, fmt.Sprintf("/api/movies/%d?force=true", movieID), "")
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("delete movie: %d %q", rec.Code, rec.Body.String())
	}

	rec, env = api.do(http.MethodGet, fmt.Sprintf("/api/movies/%d", movieID), "")
	if rec.Code != http.StatusNotFound || env.Message != fmt.Sprintf("Movie not found with id %d", movieID) {
		t.Errorf("expected 404 after delete, got %d %q", rec.Code, env.Message)
	}

	rec, _ = api.do(http.MethodDelete, fmt.Sprintf("/api/movies/%d", movieID), "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 deleting a missing movie, got %d", rec.Code)
	}
}

func TestListMoviesPaging(t *testing.T) {
	api := newAPI(t)
	for i := 0; i < 3; i++ {
		api.create("/api/movies", fmt.Sprintf(`{"title":"Movie %d","releaseYear":%d,"duration":90}`, i, 2000+i))
	}

	rec, env := api.do(http.MethodGet, "/api/movies?page=0&size=2&sort=releaseYear,desc", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list movies: %d %s", rec.Code, rec.Body.String())
	}

	var page struct {
		Data []struct {
			ReleaseYear int `json:"releaseYear"`
		} `json:"data"`
		Pagination struct {
			Total      int64 `json:"total"`
			Page       int   `json:"page"`
			Size       int   `json:"size"`
			TotalPages int   `json:"total_pages"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if page.Pagination.Total != 3 || page.Pagination.TotalPages != 2 || page.Pagination.Size != 2 {
		t.Errorf("unexpected pagination %+v", page.Pagination)
	}
	if len(page.Data) != 2 || page.Data[0].ReleaseYear != 2002 {
		t.Errorf("unexpected page data %+v", page.Data)
	}
}

func TestBadRequests(t *testing.T) {
	api := newAPI(t)
	movieID := api.create("/api/movies", `{"title":"Heat","releaseYear":1995,"duration":170}`)

	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		wantMsg string
	}{
		{"page size", http.MethodGet, "/api/movies?size=101", "", "Page size must be between 1 and 100"},
		{"negative page", http.MethodGet, "/api/movies?page=-1", "", "Page index must not be negative"},
		{"bad year filter", http.MethodGet, "/api/movies?year=nineties", "", "Invalid parameter 'year' with value 'nineties'"},
		{"bad path id", http.MethodGet, "/api/genres/abc", "", "Invalid parameter 'id' with value 'abc'"},
		{"search without title", http.MethodGet, "/api/movies/search", "", "Required parameter 'title' is not present"},
		{"create missing fields", http.MethodPost, "/api/movies", `{"title":""}`, "Validation failed"},
		{"create bad integer", http.MethodPost, "/api/movies", `{"title":"x","releaseYear":"soon","duration":1}`, "Invalid Integer for field 'releaseYear': 'soon'"},
		{"create year overflow", http.MethodPost, "/api/movies", `{"title":"X","releaseYear":1e19,"duration":90}`, "Invalid Integer for field 'releaseYear': '1e19'"},
		{"create duration overflow", http.MethodPost, "/api/movies", `{"title":"X","releaseYear":1999,"duration":"3000000000"}`, "Invalid Integer for field 'duration': '3000000000'"},
		{"patch year overflow", http.MethodPatch, fmt.Sprintf("/api/movies/%d", movieID), `{"releaseYear":99999999999999999999}`, "Invalid type for releaseYear"},
		{"create bad date", http.MethodPost, "/api/actors", `{"name":"Ann","birthDate":"1980/01/01"}`, "Invalid date format for field 'birthDate': '1980/01/01'. Expected format is YYYY-MM-DD."},
		{"malformed json", http.MethodPost, "/api/genres", `{"name":`, "Malformed JSON request or invalid field values"},
		{"unknown movie field", http.MethodPatch, fmt.Sprintf("/api/movies/%d", movieID), `{"rating":5}`, "Unknown field: rating"},
		{"id mismatch", http.MethodPatch, fmt.Sprintf("/api/movies/%d", movieID), fmt.Sprintf(`{"id":%d}`, movieID+1), fmt.Sprintf("Path id %d does not match body id %d", movieID, movieID+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := api.do(tt.method, tt.path, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			if env.Status || env.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", env.Message, tt.wantMsg)
			}
		})
	}
}

func TestCreateValidationFields(t *testing.T) {
	api := newAPI(t)

	rec, env := api.do(http.MethodPost, "/api/movies", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	for field, msg := range map[string]string{
		"title":       "Title is required",
		"releaseYear": "Release year is required",
		"duration":    "Duration in minutes is required",
	} {
		if env.Errors[field] != msg {
			t.Errorf("errors[%s] = %q, want %q", field, env.Errors[field], msg)
		}
	}
}

func TestForcedActorDelete(t *testing.T) {
	api := newAPI(t)
	actorID := api.create("/api/actors", `{"name":"Robert De Niro","birthDate":"1943-08-17"}`)
	api.create("/api/movies", fmt.Sprintf(`{"title":"Heat","releaseYear":1995,"duration":170,"actors":[{"id":%d}]}`, actorID))
	api.create("/api/movies", fmt.Sprintf(`{"title":"Casino","releaseYear":1995,"duration":178,"actors":["%d"]}`, actorID))

	path := fmt.Sprintf("/api/actors/%d", actorID)

	rec, env := api.do(http.MethodDelete, path, "")
	if rec.Code != http.StatusBadRequest || !strings.Contains(env.Message, "2 movies") {
		t.Fatalf("expected blocked delete, got %d %q", rec.Code, env.Message)
	}

	rec, _ = api.do(http.MethodDelete, path+"?force=no", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("force=no must not force, got %d", rec.Code)
	}

	rec, _ = api.do(http.MethodDelete, path+"?force", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("forced delete: %d %s", rec.Code, rec.Body.String())
	}

	rec, env = api.do(http.MethodGet, "/api/movies?actor="+fmt.Sprint(actorID), "")
	if rec.Code != http.StatusOK || !strings.Contains(string(env.Data), `"total":0`) {
		t.Errorf("expected no movies for the removed actor, got %s", rec.Body.String())
	}
}

func TestGenreEndpoints(t *testing.T) {
	api := newAPI(t)
	genreID := api.create("/api/genres", `{"name":"Drama"}`)
	api.create("/api/movies", fmt.Sprintf(`{"title":"Heat","releaseYear":1995,"duration":170,"genres":[%d]}`, genreID))

	rec, env := api.do(http.MethodGet, fmt.Sprintf("/api/genres/%d/movies", genreID), "")
	if rec.Code != http.StatusOK || !strings.Contains(string(env.Data), `"title":"Heat"`) {
		t.Errorf("genre movies: %d %s", rec.Code, rec.Body.String())
	}

	rec, env = api.do(http.MethodPatch, fmt.Sprintf("/api/genres/%d", genreID), `{"name":"Crime","tagline":"ignored"}`)
	if rec.Code != http.StatusOK || !strings.Contains(string(env.Data), `"name":"Crime"`) {
		t.Errorf("patch genre: %d %s", rec.Code, rec.Body.String())
	}

	rec, env = api.do(http.MethodDelete, fmt.Sprintf("/api/genres/%d", genreID), "")
	if rec.Code != http.StatusBadRequest || env.Message != "Cannot delete genre 'Crime' because it has 1 associated movies" {
		t.Errorf("guarded delete: %d %q", rec.Code, env.Message)
	}

	rec, _ = api.do(http.MethodGet, "/api/genres/999/movies", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for a missing genre, got %d", rec.Code)
	}
}

func TestActorNameFilter(t *testing.T) {
	api := newAPI(t)
	api.create("/api/actors", `{"name":"Al Pacino","birthDate":"1940-04-25"}`)
	api.create("/api/actors", `{"name":"Val Kilmer","birthDate":"1959-12-31"}`)

	_, env := api.do(http.MethodGet, "/api/actors?name=kil", "")
	var actors []map[string]any
	json.Unmarshal(env.Data, &actors)
	if len(actors) != 1 || actors[0]["name"] != "Val Kilmer" {
		t.Errorf("unexpected actors %s", env.Data)
	}
}

func TestUnknownRouteAndMethod(t *testing.T) {
	api := newAPI(t)

	rec, _ := api.do(http.MethodGet, "/api/directors", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}

	rec, _ = api.do(http.MethodPut, "/api/genres/1", `{}`)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestRateLimitEnabled(t *testing.T) {
	config := &utils.Config{
		RateLimit: utils.RateLimitConfig{Enabled: true, RPS: 1, Burst: 1},
	}
	app := Wiring(repository.NewMemoryRepository(zap.NewNop()), config, zap.NewNop())
	if app.RateLimiter == nil {
		t.Fatal("expected a rate limiter")
	}

	codes := make([]int, 2)
	for i := range codes {
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		codes[i] = rec.Code
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("unexpected status codes %v", codes)
	}
}

func TestCreateMovieCollapsesRepeatedReferences(t *testing.T) {
	api := newAPI(t)
	genreID := api.create("/api/genres", `{"name":"Drama"}`)

	movieID := api.create("/api/movies", fmt.Sprintf(
		`{"title":"Heat","releaseYear":1995,"duration":170,"genres":[%d,{"id":%d},"%d"]}`, genreID, genreID, genreID))

	_, env := api.do(http.MethodGet, fmt.Sprintf("/api/movies/%d", movieID), "")
	var movie struct {
		Genres []struct {
			ID int64 `json:"id"`
		} `json:"genres"`
	}
	json.Unmarshal(env.Data, &movie)
	if len(movie.Genres) != 1 || movie.Genres[0].ID != genreID {
		t.Errorf("expected a single genre, got %+v", movie.Genres)
	}
}
