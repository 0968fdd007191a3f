// File: internal/infra/web/server_test.go
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"gradscout/internal/domain"
	"gradscout/internal/domain/model"
	"gradscout/internal/infra/audio"
	"gradscout/internal/usecase"
)

func newTestServer(search usecase.SearchOrchestrator) *Server {
	logger := zerolog.Nop()
	if search == nil {
		search = &stubSearch{
			searchFn: func(context.Context, model.JobSearchQuery, string) (<-chan usecase.SearchUpdate, error) {
				ch := make(chan usecase.SearchUpdate)
				close(ch)
				return ch, nil
			},
		}
	}
	return NewServer(newStubAuth(), newStubSession(), search, &stubHistory{}, &logger)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == userCookie && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestAuthRoutes(t *testing.T) {
	t.Run("register, logout, login round trip", func(t *testing.T) {
		h := newTestServer(nil).Routes()

		rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", map[string]string{
			"fullName": "Thandi M", "username": "thandi",
			"password": "pw123", "confirmPassword": "pw123",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("register: %d %s", rec.Code, rec.Body)
		}
		cookie := sessionCookie(t, rec)
		if cookie.Value != "thandi" {
			t.Errorf("cookie: %q", cookie.Value)
		}

		rec = doJSON(t, h, http.MethodPost, "/api/v1/auth/logout", nil, cookie)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("logout: %d", rec.Code)
		}

		rec = doJSON(t, h, http.MethodPost, "/api/v1/auth/login", map[string]string{
			"username": "thandi", "password": "pw123",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("login: %d %s", rec.Code, rec.Body)
		}
		var user model.User
		if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
			t.Fatal(err)
		}
		if user.Username != "thandi" {
			t.Errorf("user: %+v", user)
		}
	})

	t.Run("mismatched passwords", func(t *testing.T) {
		h := newTestServer(nil).Routes()
		rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", map[string]string{
			"fullName": "T", "username": "t", "password": "a", "confirmPassword": "b",
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		h := newTestServer(nil).Routes()
		body := map[string]string{
			"fullName": "T", "username": "t", "password": "a", "confirmPassword": "a",
		}
		doJSON(t, h, http.MethodPost, "/api/v1/auth/register", body)
		rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", body)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("bad login", func(t *testing.T) {
		h := newTestServer(nil).Routes()
		rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/login", map[string]string{
			"username": "ghost", "password": "pw",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestSessionRoutes(t *testing.T) {
	listing := model.JobListing{JobTitle: "Engineer", Company: "Acme", URL: "https://example.com/1"}

	register := func(t *testing.T, h http.Handler) *http.Cookie {
		t.Helper()
		rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", map[string]string{
			"fullName": "Thandi M", "username": "thandi",
			"password": "pw", "confirmPassword": "pw",
		})
		return sessionCookie(t, rec)
	}

	t.Run("favorites require sign-in", func(t *testing.T) {
		h := newTestServer(nil).Routes()
		rec := doJSON(t, h, http.MethodPost, "/api/v1/favorites/toggle", listing)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("toggle then list favorites", func(t *testing.T) {
		h := newTestServer(nil).Routes()
		cookie := register(t, h)

		rec := doJSON(t, h, http.MethodPost, "/api/v1/favorites/toggle", listing, cookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("toggle: %d %s", rec.Code, rec.Body)
		}
		var toggled map[string]bool
		_ = json.Unmarshal(rec.Body.Bytes(), &toggled)
		if !toggled["favorited"] {
			t.Error("first toggle should favorite")
		}

		rec = doJSON(t, h, http.MethodGet, "/api/v1/favorites", nil, cookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("list: %d", rec.Code)
		}
		var resp struct {
			Data []model.JobListing `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if len(resp.Data) != 1 || resp.Data[0].URL != listing.URL {
			t.Errorf("favorites: %+v", resp.Data)
		}
	})

	t.Run("save, list and delete a search", func(t *testing.T) {
		h := newTestServer(nil).Routes()
		cookie := register(t, h)
		q := map[string]string{"careerField": "Law", "location": "Durban"}

		rec := doJSON(t, h, http.MethodPost, "/api/v1/searches", q, cookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("save: %d %s", rec.Code, rec.Body)
		}

		rec = doJSON(t, h, http.MethodGet, "/api/v1/searches", nil, cookie)
		var resp struct {
			Data []model.SavedSearch `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if len(resp.Data) != 1 {
			t.Fatalf("saved searches: %+v", resp.Data)
		}

		rec = doJSON(t, h, http.MethodDelete, "/api/v1/searches/"+resp.Data[0].ID, nil, cookie)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("delete: %d", rec.Code)
		}
	})
}

func TestSearchRoutes(t *testing.T) {
	t.Run("invalid query", func(t *testing.T) {
		search := &stubSearch{
			searchFn: func(context.Context, model.JobSearchQuery, string) (<-chan usecase.SearchUpdate, error) {
				return nil, domain.ErrInvalidArgument
			},
		}
		h := newTestServer(search).Routes()
		rec := doJSON(t, h, http.MethodPost, "/api/v1/search", map[string]string{"careerField": " "})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("streams one event per settle", func(t *testing.T) {
		update := usecase.SearchUpdate{Generation: 1, Slice: usecase.SliceJobs}
		search := &stubSearch{
			searchFn: func(context.Context, model.JobSearchQuery, string) (<-chan usecase.SearchUpdate, error) {
				ch := make(chan usecase.SearchUpdate, 2)
				ch <- update
				update2 := update
				update2.Slice = usecase.SliceBanner
				ch <- update2
				close(ch)
				return ch, nil
			},
		}
		h := newTestServer(search).Routes()
		rec := doJSON(t, h, http.MethodPost, "/api/v1/search", map[string]string{
			"careerField": "Law", "location": "Durban",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("search: %d %s", rec.Code, rec.Body)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
			t.Errorf("content type: %q", ct)
		}
		if got := strings.Count(rec.Body.String(), "data: "); got != 2 {
			t.Errorf("expected 2 events, got %d in %q", got, rec.Body.String())
		}
	})

	t.Run("state returns the snapshot", func(t *testing.T) {
		search := &stubSearch{state: usecase.SearchState{Generation: 7, HasSearched: true}}
		search.searchFn = func(context.Context, model.JobSearchQuery, string) (<-chan usecase.SearchUpdate, error) {
			return nil, nil
		}
		h := newTestServer(search).Routes()
		rec := doJSON(t, h, http.MethodGet, "/api/v1/search/state", nil)
		var st usecase.SearchState
		if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
			t.Fatal(err)
		}
		if st.Generation != 7 || !st.HasSearched {
			t.Errorf("state: %+v", st)
		}
	})
}

func TestAudioSummaryRoute(t *testing.T) {
	t.Run("no jobs yet", func(t *testing.T) {
		search := &stubSearch{
			summaryFn: func(context.Context, string) (string, error) {
				return "", domain.ErrNoResults
			},
		}
		h := newTestServer(search).Routes()
		rec := doJSON(t, h, http.MethodPost, "/api/v1/search/summary", nil)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("provider failure", func(t *testing.T) {
		search := &stubSearch{
			summaryFn: func(context.Context, string) (string, error) {
				return "", errStub
			},
		}
		h := newTestServer(search).Routes()
		rec := doJSON(t, h, http.MethodPost, "/api/v1/search/summary", nil)
		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
	})

	t.Run("serves the PCM as a playable WAV", func(t *testing.T) {
		pcm := []byte{0x00, 0x40, 0x00, 0xC0, 0x01, 0x02}
		search := &stubSearch{
			summaryFn: func(context.Context, string) (string, error) {
				return audio.EncodeBase64(pcm), nil
			},
		}
		h := newTestServer(search).Routes()
		rec := doJSON(t, h, http.MethodPost, "/api/v1/search/summary", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("summary: %d %s", rec.Code, rec.Body)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "audio/wav" {
			t.Errorf("content type: %q", ct)
		}
		body := rec.Body.Bytes()
		if len(body) != 44+len(pcm) {
			t.Fatalf("body length: got %d, want %d", len(body), 44+len(pcm))
		}
		if string(body[:4]) != "RIFF" {
			t.Errorf("not a WAV: % X", body[:4])
		}
		if rec.Header().Get("X-Audio-Frames") != "3" {
			t.Errorf("frames header: %q", rec.Header().Get("X-Audio-Frames"))
		}
	})
}

func TestExportRoute(t *testing.T) {
	h := newTestServer(nil).Routes()
	listing := model.JobListing{
		JobTitle: "Junior Engineer", Company: "Acme", Location: "Durban",
		Description: "Entry-level role.", URL: "https://example.com/1",
		Source: model.JobSource{Name: "Indeed", Rating: 3, Summary: "Mixed quality."},
	}
	rec := doJSON(t, h, http.MethodPost, "/api/v1/export", listing)
	if rec.Code != http.StatusOK {
		t.Fatalf("export: %d %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type: %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Junior_Engineer_Acme.pdf") {
		t.Errorf("disposition: %q", cd)
	}
}

func TestHistoryRoute(t *testing.T) {
	t.Run("requires sign-in", func(t *testing.T) {
		h := newTestServer(nil).Routes()
		rec := doJSON(t, h, http.MethodGet, "/api/v1/history", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("header identity works for non-browser clients", func(t *testing.T) {
		h := newTestServer(nil).Routes()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
		req.Header.Set("X-Username", "thandi")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}
