package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testPubs = `[
  {"title": "Older Work", "authors": ["A Smith"], "year": 2019, "journal": "PLoS"},
  {"title": "Newest Work", "authors": ["A Smith", "B Jones"], "year": 2023, "journal": "Nature", "selected": true},
  {"title": "Middle Work", "authors": "C Brown", "year": 2021}
]`

func newTestServer(t *testing.T, pubsJSON string) *Server {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "publications.json")
	if pubsJSON != "" {
		if err := os.WriteFile(path, []byte(pubsJSON), 0644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New("Jane Doe", path, logger)
}

func get(t *testing.T, h http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHome_ShowsSelected(t *testing.T) {
	h := newTestServer(t, testPubs).Handler()

	w := get(t, h, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("GET / status = %d", w.Code)
	}
	body := w.Body.String()

	if !strings.Contains(body, "Newest Work") {
		t.Error("home page missing selected publication")
	}
	if strings.Contains(body, "Older Work") {
		t.Error("home page shows unselected publication")
	}
	if !strings.Contains(body, "Jane Doe") {
		t.Error("home page missing site title")
	}
}

func TestPublications_ShowsAllSortedByYear(t *testing.T) {
	h := newTestServer(t, testPubs).Handler()

	body := get(t, h, "/publications").Body.String()

	newest := strings.Index(body, "Newest Work")
	middle := strings.Index(body, "Middle Work")
	older := strings.Index(body, "Older Work")
	if newest < 0 || middle < 0 || older < 0 {
		t.Fatal("publications page missing entries")
	}
	if !(newest < middle && middle < older) {
		t.Errorf("publications not ordered by year: positions %d %d %d", newest, middle, older)
	}
}

func TestHome_MissingFileRendersEmpty(t *testing.T) {
	h := newTestServer(t, "").Handler()

	w := get(t, h, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("GET / status = %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "pub-card") {
		t.Error("expected zero cards for missing publications file")
	}
}

func TestHome_NonArrayPayloadRendersEmpty(t *testing.T) {
	h := newTestServer(t, `{"oops": true}`).Handler()

	w := get(t, h, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("GET / status = %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "pub-card") {
		t.Error("expected zero cards for non-array payload")
	}
}

func TestThemeCookie_AppliesLightClass(t *testing.T) {
	h := newTestServer(t, testPubs).Handler()

	dark := get(t, h, "/").Body.String()
	if strings.Contains(dark, `<html lang="en" class="light">`) {
		t.Error("default theme should not set light class")
	}

	light := get(t, h, "/", &http.Cookie{Name: "theme", Value: "light"}).Body.String()
	if !strings.Contains(light, `<html lang="en" class="light">`) {
		t.Error("light cookie should set light class on html element")
	}
}

func TestThemeToggle_SetsCookieAndRedirects(t *testing.T) {
	h := newTestServer(t, testPubs).Handler()

	req := httptest.NewRequest(http.MethodPost, "/theme/toggle", nil)
	req.Header.Set("Referer", "/publications")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("POST /theme/toggle status = %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/publications" {
		t.Errorf("redirect location = %q, want /publications", loc)
	}

	var themeCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "theme" {
			themeCookie = c
		}
	}
	if themeCookie == nil {
		t.Fatal("toggle did not set theme cookie")
	}
	if themeCookie.Value != "light" {
		t.Errorf("cookie value = %q, want light (dark default toggles to light)", themeCookie.Value)
	}
}

func TestThemeToggle_FlipsBack(t *testing.T) {
	h := newTestServer(t, testPubs).Handler()

	req := httptest.NewRequest(http.MethodPost, "/theme/toggle", nil)
	req.AddCookie(&http.Cookie{Name: "theme", Value: "light"})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var themeCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "theme" {
			themeCookie = c
		}
	}
	if themeCookie == nil {
		t.Fatal("toggle did not set theme cookie")
	}
	if themeCookie.Value != "dark" {
		t.Errorf("cookie value = %q, want dark", themeCookie.Value)
	}
}

func TestPublicationsJSON(t *testing.T) {
	h := newTestServer(t, testPubs).Handler()

	w := get(t, h, "/assets/publications.json")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /assets/publications.json status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), "Newest Work") {
		t.Error("JSON payload missing publication data")
	}
}

func TestPublicationsJSON_Missing(t *testing.T) {
	h := newTestServer(t, "").Handler()
	if w := get(t, h, "/assets/publications.json"); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t, testPubs).Handler()
	w := get(t, h, "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /healthz status = %d", w.Code)
	}
	if w.Body.String() != "ok\n" {
		t.Errorf("body = %q, want ok", w.Body.String())
	}
}

func TestMetrics_CountsRenders(t *testing.T) {
	h := newTestServer(t, testPubs).Handler()

	get(t, h, "/")
	get(t, h, "/publications")

	body := get(t, h, "/metrics").Body.String()
	if !strings.Contains(body, `scholarsite_page_renders_total{page="home"} 1`) {
		t.Errorf("metrics missing home render count:\n%s", body)
	}
	if !strings.Contains(body, `scholarsite_page_renders_total{page="publications"} 1`) {
		t.Error("metrics missing publications render count")
	}
}
