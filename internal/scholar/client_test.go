package scholar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()),
	)
}

func TestAuthorPapers_SinglePage(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/author/12345/papers" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("fields"); got != PaperFields {
			t.Errorf("fields = %q, want %q", got, PaperFields)
		}
		fmt.Fprint(w, `{"offset":0,"data":[
			{"paperId":"p1","title":"Paper One","venue":"Nature","year":2021,"authors":[{"name":"A Smith"}]},
			{"paperId":"p2","title":"Paper Two","year":2019}
		]}`)
	})

	papers, err := c.AuthorPapers(context.Background(), "12345")
	if err != nil {
		t.Fatalf("AuthorPapers() error = %v", err)
	}
	if len(papers) != 2 {
		t.Fatalf("AuthorPapers() returned %d papers, want 2", len(papers))
	}
	if papers[0].Title != "Paper One" || papers[0].Venue != "Nature" {
		t.Errorf("papers[0] = %+v", papers[0])
	}
	if len(papers[0].Authors) != 1 || papers[0].Authors[0].Name != "A Smith" {
		t.Errorf("papers[0].Authors = %+v", papers[0].Authors)
	}
}

func TestAuthorPapers_Paginates(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("offset") {
		case "0":
			fmt.Fprint(w, `{"offset":0,"next":1,"data":[{"paperId":"p1","title":"First","year":2020}]}`)
		case "1":
			fmt.Fprint(w, `{"offset":1,"data":[{"paperId":"p2","title":"Second","year":2019}]}`)
		default:
			t.Errorf("unexpected offset %q", r.URL.Query().Get("offset"))
		}
	})

	papers, err := c.AuthorPapers(context.Background(), "a")
	if err != nil {
		t.Fatalf("AuthorPapers() error = %v", err)
	}
	if len(papers) != 2 {
		t.Fatalf("AuthorPapers() returned %d papers, want 2", len(papers))
	}
	if papers[0].Title != "First" || papers[1].Title != "Second" {
		t.Errorf("paper order = %q, %q", papers[0].Title, papers[1].Title)
	}
}

func TestAuthorPapers_EmptyAuthorID(t *testing.T) {
	c := NewClient()
	if _, err := c.AuthorPapers(context.Background(), ""); err == nil {
		t.Error("AuthorPapers(\"\") expected error")
	}
}

func TestAuthorPapers_NotFound(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.AuthorPapers(context.Background(), "missing")
	if !IsNotFound(err) {
		t.Errorf("AuthorPapers() error = %v, want not-found", err)
	}
}

func TestAuthorPapers_AuthError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := c.AuthorPapers(context.Background(), "a")
	if !IsAuthError(err) {
		t.Errorf("AuthorPapers() error = %v, want auth error", err)
	}
}

func TestAuthorPapers_RateLimited(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.AuthorPapers(context.Background(), "a")
	if !IsRateLimited(err) {
		t.Errorf("AuthorPapers() error = %v, want rate-limited", err)
	}
}

func TestAuthorPapers_ServerError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.AuthorPapers(context.Background(), "a")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("AuthorPapers() error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != 500 {
		t.Errorf("StatusCode = %d, want 500", apiErr.StatusCode)
	}
}

func TestAuthorPapers_InvalidJSON(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	})

	_, err := c.AuthorPapers(context.Background(), "a")
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("AuthorPapers() error = %v, want ErrInvalidResponse", err)
	}
}

func TestAuthorPapers_SendsAPIKey(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		fmt.Fprint(w, `{"offset":0,"data":[]}`)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()), WithAPIKey("secret"))
	if _, err := c.AuthorPapers(context.Background(), "a"); err != nil {
		t.Fatalf("AuthorPapers() error = %v", err)
	}
	if gotKey != "secret" {
		t.Errorf("x-api-key = %q, want secret", gotKey)
	}
}
