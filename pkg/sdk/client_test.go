package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestUpload(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/upload" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		var in UploadInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if in.Title != "T" {
			t.Errorf("title = %q", in.Title)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"article":{"id":"new-id","title":"T"}}`))
	})

	art, err := c.Upload(context.Background(), UploadInput{Title: "T"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if art.ID != "new-id" {
		t.Errorf("ID = %q", art.ID)
	}
}

func TestSearch(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/search" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "climate summit" {
			t.Errorf("q = %q", got)
		}
		if got := r.URL.Query().Get("size"); got != "5" {
			t.Errorf("size = %q", got)
		}
		_, _ = w.Write([]byte(`{
			"success": true, "total": 1,
			"articles": [{"id":"a","title":"X","score":1.5,"highlights":{"title":"<em>X</em>"}}],
			"pagination": {"from": 0, "size": 5, "has_more": false}
		}`))
	})

	page, err := c.Search(context.Background(), "climate summit", 0, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 1 || len(page.Articles) != 1 {
		t.Fatalf("page = %+v", page)
	}
	if page.Pagination.Size != 5 || page.Pagination.HasMore {
		t.Errorf("pagination = %+v", page.Pagination)
	}
	if page.Articles[0].Score != 1.5 {
		t.Errorf("score = %v", page.Articles[0].Score)
	}
	if page.Articles[0].Highlights["title"] != "<em>X</em>" {
		t.Errorf("highlights = %v", page.Articles[0].Highlights)
	}
}

func TestAPIError(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":"article not found"}`))
	})

	_, err := c.Find(context.Background(), "ghost")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Message != "article not found" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestAuthHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, WithAPIKey("secret"))
	if err := c.Delete(context.Background(), "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}

func TestDeleteBulk(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/delete/bulk" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"success": true,
			"message": "1 deleted, 1 failed",
			"deleted": ["a"],
			"failed": [{"id":"b","error":"article not found"}]
		}`))
	})

	deleted, failed, err := c.DeleteBulk(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(deleted) != 1 || deleted[0] != "a" {
		t.Errorf("deleted = %v", deleted)
	}
	if len(failed) != 1 || failed[0].Error != "article not found" {
		t.Errorf("failed = %+v", failed)
	}
}

func TestInit(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/init" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"success":true,"created":true,"index":"articles"}`))
	})

	created, err := c.Init(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("created = false")
	}
}
