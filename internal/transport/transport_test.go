package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPClient_Do_Post(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		if got := r.Header.Get("User-Agent"); got != "ua/1" {
			t.Errorf("User-Agent = %q, want %q", got, "ua/1")
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "a=1" {
			t.Errorf("body = %q, want %q", body, "a=1")
		}

		http.SetCookie(w, &http.Cookie{Name: "session", Value: "s1"})
		http.SetCookie(w, &http.Cookie{Name: "user_email", Value: "v1", Path: "/"})
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	header := http.Header{}
	header.Set("User-Agent", "ua/1")

	resp, err := NewHTTPClient(nil).Do(context.Background(), &Request{
		Method: http.MethodPost,
		URL:    server.URL,
		Header: header,
		Body:   "a=1",
	})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if string(resp.Body) != "ok" {
		t.Errorf("body = %q", resp.Body)
	}
	if v, ok := resp.Cookie("user_email"); !ok || v != "v1" {
		t.Errorf("Cookie(user_email) = %q, %v", v, ok)
	}
	if _, ok := resp.Cookie("missing"); ok {
		t.Error("Cookie(missing) should not be found")
	}
}

func TestHTTPClient_Do_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("bad credentials"))
	}))
	defer server.Close()

	_, err := NewHTTPClient(nil).Do(context.Background(), &Request{Method: http.MethodGet, URL: server.URL})
	if err == nil {
		t.Fatal("expected error for 401")
	}

	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if terr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d", terr.StatusCode)
	}
	if terr.Detail() != "bad credentials" {
		t.Errorf("Detail() = %q", terr.Detail())
	}
}

func TestHTTPClient_Do_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewHTTPClient(nil).Do(context.Background(), &Request{Method: http.MethodGet, URL: url})

	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("expected *Error, got %T (%v)", err, err)
	}
	if terr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0", terr.StatusCode)
	}
	if terr.Detail() != terr.Error() {
		t.Errorf("Detail() without body should fall back to Error()")
	}
}
