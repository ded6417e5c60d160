package verify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DeprecatedLuar/avosig/internal/config"
	"github.com/DeprecatedLuar/avosig/internal/transport"
)

func TestVerify_Headers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %q, want GET", r.Method)
		}

		checks := map[string]string{
			"Content-Type": "application/x-www-form-urlencoded",
			"User-Agent":   "Avocado Test Api Client v.1.0",
			"X-AvoSig":     "7:deadbeef",
			"Cookie":       "user_email=xyz123",
		}
		for name, want := range checks {
			if got := r.Header.Get(name); got != want {
				t.Errorf("%s = %q, want %q", name, got, want)
			}
		}

		w.Write([]byte(`{"id":"couple"}`))
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.CoupleURL = server.URL

	resp, err := New(cfg, transport.NewHTTPClient(server.Client()), nil).Verify(context.Background(), "7:deadbeef", "xyz123")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if resp == nil || resp.StatusCode != http.StatusOK {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestVerify_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad signature", http.StatusUnauthorized)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.CoupleURL = server.URL

	resp, err := New(cfg, transport.NewHTTPClient(nil), nil).Verify(context.Background(), "1:x", "c")
	if err == nil {
		t.Fatal("expected error")
	}
	if resp != nil {
		t.Errorf("response should be nil on failure, got %+v", resp)
	}
}
