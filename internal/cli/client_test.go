package cli

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testBackendClient(srv *httptest.Server) *backendClient {
	return &backendClient{
		baseURL:    srv.URL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestBackendClient_DecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"query":"q","result":"the answer"}`))
	}))
	defer srv.Close()

	var resp struct {
		Result string `json:"result"`
	}
	if err := testBackendClient(srv).post("/qa", map[string]string{"query": "q"}, &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Result != "the answer" {
		t.Errorf("result = %q", resp.Result)
	}
}

func TestBackendClient_StatusMessages(t *testing.T) {
	cases := []struct {
		status int
		want   string
	}{
		{http.StatusServiceUnavailable, "pensum refresh"},
		{http.StatusPaymentRequired, "quota"},
		{http.StatusUnauthorized, "OPENAI_API_KEY"},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"detail","code":"X"}`, tc.status)
		}))

		err := testBackendClient(srv).get("/health", nil)
		srv.Close()

		if err == nil {
			t.Fatalf("status %d: expected error", tc.status)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("status %d: error %q does not mention %q", tc.status, err, tc.want)
		}
	}
}

func TestBackendClient_ErrorBodyIsSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Query must not be empty.","code":"INVALID_REQUEST"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	err := testBackendClient(srv).post("/qa", map[string]string{"query": ""}, nil)
	if err == nil || !strings.Contains(err.Error(), "Query must not be empty.") {
		t.Errorf("error = %v, want backend message", err)
	}
}

func TestBackendClient_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	err := testBackendClient(srv).get("/health", nil)
	if err == nil || !strings.Contains(err.Error(), "pensum serve") {
		t.Errorf("error = %v, want connection hint", err)
	}
}
