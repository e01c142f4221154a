package robots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func robotsServer(t *testing.T, policy string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.Write([]byte(policy))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
}

func TestAllowed(t *testing.T) {
	server := robotsServer(t, `
User-agent: *
Disallow: /private/
Allow: /private/open/
`)
	defer server.Close()

	c := New(server.Client(), "facultyharvest/1.0", zap.NewNop())

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"allowed path", "/people/", true},
		{"disallowed path", "/private/records", false},
		{"more specific allow wins", "/private/open/page", true},
		{"origin root", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Allowed(context.Background(), server.URL+tt.path))
		})
	}
}

func TestAllowedAgentSpecificGroup(t *testing.T) {
	server := robotsServer(t, `
User-agent: facultyharvest
Disallow: /

User-agent: *
Disallow:
`)
	defer server.Close()

	denied := New(server.Client(), "facultyharvest/1.0", zap.NewNop())
	assert.False(t, denied.Allowed(context.Background(), server.URL+"/people/"))

	other := New(server.Client(), "somebot/2.0", zap.NewNop())
	assert.True(t, other.Allowed(context.Background(), server.URL+"/people/"))
}

func TestAllowedMissingRobots(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := New(server.Client(), "facultyharvest/1.0", zap.NewNop())
	assert.True(t, c.Allowed(context.Background(), server.URL+"/people/"))
}

func TestAllowedTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	c := New(http.DefaultClient, "facultyharvest/1.0", zap.NewNop())
	assert.False(t, c.Allowed(context.Background(), addr+"/people/"))
}

func TestAllowedInvalidURL(t *testing.T) {
	c := New(http.DefaultClient, "facultyharvest/1.0", zap.NewNop())

	assert.False(t, c.Allowed(context.Background(), "not-an-absolute-url"))
	assert.False(t, c.Allowed(context.Background(), "/people/relative"))
}
