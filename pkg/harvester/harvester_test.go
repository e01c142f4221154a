package harvester

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/amosWeiskopf/facultyharvest/internal/config"
	"github.com/amosWeiskopf/facultyharvest/internal/models"
	"github.com/amosWeiskopf/facultyharvest/pkg/fetcher"
)

func directoryServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/people/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		switch r.URL.Path {
		case "/people/":
			w.Write([]byte(`
				<html><body>
				<a href="/people/">People Directory</a>
				<a href="/people/jsmith">Jane Smith</a>
				<a href="/people/noname">Mystery Page</a>
				<a href="/people/gone">Missing Page</a>
				<a href="/people/mdavis">Mary Davis</a>
				</body></html>
			`))
		case "/people/jsmith":
			w.Write([]byte(`
				<html><body>
				<h1>Smith, Jane</h1>
				<p>Email: jsmith@example.edu,</p>
				<p><strong>Phone</strong> (408) 924-1000</p>
				<h2>Education</h2>
				<p>Ph.D., Stanford, 2005</p>
				</body></html>
			`))
		case "/people/noname":
			w.Write([]byte(`<html><body><p>Nothing to see here.</p></body></html>`))
		case "/people/mdavis":
			w.Write([]byte(`<html><body><h1>Mary Ann Davis</h1></body></html>`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	return httptest.NewServer(mux)
}

func testConfig(server *httptest.Server) config.HarvestConfig {
	return config.HarvestConfig{
		IndexURL:      server.URL + "/people/",
		BaseURL:       server.URL + "/",
		LinkPattern:   "/people/",
		SkipFirstLink: true,
	}
}

func TestHarvest(t *testing.T) {
	server := directoryServer(t)
	defer server.Close()

	out := filepath.Join(t.TempDir(), "faculty.csv")
	f := fetcher.New("test-agent", 5*time.Second, zap.NewNop())
	h := New(testConfig(server), f, zap.NewNop())

	rows, err := h.Harvest(context.Background(), out)
	require.NoError(t, err)
	assert.Equal(t, 2, rows)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, models.CSVHeader, lines[0])
	assert.Equal(t, "Smith,Jane,jsmith@example.edu,(408) 924-1000,Ph.D.- Stanford- 2005", lines[1])
	assert.Equal(t, "Davis,Mary,,,", lines[2])
}

func TestHarvestSkipsFirstLink(t *testing.T) {
	// The first collected link is the directory itself; with four person
	// links total, at most three rows can come out, minus pages that
	// fail or lack a name.
	server := directoryServer(t)
	defer server.Close()

	out := filepath.Join(t.TempDir(), "faculty.csv")
	f := fetcher.New("test-agent", 5*time.Second, zap.NewNop())
	h := New(testConfig(server), f, zap.NewNop())

	rows, err := h.Harvest(context.Background(), out)
	require.NoError(t, err)
	assert.LessOrEqual(t, rows, 4)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "People Directory")
}

func TestHarvestEmptyIndex(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body><p>No links here.</p></body></html>`))
	}))
	defer server.Close()

	out := filepath.Join(t.TempDir(), "faculty.csv")
	f := fetcher.New("test-agent", 5*time.Second, zap.NewNop())
	h := New(testConfig(server), f, zap.NewNop())

	rows, err := h.Harvest(context.Background(), out)
	require.NoError(t, err)
	assert.Equal(t, 0, rows)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, models.CSVHeader+"\n", string(data))
}

func TestHarvestUnwritableOutput(t *testing.T) {
	server := directoryServer(t)
	defer server.Close()

	f := fetcher.New("test-agent", 5*time.Second, zap.NewNop())
	h := New(testConfig(server), f, zap.NewNop())

	_, err := h.Harvest(context.Background(), filepath.Join(t.TempDir(), "missing", "faculty.csv"))
	assert.Error(t, err)
}
