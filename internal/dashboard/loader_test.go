package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func newTestLoader() *Loader {
	return NewLoader(5*time.Second, arbor.NewLogger())
}

func Test_Loader_HTTPSuccess(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"last_updated":"2026-03-15T09:30:00Z","aggregates":{"total":2},"issues":[{"key":"PROJ-1"},{"key":"PROJ-2"}]}`))
	}))
	defer srv.Close()

	snapshot := newTestLoader().Load(context.Background(), srv.URL)
	require.NotNil(t, snapshot)
	assert.Equal(t, 2, snapshot.Aggregates.Total)
	assert.Len(t, snapshot.Issues, 2)
	assert.Equal(t, "2026-03-15T09:30:00Z", snapshot.LastUpdated)
}

func Test_Loader_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	assert.Nil(t, newTestLoader().Load(context.Background(), srv.URL))
}

func Test_Loader_MalformedBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"issues": [`))
	}))
	defer srv.Close()

	assert.Nil(t, newTestLoader().Load(context.Background(), srv.URL))
}

func Test_Loader_TransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	assert.Nil(t, newTestLoader().Load(context.Background(), srv.URL))
}

func Test_Loader_FilePath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "issues.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"aggregates":{"total":1},"issues":[{"key":"PROJ-1"}]}`), 0644))

	snapshot := newTestLoader().Load(context.Background(), path)
	require.NotNil(t, snapshot)
	assert.Equal(t, 1, snapshot.Aggregates.Total)
}

func Test_Loader_MissingFile(t *testing.T) {
	t.Parallel()

	assert.Nil(t, newTestLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.json")))
}
