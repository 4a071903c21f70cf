package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	charts "github.com/midbel/titledash"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/ratings", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"R": 10, "PG": 4}`))
	})
	mux.HandleFunc("/api/years", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[1999, "2001", 2002.5, "abc", 2019]`))
	})
	mux.HandleFunc("/api/imdb-data/2019", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"title": "Dune", "imdb_score": 8.1}, {"title": "Cats", "imdb_score": NaN}]`))
	})
	mux.HandleFunc("/api/api/data", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"graph1": {"2019": 1}, "graph2": {"R": 2}}`))
	})
	mux.HandleFunc("/api/broken", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"R": `))
	})
	mux.HandleFunc("/api/private", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "admin" || pass != "secret" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		w.Write([]byte(`{}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Aggregate(t *testing.T) {
	srv := newBackend(t)
	c, err := NewClient(srv.URL + "/api/")
	require.NoError(t, err)

	agg, err := c.Aggregate(context.Background(), EndpointRatings)
	require.NoError(t, err)
	list := charts.Shape(agg, charts.FieldCertification)
	require.Len(t, list, 2)
	assert.Equal(t, "R", list[0].Key)
	assert.Equal(t, 10.0, list[0].Count)
}

func TestClient_Failures(t *testing.T) {
	srv := newBackend(t)
	c, err := NewClient(srv.URL + "/api")
	require.NoError(t, err)

	tests := []struct {
		name     string
		endpoint string
	}{
		{name: "not found", endpoint: "/missing"},
		{name: "truncated body", endpoint: "/broken"},
		{name: "forbidden", endpoint: "/private"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Aggregate(context.Background(), tt.endpoint)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrFetch))
		})
	}

	t.Run("unreachable", func(t *testing.T) {
		down := httptest.NewServer(http.NotFoundHandler())
		down.Close()
		c, err := NewClient(down.URL)
		require.NoError(t, err)
		_, err = c.Aggregate(context.Background(), EndpointGenres)
		assert.True(t, errors.Is(err, ErrFetch))
	})
}

func TestClient_BasicAuth(t *testing.T) {
	srv := newBackend(t)
	c, err := NewClient(srv.URL+"/api", WithBasicAuth("admin", "secret"), WithHeader("X-Dashboard", "titledash"))
	require.NoError(t, err)
	_, err = c.Aggregate(context.Background(), "/private")
	assert.NoError(t, err)
}

func TestClient_Years(t *testing.T) {
	srv := newBackend(t)
	c, err := NewClient(srv.URL + "/api")
	require.NoError(t, err)

	years, err := c.Years(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1999, 2001, 2019}, years)
}

func TestClient_Scores(t *testing.T) {
	srv := newBackend(t)
	c, err := NewClient(srv.URL + "/api")
	require.NoError(t, err)

	agg, err := c.Scores(context.Background(), 2019)
	require.NoError(t, err)
	list := charts.Shape(agg, charts.FieldTitle)
	require.Len(t, list, 1)
	assert.Equal(t, "Dune", list[0].Key)
	assert.Equal(t, 8.1, list[0].Count)
}

func TestClient_Combined(t *testing.T) {
	srv := newBackend(t)
	c, err := NewClient(srv.URL + "/api")
	require.NoError(t, err)

	list, err := c.Combined(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "graph2", list[1].Name)
}

func TestClient_Cancel(t *testing.T) {
	srv := newBackend(t)
	c, err := NewClient(srv.URL+"/api", WithRate(0.001, 1))
	require.NoError(t, err)

	_, err = c.Aggregate(context.Background(), EndpointRatings)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = c.Aggregate(ctx, EndpointRatings)
	assert.True(t, errors.Is(err, ErrFetch))
}

func TestNewClient(t *testing.T) {
	_, err := NewClient("ftp://example.org")
	assert.Error(t, err)
	_, err = NewClient("://")
	assert.Error(t, err)
}
