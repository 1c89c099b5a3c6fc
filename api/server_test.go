package api

import (
	"context"
	"encoding/json"
	"github.com/gin-gonic/gin"
	testutils "github.com/mrcliffo/nfl-market-pulse/api/controllers/testing"
	"github.com/mrcliffo/nfl-market-pulse/api/models"
	"github.com/mrcliffo/nfl-market-pulse/logging"
	"github.com/mrcliffo/nfl-market-pulse/markets"
	"github.com/mrcliffo/nfl-market-pulse/metrics"
	"github.com/mrcliffo/nfl-market-pulse/storage"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

func setupTestServer(t *testing.T, conf StorageConfig) *gin.Engine {
	t.Helper()
	logging.Log = logrus.New()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/events":
			_, _ = w.Write([]byte(`[{"id":"9","title":"Super Bowl LX","slug":"sb-lx"}]`))
		case "/events/slug/sb-lx":
			_, _ = w.Write([]byte(`{"id":"9","title":"Super Bowl LX","slug":"sb-lx","markets":[{"id":"M","active":true,"closed":false}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(upstream.Close)

	backend, err := OpenBackend(context.Background(), conf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	m := metrics.New("test")
	client := markets.NewClient(upstream.URL, upstream.URL, markets.WithMetrics(m))
	return BuildRouter(gin.TestMode, backend, client, m)
}

func TestServerEndToEnd(t *testing.T) {
	backends := map[string]StorageConfig{
		"memory": {Backend: BackendMemory},
		"sqlite": {Backend: BackendSQLite, SQLitePath: filepath.Join(t.TempDir(), "votes.db")},
	}

	for name, conf := range backends {
		t.Run(name, func(t *testing.T) {
			router := setupTestServer(t, conf)

			for _, v := range []models.RegisterVoteRequest{
				{Token: "t1", MarketID: "M", Vote: "yes"},
				{Token: "t1", MarketID: "M", Vote: "yes"},
				{Token: "t2", MarketID: "M", Vote: "yes"},
				{Token: "t2", MarketID: "M", Vote: "no"},
			} {
				w := testutils.PerformRequest(router, http.MethodPost, "/api/vote", v, nil)
				require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
			}

			w := testutils.PerformRequest(router, http.MethodGet, "/api/results/M", nil, nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"marketId":"M","results":{"yes":3,"no":1,"total":4,"yesPercent":75,"noPercent":25}}`, w.Body.String())

			w = testutils.PerformRequest(router, http.MethodGet, "/api/health", nil, nil)
			var health models.HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
			assert.Equal(t, "ok", health.Status)
			assert.Equal(t, name, health.Storage)
			assert.Equal(t, int64(4), health.TotalVotes)

			w = testutils.PerformRequest(router, http.MethodGet, "/api/markets", nil, nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), `"id":"M"`)

			w = testutils.PerformRequest(router, http.MethodGet, "/metrics", nil, nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), `test_votes_recorded_total{choice="yes"} 3`)
			assert.Contains(t, w.Body.String(), `test_upstream_markets_consolidated 1`)

			w = testutils.PerformRequest(router, http.MethodGet, "/nowhere", nil, nil)
			assert.Equal(t, http.StatusNotFound, w.Code)
		})
	}
}

func TestOpenBackend(t *testing.T) {
	logging.Log = logrus.New()

	t.Run("Unknown backend", func(t *testing.T) {
		_, err := OpenBackend(context.Background(), StorageConfig{Backend: "redis"})
		assert.ErrorIs(t, err, storage.ErrUnknownBackend)
	})

	t.Run("Postgres requires a DSN", func(t *testing.T) {
		_, err := OpenBackend(context.Background(), StorageConfig{Backend: BackendPostgres})
		assert.Error(t, err)
	})

	t.Run("Memory backend closes cleanly", func(t *testing.T) {
		b, err := OpenBackend(context.Background(), StorageConfig{})
		assert.NoError(t, err)
		assert.Equal(t, BackendMemory, b.Name)
		assert.NoError(t, b.Close())
	})
}
