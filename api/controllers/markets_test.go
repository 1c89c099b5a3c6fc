package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/gin-gonic/gin"
	testutils "github.com/mrcliffo/nfl-market-pulse/api/controllers/testing"
	"github.com/mrcliffo/nfl-market-pulse/api/models"
	"github.com/mrcliffo/nfl-market-pulse/logging"
	"github.com/mrcliffo/nfl-market-pulse/markets"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
)

func setupTestMarketsController(t *testing.T, source MarketSource) *gin.Engine {
	t.Helper()
	logging.Log = logrus.New()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewMarketsController(source).RegisterRoutes(r)
	return r
}

func fakePolymarket(t *testing.T, healthy bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		switch r.URL.Path {
		case "/events":
			_, _ = w.Write([]byte(`[{"id":"1","title":"NFL Week 1","slug":"nfl-week-1"},{"id":"2","title":"Elections","slug":"elections"}]`))
		case "/events/slug/nfl-week-1":
			_, _ = w.Write([]byte(`{"id":"1","title":"NFL Week 1","slug":"nfl-week-1","volume":10,"liquidity":5,
				"markets":[{"id":"100","question":"Eagles win?","active":true,"closed":false},{"id":"101","active":false,"closed":false}]}`))
		case "/prices-history":
			_, _ = w.Write([]byte(`{"history":[{"t":1,"p":0.5}],"interval":"` + r.URL.Query().Get("interval") + `"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

type failingSource struct{}

func (failingSource) ActiveMarkets(context.Context) ([]markets.Market, error) {
	return nil, errors.New("unexpected")
}

func (failingSource) FetchPriceHistory(context.Context, string, string, string) (json.RawMessage, error) {
	return nil, errors.New("unexpected")
}

func TestGetMarkets(t *testing.T) {
	t.Run("Happy path - consolidated markets", func(t *testing.T) {
		srv := fakePolymarket(t, true)
		router := setupTestMarketsController(t, markets.NewClient(srv.URL, srv.URL))

		w := testutils.PerformRequest(router, http.MethodGet, "/api/markets", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var res []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.Len(t, res, 1, "Inactive market should be filtered out")
		assert.Equal(t, "100", res[0]["id"])
		assert.Equal(t, "Eagles win?", res[0]["question"])
		events := res[0]["events"].([]any)
		assert.Equal(t, "nfl-week-1", events[0].(map[string]any)["slug"])
	})

	t.Run("Unhappy path - upstream down", func(t *testing.T) {
		srv := fakePolymarket(t, false)
		router := setupTestMarketsController(t, markets.NewClient(srv.URL, srv.URL))

		w := testutils.PerformRequest(router, http.MethodGet, "/api/markets", nil, nil)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		var res models.UpstreamErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "Failed to fetch from Polymarket", res.Error)
		assert.Contains(t, res.Message, "503")
	})

	t.Run("Unhappy path - unexpected error", func(t *testing.T) {
		router := setupTestMarketsController(t, failingSource{})

		w := testutils.PerformRequest(router, http.MethodGet, "/api/markets", nil, nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
	})
}

func TestGetPriceHistory(t *testing.T) {
	t.Run("Happy path - payload passes through", func(t *testing.T) {
		srv := fakePolymarket(t, true)
		router := setupTestMarketsController(t, markets.NewClient(srv.URL, srv.URL))

		w := testutils.PerformRequest(router, http.MethodGet, "/api/prices/123?fidelity=10", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"history":[{"t":1,"p":0.5}],"interval":"1w"}`, w.Body.String())
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	})

	t.Run("Unhappy path - upstream down", func(t *testing.T) {
		srv := fakePolymarket(t, false)
		router := setupTestMarketsController(t, markets.NewClient(srv.URL, srv.URL))

		w := testutils.PerformRequest(router, http.MethodGet, "/api/prices/123", nil, nil)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "Failed to fetch price history")
	})
}
