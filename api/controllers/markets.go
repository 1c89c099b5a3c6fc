package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/mrcliffo/nfl-market-pulse/api/models"
	"github.com/mrcliffo/nfl-market-pulse/logging"
	"github.com/mrcliffo/nfl-market-pulse/markets"
	"net/http"
)

type MarketSource interface {
	ActiveMarkets(ctx context.Context) ([]markets.Market, error)
	FetchPriceHistory(ctx context.Context, tokenID, interval, fidelity string) (json.RawMessage, error)
}

type MarketsController struct {
	source MarketSource
}

func NewMarketsController(source MarketSource) *MarketsController {
	return &MarketsController{
		source: source,
	}
}

func (c *MarketsController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api")

	group.GET("/markets", c.getMarkets)
	group.GET("/prices/:tokenId", c.getPriceHistory)
}

// getMarkets godoc
// @Summary List NFL markets
// @Description Active, open Polymarket markets from NFL-related events, one entry per market
// @Tags markets
// @Produce json
// @Success 200 {array} object
// @Failure 502 {object} models.UpstreamErrorResponse "Polymarket unavailable"
// @Router /api/markets [get]
func (c *MarketsController) getMarkets(g *gin.Context) {
	result, err := c.source.ActiveMarkets(g.Request.Context())
	if err != nil {
		respondUpstreamError(g, "Failed to fetch from Polymarket", err)
		return
	}

	g.JSON(http.StatusOK, result)
}

// getPriceHistory godoc
// @Summary Price history
// @Description Passes through the Polymarket price history for one outcome token
// @Tags markets
// @Produce json
// @Param tokenId path string true "CLOB token ID"
// @Param interval query string false "History interval" default(1w)
// @Param fidelity query string false "Resolution in minutes" default(60)
// @Success 200 {object} object
// @Failure 502 {object} models.UpstreamErrorResponse "Polymarket unavailable"
// @Router /api/prices/{tokenId} [get]
func (c *MarketsController) getPriceHistory(g *gin.Context) {
	tokenID := g.Param("tokenId")
	payload, err := c.source.FetchPriceHistory(g.Request.Context(), tokenID, g.Query("interval"), g.Query("fidelity"))
	if err != nil {
		respondUpstreamError(g, "Failed to fetch price history", err)
		return
	}

	g.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

func respondUpstreamError(g *gin.Context, summary string, err error) {
	var upstreamErr *markets.UpstreamError
	if errors.As(err, &upstreamErr) {
		logging.Log.Errorf("MARKETS: %s: %v", summary, err)
		g.JSON(http.StatusBadGateway, &models.UpstreamErrorResponse{Error: summary, Message: upstreamErr.Error()})
		return
	}

	logging.Log.Errorf("MARKETS: unexpected failure: %v", err)
	g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "Internal server error"})
}
