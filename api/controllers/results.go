package controllers

import (
	"context"
	"github.com/gin-gonic/gin"
	"github.com/mrcliffo/nfl-market-pulse/api/models"
	"github.com/mrcliffo/nfl-market-pulse/logging"
	"github.com/mrcliffo/nfl-market-pulse/voting"
	"net/http"
)

type ResultsReader interface {
	MarketResults(ctx context.Context, marketID string) voting.Results
	WindowResults(ctx context.Context, marketID, token string) (voting.Results, voting.Results)
	AllResults(ctx context.Context) (*voting.Summary, error)
	Export(ctx context.Context) (*voting.Export, error)
}

type ResultsController struct {
	reporter ResultsReader
}

func NewResultsController(reporter ResultsReader) *ResultsController {
	return &ResultsController{
		reporter: reporter,
	}
}

func (c *ResultsController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api")

	group.GET("/results", c.getAllResults)
	group.GET("/results/:marketId", c.getMarketResults)
	group.GET("/results/:marketId/window/:token", c.getWindowResults)
	group.GET("/export", c.export)
}

// getMarketResults godoc
// @Summary Get market results
// @Description All-time results for one market. Unknown markets report zero votes.
// @Tags results
// @Produce json
// @Param marketId path string true "Market ID"
// @Success 200 {object} models.MarketResultsResponse
// @Router /api/results/{marketId} [get]
func (c *ResultsController) getMarketResults(g *gin.Context) {
	marketID := g.Param("marketId")
	results := c.reporter.MarketResults(g.Request.Context(), marketID)

	g.JSON(http.StatusOK, &models.MarketResultsResponse{
		MarketID: marketID,
		Results:  models.TransformResults(results),
	})
}

// getWindowResults godoc
// @Summary Get window results
// @Description Results for one voting window next to the market's all-time results
// @Tags results
// @Produce json
// @Param marketId path string true "Market ID"
// @Param token path string true "Window token"
// @Success 200 {object} models.WindowResultsResponse
// @Router /api/results/{marketId}/window/{token} [get]
func (c *ResultsController) getWindowResults(g *gin.Context) {
	marketID := g.Param("marketId")
	token := g.Param("token")
	window, allTime := c.reporter.WindowResults(g.Request.Context(), marketID, token)

	g.JSON(http.StatusOK, &models.WindowResultsResponse{
		MarketID: marketID,
		Token:    token,
		Window:   models.TransformResults(window),
		AllTime:  models.TransformResults(allTime),
	})
}

// getAllResults godoc
// @Summary Get all results
// @Description Results for every market with at least one vote
// @Tags results
// @Produce json
// @Success 200 {object} models.AllResultsResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/results [get]
func (c *ResultsController) getAllResults(g *gin.Context) {
	summary, err := c.reporter.AllResults(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("RESULTS: failed to load all results: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "Failed to fetch results"})
		return
	}

	g.JSON(http.StatusOK, models.TransformSummary(summary))
}

// export godoc
// @Summary Export votes
// @Description Every recorded vote plus market and window aggregates. Not paginated.
// @Tags results
// @Produce json
// @Success 200 {object} models.ExportResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/export [get]
func (c *ResultsController) export(g *gin.Context) {
	export, err := c.reporter.Export(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("EXPORT: failed to export votes: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "Failed to export data"})
		return
	}

	g.JSON(http.StatusOK, models.TransformExport(export))
}
