package controllers

import (
	"context"
	"github.com/gin-gonic/gin"
	"github.com/mrcliffo/nfl-market-pulse/api/models"
	"github.com/mrcliffo/nfl-market-pulse/voting"
	"net/http"
)

type HealthChecker interface {
	Health(ctx context.Context) voting.Health
}

type HealthController struct {
	checker HealthChecker
}

func NewHealthController(checker HealthChecker) *HealthController {
	return &HealthController{checker: checker}
}

func (c *HealthController) RegisterRoutes(engine *gin.Engine) {
	engine.Group("/api").GET("/health", c.health)
}

// health godoc
// @Summary Health check
// @Description Reports "degraded" instead of failing when storage is unreadable
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /api/health [get]
func (c *HealthController) health(g *gin.Context) {
	g.JSON(http.StatusOK, models.TransformHealth(c.checker.Health(g.Request.Context())))
}
