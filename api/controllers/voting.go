package controllers

import (
	"context"
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/mrcliffo/nfl-market-pulse/api/models"
	"github.com/mrcliffo/nfl-market-pulse/logging"
	"github.com/mrcliffo/nfl-market-pulse/voting"
	"io"
	"net/http"
)

type VoteSubmitter interface {
	SubmitVote(ctx context.Context, token, marketID, choice string) (*voting.Receipt, error)
}

type VotingController struct {
	aggregator VoteSubmitter
}

func NewVotingController(aggregator VoteSubmitter) *VotingController {
	return &VotingController{
		aggregator: aggregator,
	}
}

func (c *VotingController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api")

	group.POST("/vote", c.registerVote)
}

// registerVote godoc
// @Summary Register a vote
// @Description Records a yes/no vote on a market and returns the market's updated results
// @Tags voting
// @Accept json
// @Produce json
// @Param vote body models.RegisterVoteRequest true "Vote submission"
// @Success 201 {object} models.RegisterVoteResponse
// @Failure 400 {object} models.VoteErrorResponse "Missing or invalid fields"
// @Failure 500 {object} models.VoteErrorResponse "Vote could not be stored"
// @Router /api/vote [post]
func (c *VotingController) registerVote(g *gin.Context) {
	var req models.RegisterVoteRequest
	// An empty body is a request with every field missing.
	if err := g.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		g.JSON(http.StatusBadRequest, &models.VoteErrorResponse{Success: false, Error: "invalid request format"})
		return
	}

	receipt, err := c.aggregator.SubmitVote(g.Request.Context(), req.Token, req.MarketID, req.Vote)
	if err != nil {
		var validationErr *voting.ValidationError
		var storeErr *voting.StoreError
		switch {
		case errors.As(err, &validationErr):
			g.JSON(http.StatusBadRequest, &models.VoteErrorResponse{Success: false, Error: validationErr.Error()})
		case errors.As(err, &storeErr):
			g.JSON(http.StatusInternalServerError, &models.VoteErrorResponse{Success: false, Error: storeErr.Error()})
		default:
			logging.Log.Errorf("VOTE: unexpected failure: %v", err)
			g.JSON(http.StatusInternalServerError, &models.VoteErrorResponse{Success: false, Error: "Internal server error"})
		}
		return
	}

	g.JSON(http.StatusCreated, models.TransformReceiptToResponse(receipt))
}
