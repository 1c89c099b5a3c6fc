package models

import (
	"github.com/mrcliffo/nfl-market-pulse/voting"
)

type RegisterVoteRequest struct {
	Token    string `json:"token"`
	MarketID string `json:"marketId"`
	Vote     string `json:"vote" enums:"yes,no"`
}

type RegisterVoteResponse struct {
	Success bool           `json:"success"`
	VoteID  string         `json:"voteId"`
	Results ResultsPayload `json:"results"`
}

// VoteErrorResponse keeps the success flag so clients can branch on one field.
type VoteErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func TransformReceiptToResponse(r *voting.Receipt) *RegisterVoteResponse {
	return &RegisterVoteResponse{
		Success: true,
		VoteID:  r.VoteID,
		Results: TransformResults(r.Results),
	}
}
