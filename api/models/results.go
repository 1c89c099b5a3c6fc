package models

import (
	"time"

	"github.com/mrcliffo/nfl-market-pulse/storage"
	"github.com/mrcliffo/nfl-market-pulse/voting"
)

type ResultsPayload struct {
	Yes        int64 `json:"yes"`
	No         int64 `json:"no"`
	Total      int64 `json:"total"`
	YesPercent int64 `json:"yesPercent"`
	NoPercent  int64 `json:"noPercent"`
}

type MarketResultsResponse struct {
	MarketID string         `json:"marketId"`
	Results  ResultsPayload `json:"results"`
}

type WindowResultsResponse struct {
	MarketID string         `json:"marketId"`
	Token    string         `json:"token"`
	Window   ResultsPayload `json:"window"`
	AllTime  ResultsPayload `json:"allTime"`
}

type AllResultsResponse struct {
	Results        map[string]ResultsPayload `json:"results"`
	TotalVotes     int64                     `json:"totalVotes"`
	MarketsTracked int                       `json:"marketsTracked"`
	LastUpdated    *time.Time                `json:"lastUpdated"`
}

type ExportedVote struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	MarketID  string    `json:"marketId"`
	Vote      string    `json:"vote"`
	Timestamp time.Time `json:"timestamp"`
}

type ExportResponse struct {
	ExportedAt       time.Time                 `json:"exportedAt"`
	TotalVotes       int64                     `json:"totalVotes"`
	Votes            []ExportedVote            `json:"votes"`
	Aggregates       map[string]ResultsPayload `json:"aggregates"`
	WindowAggregates map[string]ResultsPayload `json:"windowAggregates"`
}

type HealthResponse struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	TotalVotes     int64     `json:"totalVotes"`
	MarketsTracked int       `json:"marketsTracked"`
	Storage        string    `json:"storage"`
}

func TransformResults(r voting.Results) ResultsPayload {
	return ResultsPayload{
		Yes:        r.Yes,
		No:         r.No,
		Total:      r.Total,
		YesPercent: r.YesPercent,
		NoPercent:  r.NoPercent,
	}
}

func transformResultsMap(in map[string]voting.Results) map[string]ResultsPayload {
	out := make(map[string]ResultsPayload, len(in))
	for k, v := range in {
		out[k] = TransformResults(v)
	}
	return out
}

func TransformSummary(s *voting.Summary) *AllResultsResponse {
	return &AllResultsResponse{
		Results:        transformResultsMap(s.Results),
		TotalVotes:     s.TotalVotes,
		MarketsTracked: s.MarketsTracked,
		LastUpdated:    s.LastUpdated,
	}
}

func TransformVote(v *storage.Vote) ExportedVote {
	return ExportedVote{
		ID:        v.ID,
		Token:     v.Token,
		MarketID:  v.MarketID,
		Vote:      string(v.Choice),
		Timestamp: v.CreatedAt,
	}
}

func TransformExport(e *voting.Export) *ExportResponse {
	votes := make([]ExportedVote, 0, len(e.Votes))
	for _, v := range e.Votes {
		votes = append(votes, TransformVote(v))
	}
	return &ExportResponse{
		ExportedAt:       e.ExportedAt,
		TotalVotes:       e.TotalVotes,
		Votes:            votes,
		Aggregates:       transformResultsMap(e.Aggregates),
		WindowAggregates: transformResultsMap(e.WindowAggregates),
	}
}

func TransformHealth(h voting.Health) *HealthResponse {
	return &HealthResponse{
		Status:         h.Status,
		Timestamp:      h.Timestamp,
		TotalVotes:     h.TotalVotes,
		MarketsTracked: h.MarketsTracked,
		Storage:        h.Storage,
	}
}
