package models

type ErrorResponse struct {
	Error string `json:"error"`
}

// UpstreamErrorResponse is returned when Polymarket cannot be reached.
type UpstreamErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
