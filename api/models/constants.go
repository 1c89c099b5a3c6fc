package models

// RequestIDAlphabet is used for X-Request-ID values.
var RequestIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDLength = 12
)
