package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain operations
var (
	ErrSessionNotFound    = goerr.New("dashboard session not found")
	ErrBackendStatus      = goerr.New("stats backend returned an error status")
	ErrBackendUnreachable = goerr.New("stats backend is unreachable")
	ErrMalformedPayload   = goerr.New("malformed stats payload")
	ErrInvalidFilter      = goerr.New("invalid filter")
	ErrInvalidView        = goerr.New("invalid view type")
	ErrPanelNotFound      = goerr.New("panel not found")
	ErrNoImage            = goerr.New("chart has no rendered image")
)
