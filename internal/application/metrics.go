package application

import "expvar"

// Counters published on /api/debug/vars.
var (
	suggestionStats = expvar.NewMap("suggestions")
	authStats       = expvar.NewMap("auth")
)
