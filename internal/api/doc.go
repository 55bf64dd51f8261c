// Package api implements the HTTP surface of sensordonut.
//
// New(opts) returns a chi router that serves:
//
//	GET  /healthz                    liveness; never authenticated
//	GET  /, /card                    the card as an HTML page (live-reloads over /ws)
//	GET  /ws                         WebSocket card feed (package ws)
//	GET  /api/v1/card                render model as JSON, including card_size
//	GET  /api/v1/card.svg            render model as a standalone SVG
//	GET  /api/v1/card/diagnostics    per-donut hints (missing, stale, non-numeric, range)
//	GET  /api/v1/states              all live entity values
//	GET  /api/v1/states/{entity}     one entity; 404 if unknown or stale
//	POST /api/v1/states              push states (package receiver)
//	GET  /api/v1/cards               registered card types
//
// /api/v1 routes run behind the API-key middleware from package auth. Card
// endpoints answer 503 until a card definition has been loaded. Errors are
// JSON {"error": "..."}; a wrong method answers 405.
//
// JSON types are defined in types.go.
package api
