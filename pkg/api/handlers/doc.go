// Package handlers implements the governor's HTTP API.
//
// The surface is POST /estimate,
// /check, /track, /reset and GET /stats, /history, /alerts, /pricing,
// /health, with snake_case JSON field names throughout. Denials are 200
// responses carrying allowed=false; only invalid input produces 4xx.
package handlers
