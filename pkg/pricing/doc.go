// Package pricing loads and serves the static model pricing table.
//
// The table maps model identifiers to per-million-token input and output
// prices, loaded once from a YAML file at startup. A "default" entry is
// mandatory and serves as the fallback for unknown models, so lookups can
// never fail. The table supports hot reload through a file watcher; a
// reload that would remove the default entry is rejected and the previous
// table stays in effect.
package pricing
