// Package config provides configuration loading, defaults, and validation
// for the governor service.
//
// Configuration is read from a YAML file, filled in with defaults, and
// optionally overridden by GOVERNOR_* environment variables. Validation
// collects every problem into a single ValidationError so operators see
// the full list at once rather than fixing one field per restart.
//
// Budget caps of zero are deliberately valid: a zero cap denies every
// positive-cost call at that tier.
package config
