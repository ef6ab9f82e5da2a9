// Package middleware provides HTTP middleware for the governor API.
//
// The standard chain is recovery, request ID, logging, CORS, then
// timeout, applied outermost first so panics anywhere in the stack are
// caught and every log line carries a request ID.
package middleware
