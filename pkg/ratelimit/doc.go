// Package ratelimit throttles outgoing Graph API requests on the client side.
//
// The Graph API enforces per-app and per-user call budgets; spacing requests
// out locally keeps a client under them instead of discovering the limit
// through 429 responses.
//
//	limiter := ratelimit.NewTokenBucket(200, 10) // 200/min, bursts of 10
//	if err := limiter.Wait(ctx); err != nil {
//	    return err // ctx cancelled
//	}
package ratelimit
