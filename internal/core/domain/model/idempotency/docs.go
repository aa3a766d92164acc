// Package idempotency models a claimed idempotency key and the outcome cached
// for it, so a retried request can be answered without re-running effects.
package idempotency
