// Package clock provides a tiny time abstraction.
//
// Code that reasons about expiry (one-time codes, auth sessions, time-step
// windows) depends on the Clocker interface instead of time.Now, so tests
// can drive a deterministic clock through those paths.
package clock
