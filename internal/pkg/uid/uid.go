// Package uid provides unique identifier generators used across the service.
//
// StringID generators produce opaque string tokens (session tokens,
// correlation IDs). NumberID generators produce sortable int64 keys for
// database rows.
package uid

// StringID generates unique string identifiers.
type StringID interface {
	Generate() string
}

// NumberID generates unique int64 identifiers.
type NumberID interface {
	Generate() int64
}
