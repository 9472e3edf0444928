// Package otp generates and validates one-time passwords.
//
// Two kinds live here: time-based codes (TOTP, RFC 6238) derived from a
// shared secret for authenticator apps, and random numeric codes delivered
// out-of-band over email or SMS. Both produce fixed-width digit strings and
// compare codes without leaking partial matches.
package otp
