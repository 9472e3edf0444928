// Package hash provides one-way hashing and verification of secrets.
//
// Passwords are stored only as hashes produced here; login compares the
// submitted plaintext against the stored hash in constant time. The slow
// password hashers (bcrypt, argon2id) and the fast deterministic HMAC used
// for one-time-code lookups all sit behind the same small interface.
package hash
