// Package auth manages manufacturer and administrator accounts: password
// sign-up and sign-in, identity lookup (user, profile and admin flag) and
// a small publish/subscribe hook for authentication state changes.
package auth
