// Package csrf issues and validates per-session anti-forgery tokens.
//
// Each session owns exactly one token slot. Issuing a token overwrites the
// slot, so only the most recently issued token validates; a form mounted in
// another tab invalidates the token of an earlier one.
//
//	manager := csrf.NewManager(csrf.NewMemoryStore())
//
//	token, err := manager.Issue(ctx, sessionID) // embed in the form
//	...
//	if !manager.ValidateToken(ctx, sessionID, r.FormValue(csrf.FormField)) {
//		// reject
//	}
//
// Middleware performs the same check for unsafe methods, reading the token
// from the X-CSRF-Token header or the csrf_token form field.
//
// Tokens are random UUIDv4 strings. Comparison is constant-time.
package csrf
