// Package session keeps server-side sessions referenced by a signed cookie.
//
// Every visitor that needs state (a CSRF slot for the inquiry form, a signed
// in manufacturer) receives a session whose ID travels in a cookie signed by
// pkg/cookie. The record itself lives in a Store: MemoryStore for a single
// instance, RedisStore when several instances serve the same users.
//
//	mgr := session.NewManager(store, jar, cfg)
//
//	r.Use(mgr.Middleware)          // load when present
//	r.With(mgr.Ensure).Get(...)    // create anonymous session when missing
//	r.With(mgr.RequireAuth).Get(...)
//
// Authenticate rotates the session ID so an identifier seen before sign in is
// useless afterwards.
package session
