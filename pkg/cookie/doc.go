// Package cookie writes and reads HTTP cookies, optionally signed with
// HMAC-SHA256 so that clients cannot alter their values.
//
// Several secrets may be configured: the first one signs, all of them verify,
// which allows rotating the secret without logging everybody out.
//
//	jar, err := cookie.New([]string{cfg.Secret}, cookie.WithSecure(true))
//	if err != nil {
//		return err
//	}
//	jar.SetSigned(w, "sid", sessionID, cookie.WithMaxAge(3600))
//	id, err := jar.GetSigned(r, "sid")
package cookie
