// Package marketplace serves the public buyer-facing API: product browsing,
// manufacturer pages and the CSRF-protected inquiry form.
package marketplace
