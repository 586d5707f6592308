// Package lead accepts buyer inquiries and lets manufacturers work through
// the resulting leads.
//
// Submit runs every inquiry through a fixed pipeline: all free-text fields
// are sanitized, the sanitized email (or "anonymous") is checked against the
// rate limiter, the sanitized values are validated, and only then is the
// lead stored with status "new". A rate-limited submission is rejected even
// when its fields are invalid.
package lead
