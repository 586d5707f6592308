// Package admin serves the administrator API: dashboard statistics and
// manufacturer approval.
package admin
