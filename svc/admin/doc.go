// Package admin backs the administrator dashboard: aggregate statistics,
// manufacturer approval and the audit log that records every admin action.
package admin
