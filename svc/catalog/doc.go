// Package catalog serves the public product catalog and lets approved
// manufacturers maintain their own listings.
package catalog
