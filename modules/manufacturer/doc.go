// Package manufacturer serves the signed-in manufacturer dashboard API: the
// manufacturer's own catalog and the leads it received.
package manufacturer
