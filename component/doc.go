// Package component defines lifecycle interfaces for managed
// infrastructure pieces: start, stop, and health reporting.
package component
