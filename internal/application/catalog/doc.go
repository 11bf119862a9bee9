// Package catalog holds the fixed item catalog served by the API.
//
// Items are compiled into the binary and never change at runtime, so a
// Catalog is safe for concurrent use without locking.
package catalog
