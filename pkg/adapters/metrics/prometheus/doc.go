// Package prometheus implements the service metrics on client_golang.
package prometheus
