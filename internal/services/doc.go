// Package services holds the library use cases that sit between the HTTP
// handlers and the stores. Errors leave this package as *apperr.Error values.
package services
