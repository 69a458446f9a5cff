// Package errs defines the application's error type.
//
// Store failures reach callers as *Error values carrying a stable,
// machine-friendly code and a message that is safe to print, so the CLI
// can report "not found" or constraint problems consistently.
package errs
