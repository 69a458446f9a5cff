// Package service contains the business logic.
//
// It sits between the command line and repository layers. It binds
// repositories to the application pool, decides what a missing record
// means, and turns driver errors into application errors.
package service
