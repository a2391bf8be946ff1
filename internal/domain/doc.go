// Package domain contains the task entity, its closed status enumeration,
// and the pure validators for creation, update, and list-query input.
// Validators collect every violation and return either normalized values
// or an aggregated list of field errors; they hold no state and take the
// current time as a parameter.
package domain
