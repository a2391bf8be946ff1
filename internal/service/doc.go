// Package service implements the task operations layer. Each mutating
// operation runs inside a single database transaction; reads pass straight
// through to the store. The service is also where store errors are shaped
// into the client-facing taxonomy.
package service
