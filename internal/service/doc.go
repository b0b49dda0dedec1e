// Package service contains Taskal's use cases. It orchestrates domain
// objects and the repositories defined in internal/store.
//
// Services own the transactional boundaries. Every mutation that can move a
// task into in_progress runs inside a transaction that first locks the owning
// user's row, so two concurrent requests from one user cannot both pass the
// in-progress cap. Project completion uses the same lock so a task cannot be
// added to a project while it is being closed.
//
// Errors returned from services wrap store and domain sentinels; the API
// layer maps them to status codes with errors.Is and errors.As.
package service
