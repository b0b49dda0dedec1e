// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
//
// Every task and project lookup is scoped by owner: a row that exists but
// belongs to another user is reported as not found.
package store
