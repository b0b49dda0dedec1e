// Package domain contains the core business entities of Taskal: users, tasks
// and projects, together with their enumerations and field-level validation.
//
// The rule-based logic that operates on collections of tasks lives in the
// subpackages agenda (date grouping and ordering) and inprogress (the limit on
// simultaneously active tasks). Nothing here touches storage or transport.
package domain
