// Package store defines the persistence contracts of the practice
// service and the errors shared by all store implementations. The
// concrete PostgreSQL implementations live in
// internal/platform/postgres.
package store
