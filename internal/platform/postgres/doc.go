// Package postgres provides PostgreSQL implementations of the store
// interfaces defined in internal/store, using database/sql over the pgx
// stdlib driver. The open-practice exclusivity invariant is enforced
// here with a partial unique index rather than at application level, so
// concurrent creation attempts on the same topic cannot both succeed.
package postgres
