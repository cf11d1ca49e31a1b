// Package pg bootstraps the portal's PostgreSQL layer: a pgx/v5
// connection pool opened with retry, goose schema migrations, and a
// handful of error helpers shared by the repositories.
package pg
