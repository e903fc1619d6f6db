// Package migrate runs embedded goose SQL migrations against a *sql.DB.
//
// goose keeps its dialect, table name, base filesystem and logger in package
// globals, so every call here serializes on a single mutex.
package migrate
