//go:build integration

// Package testdb provides helpers for PostgreSQL integration tests.
//
// Each test runs in its own transaction which is rolled back when the test
// finishes, so tests can run in parallel against a shared database without
// cleaning up after themselves:
//
//	func TestSomething(t *testing.T) {
//	    t.Parallel()
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        s := postgres.NewPostgresTaskStore(tx, nil)
//	        ...
//	    })
//	}
//
// The database URL is read from DATABASE_URL, falling back to
// TASKAPI_DATABASE_URL. Tests are skipped when neither is set.
package testdb
