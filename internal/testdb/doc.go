//go:build integration

// Package testdb provides helpers for tests that run against a real
// PostgreSQL database.
//
// Tests run inside a transaction that is rolled back when the test finishes,
// so they can run in parallel against the same schema without cleanup:
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        tasks := postgres.NewPostgresTaskStore(tx, nil)
//	        ...
//	    })
//	}
//
// The connection string comes from DATABASE_URL, or TASKAL_TEST_DB_URL when
// DATABASE_URL is unset. Tests are skipped when neither is present.
package testdb
