// Package pg manages the PostgreSQL connection pool, schema migrations and
// readiness checks on top of pgx and goose.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, migrations.FS, log); err != nil {
//		return err
//	}
//
// Connect retries with exponential backoff and verifies the pool with a ping.
// Migrate bridges the pool to database/sql for goose and applies every pending
// migration from the given file system.
//
// Repositories take part in a caller's transaction through the context:
//
//	tx, err := pool.Begin(ctx)
//	if err != nil {
//		return err
//	}
//	defer tx.Rollback(ctx)
//
//	ctx = pg.WithTx(ctx, tx)
//	// ... repository calls use pg.TxFromContext(ctx) ...
//	return tx.Commit(ctx)
//
// IsNotFoundError, IsDuplicateKeyError, IsForeignKeyViolationError and
// IsTxClosedError classify common driver errors.
package pg
