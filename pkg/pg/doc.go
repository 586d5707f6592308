// Package pg bootstraps the PostgreSQL layer on top of pgx/v5: a retrying
// pool constructor, goose migrations read from an embedded filesystem, a
// transaction helper, a health check and predicates for common driver errors.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, migrations.FS, cfg, log); err != nil {
//		return err
//	}
//
// WithTx runs a function inside a transaction that is committed when the
// function returns nil and rolled back otherwise.
package pg
