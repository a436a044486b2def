// Package users provides the client-side persistence layer for the user
// registry.
//
// Each row holds one models.StoredUser encoded as JSON, keyed by email and
// ordered by an explicit position so the registry reads back in the order it
// was written. The collection is only ever replaced wholesale; callers wrap
// ReplaceAll in a transaction (dbx.WithTx) so readers never observe a
// half-written registry.
//
// Typical Usage
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    return users.NewSQLiteRepository(tx).ReplaceAll(ctx, list)
//	})
//	list, _ := users.NewSQLiteRepository(db).GetAll(ctx)
package users
