// Package persist runs background collection writes.
//
// Each collection gets its own Queue with a single worker. Submitting a new
// snapshot replaces a pending one that has not started yet, and at most one
// job runs at a time, so the last submitted snapshot is always the last one
// written. Failures are logged and reported to an alert callback; nothing is
// retried and in-memory state is never rolled back.
//
// Typical Usage
//
//	users := persist.New("users", log, persist.WithTimeout(5*time.Second))
//	g := persist.NewGroup(users)
//	go g.Run(ctx)
//
//	users.Submit(func(ctx context.Context) error {
//	    return store.ReplaceUsers(ctx, snapshot)
//	})
//
//	g.Flush(ctx) // on shutdown
package persist
