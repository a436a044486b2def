package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/coursemanager/internal/client/persist"
	"github.com/dmitrijs2005/coursemanager/internal/client/store"
	"github.com/dmitrijs2005/coursemanager/internal/logging"
	"github.com/stretchr/testify/require"
)

var testAdmin = AdminAccount{Email: "admin@test.local", Username: "Admin", Password: "root"}

// harness wires the services to a real file-backed store through queues that
// are drained explicitly with flush.
type harness struct {
	dsn     string
	store   *store.Adapter
	group   *persist.Group
	auth    AuthService
	courses CourseService
	prefs   PreferencesService
}

func newHarness(t *testing.T, dsn string) *harness {
	t.Helper()
	if dsn == "" {
		dsn = filepath.Join(t.TempDir(), "svc.db")
	}
	ctx := context.Background()

	a, err := store.Open(ctx, dsn)
	require.NoError(t, err)

	log := logging.Discard()
	users := persist.New("users", log)
	session := persist.New("session", log)
	courses := persist.New("courses", log)
	theme := persist.New("theme", log)

	h := &harness{
		dsn:     dsn,
		store:   a,
		group:   persist.NewGroup(users, session, courses, theme),
		auth:    NewAuthService(a, users, session, testAdmin, log),
		courses: NewCourseService(a, courses, pinnedReducer(), log),
		prefs:   NewPreferencesService(a, theme),
	}
	require.NoError(t, h.auth.Init(ctx))
	require.NoError(t, h.courses.Init(ctx))
	require.NoError(t, h.prefs.Init(ctx))

	t.Cleanup(func() { _ = a.Close() })
	return h
}

func (h *harness) flush() {
	h.group.Flush(context.Background())
}

// reopen flushes, closes the store and builds a fresh harness over the same
// database file.
func (h *harness) reopen(t *testing.T) *harness {
	t.Helper()
	h.flush()
	require.NoError(t, h.store.Close())
	return newHarness(t, h.dsn)
}
