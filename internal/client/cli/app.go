package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dmitrijs2005/coursemanager/internal/client/config"
	"github.com/dmitrijs2005/coursemanager/internal/client/listing"
	"github.com/dmitrijs2005/coursemanager/internal/client/persist"
	"github.com/dmitrijs2005/coursemanager/internal/client/services"
	"github.com/dmitrijs2005/coursemanager/internal/client/store"
	"github.com/dmitrijs2005/coursemanager/internal/client/transfer"
	"github.com/dmitrijs2005/coursemanager/internal/logging"
)

type App struct {
	config *config.Config
	logger logging.Logger

	store    *store.Adapter
	queues   *persist.Group
	auth     services.AuthService
	courses  services.CourseService
	prefs    services.PreferencesService
	lister   *listing.Lister
	exporter *transfer.Exporter
	importer *transfer.Importer

	reader *bufio.Reader
	out    io.Writer

	sort       listing.SortOption
	lastListed []string // course ids in the order of the last listing

	stopQueues context.CancelFunc
	queuesDone chan error
	closeOnce  sync.Once
	closeErr   error
}

// NewApp opens the local store, loads the state managers and starts the
// background writers. The store is closed again when loading fails.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	lister, err := listing.New(cfg.Locale)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}

	w := &syncWriter{w: out}
	opts := []persist.Option{
		persist.WithTimeout(cfg.SaveTimeout),
		persist.WithAlert(func(queue string, err error) {
			fmt.Fprintf(w, "Warning: %s changes could not be saved: %v\n", queue, err)
		}),
	}
	users := persist.New("users", logger, opts...)
	session := persist.New("session", logger, opts...)
	courseQueue := persist.New("courses", logger, opts...)
	theme := persist.New("theme", logger, opts...)
	group := persist.NewGroup(users, session, courseQueue, theme)

	admin := services.AdminAccount{Email: cfg.AdminEmail, Username: cfg.AdminUsername, Password: cfg.AdminPassword}
	auth := services.NewAuthService(st, users, session, admin, logger)
	courses := services.NewCourseService(st, courseQueue, services.NewReducer(), logger)
	prefs := services.NewPreferencesService(st, theme)

	for _, load := range []func(context.Context) error{auth.Init, courses.Init, prefs.Init} {
		if err := load(ctx); err != nil {
			_ = st.Close()
			return nil, err
		}
	}

	a := &App{
		config:     cfg,
		logger:     logger,
		store:      st,
		queues:     group,
		auth:       auth,
		courses:    courses,
		prefs:      prefs,
		lister:     lister,
		exporter:   transfer.NewExporter(st, group, logger),
		importer:   transfer.NewImporter(st, group, logger, auth.Reload, courses.Reload),
		reader:     bufio.NewReader(in),
		out:        w,
		sort:       listing.SortNewest,
		queuesDone: make(chan error, 1),
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	a.stopQueues = cancel
	go func() { a.queuesDone <- group.Run(runCtx) }()

	return a, nil
}

// Run starts the interactive loop and blocks until the user exits or input
// ends.
func (a *App) Run(ctx context.Context) {
	a.println("Welcome to Course Manager (type 'help' for commands)")
	runREPL(ctx, a, a.reader, a.out)
}

// Close waits for pending saves, stops the writers and closes the store.
// Calls after the first return the first result.
func (a *App) Close(ctx context.Context) error {
	a.closeOnce.Do(func() {
		a.queues.Flush(ctx)
		a.stopQueues()
		if err := <-a.queuesDone; err != nil {
			a.logger.Warn(ctx, "persistence workers stopped with error", "error", err)
		}
		if pending := a.queues.Pending(); len(pending) > 0 {
			a.logger.Warn(ctx, "closing with unsaved changes", "queues", pending)
			a.closeErr = fmt.Errorf("unsaved changes in %s", strings.Join(pending, ", "))
		}
		if err := a.store.Close(); err != nil && a.closeErr == nil {
			a.closeErr = err
		}
	})
	return a.closeErr
}

func (a *App) isLoggedIn() bool {
	_, ok := a.auth.CurrentUser()
	return ok
}

func (a *App) isAdmin() bool {
	u, ok := a.auth.CurrentUser()
	return ok && u.IsAdmin
}

func (a *App) status() string {
	u, ok := a.auth.CurrentUser()
	if !ok {
		return ""
	}
	if u.IsAdmin {
		return fmt.Sprintf("(%s, admin)", u.Username)
	}
	return fmt.Sprintf("(%s)", u.Username)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// syncWriter serializes writes from the REPL and from save alerts.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
