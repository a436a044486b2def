package services

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/coursemanager/internal/client/models"
	"github.com/dmitrijs2005/coursemanager/internal/common"
	"github.com/dmitrijs2005/coursemanager/internal/cryptox"
	"github.com/dmitrijs2005/coursemanager/internal/logging"
	"github.com/dmitrijs2005/coursemanager/internal/timex"
)

// AuthService owns the user registry and the current session.
//
// Contract:
//   - Init / Reload: load the registry, create the bootstrap admin when it is
//     missing, then restore the session.
//   - Login / Logout: open or close the session. The session never carries a
//     password.
//   - AddUser, UpdateUser, ChangePassword, DeleteCurrentUser: self-service.
//   - AllUsers, UserByEmail, UpdateUserByEmail, DeleteUserByEmail:
//     administration. Permission checks are the caller's job.
//
// Every mutation hands the registry (and, when it changed, the session) to
// the persistence queues.
type AuthService interface {
	Init(ctx context.Context) error
	Reload(ctx context.Context) error
	Initialized() bool

	Login(email string, password []byte) (models.User, error)
	Logout()
	AddUser(candidate models.StoredUser) error
	UpdateUser(update models.UserUpdate) (models.User, error)
	ChangePassword(oldPassword, newPassword []byte) error
	DeleteCurrentUser() error

	AllUsers() []models.StoredUser
	UserByEmail(email string) (models.StoredUser, bool)
	UpdateUserByEmail(email string, update models.StoredUserUpdate) error
	DeleteUserByEmail(email string) error

	CurrentUser() (models.User, bool)
	AdminEmail() string
}

// AdminAccount describes the bootstrap administrator.
type AdminAccount struct {
	Email    string
	Username string
	Password string
}

type authService struct {
	store   UserStore
	users   Submitter
	session Submitter
	admin   AdminAccount
	logger  logging.Logger
	now     func() timex.Millis

	mu          sync.RWMutex
	registry    []models.StoredUser
	current     *models.User
	initialized bool
}

// NewAuthService constructs an AuthService. users and session receive the
// background writes of the registry and the currentUser setting.
func NewAuthService(store UserStore, users, session Submitter, admin AdminAccount, logger logging.Logger) AuthService {
	return &authService{
		store:   store,
		users:   users,
		session: session,
		admin:   admin,
		logger:  logger,
		now:     timex.Now,
	}
}

func (a *authService) Init(ctx context.Context) error {
	registry, err := a.store.Users(ctx)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	if !slices.ContainsFunc(registry, func(u models.StoredUser) bool { return u.Email == a.admin.Email }) {
		registry = append(registry, models.StoredUser{
			User: models.User{
				Email:     a.admin.Email,
				Username:  a.admin.Username,
				CreatedAt: a.now(),
				IsAdmin:   true,
			},
			Password: cryptox.HashPassword([]byte(a.admin.Password)),
		})
		if err := a.store.ReplaceUsers(ctx, registry); err != nil {
			return fmt.Errorf("failed to save bootstrap admin: %w", err)
		}
		a.logger.Info(ctx, "bootstrap admin created", "email", a.admin.Email)
	}

	var stored *models.User
	if _, err := a.store.Setting(ctx, common.SettingCurrentUser, &stored); err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.registry = registry
	a.current = nil
	if stored != nil {
		// the session is refreshed from the registry; a user that no longer
		// exists (e.g. after an import) is logged out
		if i := a.indexOf(stored.Email); i >= 0 {
			u := a.registry[i].Strip()
			a.current = &u
		} else {
			a.submitSession()
		}
	}
	a.initialized = true

	a.logger.Debug(ctx, "auth state loaded", "users", len(registry), "session", a.current != nil)
	return nil
}

func (a *authService) Reload(ctx context.Context) error {
	return a.Init(ctx)
}

func (a *authService) Initialized() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.initialized
}

func (a *authService) Login(email string, password []byte) (models.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	i := a.indexOf(email)
	if i < 0 {
		return models.User{}, common.ErrorInvalidCredentials
	}
	ok, err := cryptox.VerifyPassword(password, a.registry[i].Password)
	if err != nil || !ok {
		return models.User{}, common.ErrorInvalidCredentials
	}

	u := a.registry[i].Strip()
	a.current = &u
	a.submitSession()
	return u, nil
}

func (a *authService) Logout() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.current = nil
	a.submitSession()
}

func (a *authService) AddUser(candidate models.StoredUser) error {
	if common.IsBlank(candidate.Email) || candidate.Password == "" {
		return fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.indexOf(candidate.Email) >= 0 {
		return common.ErrorUserExists
	}

	candidate.IsAdmin = false
	candidate.Password = cryptox.HashPassword([]byte(candidate.Password))
	if candidate.CreatedAt.IsZero() {
		candidate.CreatedAt = a.now()
	}

	a.registry = append(a.registry, candidate)
	a.submitUsers()
	return nil
}

func (a *authService) UpdateUser(update models.UserUpdate) (models.User, error) {
	if update.Username != nil && common.IsBlank(*update.Username) {
		return models.User{}, fmt.Errorf("%w: username must not be empty", common.ErrorValidation)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current == nil {
		return models.User{}, common.ErrorNotLoggedIn
	}

	u := update.Apply(*a.current)
	a.current = &u
	if i := a.indexOf(u.Email); i >= 0 {
		a.registry[i].User = update.Apply(a.registry[i].User)
		a.submitUsers()
	}
	a.submitSession()
	return u, nil
}

func (a *authService) ChangePassword(oldPassword, newPassword []byte) error {
	if len(newPassword) == 0 {
		return fmt.Errorf("%w: new password must not be empty", common.ErrorValidation)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current == nil {
		return common.ErrorNotLoggedIn
	}
	i := a.indexOf(a.current.Email)
	if i < 0 {
		return common.ErrorNotFound
	}
	if ok, err := cryptox.VerifyPassword(oldPassword, a.registry[i].Password); err != nil || !ok {
		return common.ErrorInvalidCredentials
	}

	a.registry[i].Password = cryptox.HashPassword(newPassword)
	a.submitUsers()
	return nil
}

func (a *authService) DeleteCurrentUser() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current == nil {
		return common.ErrorNotLoggedIn
	}
	if a.current.Email == a.admin.Email {
		return fmt.Errorf("%w: the bootstrap admin cannot be deleted", common.ErrorForbidden)
	}

	email := a.current.Email
	a.registry = slices.DeleteFunc(a.registry, func(u models.StoredUser) bool { return u.Email == email })
	a.current = nil
	a.submitUsers()
	a.submitSession()
	return nil
}

func (a *authService) AllUsers() []models.StoredUser {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return cloneUsers(a.registry)
}

func (a *authService) UserByEmail(email string) (models.StoredUser, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	i := a.indexOf(email)
	if i < 0 {
		return models.StoredUser{}, false
	}
	return cloneUser(a.registry[i]), true
}

func (a *authService) UpdateUserByEmail(email string, update models.StoredUserUpdate) error {
	if update.Username != nil && common.IsBlank(*update.Username) {
		return fmt.Errorf("%w: username must not be empty", common.ErrorValidation)
	}
	if update.Password != nil && *update.Password == "" {
		return fmt.Errorf("%w: password must not be empty", common.ErrorValidation)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	i := a.indexOf(email)
	if i < 0 {
		return common.ErrorNotFound
	}

	a.registry[i].User = update.Apply(a.registry[i].User)
	if update.Password != nil {
		a.registry[i].Password = cryptox.HashPassword([]byte(*update.Password))
	}
	a.submitUsers()

	if a.current != nil && a.current.Email == email {
		u := a.registry[i].Strip()
		a.current = &u
		a.submitSession()
	}
	return nil
}

func (a *authService) DeleteUserByEmail(email string) error {
	if email == a.admin.Email {
		return fmt.Errorf("%w: the bootstrap admin cannot be deleted", common.ErrorForbidden)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.indexOf(email) < 0 {
		return common.ErrorNotFound
	}

	a.registry = slices.DeleteFunc(a.registry, func(u models.StoredUser) bool { return u.Email == email })
	a.submitUsers()

	if a.current != nil && a.current.Email == email {
		a.current = nil
		a.submitSession()
	}
	return nil
}

func (a *authService) CurrentUser() (models.User, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.current == nil {
		return models.User{}, false
	}
	return *a.current, true
}

func (a *authService) AdminEmail() string {
	return a.admin.Email
}

// indexOf does a case-sensitive exact match. Callers hold mu.
func (a *authService) indexOf(email string) int {
	return slices.IndexFunc(a.registry, func(u models.StoredUser) bool { return u.Email == email })
}

// submitUsers queues a snapshot of the registry. Callers hold mu.
func (a *authService) submitUsers() {
	snapshot := cloneUsers(a.registry)
	a.users.Submit(func(ctx context.Context) error {
		return a.store.ReplaceUsers(ctx, snapshot)
	})
}

// submitSession queues the current session, or its removal when nobody is
// logged in. Callers hold mu.
func (a *authService) submitSession() {
	if a.current == nil {
		a.session.Submit(func(ctx context.Context) error {
			return a.store.DeleteSetting(ctx, common.SettingCurrentUser)
		})
		return
	}
	snapshot := *a.current
	a.session.Submit(func(ctx context.Context) error {
		return a.store.SetSetting(ctx, common.SettingCurrentUser, &snapshot)
	})
}

func cloneUser(u models.StoredUser) models.StoredUser {
	if u.ProfilePicture != nil {
		pic := *u.ProfilePicture
		u.ProfilePicture = &pic
	}
	return u
}

func cloneUsers(in []models.StoredUser) []models.StoredUser {
	out := make([]models.StoredUser, len(in))
	for i, u := range in {
		out[i] = cloneUser(u)
	}
	return out
}
