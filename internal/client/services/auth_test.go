package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/dmitrijs2005/coursemanager/internal/client/models"
	"github.com/dmitrijs2005/coursemanager/internal/client/persist"
	"github.com/dmitrijs2005/coursemanager/internal/common"
	"github.com/dmitrijs2005/coursemanager/internal/cryptox"
	"github.com/dmitrijs2005/coursemanager/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func register(t *testing.T, h *harness, email, password string) {
	t.Helper()
	require.NoError(t, h.auth.AddUser(models.StoredUser{
		User:     models.User{Email: email, Username: email},
		Password: password,
	}))
}

func ptr(s string) *string { return &s }

func TestInit_CreatesBootstrapAdminOnce(t *testing.T) {
	h := newHarness(t, "")
	assert.True(t, h.auth.Initialized())

	users := h.auth.AllUsers()
	require.Len(t, users, 1)
	assert.Equal(t, testAdmin.Email, users[0].Email)
	assert.True(t, users[0].IsAdmin)
	assert.True(t, cryptox.IsPasswordHash(users[0].Password), "admin password must be hashed")

	// saved synchronously, before any queue flush
	stored, err := h.store.Users(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)

	h2 := h.reopen(t)
	assert.Len(t, h2.auth.AllUsers(), 1)
}

func TestLogin_SucceedsIffCredentialsMatch(t *testing.T) {
	h := newHarness(t, "")
	register(t, h, "a@x.com", "pw1")
	register(t, h, "b@x.com", "pw2")

	tests := []struct {
		email, password string
		ok              bool
	}{
		{"a@x.com", "pw1", true},
		{"b@x.com", "pw2", true},
		{"a@x.com", "pw2", false},
		{"A@x.com", "pw1", false},
		{"c@x.com", "pw1", false},
		{"a@x.com", "", false},
		{testAdmin.Email, testAdmin.Password, true},
	}
	for _, tt := range tests {
		t.Run(tt.email+"/"+tt.password, func(t *testing.T) {
			h.auth.Logout()
			u, err := h.auth.Login(tt.email, []byte(tt.password))
			if !tt.ok {
				require.ErrorIs(t, err, common.ErrorInvalidCredentials)
				_, logged := h.auth.CurrentUser()
				assert.False(t, logged)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.email, u.Email)

			cur, logged := h.auth.CurrentUser()
			require.True(t, logged)
			b, err := json.Marshal(cur)
			require.NoError(t, err)
			assert.NotContains(t, string(b), "password")
		})
	}
}

func TestLogin_RejectsUnusableStoredHashes(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, "")

	users := h.auth.AllUsers()
	users = append(users,
		models.StoredUser{
			User:     models.User{Email: "b@x.com", Username: "B"},
			Password: "$argon2id$v=19$m=65536,t=0,p=4$MDEyMzQ1Njc4OWFiY2RlZg$AQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQE",
		},
		models.StoredUser{User: models.User{Email: "c@x.com", Username: "C"}},
	)
	require.NoError(t, h.store.ReplaceUsers(ctx, users))
	require.NoError(t, h.auth.Reload(ctx))

	for _, email := range []string{"b@x.com", "c@x.com"} {
		var err error
		require.NotPanics(t, func() { _, err = h.auth.Login(email, []byte("x")) }, email)
		require.ErrorIs(t, err, common.ErrorInvalidCredentials, email)

		require.NotPanics(t, func() { _, err = h.auth.Login(email, nil) }, email)
		require.ErrorIs(t, err, common.ErrorInvalidCredentials, email)
	}
	_, logged := h.auth.CurrentUser()
	assert.False(t, logged)
}

func TestSession_PersistsWithoutPassword(t *testing.T) {
	h := newHarness(t, "")
	register(t, h, "a@x.com", "pw1")
	_, err := h.auth.Login("a@x.com", []byte("pw1"))
	require.NoError(t, err)
	h.flush()

	var raw json.RawMessage
	found, err := h.store.Setting(context.Background(), common.SettingCurrentUser, &raw)
	require.NoError(t, err)
	require.True(t, found)
	assert.NotContains(t, string(raw), "password")

	h2 := h.reopen(t)
	u, ok := h2.auth.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "a@x.com", u.Email)

	h2.auth.Logout()
	h2.flush()
	found, err = h2.store.Setting(context.Background(), common.SettingCurrentUser, &raw)
	require.NoError(t, err)
	assert.False(t, found, "logout removes the session setting")

	h3 := h2.reopen(t)
	_, ok = h3.auth.CurrentUser()
	assert.False(t, ok)
}

func TestAddUser(t *testing.T) {
	h := newHarness(t, "")
	register(t, h, "a@x.com", "pw1")

	t.Run("duplicate email always fails", func(t *testing.T) {
		err := h.auth.AddUser(models.StoredUser{User: models.User{Email: "a@x.com", Username: "other"}, Password: "zzz"})
		require.ErrorIs(t, err, common.ErrorUserExists)
		err = h.auth.AddUser(models.StoredUser{User: models.User{Email: testAdmin.Email}, Password: "x"})
		require.ErrorIs(t, err, common.ErrorUserExists)
	})

	t.Run("email match is case-sensitive", func(t *testing.T) {
		require.NoError(t, h.auth.AddUser(models.StoredUser{User: models.User{Email: "A@x.com"}, Password: "p"}))
	})

	t.Run("admin flag is forced off", func(t *testing.T) {
		require.NoError(t, h.auth.AddUser(models.StoredUser{User: models.User{Email: "evil@x.com", IsAdmin: true}, Password: "p"}))
		u, ok := h.auth.UserByEmail("evil@x.com")
		require.True(t, ok)
		assert.False(t, u.IsAdmin)
		assert.False(t, u.CreatedAt.IsZero())
		assert.True(t, cryptox.IsPasswordHash(u.Password))
	})

	t.Run("validation", func(t *testing.T) {
		require.ErrorIs(t, h.auth.AddUser(models.StoredUser{User: models.User{Email: " "}, Password: "p"}), common.ErrorValidation)
		require.ErrorIs(t, h.auth.AddUser(models.StoredUser{User: models.User{Email: "n@x.com"}}), common.ErrorValidation)
	})

	assert.Len(t, h.auth.AllUsers(), 4)
}

func TestUpdateUser(t *testing.T) {
	h := newHarness(t, "")
	register(t, h, "a@x.com", "pw1")

	_, err := h.auth.UpdateUser(models.UserUpdate{Username: ptr("x")})
	require.ErrorIs(t, err, common.ErrorNotLoggedIn)

	_, err = h.auth.Login("a@x.com", []byte("pw1"))
	require.NoError(t, err)

	u, err := h.auth.UpdateUser(models.UserUpdate{Username: ptr("Alice"), ProfilePicture: ptr("data:image/png;base64,AA==")})
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Username)
	assert.Equal(t, "data:image/png;base64,AA==", u.Avatar())

	stored, ok := h.auth.UserByEmail("a@x.com")
	require.True(t, ok)
	assert.Equal(t, "Alice", stored.Username)
	assert.NotEmpty(t, stored.Password, "password kept on registry record")

	_, err = h.auth.UpdateUser(models.UserUpdate{Username: ptr("  ")})
	require.ErrorIs(t, err, common.ErrorValidation)

	h2 := h.reopen(t)
	cur, ok := h2.auth.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "Alice", cur.Username)
}

func TestChangePassword(t *testing.T) {
	h := newHarness(t, "")
	register(t, h, "a@x.com", "pw1")

	require.ErrorIs(t, h.auth.ChangePassword([]byte("pw1"), []byte("new")), common.ErrorNotLoggedIn)

	_, err := h.auth.Login("a@x.com", []byte("pw1"))
	require.NoError(t, err)

	require.ErrorIs(t, h.auth.ChangePassword([]byte("wrong"), []byte("new")), common.ErrorInvalidCredentials)
	require.ErrorIs(t, h.auth.ChangePassword([]byte("pw1"), nil), common.ErrorValidation)
	require.NoError(t, h.auth.ChangePassword([]byte("pw1"), []byte("new")))

	h.auth.Logout()
	_, err = h.auth.Login("a@x.com", []byte("pw1"))
	require.ErrorIs(t, err, common.ErrorInvalidCredentials)
	_, err = h.auth.Login("a@x.com", []byte("new"))
	require.NoError(t, err)
}

func TestDeleteCurrentUser(t *testing.T) {
	h := newHarness(t, "")
	register(t, h, "a@x.com", "pw1")

	require.ErrorIs(t, h.auth.DeleteCurrentUser(), common.ErrorNotLoggedIn)

	_, err := h.auth.Login("a@x.com", []byte("pw1"))
	require.NoError(t, err)
	require.NoError(t, h.auth.DeleteCurrentUser())

	_, ok := h.auth.CurrentUser()
	assert.False(t, ok)
	_, ok = h.auth.UserByEmail("a@x.com")
	assert.False(t, ok)

	_, err = h.auth.Login(testAdmin.Email, []byte(testAdmin.Password))
	require.NoError(t, err)
	require.ErrorIs(t, h.auth.DeleteCurrentUser(), common.ErrorForbidden)
}

func TestAdminOperations(t *testing.T) {
	h := newHarness(t, "")
	register(t, h, "a@x.com", "pw1")

	require.NoError(t, h.auth.UpdateUserByEmail("a@x.com", models.StoredUserUpdate{
		UserUpdate: models.UserUpdate{Username: ptr("Renamed")},
		Password:   ptr("reset"),
	}))
	u, ok := h.auth.UserByEmail("a@x.com")
	require.True(t, ok)
	assert.Equal(t, "Renamed", u.Username)

	_, err := h.auth.Login("a@x.com", []byte("reset"))
	require.NoError(t, err)

	// editing the logged-in user refreshes the session
	require.NoError(t, h.auth.UpdateUserByEmail("a@x.com", models.StoredUserUpdate{UserUpdate: models.UserUpdate{Username: ptr("Again")}}))
	cur, _ := h.auth.CurrentUser()
	assert.Equal(t, "Again", cur.Username)

	require.ErrorIs(t, h.auth.UpdateUserByEmail("nope@x.com", models.StoredUserUpdate{}), common.ErrorNotFound)
	require.ErrorIs(t, h.auth.UpdateUserByEmail("a@x.com", models.StoredUserUpdate{Password: ptr("")}), common.ErrorValidation)

	require.ErrorIs(t, h.auth.DeleteUserByEmail(testAdmin.Email), common.ErrorForbidden)
	require.ErrorIs(t, h.auth.DeleteUserByEmail("nope@x.com"), common.ErrorNotFound)

	require.NoError(t, h.auth.DeleteUserByEmail("a@x.com"))
	_, ok = h.auth.CurrentUser()
	assert.False(t, ok, "deleting the session user ends the session")
	for _, u := range h.auth.AllUsers() {
		assert.NotEqual(t, "a@x.com", u.Email)
	}
}

func TestAllUsers_ReturnsCopy(t *testing.T) {
	h := newHarness(t, "")
	users := h.auth.AllUsers()
	users[0].Username = "hacked"

	u, _ := h.auth.UserByEmail(testAdmin.Email)
	assert.Equal(t, "Admin", u.Username)
	assert.Equal(t, testAdmin.Email, h.auth.AdminEmail())
}

func TestInit_DropsStaleSession(t *testing.T) {
	h := newHarness(t, "")
	ghost := &models.User{Email: "ghost@x.com"}
	require.NoError(t, h.store.SetSetting(context.Background(), common.SettingCurrentUser, ghost))

	require.NoError(t, h.auth.Reload(context.Background()))
	_, ok := h.auth.CurrentUser()
	assert.False(t, ok)
}

type failingUserStore struct {
	usersErr   error
	replaceErr error
	settingErr error
}

func (f failingUserStore) Users(context.Context) ([]models.StoredUser, error) {
	return nil, f.usersErr
}
func (f failingUserStore) ReplaceUsers(context.Context, []models.StoredUser) error {
	return f.replaceErr
}
func (f failingUserStore) Setting(context.Context, string, any) (bool, error) {
	return false, f.settingErr
}
func (f failingUserStore) SetSetting(context.Context, string, any) error { return nil }
func (f failingUserStore) DeleteSetting(context.Context, string) error   { return nil }

type noopSubmitter struct{}

func (noopSubmitter) Submit(persist.Job) {}

func TestInit_StoreErrors(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name  string
		store failingUserStore
	}{
		{"load", failingUserStore{usersErr: boom}},
		{"bootstrap", failingUserStore{replaceErr: boom}},
		{"session", failingUserStore{settingErr: boom}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(tt.store, noopSubmitter{}, noopSubmitter{}, testAdmin, logging.Discard())
			err := svc.Init(context.Background())
			require.ErrorIs(t, err, boom)
			assert.False(t, svc.Initialized())
		})
	}
}
