package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/bus"
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s := NewService(store.NewMemory(), "test-secret", bus.New())
	require.NoError(t, s.EnsureAdmin())
	return s
}

func TestEnsureAdminSeedsOnce(t *testing.T) {
	t.Parallel()

	s := newTestService(t)
	require.NoError(t, s.EnsureAdmin())

	users, err := s.loadUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "admin@fitlearned.com", users[0].Email)
	require.Equal(t, RoleAdmin, users[0].Role)
	// The password is stored hashed, never in the clear.
	require.NotContains(t, users[0].PasswordHash, "admin123")
}

func TestLoginSuccessCreatesSession(t *testing.T) {
	t.Parallel()

	s := newTestService(t)
	user, err := s.Login("admin@fitlearned.com", "admin123")
	require.NoError(t, err)
	require.Equal(t, "admin-1", user.ID)
	require.False(t, user.LastLogin.IsZero())

	require.True(t, s.IsAuthenticated())
	require.True(t, s.IsAdmin())

	token, err := s.Token()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := s.VerifyToken(token)
	require.NoError(t, err)
	require.Equal(t, "admin-1", claims["sub"])
	require.Equal(t, "admin", claims["role"])
}

func TestLoginFailureLeavesStateAlone(t *testing.T) {
	t.Parallel()

	s := newTestService(t)
	_, err := s.Login("admin@fitlearned.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Login("nobody@fitlearned.com", "admin123")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	require.False(t, s.IsAuthenticated())
	user, err := s.CurrentUser()
	require.NoError(t, err)
	require.Nil(t, user)
}

func TestLogout(t *testing.T) {
	t.Parallel()

	s := newTestService(t)
	_, err := s.Login("admin@fitlearned.com", "admin123")
	require.NoError(t, err)
	require.True(t, s.IsAuthenticated())

	require.NoError(t, s.Logout())
	require.False(t, s.IsAuthenticated())
}

func TestExpiredSessionPurgedOnRead(t *testing.T) {
	t.Parallel()

	s := newTestService(t)
	_, err := s.Login("admin@fitlearned.com", "admin123")
	require.NoError(t, err)

	// Move the clock past the session TTL.
	s.now = func() time.Time { return time.Now().Add(sessionTTL + time.Minute) }

	user, err := s.CurrentUser()
	require.NoError(t, err)
	require.Nil(t, user)

	// The read removed the record; it stays gone with a normal clock.
	s.now = time.Now
	require.False(t, s.IsAuthenticated())
	session, err := s.loadSession()
	require.NoError(t, err)
	require.Nil(t, session)
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	s := newTestService(t)
	require.ErrorIs(t, s.ChangePassword("admin123", "updated456"), ErrNotAuthenticated)

	_, err := s.Login("admin@fitlearned.com", "admin123")
	require.NoError(t, err)

	require.ErrorIs(t, s.ChangePassword("wrong", "updated456"), ErrInvalidCredentials)
	require.NoError(t, s.ChangePassword("admin123", "updated456"))

	_, err = s.Login("admin@fitlearned.com", "admin123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Login("admin@fitlearned.com", "updated456")
	require.NoError(t, err)
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	t.Parallel()

	s := newTestService(t)
	created, err := s.CreateUser("viewer@fitlearned.com", "secret99", "Viewer", RoleUser)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, RoleUser, created.Role)

	_, err = s.CreateUser("viewer@fitlearned.com", "other", "Someone", RoleUser)
	require.ErrorIs(t, err, ErrEmailTaken)

	_, err = s.Login("viewer@fitlearned.com", "secret99")
	require.NoError(t, err)
	require.True(t, s.IsAuthenticated())
	require.False(t, s.IsAdmin())
}

func TestVerifyTokenRejectsForgeries(t *testing.T) {
	t.Parallel()

	s := newTestService(t)
	_, err := s.Login("admin@fitlearned.com", "admin123")
	require.NoError(t, err)
	token, err := s.Token()
	require.NoError(t, err)

	other := NewService(store.NewMemory(), "different-secret", bus.New())
	_, err = other.VerifyToken(token)
	require.Error(t, err)

	_, err = s.VerifyToken("not-a-token")
	require.Error(t, err)
}
