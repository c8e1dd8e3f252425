package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"concert-registration/internal/models"
	"concert-registration/internal/storage"
)

var testAdmins = []models.Admin{
	{Email: "admin@x", Password: "Admin123!", Name: "Administrateur Principal", Role: "superadmin"},
	{Email: "orga@x", Password: "Orga2025!", Name: "Organisateur Événement", Role: "admin"},
}

func newTestStore(t *testing.T) (*Store, *storage.Memory, *time.Time) {
	t.Helper()
	backend := storage.NewMemory()
	s := New(backend, Config{
		Admins:          testAdmins,
		MaxAttempts:     3,
		LockoutTime:     15 * time.Minute,
		SessionDuration: time.Hour,
	})
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	return s, backend, &now
}

func TestLogin_Success(t *testing.T) {
	s, _, _ := newTestStore(t)

	sess, err := s.Login("admin@x", "Admin123!")
	require.NoError(t, err)
	require.Equal(t, "superadmin", sess.Role)
	require.Equal(t, "Administrateur Principal", sess.Name)
	require.NotEmpty(t, sess.Token)
	require.Equal(t, sess.LoginTime+3600000, sess.ExpiresAt)

	got, ok := s.Current()
	require.True(t, ok)
	require.Equal(t, sess, got)
	require.True(t, s.IsAuthenticated())
}

func TestLogin_InvalidCredentials(t *testing.T) {
	s, _, _ := newTestStore(t)

	_, err := s.Login("admin@x", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.False(t, s.IsAuthenticated())
}

func TestCurrent_ExpiredSessionIsCleared(t *testing.T) {
	s, backend, now := newTestStore(t)

	_, err := s.Login("admin@x", "Admin123!")
	require.NoError(t, err)

	*now = now.Add(time.Hour + time.Millisecond)

	_, ok := s.Current()
	require.False(t, ok)

	_, stored, err := backend.Get(BlobKey)
	require.NoError(t, err)
	require.False(t, stored, "expired slot must be cleared on read")
}

func TestCurrent_ValidUntilExpiry(t *testing.T) {
	s, _, now := newTestStore(t)

	_, err := s.Login("admin@x", "Admin123!")
	require.NoError(t, err)

	// now == expiresAt is still valid
	*now = now.Add(time.Hour)
	_, ok := s.Current()
	require.True(t, ok)
}

func TestLogout(t *testing.T) {
	s, _, _ := newTestStore(t)

	_, err := s.Login("orga@x", "Orga2025!")
	require.NoError(t, err)
	s.Logout()
	require.False(t, s.IsAuthenticated())
}

func TestLockout(t *testing.T) {
	s, _, now := newTestStore(t)

	for i := 0; i < 3; i++ {
		_, err := s.Login("admin@x", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}

	// even the right password is rejected while locked
	_, err := s.Login("admin@x", "Admin123!")
	require.ErrorIs(t, err, ErrLockedOut)

	// other accounts are unaffected
	_, err = s.Login("orga@x", "Orga2025!")
	require.NoError(t, err)

	// lockout window elapses
	*now = now.Add(15*time.Minute + time.Second)
	_, err = s.Login("admin@x", "Admin123!")
	require.NoError(t, err)
}

func TestLockout_SuccessResetsCounter(t *testing.T) {
	s, _, _ := newTestStore(t)

	for i := 0; i < 2; i++ {
		_, err := s.Login("admin@x", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}
	_, err := s.Login("admin@x", "Admin123!")
	require.NoError(t, err)

	// counter is back to zero, two more misses do not lock
	for i := 0; i < 2; i++ {
		_, err := s.Login("admin@x", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}
	_, err = s.Login("admin@x", "Admin123!")
	require.NoError(t, err)
}
