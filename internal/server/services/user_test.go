package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/snipkeeper/internal/common"
	"github.com/dmitrijs2005/snipkeeper/internal/server/auth"
	"github.com/dmitrijs2005/snipkeeper/internal/server/models"
	"github.com/dmitrijs2005/snipkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/snipkeeper/internal/server/repositories/snippets"
	"github.com/dmitrijs2005/snipkeeper/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// --- fakes ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return f.GetByEmail(ctx, "")
}

type fakeRepoManager struct {
	u users.Repository
	s snippets.Repository
}

func (m *fakeRepoManager) Users() users.Repository       { return m.u }
func (m *fakeRepoManager) Snippets() snippets.Repository { return m.s }

// --- helpers ---

func newTestTokens() *auth.TokenService {
	return auth.NewTokenService([]byte("test-secret"))
}

func newUserService(t *testing.T, rm repomanager.RepositoryManager) *UserService {
	t.Helper()
	s, err := NewUserService(rm, NewPasswordHasher(bcrypt.MinCost, 4), newTestTokens())
	require.NoError(t, err)
	return s
}

func TestRegister_AndVerifyLogin(t *testing.T) {
	s := newUserService(t, repomanager.NewInMemoryRepositoryManager())
	ctx := context.Background()

	u, err := s.Register(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotContains(t, string(u.PasswordHash), "secret123")

	cost, err := bcrypt.Cost(u.PasswordHash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	got, err := s.VerifyLogin(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = s.VerifyLogin(ctx, "ALICE@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	for _, wrong := range []string{"secret124", "Secret123", "secret12", "secret1234", ""} {
		_, err := s.VerifyLogin(ctx, "alice@example.com", wrong)
		assert.ErrorIs(t, err, common.ErrInvalidCredentials, wrong)
	}
}

func TestRegister_DuplicateEmailDifferentCase(t *testing.T) {
	s := newUserService(t, repomanager.NewInMemoryRepositoryManager())
	ctx := context.Background()

	_, err := s.Register(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)

	_, err = s.Register(ctx, "Alice@Example.com", "other-password")
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)
}

func TestRegister_Validation(t *testing.T) {
	s := newUserService(t, repomanager.NewInMemoryRepositoryManager())
	ctx := context.Background()

	tests := []struct {
		name, email, password string
	}{
		{"missing email", "", "pw"},
		{"blank email", "   ", "pw"},
		{"malformed email", "alice", "pw"},
		{"missing password", "a@b.c", ""},
		{"password too long", "a@b.c", strings.Repeat("p", 73)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Register(ctx, tt.email, tt.password)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestRegister_RepoErrors(t *testing.T) {
	ctx := context.Background()

	lookupErr := newUserService(t, &fakeRepoManager{u: &fakeUsersRepo{getErr: errBoom{}}})
	_, err := lookupErr.Register(ctx, "a@b.c", "pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error looking up user: boom")

	createErr := newUserService(t, &fakeRepoManager{u: &fakeUsersRepo{getErr: common.ErrNotFound, createErr: errBoom{}}})
	_, err = createErr.Register(ctx, "a@b.c", "pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error creating user: boom")

	// lost race: pre-check passes, store rejects
	race := newUserService(t, &fakeRepoManager{u: &fakeUsersRepo{getErr: common.ErrNotFound, createErr: common.ErrDuplicateEmail}})
	_, err = race.Register(ctx, "a@b.c", "pw")
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)
}

func TestVerifyLogin_UniformFailure(t *testing.T) {
	s := newUserService(t, repomanager.NewInMemoryRepositoryManager())
	ctx := context.Background()

	_, err := s.Register(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)

	_, unknown := s.VerifyLogin(ctx, "ghost@example.com", "secret123")
	_, wrong := s.VerifyLogin(ctx, "alice@example.com", "nope")

	assert.Equal(t, common.ErrInvalidCredentials, unknown)
	assert.Equal(t, common.ErrInvalidCredentials, wrong)
	assert.Equal(t, unknown.Error(), wrong.Error())
}

func TestVerifyLogin_RejectsBytesPastBcryptLimit(t *testing.T) {
	s := newUserService(t, repomanager.NewInMemoryRepositoryManager())
	ctx := context.Background()

	password := strings.Repeat("a", maxPasswordBytes)
	_, err := s.Register(ctx, "alice@example.com", password)
	require.NoError(t, err)

	_, err = s.VerifyLogin(ctx, "alice@example.com", password)
	require.NoError(t, err)

	_, err = s.VerifyLogin(ctx, "alice@example.com", password+"-altered")
	assert.Equal(t, common.ErrInvalidCredentials, err)

	tok, err := s.Login(ctx, "alice@example.com", password+"-altered")
	assert.Nil(t, tok)
	assert.Equal(t, common.ErrInvalidCredentials, err)
}

func TestVerifyLogin_RepoError(t *testing.T) {
	s := newUserService(t, &fakeRepoManager{u: &fakeUsersRepo{getErr: errBoom{}}})

	_, err := s.VerifyLogin(context.Background(), "a@b.c", "pw")
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestVerifyLogin_CancelledWhilePoolBusy(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost, 1)
	s, err := NewUserService(repomanager.NewInMemoryRepositoryManager(), hasher, newTestTokens())
	require.NoError(t, err)

	// occupy the only slot
	require.NoError(t, hasher.sem.Acquire(context.Background(), 1))
	defer hasher.sem.Release(1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = s.VerifyLogin(ctx, "ghost@example.com", "pw")
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	tokens := newTestTokens()
	s, err := NewUserService(repomanager.NewInMemoryRepositoryManager(), NewPasswordHasher(bcrypt.MinCost, 2), tokens)
	require.NoError(t, err)
	ctx := context.Background()

	u, err := s.Register(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)

	tok, err := s.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "24h0m0s", tok.ExpiresIn)

	claims, err := tokens.Verify(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)

	_, err = s.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, err = s.Login(ctx, "", "")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestRegister_ConcurrentDistinctUsers(t *testing.T) {
	s := newUserService(t, repomanager.NewInMemoryRepositoryManager())
	ctx := context.Background()

	const n = 20
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u, err := s.Register(ctx, "user"+string(rune('a'+i))+"@example.com", "pw")
			if err == nil {
				ids <- u.ID
			}
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}
