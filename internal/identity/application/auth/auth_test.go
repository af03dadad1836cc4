package auth

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/felixgeelhaar/todolist/internal/identity/domain"
	"github.com/felixgeelhaar/todolist/pkg/observability"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Save(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)
	assert.True(t, h.Verify("secret", hash))
	assert.False(t, h.Verify("wrong", hash))

	assert.Equal(t, DefaultBcryptCost, NewPasswordHasher(0).cost)
	assert.Equal(t, DefaultBcryptCost, NewPasswordHasher(99).cost)
}

func TestTokenManager_IssueAndValidate(t *testing.T) {
	m := NewTokenManager(TokenConfig{Secret: "s3cret", TTL: time.Minute})

	token, err := m.Issue("admin")
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Subject)
	assert.NotEmpty(t, claims.ID)

	again, err := m.Issue("admin")
	require.NoError(t, err)
	againClaims, err := m.Validate(again)
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, againClaims.ID)
	assert.Equal(t, time.Minute, m.TTL())
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager(TokenConfig{Secret: "s3cret", TTL: time.Minute})

	t.Run("expired", func(t *testing.T) {
		past := NewTokenManager(TokenConfig{Secret: "s3cret", TTL: time.Minute})
		past.now = func() time.Time { return time.Now().Add(-time.Hour) }
		token, err := past.Issue("admin")
		require.NoError(t, err)

		_, err = m.Validate(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenManager(TokenConfig{Secret: "other", TTL: time.Minute})
		token, err := other.Issue("admin")
		require.NoError(t, err)

		_, err = m.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong token type", func(t *testing.T) {
		claims := Claims{
			Username:  "admin",
			TokenType: "refresh",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "todolist",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("s3cret"))
		require.NoError(t, err)

		_, err = m.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Validate("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestMemorySessionStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Minute)

	token, err := store.Create(ctx, "admin")
	require.NoError(t, err)

	username, err := store.Lookup(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)

	require.NoError(t, store.Delete(ctx, token))
	_, err = store.Lookup(ctx, token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }

	token, err := store.Create(ctx, "admin")
	require.NoError(t, err)

	store.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, err = store.Lookup(ctx, token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionStore_CreateEvictsExpired(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }

	abandoned, err := store.Create(ctx, "admin")
	require.NoError(t, err)

	store.now = func() time.Time { return now.Add(2 * time.Minute) }
	fresh, err := store.Create(ctx, "x")
	require.NoError(t, err)

	store.mu.Lock()
	_, stillThere := store.sessions[abandoned]
	remaining := len(store.sessions)
	store.mu.Unlock()
	assert.False(t, stillThere, "expired session should be evicted without a lookup")
	assert.Equal(t, 1, remaining)

	username, err := store.Lookup(ctx, fresh)
	require.NoError(t, err)
	assert.Equal(t, "x", username)
}

func TestRedisSessionStore(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opt)
	defer client.Close()

	ctx := context.Background()
	store := NewRedisSessionStore(client, time.Minute)

	token, err := store.Create(ctx, "admin")
	require.NoError(t, err)

	ttl, err := client.TTL(ctx, SessionKeyPrefix+token).Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)

	username, err := store.Lookup(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)

	require.NoError(t, store.Delete(ctx, token))
	_, err = store.Lookup(ctx, token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func newTestAuthenticator(t *testing.T) (*Authenticator, *mockUserRepo) {
	t.Helper()
	repo := new(mockUserRepo)
	hasher := NewPasswordHasher(bcrypt.MinCost)
	a := NewAuthenticator(repo, hasher, NewMemorySessionStore(time.Hour),
		NewTokenManager(TokenConfig{Secret: "s3cret"}), observability.Discard())
	return a, repo
}

func storedUser(t *testing.T, a *Authenticator, id int64, name, password string) *domain.User {
	t.Helper()
	hash, err := a.hasher.Hash(password)
	require.NoError(t, err)
	username, err := domain.NewUsername(name)
	require.NoError(t, err)
	return domain.RehydrateUser(id, username, hash, time.Now())
}

func TestAuthenticator_LoginAndSession(t *testing.T) {
	a, repo := newTestAuthenticator(t)
	ctx := context.Background()
	repo.On("FindByUsername", ctx, "admin").Return(storedUser(t, a, 1, "admin", "admin"), nil)

	token, err := a.Login(ctx, "admin", "admin")
	require.NoError(t, err)

	principal, err := a.PrincipalFromSession(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "admin", principal.Username)

	require.NoError(t, a.Logout(ctx, token))
	_, err = a.PrincipalFromSession(ctx, token)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = a.PrincipalFromSession(ctx, "")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestAuthenticator_InvalidCredentials(t *testing.T) {
	a, repo := newTestAuthenticator(t)
	ctx := context.Background()
	repo.On("FindByUsername", ctx, "admin").Return(storedUser(t, a, 1, "admin", "admin"), nil)
	repo.On("FindByUsername", ctx, "ghost").Return(nil, domain.ErrUserRecordNotFound)

	_, err := a.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.Login(ctx, "ghost", "admin")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticator_Tokens(t *testing.T) {
	a, repo := newTestAuthenticator(t)
	ctx := context.Background()
	repo.On("FindByUsername", ctx, "admin").Return(storedUser(t, a, 1, "admin", "admin"), nil)

	token, err := a.IssueToken(ctx, "admin", "admin")
	require.NoError(t, err)

	principal, err := a.PrincipalFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", principal.Username)
	assert.Equal(t, int64(3600), a.TokenTTLSeconds())

	_, err = a.PrincipalFromToken("bogus")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
