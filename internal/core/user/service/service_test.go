package userapp

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"blogpost/internal/core/apperror"
	userEntity "blogpost/internal/core/user"
	userPort "blogpost/internal/ports/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memUserRepo is an in-memory userPort.UserRepository.
type memUserRepo struct {
	byID      map[string]*userEntity.User
	createErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[string]*userEntity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *userEntity.User) (*userEntity.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	cp := *u
	r.byID[u.ID.String()] = &cp
	return u, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*userEntity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*userEntity.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (r *memUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.FindByUsername(ctx, username)
	return err == nil, nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := r.byID[id]
	if !ok {
		return apperror.ErrNotFound
	}
	u.Password = hash
	return nil
}

// sessionStoreStub is a stub for userPort.SessionStore.
type sessionStoreStub struct {
	revoked   map[string]time.Duration
	isRevoked error
}

func newSessionStoreStub() *sessionStoreStub {
	return &sessionStoreStub{revoked: map[string]time.Duration{}}
}

func (s *sessionStoreStub) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	s.revoked[tokenID] = ttl
	return nil
}

func (s *sessionStoreStub) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if s.isRevoked != nil {
		return false, s.isRevoked
	}
	_, ok := s.revoked[tokenID]
	return ok, nil
}

func newTestService() (*UserService, *memUserRepo, *sessionStoreStub) {
	repo := newMemUserRepo()
	sessions := newSessionStoreStub()
	svc := NewUserService(repo, sessions, []byte("test-secret"), time.Hour)
	svc.HashCost = bcrypt.MinCost
	return svc, repo, sessions
}

func validSignup(username string) userPort.SignupInput {
	return userPort.SignupInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Username:  username,
		Email:     username + "@example.com",
		Password:  "s3cret",
	}
}

func TestUserService_RegisterUser_Success(t *testing.T) {
	svc, repo, _ := newTestService()

	u, err := svc.RegisterUser(context.Background(), validSignup("ada"))
	require.NoError(t, err)
	assert.Equal(t, "ada", u.Username)
	assert.Equal(t, "Ada", u.FirstName)
	require.Len(t, repo.byID, 1)

	stored := repo.byID[u.ID]
	assert.NotEqual(t, "s3cret", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("s3cret")))
}

func TestUserService_RegisterUser_LastNameOptional(t *testing.T) {
	svc, _, _ := newTestService()
	in := validSignup("ada")
	in.LastName = ""

	_, err := svc.RegisterUser(context.Background(), in)
	assert.NoError(t, err)
}

func TestUserService_RegisterUser_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*userPort.SignupInput)
	}{
		{name: "first name", mutate: func(in *userPort.SignupInput) { in.FirstName = "" }},
		{name: "username", mutate: func(in *userPort.SignupInput) { in.Username = "" }},
		{name: "email", mutate: func(in *userPort.SignupInput) { in.Email = "" }},
		{name: "password", mutate: func(in *userPort.SignupInput) { in.Password = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestService()
			in := validSignup("ada")
			tt.mutate(&in)

			_, err := svc.RegisterUser(context.Background(), in)
			var ve *apperror.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "Please fill in all required fields.", ve.Message)
			assert.Empty(t, repo.byID)
		})
	}
}

func TestUserService_RegisterUser_UsernameTooLong(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.RegisterUser(context.Background(), validSignup(strings.Repeat("u", 151)))
	assert.True(t, apperror.IsValidation(err))
}

func TestUserService_RegisterUser_FieldsTooLong(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*userPort.SignupInput)
	}{
		{name: "first name", mutate: func(in *userPort.SignupInput) { in.FirstName = strings.Repeat("f", 151) }},
		{name: "last name", mutate: func(in *userPort.SignupInput) { in.LastName = strings.Repeat("l", 151) }},
		{name: "email", mutate: func(in *userPort.SignupInput) { in.Email = strings.Repeat("e", 243) + "@example.com" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestService()
			in := validSignup("ada")
			tt.mutate(&in)

			_, err := svc.RegisterUser(context.Background(), in)
			var ve *apperror.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Message, "must be at most")
			assert.Empty(t, repo.byID)
		})
	}
}

func TestUserService_RegisterUser_FieldsAtLimit(t *testing.T) {
	svc, _, _ := newTestService()
	in := validSignup("ada")
	in.FirstName = strings.Repeat("f", 150)
	in.LastName = strings.Repeat("l", 150)
	in.Email = strings.Repeat("e", 242) + "@example.com"

	_, err := svc.RegisterUser(context.Background(), in)
	assert.NoError(t, err)
}

func TestUserService_RegisterUser_Duplicate(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, validSignup("ada"))
	require.NoError(t, err)

	in := validSignup("ada")
	in.Email = "other@example.com"
	_, err = svc.RegisterUser(ctx, in)
	assert.ErrorIs(t, err, apperror.ErrDuplicateUsername)
	assert.Len(t, repo.byID, 1)
}

func TestUserService_RegisterUser_DuplicateRace(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.createErr = apperror.ErrDuplicateUsername

	_, err := svc.RegisterUser(context.Background(), validSignup("ada"))
	assert.ErrorIs(t, err, apperror.ErrDuplicateUsername)
}

func TestUserService_Authenticate(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	registered, err := svc.RegisterUser(ctx, validSignup("ada"))
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, "ada", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)

	_, err = svc.Authenticate(ctx, "ada", "wrong")
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody", "s3cret")
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestUserService_LoginAndResolve(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	registered, err := svc.RegisterUser(ctx, validSignup("ada"))
	require.NoError(t, err)

	res, err := svc.LoginUser(ctx, "ada", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Greater(t, res.ExpiresAt, time.Now().Unix())

	identity, err := svc.ResolveToken(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, identity.ID)
	assert.Equal(t, "ada", identity.Username)
}

func TestUserService_ResolveToken_Rejects(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	registered, err := svc.RegisterUser(ctx, validSignup("ada"))
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ResolveToken(ctx, "not-a-token")
		assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
	})

	t.Run("other key", func(t *testing.T) {
		other := NewUserService(repo, newSessionStoreStub(), []byte("other"), time.Hour)
		res, err := other.IssueToken(registered)
		require.NoError(t, err)
		_, err = svc.ResolveToken(ctx, res.Token)
		assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewUserService(repo, newSessionStoreStub(), []byte("test-secret"), time.Minute)
		expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
		res, err := expired.IssueToken(registered)
		require.NoError(t, err)
		_, err = svc.ResolveToken(ctx, res.Token)
		assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
	})

	t.Run("deleted identity", func(t *testing.T) {
		res, err := svc.IssueToken(&userPort.UserDTO{ID: "00000000-0000-0000-0000-000000000001"})
		require.NoError(t, err)
		_, err = svc.ResolveToken(ctx, res.Token)
		assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
	})
}

func TestUserService_ResolveToken_SessionStoreError(t *testing.T) {
	svc, _, sessions := newTestService()
	ctx := context.Background()
	registered, err := svc.RegisterUser(ctx, validSignup("ada"))
	require.NoError(t, err)
	res, err := svc.IssueToken(registered)
	require.NoError(t, err)

	storeErr := errors.New("redis down")
	sessions.isRevoked = storeErr
	_, err = svc.ResolveToken(ctx, res.Token)
	assert.ErrorIs(t, err, storeErr)
}

func TestUserService_Logout(t *testing.T) {
	svc, _, sessions := newTestService()
	ctx := context.Background()
	_, err := svc.RegisterUser(ctx, validSignup("ada"))
	require.NoError(t, err)
	res, err := svc.LoginUser(ctx, "ada", "s3cret")
	require.NoError(t, err)

	require.NoError(t, svc.LogoutUser(ctx, res.Token))
	require.Len(t, sessions.revoked, 1)
	for _, ttl := range sessions.revoked {
		assert.Greater(t, ttl, 59*time.Minute)
		assert.LessOrEqual(t, ttl, time.Hour)
	}

	_, err = svc.ResolveToken(ctx, res.Token)
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)

	// logging out with a broken token is harmless
	assert.NoError(t, svc.LogoutUser(ctx, "junk"))
}

func TestUserService_ChangePassword(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	identity, err := svc.RegisterUser(ctx, validSignup("ada"))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(ctx, nil, "s3cret", "new"), apperror.ErrUnauthenticated)
	assert.ErrorIs(t, svc.ChangePassword(ctx, identity, "wrong", "new"), apperror.ErrInvalidCredentials)
	assert.True(t, apperror.IsValidation(svc.ChangePassword(ctx, identity, "s3cret", "")))

	require.NoError(t, svc.ChangePassword(ctx, identity, "s3cret", "n3w"))

	_, err = svc.Authenticate(ctx, "ada", "s3cret")
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "ada", "n3w")
	assert.NoError(t, err)
}
