package auth_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/filmoteca/filmoteca/internal/auth"
)

const testBcryptCost = bcrypt.MinCost // low cost for fast tests

type fakeUserRepo struct {
	byEmail     map[string]*auth.User
	findCalls   int
	createCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*auth.User{}}
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	f.findCalls++
	if u, ok := f.byEmail[email]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, auth.ErrUserNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, u *auth.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return auth.ErrEmailTaken
	}
	f.createCalls++
	u.ID = uuid.New()
	stored := *u
	f.byEmail[u.Email] = &stored
	return nil
}

func (f *fakeUserRepo) GetOrCreate(_ context.Context, u *auth.User) (*auth.User, error) {
	if existing, ok := f.byEmail[u.Email]; ok {
		copied := *existing
		return &copied, nil
	}
	f.createCalls++
	u.ID = uuid.New()
	stored := *u
	f.byEmail[u.Email] = &stored
	copied := stored
	return &copied, nil
}

type fakeAPIKeyRepo struct {
	byToken   map[string]*auth.APIKey
	findCalls int
}

func newFakeAPIKeyRepo(keys ...*auth.APIKey) *fakeAPIKeyRepo {
	f := &fakeAPIKeyRepo{byToken: map[string]*auth.APIKey{}}
	for _, k := range keys {
		f.byToken[k.Token] = k
	}
	return f
}

func (f *fakeAPIKeyRepo) FindByToken(_ context.Context, token string) (*auth.APIKey, error) {
	f.findCalls++
	if k, ok := f.byToken[token]; ok {
		return k, nil
	}
	return nil, auth.ErrAPIKeyNotFound
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string) *auth.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), testBcryptCost)
	require.NoError(t, err)

	u := &auth.User{
		ID:           uuid.New(),
		Name:         "Grace Hopper",
		Email:        email,
		PasswordHash: string(hash),
	}
	repo.byEmail[email] = u
	return u
}

func setupService(t *testing.T, users *fakeUserRepo, keys *fakeAPIKeyRepo) (*auth.Service, *auth.TokenService) {
	t.Helper()

	tokens, err := auth.NewTokenService(testSecret)
	require.NoError(t, err)

	return auth.NewService(users, keys, tokens, testBcryptCost), tokens
}

// --- SignIn ---

func TestSignIn_ScopesComeFromAPIKey(t *testing.T) {
	users := newFakeUserRepo()
	u := seedUser(t, users, "grace@example.com", "s3cret-pass")
	keys := newFakeAPIKeyRepo(&auth.APIKey{Token: "key-token", Scopes: []string{"read:movies", "create:movies"}})
	svc, tokens := setupService(t, users, keys)

	session, err := svc.SignIn(context.Background(), "grace@example.com", "s3cret-pass", "key-token")
	require.NoError(t, err)

	claims, err := tokens.Verify(session.Token)
	require.NoError(t, err)

	assert.Equal(t, []string{"read:movies", "create:movies"}, claims.Scopes)
	assert.Equal(t, u.ID.String(), claims.Subject)
	assert.Equal(t, u.Name, claims.Name)
	assert.Equal(t, u.Email, claims.Email)

	assert.Equal(t, u.ID.String(), session.User.ID)
	assert.Equal(t, u.Email, session.User.Email)
}

func TestSignIn_WrongPassword(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "grace@example.com", "s3cret-pass")
	keys := newFakeAPIKeyRepo(&auth.APIKey{Token: "key-token"})
	svc, _ := setupService(t, users, keys)

	_, err := svc.SignIn(context.Background(), "grace@example.com", "wrong", "key-token")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestSignIn_UnknownEmailIndistinguishable(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "grace@example.com", "s3cret-pass")
	keys := newFakeAPIKeyRepo(&auth.APIKey{Token: "key-token"})
	svc, _ := setupService(t, users, keys)

	_, unknownErr := svc.SignIn(context.Background(), "nobody@example.com", "whatever", "key-token")
	_, wrongErr := svc.SignIn(context.Background(), "grace@example.com", "wrong", "key-token")

	assert.ErrorIs(t, unknownErr, auth.ErrInvalidCredentials)
	assert.Equal(t, wrongErr, unknownErr, "unknown user and wrong password must be indistinguishable")
}

func TestSignIn_MissingAPIKeyTokenShortCircuits(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "grace@example.com", "s3cret-pass")
	keys := newFakeAPIKeyRepo()
	svc, _ := setupService(t, users, keys)

	_, err := svc.SignIn(context.Background(), "grace@example.com", "s3cret-pass", "")
	assert.ErrorIs(t, err, auth.ErrMissingAPIKeyToken)
	assert.Zero(t, users.findCalls, "no user lookup before the apiKeyToken check")
	assert.Zero(t, keys.findCalls, "no api key lookup before the apiKeyToken check")
}

func TestSignIn_UnknownAPIKey(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "grace@example.com", "s3cret-pass")
	keys := newFakeAPIKeyRepo()
	svc, _ := setupService(t, users, keys)

	_, err := svc.SignIn(context.Background(), "grace@example.com", "s3cret-pass", "missing-key")
	assert.ErrorIs(t, err, auth.ErrInvalidAPIKey)
}

// --- SignUp ---

func TestSignUp_CreatesUserWithHashedPassword(t *testing.T) {
	users := newFakeUserRepo()
	svc, _ := setupService(t, users, newFakeAPIKeyRepo())

	id, err := svc.SignUp(context.Background(), "Ada", "ada@example.com", "longenoughpass")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	stored := users.byEmail["ada@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "longenoughpass", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("longenoughpass")))
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "ada@example.com", "s3cret-pass")
	svc, _ := setupService(t, users, newFakeAPIKeyRepo())

	_, err := svc.SignUp(context.Background(), "Ada", "ada@example.com", "longenoughpass")
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
}

// --- SignInProvider ---

func TestSignInProvider_Idempotent(t *testing.T) {
	users := newFakeUserRepo()
	keys := newFakeAPIKeyRepo(&auth.APIKey{Token: "key-token", Scopes: []string{"read:movies"}})
	svc, _ := setupService(t, users, keys)

	first, err := svc.SignInProvider(context.Background(), "Ada", "ada@example.com", "provider-id-1", "key-token")
	require.NoError(t, err)

	second, err := svc.SignInProvider(context.Background(), "Ada", "ada@example.com", "provider-id-1", "key-token")
	require.NoError(t, err)

	assert.Equal(t, 1, users.createCalls, "repeated provider sign-in must not create duplicate users")
	assert.Equal(t, first.User.ID, second.User.ID)
}

func TestSignInProvider_MissingAPIKeyTokenShortCircuits(t *testing.T) {
	users := newFakeUserRepo()
	keys := newFakeAPIKeyRepo()
	svc, _ := setupService(t, users, keys)

	_, err := svc.SignInProvider(context.Background(), "Ada", "ada@example.com", "provider-id-1", "")
	assert.ErrorIs(t, err, auth.ErrMissingAPIKeyToken)
	assert.Zero(t, users.createCalls)
	assert.Zero(t, keys.findCalls)
}

func TestSignInProvider_UnknownAPIKey(t *testing.T) {
	users := newFakeUserRepo()
	keys := newFakeAPIKeyRepo()
	svc, _ := setupService(t, users, keys)

	_, err := svc.SignInProvider(context.Background(), "Ada", "ada@example.com", "provider-id-1", "missing-key")
	assert.ErrorIs(t, err, auth.ErrInvalidAPIKey)
}
