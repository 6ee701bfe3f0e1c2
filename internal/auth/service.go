package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrMissingAPIKeyToken is returned when a sign-in path is called without an
// API key token.
var ErrMissingAPIKeyToken = errors.New("apiKeyToken is required")

// ErrInvalidCredentials is returned for both unknown users and wrong
// passwords, so responses never reveal which one failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidAPIKey is returned when the API key token matches no stored key.
var ErrInvalidAPIKey = errors.New("invalid api key")

// dummyHash is compared against on the unknown-user path so both credential
// failures cost one bcrypt comparison.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// Service implements the credential exchange flows: sign-in, sign-up, and
// provider sign-in. It reads users and API keys and only ever writes the
// single user-creation step of the sign-up/provider paths.
type Service struct {
	users      UserRepository
	apiKeys    APIKeyRepository
	tokens     *TokenService
	bcryptCost int
}

// NewService creates a new auth Service.
func NewService(users UserRepository, apiKeys APIKeyRepository, tokens *TokenService, bcryptCost int) *Service {
	return &Service{
		users:      users,
		apiKeys:    apiKeys,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// SignIn exchanges an email/password pair plus an API key token for a signed
// session. The API key token is checked before any store lookup.
func (s *Service) SignIn(ctx context.Context, email, password, apiKeyToken string) (*SignedSession, error) {
	if apiKeyToken == "" {
		return nil, ErrMissingAPIKeyToken
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("finding user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueFor(ctx, user, apiKeyToken)
}

// SignUp creates a user record and returns its id. It does not issue a token.
func (s *Service) SignUp(ctx context.Context, name, email, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	user := &User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("creating user: %w", err)
	}

	return user.ID.String(), nil
}

// SignInProvider performs the provider-federation exchange: the upstream
// identity assertion is trusted, the user is fetched or created by email,
// and the token exchange proceeds exactly as in SignIn. Repeated calls with
// the same email resolve to the same user record.
func (s *Service) SignInProvider(ctx context.Context, name, email, password, apiKeyToken string) (*SignedSession, error) {
	if apiKeyToken == "" {
		return nil, ErrMissingAPIKeyToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing provider password: %w", err)
	}

	user, err := s.users.GetOrCreate(ctx, &User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, fmt.Errorf("getting or creating user: %w", err)
	}

	return s.issueFor(ctx, user, apiKeyToken)
}

// issueFor binds the API key's scopes to the user and issues the token.
func (s *Service) issueFor(ctx context.Context, user *User, apiKeyToken string) (*SignedSession, error) {
	key, err := s.apiKeys.FindByToken(ctx, apiKeyToken)
	if err != nil {
		if errors.Is(err, ErrAPIKeyNotFound) {
			return nil, ErrInvalidAPIKey
		}
		return nil, fmt.Errorf("finding api key: %w", err)
	}

	principal := Principal{
		ID:     user.ID.String(),
		Name:   user.Name,
		Email:  user.Email,
		Scopes: key.Scopes,
	}

	token, err := s.tokens.Issue(principal)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	return &SignedSession{
		Token: token,
		User: UserView{
			ID:    principal.ID,
			Name:  principal.Name,
			Email: principal.Email,
		},
	}, nil
}
