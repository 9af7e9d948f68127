package impl

import (
	"context"
	"fmt"
	"testing"
	"time"

	"clipstream/internal/domain/entity"
	domainerrors "clipstream/internal/domain/errors"
	"clipstream/internal/domain/service"
	"clipstream/internal/infra/auth"
	"clipstream/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTokenService mints unique opaque tokens so rotation is observable
// without depending on wall-clock granularity. The real JWT codec is
// covered by its own tests.
type stubTokenService struct {
	counter int
	issued  map[string]*service.Claims
}

func newStubTokenService() *stubTokenService {
	return &stubTokenService{issued: make(map[string]*service.Claims)}
}

func (s *stubTokenService) Generate(userID uint64, email string, kind service.TokenKind) (string, error) {
	s.counter++
	token := fmt.Sprintf("%s-token-%d", kind, s.counter)
	s.issued[token] = &service.Claims{UserID: userID, Email: email, Type: kind}

	return token, nil
}

func (s *stubTokenService) GenerateTokenPair(userID uint64, email string) (string, string, error) {
	accessToken, err := s.Generate(userID, email, service.TokenKindAccess)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := s.Generate(userID, email, service.TokenKindRefresh)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (s *stubTokenService) Validate(tokenString string, expected service.TokenKind) (*service.Claims, error) {
	claims, ok := s.issued[tokenString]
	if !ok {
		return nil, errors.New("unknown token")
	}
	if claims.Type != expected {
		return nil, errors.New("unexpected token type")
	}

	return claims, nil
}

func (s *stubTokenService) AccessTokenDuration() time.Duration {
	return 30 * time.Minute
}

func (s *stubTokenService) RefreshTokenDuration() time.Duration {
	return 30 * 24 * time.Hour
}

// authServiceFixtures bundles the service under test with its collaborators.
type authServiceFixtures struct {
	txManager *fakeTxManager
	hasher    service.PasswordHasher
	tokens    *stubTokenService
	verifier  *fakeGoogleVerifier
	service   usecase.AuthUsecase
}

func newAuthServiceFixtures() *authServiceFixtures {
	txManager := newFakeTxManager()
	hasher := auth.NewBcryptHasher(newTestConfig())
	tokens := newStubTokenService()
	verifier := &fakeGoogleVerifier{}

	svc := NewAuthService(AuthServiceParams{
		TxManager:      txManager,
		Hasher:         hasher,
		TokenService:   tokens,
		GoogleVerifier: verifier,
		Logger:         newDiscardLogger(),
	})

	return &authServiceFixtures{
		txManager: txManager,
		hasher:    hasher,
		tokens:    tokens,
		verifier:  verifier,
		service:   svc,
	}
}

func (f *authServiceFixtures) storedUser(t *testing.T, id uint64) *entity.User {
	t.Helper()

	user, ok := f.txManager.factory.userRepo.users[id]
	require.True(t, ok, "user %d not persisted", id)

	return user
}

func (f *authServiceFixtures) register(t *testing.T, email, password string) *entity.User {
	t.Helper()

	output, err := f.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    email,
		Username: "tester",
		Password: password,
		FullName: "Test User",
	})
	require.NoError(t, err)

	return output.User
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	fixtures := newAuthServiceFixtures()

	output, err := fixtures.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "new@example.com",
		Username: "newbie",
		Password: "secret123",
		FullName: "New User",
	})
	require.NoError(t, err)

	user := output.User
	assert.NotZero(t, user.ID)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, entity.ProviderEmail, user.Provider)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsVerified)

	stored := fixtures.storedUser(t, user.ID)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.True(t, fixtures.hasher.Check("secret123", stored.PasswordHash))
	assert.Empty(t, stored.RefreshTokenHash, "registration must not open a session")
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	fixtures := newAuthServiceFixtures()
	fixtures.register(t, "taken@example.com", "secret123")

	_, err := fixtures.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "taken@example.com",
		Username: "other",
		Password: "different",
		FullName: "Other User",
	})
	require.ErrorIs(t, err, domainerrors.ErrEmailAlreadyRegistered)
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	fixtures := newAuthServiceFixtures()
	registered := fixtures.register(t, "login@example.com", "secret123")

	output, err := fixtures.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "login@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, output.AccessToken)
	assert.NotEmpty(t, output.RefreshToken)
	assert.NotEqual(t, output.AccessToken, output.RefreshToken)
	assert.Equal(t, "bearer", output.TokenType)
	assert.Equal(t, int64(1800), output.ExpiresIn)
	assert.Equal(t, registered.ID, output.User.ID)

	stored := fixtures.storedUser(t, registered.ID)
	assert.Equal(t, hashToken(output.RefreshToken), stored.RefreshTokenHash)
	require.NotNil(t, stored.LastLogin)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	t.Parallel()

	fixtures := newAuthServiceFixtures()
	fixtures.register(t, "login@example.com", "secret123")

	testCases := []struct {
		name  string
		input *usecase.LoginInput
	}{
		{
			name:  "wrong password",
			input: &usecase.LoginInput{Email: "login@example.com", Password: "wrong"},
		},
		{
			name:  "unknown email",
			input: &usecase.LoginInput{Email: "ghost@example.com", Password: "secret123"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := fixtures.service.Login(context.Background(), testCase.input)
			require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
		})
	}
}

func TestAuthService_Login_FederatedOnlyAccount(t *testing.T) {
	t.Parallel()

	// An account created through Google has no password hash; a password
	// login against it must look exactly like a wrong password.
	fixtures := newAuthServiceFixtures()
	fixtures.verifier.user = &service.GoogleUser{
		ID:            "google-sub-1",
		Email:         "federated@example.com",
		Name:          "Federated User",
		EmailVerified: true,
	}
	_, err := fixtures.service.GoogleLogin(context.Background(), &usecase.GoogleLoginInput{AccessToken: "opaque"})
	require.NoError(t, err)

	_, err = fixtures.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "federated@example.com",
		Password: "anything",
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	t.Parallel()

	fixtures := newAuthServiceFixtures()
	registered := fixtures.register(t, "inactive@example.com", "secret123")
	fixtures.storedUser(t, registered.ID).IsActive = false

	// Correct password against a deactivated account is the one outcome
	// that is distinguishable from bad credentials.
	_, err := fixtures.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "inactive@example.com",
		Password: "secret123",
	})
	require.ErrorIs(t, err, domainerrors.ErrAccountInactive)

	// A wrong password against the same account still reads as bad
	// credentials, not as an inactive account.
	_, err = fixtures.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "inactive@example.com",
		Password: "wrong",
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_GoogleLogin_CreatesAccount(t *testing.T) {
	t.Parallel()

	fixtures := newAuthServiceFixtures()
	fixtures.verifier.user = &service.GoogleUser{
		ID:            "google-sub-1",
		Email:         "fresh@example.com",
		Name:          "Fresh User",
		AvatarURL:     "https://example.com/avatar.png",
		EmailVerified: true,
	}

	output, err := fixtures.service.GoogleLogin(context.Background(), &usecase.GoogleLoginInput{AccessToken: "opaque"})
	require.NoError(t, err)

	user := output.User
	assert.NotZero(t, user.ID)
	assert.Equal(t, "fresh@example.com", user.Email)
	assert.Equal(t, "fresh", user.Username)
	assert.Equal(t, "google-sub-1", user.GoogleID)
	assert.Equal(t, entity.ProviderGoogle, user.Provider)
	assert.True(t, user.IsVerified)
	assert.False(t, user.HasPassword())
	assert.Equal(t, 1, fixtures.verifier.accessTokenCalls)
}

func TestAuthService_GoogleLogin_Idempotent(t *testing.T) {
	t.Parallel()

	fixtures := newAuthServiceFixtures()
	fixtures.verifier.user = &service.GoogleUser{
		ID:            "google-sub-1",
		Email:         "repeat@example.com",
		Name:          "Repeat User",
		EmailVerified: true,
	}

	first, err := fixtures.service.GoogleLogin(context.Background(), &usecase.GoogleLoginInput{IDToken: "jwtish"})
	require.NoError(t, err)

	second, err := fixtures.service.GoogleLogin(context.Background(), &usecase.GoogleLoginInput{IDToken: "jwtish"})
	require.NoError(t, err)

	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Len(t, fixtures.txManager.factory.userRepo.users, 1)
	assert.Equal(t, 2, fixtures.verifier.idTokenCalls)
}

func TestAuthService_GoogleLogin_LinksByEmail(t *testing.T) {
	t.Parallel()

	fixtures := newAuthServiceFixtures()
	registered := fixtures.register(t, "linked@example.com", "secret123")

	fixtures.verifier.user = &service.GoogleUser{
		ID:            "google-sub-9",
		Email:         "linked@example.com",
		Name:          "Linked User",
		AvatarURL:     "https://example.com/avatar.png",
		EmailVerified: true,
	}

	output, err := fixtures.service.GoogleLogin(context.Background(), &usecase.GoogleLoginInput{AccessToken: "opaque"})
	require.NoError(t, err)

	// The Google identity lands on the existing account; no second
	// principal appears for the same address.
	assert.Equal(t, registered.ID, output.User.ID)
	assert.Len(t, fixtures.txManager.factory.userRepo.users, 1)

	stored := fixtures.storedUser(t, registered.ID)
	assert.Equal(t, "google-sub-9", stored.GoogleID)
	assert.Equal(t, entity.ProviderGoogle, stored.Provider)
	assert.True(t, stored.IsVerified)
	assert.Equal(t, "https://example.com/avatar.png", stored.AvatarURL)
	assert.True(t, fixtures.hasher.Check("secret123", stored.PasswordHash), "password stays usable after linking")
}

func TestAuthService_GoogleLogin_VerifierFailure(t *testing.T) {
	t.Parallel()

	fixtures := newAuthServiceFixtures()
	fixtures.verifier.err = errors.New("upstream said no")

	_, err := fixtures.service.GoogleLogin(context.Background(), &usecase.GoogleLoginInput{AccessToken: "opaque"})
	require.ErrorIs(t, err, domainerrors.ErrGoogleAuthFailed)
	assert.Empty(t, fixtures.txManager.factory.userRepo.users)
}

func TestAuthService_GoogleLogin_NoCredential(t *testing.T) {
	t.Parallel()

	fixtures := newAuthServiceFixtures()

	_, err := fixtures.service.GoogleLogin(context.Background(), &usecase.GoogleLoginInput{})
	require.ErrorIs(t, err, domainerrors.ErrGoogleAuthFailed)
}

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	t.Parallel()

	fixtures := newAuthServiceFixtures()
	registered := fixtures.register(t, "refresh@example.com", "secret123")

	login, err := fixtures.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "refresh@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	refreshed, err := fixtures.service.Refresh(context.Background(), &usecase.RefreshInput{
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	stored := fixtures.storedUser(t, registered.ID)
	assert.Equal(t, hashToken(refreshed.RefreshToken), stored.RefreshTokenHash)

	// The consumed token is single-use; replaying it fails.
	_, err = fixtures.service.Refresh(context.Background(), &usecase.RefreshInput{
		RefreshToken: login.RefreshToken,
	})
	require.ErrorIs(t, err, domainerrors.ErrTokenInvalid)

	// The rotated token still works.
	_, err = fixtures.service.Refresh(context.Background(), &usecase.RefreshInput{
		RefreshToken: refreshed.RefreshToken,
	})
	require.NoError(t, err)
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	t.Parallel()

	fixtures := newAuthServiceFixtures()
	fixtures.register(t, "kinds@example.com", "secret123")

	login, err := fixtures.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "kinds@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = fixtures.service.Refresh(context.Background(), &usecase.RefreshInput{
		RefreshToken: login.AccessToken,
	})
	require.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestAuthService_Refresh_InactiveAccount(t *testing.T) {
	t.Parallel()

	fixtures := newAuthServiceFixtures()
	registered := fixtures.register(t, "gone@example.com", "secret123")

	login, err := fixtures.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "gone@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	fixtures.storedUser(t, registered.ID).IsActive = false

	// Deactivation reads as a dead token, not as a distinct state.
	_, err = fixtures.service.Refresh(context.Background(), &usecase.RefreshInput{
		RefreshToken: login.RefreshToken,
	})
	require.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestAuthService_ResolveBearer(t *testing.T) {
	t.Parallel()

	fixtures := newAuthServiceFixtures()
	registered := fixtures.register(t, "bearer@example.com", "secret123")

	login, err := fixtures.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "bearer@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	user, err := fixtures.service.ResolveBearer(context.Background(), login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	// A refresh token is not a bearer credential.
	_, err = fixtures.service.ResolveBearer(context.Background(), login.RefreshToken)
	require.ErrorIs(t, err, domainerrors.ErrTokenInvalid)

	_, err = fixtures.service.ResolveBearer(context.Background(), "garbage")
	require.ErrorIs(t, err, domainerrors.ErrTokenInvalid)

	fixtures.storedUser(t, registered.ID).IsActive = false
	_, err = fixtures.service.ResolveBearer(context.Background(), login.AccessToken)
	require.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestAuthService_Logout(t *testing.T) {
	t.Parallel()

	fixtures := newAuthServiceFixtures()
	registered := fixtures.register(t, "logout@example.com", "secret123")

	login, err := fixtures.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "logout@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	require.NoError(t, fixtures.service.Logout(context.Background(), registered.ID))
	assert.Empty(t, fixtures.storedUser(t, registered.ID).RefreshTokenHash)

	// Refresh after logout is dead.
	_, err = fixtures.service.Refresh(context.Background(), &usecase.RefreshInput{
		RefreshToken: login.RefreshToken,
	})
	require.ErrorIs(t, err, domainerrors.ErrTokenInvalid)

	// Logging out again, or for an account that never existed, is a no-op.
	require.NoError(t, fixtures.service.Logout(context.Background(), registered.ID))
	require.NoError(t, fixtures.service.Logout(context.Background(), 9999))
}

func TestAuthService_SessionLifecycle(t *testing.T) {
	t.Parallel()

	// Register, log in, resolve the bearer, log out, and confirm the
	// refresh token died with the session.
	fixtures := newAuthServiceFixtures()

	registered, err := fixtures.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "cycle@example.com",
		Username: "cycler",
		Password: "secret123",
		FullName: "Cycle User",
	})
	require.NoError(t, err)

	login, err := fixtures.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "cycle@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	user, err := fixtures.service.ResolveBearer(context.Background(), login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, user.ID)

	require.NoError(t, fixtures.service.Logout(context.Background(), user.ID))

	_, err = fixtures.service.Refresh(context.Background(), &usecase.RefreshInput{
		RefreshToken: login.RefreshToken,
	})
	require.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}
