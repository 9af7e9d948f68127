// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	deliverycontext "clipstream/internal/delivery/context"
	"clipstream/internal/domain/entity"
	domainerrors "clipstream/internal/domain/errors"
	"clipstream/internal/domain/repository"
	"clipstream/internal/domain/service"
	"clipstream/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface. It is the single place
// where credentials turn into sessions: every success path funnels through
// issueTokenPair, and every token failure collapses to ErrTokenInvalid so
// the client learns nothing about the root cause.
type authService struct {
	txManager      repository.TransactionManager
	hasher         service.PasswordHasher
	tokenService   service.TokenService
	googleVerifier service.GoogleVerifier
	logger         *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	Hasher         service.PasswordHasher
	TokenService   service.TokenService
	GoogleVerifier service.GoogleVerifier
	Logger         *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:      params.TxManager,
		hasher:         params.Hasher,
		tokenService:   params.TokenService,
		googleVerifier: params.GoogleVerifier,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new password-based account. No tokens are issued;
// the client performs a regular login afterwards.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("registration failed")
	}

	var registeredUser *entity.User

	// Execute the duplicate check and the insert within a single database
	// transaction so two concurrent registrations cannot both pass the check.
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		// An email held by any provider blocks registration.
		_, err := userRepo.FindByEmail(ctx, input.Email)
		if err == nil {
			return domainerrors.ErrEmailAlreadyRegistered.WrapMessage("registration failed")
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check existing email")
		}

		newUser := &entity.User{
			Email:        input.Email,
			Username:     input.Username,
			FullName:     input.FullName,
			PasswordHash: hashedPassword,
			IsActive:     true,
			Provider:     entity.ProviderEmail,
		}

		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.WithStack(err)
		}
		registeredUser = newUser

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Debug("User registered successfully", slog.Uint64("userID", registeredUser.ID))

	return &usecase.RegisterOutput{User: registeredUser}, nil
}

// Login authenticates with email and password and issues a token pair.
// A missing account, an account without a password, and a wrong password
// all produce the same ErrInvalidCredentials; an inactive account with a
// correct password is the one distinguishable outcome.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.TokenPairOutput, error) {
	srv.log(ctx).Debug("Starting password login", slog.String("email", input.Email))

	var output *usecase.TokenPairOutput

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := userRepo.FindByEmail(ctx, input.Email)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
			}

			return errors.Wrap(err, "failed to find user by email")
		}

		// Federated-only accounts have no password hash; same signal as a
		// wrong password.
		if !user.HasPassword() || !srv.hasher.Check(input.Password, user.PasswordHash) {
			return domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}

		// Inactive wins over the credential check only after the password
		// matched, so probing cannot map account states.
		if !user.IsActive {
			return domainerrors.ErrAccountInactive.WrapMessage("login refused")
		}

		output, err = srv.issueTokenPair(ctx, userRepo, user)

		return err
	})

	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.String("error", err.Error()))

		return nil, err
	}
	srv.log(ctx).Debug("User logged in successfully", slog.Uint64("userID", output.User.ID))

	return output, nil
}

// GoogleLogin authenticates with a Google credential, creating or linking
// the account as needed, and issues a token pair.
func (srv *authService) GoogleLogin(ctx context.Context, input *usecase.GoogleLoginInput) (*usecase.TokenPairOutput, error) {
	srv.log(ctx).Debug("Starting Google login")

	googleUser, err := srv.verifyGoogleCredential(ctx, input)
	if err != nil {
		// The upstream cause stays in the logs; the client sees one signal.
		srv.log(ctx).Warn("Google credential verification failed", slog.Any("error", err))

		return nil, domainerrors.ErrGoogleAuthFailed.WrapMessage("google login failed")
	}

	var output *usecase.TokenPairOutput

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := srv.resolveGoogleUser(ctx, userRepo, googleUser)
		if err != nil {
			return err
		}

		if !user.IsActive {
			return domainerrors.ErrAccountInactive.WrapMessage("google login refused")
		}

		output, err = srv.issueTokenPair(ctx, userRepo, user)

		return err
	})

	if err != nil {
		srv.log(ctx).Warn("Google login failed", slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Debug("Google login succeeded", slog.Uint64("userID", output.User.ID))

	return output, nil
}

// Refresh exchanges a live refresh token for a new pair. Rotation happens on
// every refresh: the presented token's hash must match the stored one, and
// the stored hash is overwritten with the new token's hash.
func (srv *authService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.TokenPairOutput, error) {
	claims, err := srv.tokenService.Validate(input.RefreshToken, service.TokenKindRefresh)
	if err != nil {
		srv.log(ctx).Debug("Refresh token rejected", slog.Any("error", err))

		return nil, domainerrors.ErrTokenInvalid.WrapMessage("refresh failed")
	}

	var output *usecase.TokenPairOutput

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := userRepo.FindByID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrTokenInvalid.WrapMessage("refresh failed")
			}

			return errors.Wrap(err, "failed to find user by id")
		}

		if !user.IsActive {
			return domainerrors.ErrTokenInvalid.WrapMessage("refresh failed")
		}

		// A cleared or different stored hash means the session was revoked
		// or already rotated; the presented token is dead either way.
		if user.RefreshTokenHash == "" || user.RefreshTokenHash != hashToken(input.RefreshToken) {
			return domainerrors.ErrTokenInvalid.WrapMessage("refresh failed")
		}

		output, err = srv.issueTokenPair(ctx, userRepo, user)

		return err
	})

	if err != nil {
		srv.log(ctx).Debug("Refresh failed", slog.Any("error", err))

		return nil, err
	}

	return output, nil
}

// ResolveBearer validates an access token and returns the active account behind it.
func (srv *authService) ResolveBearer(ctx context.Context, accessToken string) (*entity.User, error) {
	claims, err := srv.tokenService.Validate(accessToken, service.TokenKindAccess)
	if err != nil {
		srv.log(ctx).Debug("Access token rejected", slog.Any("error", err))

		return nil, domainerrors.ErrTokenInvalid.WrapMessage("bearer resolution failed")
	}

	var user *entity.User

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewUserRepository().FindByID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrTokenInvalid.WrapMessage("bearer resolution failed")
			}

			return errors.Wrap(err, "failed to find user by id")
		}

		if !found.IsActive {
			return domainerrors.ErrTokenInvalid.WrapMessage("bearer resolution failed")
		}
		user = found

		return nil
	})

	if err != nil {
		return nil, err
	}

	return user, nil
}

// Logout revokes the account's live session by clearing the stored refresh
// token hash. Logging out twice is not an error.
func (srv *authService) Logout(ctx context.Context, userID uint64) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		err := repoFactory.NewUserRepository().UpdateRefreshTokenHash(ctx, userID, "")
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}

		return err
	})

	if err != nil {
		srv.log(ctx).Error("Logout failed", slog.Uint64("userID", userID), slog.Any("error", err))

		return err
	}
	srv.log(ctx).Debug("User logged out", slog.Uint64("userID", userID))

	return nil
}

// verifyGoogleCredential dispatches to the verifier path matching the
// credential shape the client supplied.
func (srv *authService) verifyGoogleCredential(ctx context.Context, input *usecase.GoogleLoginInput) (*service.GoogleUser, error) {
	switch {
	case input.AccessToken != "":
		return srv.googleVerifier.VerifyAccessToken(ctx, input.AccessToken)
	case input.IDToken != "":
		return srv.googleVerifier.VerifyIDToken(ctx, input.IDToken)
	default:
		return nil, errors.New("no google credential supplied")
	}
}

// resolveGoogleUser maps verified Google claims onto an account, in order:
// an existing Google binding, an email match to link, or a fresh account.
func (srv *authService) resolveGoogleUser(ctx context.Context, userRepo repository.UserRepository, googleUser *service.GoogleUser) (*entity.User, error) {
	// 1. Existing binding: refresh the mirrored profile fields.
	user, err := userRepo.FindByGoogleID(ctx, googleUser.ID)
	if err == nil {
		user.FullName = googleUser.Name
		user.AvatarURL = googleUser.AvatarURL
		user.IsVerified = user.IsVerified || googleUser.EmailVerified
		if err := userRepo.Update(ctx, user); err != nil {
			return nil, errors.WithStack(err)
		}

		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to find user by google id")
	}

	// 2. Email match: link the Google identity onto the existing account.
	// The Google assertion of the address counts as verification.
	user, err = userRepo.FindByEmail(ctx, googleUser.Email)
	if err == nil {
		srv.log(ctx).Info("Linking Google identity to existing account",
			slog.Uint64("userID", user.ID))

		user.GoogleID = googleUser.ID
		user.Provider = entity.ProviderGoogle
		user.IsVerified = true
		if user.AvatarURL == "" {
			user.AvatarURL = googleUser.AvatarURL
		}
		if err := userRepo.Update(ctx, user); err != nil {
			return nil, errors.WithStack(err)
		}

		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	// 3. Fresh account with no password path.
	srv.log(ctx).Info("Creating new account from Google identity",
		slog.String("email", googleUser.Email))

	newUser := &entity.User{
		Email:      googleUser.Email,
		Username:   usernameFromEmail(googleUser.Email),
		FullName:   googleUser.Name,
		AvatarURL:  googleUser.AvatarURL,
		IsActive:   true,
		IsVerified: googleUser.EmailVerified,
		GoogleID:   googleUser.ID,
		Provider:   entity.ProviderGoogle,
	}
	if err := userRepo.Create(ctx, newUser); err != nil {
		return nil, errors.WithStack(err)
	}

	return newUser, nil
}

// issueTokenPair is the single funnel from a resolved account to a session:
// it mints the pair, rotates the stored refresh hash, and stamps last_login,
// all inside the caller's transaction.
func (srv *authService) issueTokenPair(ctx context.Context, userRepo repository.UserRepository, user *entity.User) (*usecase.TokenPairOutput, error) {
	accessToken, refreshToken, err := srv.tokenService.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token pair")
	}

	now := time.Now()
	user.RefreshTokenHash = hashToken(refreshToken)
	user.LastLogin = &now
	if err := userRepo.Update(ctx, user); err != nil {
		return nil, errors.WithStack(err)
	}

	return &usecase.TokenPairOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int64(srv.tokenService.AccessTokenDuration().Seconds()),
		User:         user,
	}, nil
}

// hashToken produces the SHA-256 hex digest stored in place of the raw
// refresh token.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

// usernameFromEmail derives a handle for accounts created from a federated
// identity, where the client never supplies one.
func usernameFromEmail(email string) string {
	for i := range len(email) {
		if email[i] == '@' {
			return email[:i]
		}
	}

	return email
}
