// Package google implements the federated identity verifier against
// Google's OAuth endpoints.
package google

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"clipstream/config"
	"clipstream/internal/domain/service"

	"github.com/pkg/errors"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// Verifier validates Google-issued credentials. The primary path
// introspects a provider access token against the userinfo endpoint; the
// alternative path verifies an ID token locally.
type Verifier struct {
	clientID    string
	userInfoURL string
	httpClient  *http.Client
	logger      *slog.Logger
}

// NewVerifier creates a Verifier from configuration.
func NewVerifier(cfg *config.Config, logger *slog.Logger) service.GoogleVerifier {
	timeout := 5 * time.Second
	clientID := ""
	if cfg.GoogleOAuth != nil {
		if cfg.GoogleOAuth.Timeout > 0 {
			timeout = cfg.GoogleOAuth.Timeout
		}
		clientID = cfg.GoogleOAuth.ClientID
	}

	return &Verifier{
		clientID:    clientID,
		userInfoURL: googleUserInfoURL,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

// VerifyAccessToken introspects a Google OAuth access token via the userinfo
// endpoint. Any upstream failure yields a nil user; the caller decides what
// that means for the request.
func (v *Verifier) VerifyAccessToken(ctx context.Context, accessToken string) (*service.GoogleUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.userInfoURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create user info request")
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		v.logger.Warn("Google userinfo request failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to get user info")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		v.logger.Warn("Google userinfo rejected token",
			slog.Int("status", resp.StatusCode))

		return nil, errors.Errorf("user info request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var googleUser struct {
		ID            string `json:"id"`
		Email         string `json:"email"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
		VerifiedEmail bool   `json:"verified_email"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		return nil, errors.Wrap(err, "failed to decode user info response")
	}

	if googleUser.ID == "" || googleUser.Email == "" {
		return nil, errors.New("user info response missing id or email")
	}

	return &service.GoogleUser{
		ID:            googleUser.ID,
		Email:         googleUser.Email,
		Name:          googleUser.Name,
		AvatarURL:     googleUser.Picture,
		EmailVerified: googleUser.VerifiedEmail,
	}, nil
}
