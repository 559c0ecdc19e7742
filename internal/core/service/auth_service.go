package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/crackit360/practice-platform/internal/core/domain"
	"github.com/crackit360/practice-platform/internal/core/ports"
	"github.com/crackit360/practice-platform/internal/security"
)

// AuthService implements registration, login, token refresh and the
// current-user resolver.
type AuthService struct {
	repo       ports.UserRepository
	tokens     *security.TokenService
	emailSalt  string
	refreshTTL time.Duration
	log        zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens *security.TokenService, emailSalt string, refreshTTL time.Duration, log zerolog.Logger) *AuthService {
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &AuthService{repo: repo, tokens: tokens, emailSalt: emailSalt, refreshTTL: refreshTTL, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		EmailDigest:  security.EmailDigest(s.emailSalt, in.Email),
		PasswordHash: hash,
		AuthProvider: domain.ProviderEmail,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return s.issueTokens(ctx, created)
}

func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmailDigest(ctx, security.EmailDigest(s.emailSalt, in.Email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Same error as a bad password so login never reveals whether
			// the address is registered.
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !security.VerifyPassword(in.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.AuthResult, error) {
	if refreshToken == "" {
		return nil, domain.ErrInvalidToken
	}

	digest := s.tokens.Digest(refreshToken)
	user, err := s.repo.FindByRefreshDigest(ctx, digest)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}

	stored, ok := findRefreshToken(user, digest)
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	if time.Now().UTC().After(stored.ExpiresAt) {
		_ = s.repo.RemoveRefreshToken(ctx, user.ID, digest)
		return nil, domain.ErrInvalidToken
	}

	// Rotation: the presented token is spent regardless of what follows.
	if err := s.repo.RemoveRefreshToken(ctx, user.ID, digest); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	digest := s.tokens.Digest(refreshToken)
	user, err := s.repo.FindByRefreshDigest(ctx, digest)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Already revoked or never issued; logout stays idempotent.
			return nil
		}
		return err
	}
	return s.repo.RemoveRefreshToken(ctx, user.ID, digest)
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmailDigest(ctx, security.EmailDigest(s.emailSalt, email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}

	token, err := s.tokens.IssueResetToken(user.Email)
	if err != nil {
		return err
	}

	// Mail delivery is handled outside this service; the token is logged at
	// debug level so operators can hand it out in development.
	s.log.Debug().Str("user_id", user.ID).Str("reset_token", token).Msg("reset token issued")
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	email, err := s.tokens.VerifyResetToken(resetToken)
	if err != nil {
		return err
	}

	user, err := s.repo.FindByEmailDigest(ctx, security.EmailDigest(s.emailSalt, email))
	if err != nil {
		return err
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	// Every session dies with the old password.
	if err := s.repo.ClearRefreshTokens(ctx, user.ID); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to clear refresh tokens")
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset")
	return nil
}

// CurrentUser resolves a bearer token. When the claims carry a cached name
// the identity is returned without touching the database; otherwise exactly
// one lookup by id is performed.
func (s *AuthService) CurrentUser(ctx context.Context, accessToken string) (*domain.CurrentUser, error) {
	claims, err := s.tokens.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, err
	}

	userID, _ := claims["sub"].(string)
	if userID == "" {
		return nil, domain.ErrMissingSubject
	}

	if name, _ := claims["name"].(string); name != "" {
		return &domain.CurrentUser{ID: userID, Name: name}, nil
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.CurrentUser{ID: user.ID, Name: user.Name}, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, fields map[string]any) (*domain.User, error) {
	return s.repo.UpdateFields(ctx, userID, fields)
}

func (s *AuthService) issueTokens(ctx context.Context, user *domain.User) (*ports.AuthResult, error) {
	access, err := s.tokens.IssueAccessToken(user.ID, map[string]any{
		"name":  user.Name,
		"email": user.Email,
	}, 0)
	if err != nil {
		return nil, err
	}

	refresh, err := s.tokens.IssueRefreshToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.repo.AddRefreshToken(ctx, user.ID, domain.RefreshToken{
		Digest:    s.tokens.Digest(refresh),
		ExpiresAt: now.Add(s.refreshTTL),
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}

	return &ports.AuthResult{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

func findRefreshToken(user *domain.User, digest string) (domain.RefreshToken, bool) {
	for _, rt := range user.RefreshTokens {
		if rt.Digest == digest {
			return rt, true
		}
	}
	return domain.RefreshToken{}, false
}
