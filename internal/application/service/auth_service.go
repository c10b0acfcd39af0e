package service

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/sangkips/cafe-api/internal/config"
	"github.com/sangkips/cafe-api/internal/domain/session"
	"github.com/sangkips/cafe-api/pkg/apperror"
	"github.com/sangkips/cafe-api/pkg/utils"
)

// AuthService checks the back office's single credential pair and issues
// session tokens
type AuthService struct {
	username     string
	password     string
	passwordHash string
	jwtManager   *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(cfg config.AuthConfig, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		username:     cfg.Username,
		password:     cfg.Password,
		passwordHash: cfg.PasswordHash,
		jwtManager:   jwtManager,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	AccessToken string
	ExpiresAt   time.Time
	Session     *session.Session
}

// Login authenticates the operator and returns a session token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	if !s.checkCredentials(strings.TrimSpace(input.Username), input.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtManager.GenerateSessionToken(s.username)
	if err != nil {
		return nil, apperror.NewStoreError("issue session token", err)
	}

	sess, err := s.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Session:     sess,
	}, nil
}

// ValidateToken turns a bearer token into the session it represents
func (s *AuthService) ValidateToken(token string) (*session.Session, error) {
	claims, err := s.jwtManager.ValidateSessionToken(token)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}
	if claims.Username != s.username {
		return nil, apperror.ErrInvalidToken
	}

	sess := &session.Session{
		ID:       claims.SessionID,
		Username: claims.Username,
	}
	if claims.IssuedAt != nil {
		sess.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}

// checkCredentials prefers the bcrypt hash when one is configured. An empty
// configured password never matches.
func (s *AuthService) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1

	var passOK bool
	switch {
	case s.passwordHash != "":
		passOK = utils.CheckPasswordHash(password, s.passwordHash)
	case s.password != "":
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	}

	return userOK && passOK && s.username != ""
}
