package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"forum/internal/middleware"
	"forum/internal/models"
	"forum/internal/observability"
	"forum/internal/session"
	"forum/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	TokenIssuer   = "forum-api"
	TokenAudience = "forum-client"

	RegisteredMessage = "Registration successful. Please log in."
)

// Session is an issued login. Token is presented on later requests.
type Session struct {
	Token     string    `json:"token"`
	UserID    uint      `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AuthService struct {
	users    *UserService
	sessions session.Store
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

func NewAuthService(users *UserService, sessions session.Store, secret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{
		users:    users,
		sessions: sessions,
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Register validates the input and creates the account. It does not log the user in.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	email = validation.NormalizeEmail(email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	return s.users.CreateUser(ctx, CreateUserInput{
		Username: username,
		Email:    email,
		Password: password,
	})
}

// Login checks the credentials and opens a session. Unknown email and wrong
// password fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (sess *Session, err error) {
	ctx, end := observability.StartSpan(ctx, "auth.login")
	defer func() { end(err) }()

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		observability.LoginAttempts.WithLabelValues("error").Inc()
		return nil, err
	}
	if user == nil || !s.users.CheckPassword(user, password) {
		observability.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
		return nil, models.NewInvalidCredentialsError()
	}

	sess, err = s.issue(ctx, user.ID)
	if err != nil {
		observability.LoginAttempts.WithLabelValues("error").Inc()
		return nil, err
	}

	observability.LoginAttempts.WithLabelValues("success").Inc()
	middleware.Logger.InfoContext(ctx, "User logged in", slog.Uint64("user_id", uint64(user.ID)))
	return sess, nil
}

// Logout revokes the session behind token. Unknown, expired or malformed
// tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.parse(token)
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, claims.ID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// RequireAuthenticated resolves token to a user id or fails with UNAUTHENTICATED.
func (s *AuthService) RequireAuthenticated(ctx context.Context, token string) (uint, error) {
	if token == "" {
		return 0, models.NewUnauthenticatedError("Authentication required")
	}

	claims, err := s.parse(token)
	if err != nil {
		return 0, models.NewUnauthenticatedError("Invalid or expired session")
	}
	subject, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, models.NewUnauthenticatedError("Invalid or expired session")
	}

	userID, found, err := s.sessions.Lookup(ctx, claims.ID)
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	if !found || userID != uint(subject) {
		return 0, models.NewUnauthenticatedError("Invalid or expired session")
	}
	return userID, nil
}

func (s *AuthService) issue(ctx context.Context, userID uint) (*Session, error) {
	if len(s.secret) == 0 {
		return nil, models.NewInternalError(errors.New("session secret not configured"))
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	jti := uuid.NewString()

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		Issuer:    TokenIssuer,
		Audience:  jwt.ClaimStrings{TokenAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        jti,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, models.NewInternalError(fmt.Errorf("sign token: %w", err))
	}

	if err := s.sessions.Save(ctx, jti, userID, s.ttl); err != nil {
		return nil, models.NewInternalError(err)
	}

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int64("user.id", int64(userID)))
	return &Session{Token: token, UserID: userID, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithAudience(TokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, errors.New("token has no session id")
	}
	return claims, nil
}
