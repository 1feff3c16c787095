package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"pago_backend/platform/apperr"
	"pago_backend/platform/config"
	"pago_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenPair is one issued access/refresh combination.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// Service implements login, token rotation and profile lookup.
type Service struct {
	repo *Repository
	cfg  config.AuthServiceConfig
	log  *logger.Logger
}

// NewService creates a Service.
func NewService(repo *Repository, cfg config.AuthServiceConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, log: log}
}

// Login verifies credentials and issues a token pair. Unknown emails
// and wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, email, password, clientIP string) (*Admin, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	admin, err := s.repo.GetAdminByEmail(ctx, email)
	if errors.Is(err, ErrAdminNotFound) {
		// Burn comparable time so the two failure paths look alike.
		_ = bcrypt.CompareHashAndPassword(
			[]byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"), []byte(password))
		s.log.AuthEvent("login", email, clientIP, false)
		return nil, nil, apperr.Unauthorized("credenciais inválidas")
	}
	if err != nil {
		s.log.DatabaseError("auth.get_admin", err)
		return nil, nil, apperr.Wrap(apperr.KindInternal, "não foi possível autenticar", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		s.log.AuthEvent("login", email, clientIP, false)
		return nil, nil, apperr.Unauthorized("credenciais inválidas")
	}

	pair, err := s.issuePair(ctx, admin)
	if err != nil {
		return nil, nil, err
	}

	s.log.AuthEvent("login", email, clientIP, true)
	return admin, pair, nil
}

// Refresh rotates a valid refresh token into a new pair. The old
// token is revoked first, a replayed token fails here.
func (s *Service) Refresh(ctx context.Context, refreshToken, clientIP string) (*Admin, *TokenPair, error) {
	jti, err := s.parseRefreshToken(refreshToken)
	if err != nil {
		return nil, nil, apperr.Unauthorized("sessão expirada")
	}

	adminID, err := s.repo.ConsumeRefreshToken(ctx, jti)
	if errors.Is(err, ErrTokenNotFound) {
		s.log.AuthEvent("refresh", "", clientIP, false)
		return nil, nil, apperr.Unauthorized("sessão expirada")
	}
	if err != nil {
		s.log.DatabaseError("auth.consume_refresh", err)
		return nil, nil, apperr.Wrap(apperr.KindInternal, "não foi possível renovar a sessão", err)
	}

	admin, err := s.repo.GetAdminByID(ctx, adminID)
	if err != nil {
		return nil, nil, apperr.Unauthorized("sessão expirada")
	}

	pair, err := s.issuePair(ctx, admin)
	if err != nil {
		return nil, nil, err
	}

	s.log.AuthEvent("refresh", admin.Email, clientIP, true)
	return admin, pair, nil
}

// Logout revokes the refresh token if it is still valid. An invalid
// token is not an error, logout is idempotent.
func (s *Service) Logout(ctx context.Context, refreshToken, clientIP string) {
	jti, err := s.parseRefreshToken(refreshToken)
	if err != nil {
		return
	}
	if _, err := s.repo.ConsumeRefreshToken(ctx, jti); err == nil {
		s.log.AuthEvent("logout", "", clientIP, true)
	}
}

// Profile returns the admin for an authenticated request.
func (s *Service) Profile(ctx context.Context, adminID uuid.UUID) (*Admin, error) {
	admin, err := s.repo.GetAdminByID(ctx, adminID)
	if errors.Is(err, ErrAdminNotFound) {
		return nil, apperr.Unauthorized("não autorizado")
	}
	if err != nil {
		s.log.DatabaseError("auth.profile", err)
		return nil, apperr.Wrap(apperr.KindInternal, "não foi possível carregar o perfil", err)
	}
	return admin, nil
}

func (s *Service) issuePair(ctx context.Context, admin *Admin) (*TokenPair, error) {
	now := time.Now()

	accessClaims := jwt.MapClaims{
		"sub":   admin.ID.String(),
		"email": admin.Email,
		"type":  "access",
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).
		SignedString([]byte(s.cfg.GetJWTAccessSecret()))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "não foi possível emitir o token", err)
	}

	jti := uuid.New()
	refreshExpiry := now.Add(s.cfg.GetRefreshTokenTTL())
	refreshClaims := jwt.MapClaims{
		"sub":  admin.ID.String(),
		"type": "refresh",
		"jti":  jti.String(),
		"iat":  now.Unix(),
		"exp":  refreshExpiry.Unix(),
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).
		SignedString([]byte(s.cfg.GetJWTRefreshSecret()))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "não foi possível emitir o token", err)
	}

	if err := s.repo.StoreRefreshToken(ctx, jti, admin.ID, refreshExpiry); err != nil {
		s.log.DatabaseError("auth.store_refresh", err)
		return nil, apperr.Wrap(apperr.KindInternal, "não foi possível emitir o token", err)
	}

	return &TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExpiry,
	}, nil
}

func (s *Service) parseRefreshToken(tokenString string) (uuid.UUID, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.GetJWTRefreshSecret()), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, errors.New("invalid refresh token")
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return uuid.Nil, errors.New("not a refresh token")
	}
	raw, _ := claims["jti"].(string)
	return uuid.Parse(raw)
}
