package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/stemsi/sekolah-backend/internal/config"
	"github.com/stemsi/sekolah-backend/internal/model"
	"github.com/stemsi/sekolah-backend/internal/rbac"
	"github.com/stemsi/sekolah-backend/internal/repository"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrSessionRevoked     = errors.New("session revoked or expired")
	ErrTokenExpired       = errors.New("token expired")
)

// Claims extends JWT standard claims with app-specific fields. The role is
// fixed for the lifetime of the token; a role change revokes the session.
type Claims struct {
	jwt.RegisteredClaims
	UserID int        `json:"user_id"`
	Name   string     `json:"name"`
	Role   model.Role `json:"role"`
}

// EffectiveRole is the role authorization decisions use. Values outside the
// closed role set resolve to USER.
func (c *Claims) EffectiveRole() model.Role {
	if c == nil {
		return model.RoleUser
	}
	return model.ParseRole(string(c.Role))
}

// LoginResult is returned after a successful login.
type LoginResult struct {
	Token       string             `json:"token"`
	ExpiresAt   time.Time          `json:"expires_at"`
	User        *model.User        `json:"user"`
	Permissions rbac.PermissionSet `json:"permissions"`
}

// AuthService handles authentication, JWT, and session management.
type AuthService struct {
	cfg      *config.Config
	rdb      redis.UniversalClient
	users    repository.UserRepository
	resolver *rbac.Resolver
	log      zerolog.Logger
	now      func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	cfg *config.Config,
	rdb redis.UniversalClient,
	users repository.UserRepository,
	resolver *rbac.Resolver,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		cfg:      cfg,
		rdb:      rdb,
		users:    users,
		resolver: resolver,
		log:      log.With().Str("component", "auth_service").Logger(),
		now:      time.Now,
	}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Login verifies email + password and opens a new session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if err := s.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	token, claims, err := s.IssueToken(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		s.log.Warn().Err(err).Int("user_id", user.ID).Msg("failed to record last login")
	}

	return &LoginResult{
		Token:       token,
		ExpiresAt:   claims.ExpiresAt.Time,
		User:        user,
		Permissions: s.resolver.Resolve(claims.EffectiveRole()),
	}, nil
}

// IssueToken creates a JWT for user and registers the session in Redis.
func (s *AuthService) IssueToken(ctx context.Context, user *model.User) (string, *Claims, error) {
	jti := uuid.New().String()
	now := s.now()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   strconv.Itoa(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	// Store session in Redis with same expiry as JWT, and index it under the
	// user so every session can be revoked at once.
	indexKey := config.CacheKey.UserSessionsKey(user.ID)
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, config.CacheKey.SessionKey(jti), user.ID, s.cfg.JWTExpiry)
		pipe.SAdd(ctx, indexKey, jti)
		pipe.Expire(ctx, indexKey, s.cfg.JWTExpiry)
		return nil
	})
	if err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	return signed, claims, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// ValidateSession checks that the token's session is still registered in Redis.
func (s *AuthService) ValidateSession(ctx context.Context, claims *Claims) error {
	stored, err := s.rdb.Get(ctx, config.CacheKey.SessionKey(claims.ID)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrSessionRevoked
		}
		return fmt.Errorf("check session: %w", err)
	}
	if stored != claims.UserID {
		return ErrSessionRevoked
	}
	return nil
}

// Logout ends the session the claims belong to.
func (s *AuthService) Logout(ctx context.Context, claims *Claims) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, config.CacheKey.SessionKey(claims.ID))
		pipe.SRem(ctx, config.CacheKey.UserSessionsKey(claims.UserID), claims.ID)
		return nil
	})
	return err
}

// RevokeUserSessions ends every session of a user and returns how many were
// still live.
func (s *AuthService) RevokeUserSessions(ctx context.Context, userID int) (int, error) {
	indexKey := config.CacheKey.UserSessionsKey(userID)
	jtis, err := s.rdb.SMembers(ctx, indexKey).Result()
	if err != nil {
		return 0, fmt.Errorf("list sessions: %w", err)
	}

	keys := make([]string, 0, len(jtis)+1)
	for _, jti := range jtis {
		keys = append(keys, config.CacheKey.SessionKey(jti))
	}

	var removed *redis.IntCmd
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(keys) > 0 {
			removed = pipe.Del(ctx, keys...)
		}
		pipe.Del(ctx, indexKey)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("revoke sessions: %w", err)
	}

	n := 0
	if removed != nil {
		n = int(removed.Val())
	}
	s.log.Info().Int("user_id", userID).Int("sessions", n).Msg("user sessions revoked")
	return n, nil
}

// Permissions resolves the permission set carried by a session.
func (s *AuthService) Permissions(claims *Claims) rbac.PermissionSet {
	return s.resolver.Resolve(claims.EffectiveRole())
}

// Profile loads the account behind a session.
func (s *AuthService) Profile(ctx context.Context, claims *Claims) (*model.User, error) {
	return s.users.GetByID(ctx, claims.UserID)
}
