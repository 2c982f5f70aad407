package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yukikurage/project-tracker-api/internal/config"
	"github.com/yukikurage/project-tracker-api/internal/models"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidTokenClaims = errors.New("invalid token claims")
)

// Claims are the JWT claims issued to an authenticated user. Id and
// UserType are strings on the wire.
type Claims struct {
	UserID   string `json:"Id"`
	UserType string `json:"UserType"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 bearer tokens.
type TokenService struct {
	issuer      string
	signingKey  []byte
	ttl         time.Duration
	rememberTTL time.Duration
	now         func() time.Time
}

// NewTokenService creates a TokenService from the JWT settings.
func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{
		issuer:      cfg.Issuer,
		signingKey:  []byte(cfg.Secret),
		ttl:         cfg.TTL,
		rememberTTL: cfg.RememberTTL,
		now:         time.Now,
	}
}

// Issue signs a token for user. remember selects the long lifetime.
func (s *TokenService) Issue(user *models.User, remember bool) (string, time.Time, error) {
	ttl := s.ttl
	if remember {
		ttl = s.rememberTTL
	}

	tokenID, err := uuid.NewV7()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate token id: %w", err)
	}

	now := s.now().UTC()
	expiresAt := now.Add(ttl)
	userID := strconv.FormatUint(user.ID, 10)

	claims := Claims{
		UserID:   userID,
		UserType: strconv.Itoa(int(user.UserType)),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        tokenID.String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Identity is the caller identity carried by a verified token.
type Identity struct {
	UserID   uint64
	UserType models.UserType
}

// Parse verifies token and extracts the caller identity.
func (s *TokenService) Parse(token string) (*Identity, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	userID, err := strconv.ParseUint(claims.UserID, 10, 64)
	if err != nil || userID == 0 {
		return nil, ErrInvalidTokenClaims
	}

	userType, err := strconv.Atoi(claims.UserType)
	if err != nil || !models.UserType(userType).Valid() {
		return nil, ErrInvalidTokenClaims
	}

	return &Identity{
		UserID:   userID,
		UserType: models.UserType(userType),
	}, nil
}
