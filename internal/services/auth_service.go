package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
)

var (
	ErrEmailTaken           = errors.New("email is already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrPasswordTooLong      = errors.New("password too long")
	ErrFullNameRequired     = errors.New("full name is required")
	ErrEmailRequired        = errors.New("email is required")
	ErrInvalidUserType      = errors.New("userType must be either 1 (Project Manager) or 2 (Programmer)")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToIssueToken   = errors.New("failed to issue token")
)

// AuthService handles registration, login and identity lookups.
type AuthService struct {
	log      zerolog.Logger
	userRepo repository.UserRepository
	tokens   *TokenService
	now      func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(log zerolog.Logger, userRepo repository.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		log:      log,
		userRepo: userRepo,
		tokens:   tokens,
		now:      time.Now,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	FullName string
	Email    string
	UserType models.UserType
	Password string
}

// Register creates a new user. The user type cannot change afterwards.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return nil, ErrFullNameRequired
	}
	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if !input.UserType.Valid() {
		return nil, ErrInvalidUserType
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if len(input.Password) > constants.MaxPasswordLength {
		return nil, ErrPasswordTooLong
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hashedPassword),
		UserType:     input.UserType,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info().
		Uint64("user_id", user.ID).
		Int("user_type", int(user.UserType)).
		Msg("user registered")
	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email      string
	Password   string
	RememberMe bool
}

// LoginResult is a signed token together with the user it identifies.
type LoginResult struct {
	Token      string
	User       *models.User
	Expiration time.Time
}

// Login verifies credentials, stamps the login time and issues a token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		s.log.Warn().
			Uint64("user_id", user.ID).
			Msg("password mismatch")
		return nil, ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}
	user.LastLoginAt = &now

	token, expiration, err := s.tokens.Issue(user, input.RememberMe)
	if err != nil {
		s.log.Error().
			Err(err).
			Uint64("user_id", user.ID).
			Msg("failed to issue token")
		return nil, ErrFailedToIssueToken
	}

	s.log.Info().
		Uint64("user_id", user.ID).
		Bool("remember_me", input.RememberMe).
		Msg("user logged in")
	return &LoginResult{
		Token:      token,
		User:       user,
		Expiration: expiration,
	}, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
