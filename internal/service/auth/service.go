package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/afrowave/api/internal/config"
	"github.com/afrowave/api/internal/model/user"
	"github.com/afrowave/api/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrEmailRequired      = errors.New("a valid email is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrNameRequired       = errors.New("name is required")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const minPasswordLength = 8

// Identity is the verified claim set carried by a bearer token.
type Identity struct {
	UserID      string
	Email       string
	Name        string
	CreatorType user.CreatorType
}

// SignUpInput carries the signup form fields.
type SignUpInput struct {
	Email       string
	Password    string
	Name        string
	CreatorType string
	Bio         string
	Age         int
}

// ProfileUpdate carries the mutable profile fields. Nil means unchanged.
type ProfileUpdate struct {
	Name        *string
	CreatorType *string
	Bio         *string
	Age         *int
}

// Service implements credential handling: password hashing, token issuance
// and verification, and the account lifecycle over the user directory.
type Service struct {
	users  repository.Users
	secret []byte
	ttl    time.Duration
}

// NewService wires the credential service to the user directory.
func NewService(users repository.Users, cfg config.AuthConfig) *Service {
	return &Service{
		users:  users,
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
	}
}

// SignUp validates the form, hashes the password, creates the account and
// returns a signed token for it.
func (s *Service) SignUp(ctx context.Context, input SignUpInput) (string, user.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !emailPattern.MatchString(email) {
		return "", user.User{}, ErrEmailRequired
	}
	if len(input.Password) < minPasswordLength {
		return "", user.User{}, ErrPasswordTooShort
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return "", user.User{}, ErrNameRequired
	}

	creatorType, err := user.ParseCreatorType(input.CreatorType)
	if err != nil {
		return "", user.User{}, err
	}
	if err := user.ValidateBio(input.Bio); err != nil {
		return "", user.User{}, err
	}
	if err := user.ValidateAge(input.Age); err != nil {
		return "", user.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", user.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.users.Create(ctx, user.User{
		Email:       email,
		Password:    string(hash),
		Name:        name,
		CreatorType: creatorType,
		Bio:         strings.TrimSpace(input.Bio),
		Age:         input.Age,
	})
	if err != nil {
		return "", user.User{}, err
	}

	token, err := s.IssueToken(created)
	if err != nil {
		return "", user.User{}, err
	}
	return token, created, nil
}

// LogIn verifies the password against the stored hash and issues a token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) LogIn(ctx context.Context, email, password string) (string, user.User, error) {
	u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, repository.ErrUserNotFound) {
		return "", user.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", user.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return "", user.User{}, ErrInvalidCredentials
	}

	token, err := s.IssueToken(u)
	if err != nil {
		return "", user.User{}, err
	}
	return token, u, nil
}

// IssueToken signs an HS256 token carrying the identity claims.
func (s *Service) IssueToken(u user.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"userId":      u.ID.Hex(),
		"email":       u.Email,
		"name":        u.Name,
		"creatorType": string(u.CreatorType),
		"iat":         now.Unix(),
		"exp":         now.Add(s.ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates a bearer token, returning the identity
// claims it carries.
func (s *Service) VerifyToken(tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	userID, _ := claims["userId"].(string)
	if userID == "" {
		return Identity{}, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	creatorType, _ := claims["creatorType"].(string)

	return Identity{
		UserID:      userID,
		Email:       email,
		Name:        name,
		CreatorType: user.CreatorType(creatorType),
	}, nil
}

// Profile returns the current account document for the identity.
func (s *Service) Profile(ctx context.Context, userID string) (user.User, error) {
	return s.users.FindByID(ctx, userID)
}

// UpdateProfile applies the supplied field changes after re-validating them.
func (s *Service) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (user.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return user.User{}, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return user.User{}, ErrNameRequired
		}
		u.Name = name
	}
	if update.CreatorType != nil {
		creatorType, err := user.ParseCreatorType(*update.CreatorType)
		if err != nil {
			return user.User{}, err
		}
		u.CreatorType = creatorType
	}
	if update.Bio != nil {
		if err := user.ValidateBio(*update.Bio); err != nil {
			return user.User{}, err
		}
		u.Bio = strings.TrimSpace(*update.Bio)
	}
	if update.Age != nil {
		if err := user.ValidateAge(*update.Age); err != nil {
			return user.User{}, err
		}
		u.Age = *update.Age
	}

	if err := s.users.Update(ctx, u); err != nil {
		return user.User{}, err
	}
	return u, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *Service) ChangePassword(ctx context.Context, userID, current, next string) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(current)) != nil {
		return ErrInvalidCredentials
	}
	if len(next) < minPasswordLength {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	u.Password = string(hash)
	return s.users.Update(ctx, u)
}

// DeleteAccount removes the account document.
func (s *Service) DeleteAccount(ctx context.Context, userID string) error {
	return s.users.Delete(ctx, userID)
}
