package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"tapr/entity"
	"tapr/repository"
	"tapr/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	users  *repository.UserRepository
	tokens *utils.TokenService
	cost   int

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(users *repository.UserRepository, tokens *utils.TokenService, bcryptCost int) *AuthService {
	return &AuthService{users: users, tokens: tokens, cost: bcryptCost}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

const (
	minNameLen       = 2
	maxNameLen       = 60
	maxPasswordBytes = 72
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates the user and returns a session token for it.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, string, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if n := utf8.RuneCountInString(name); n < minNameLen || n > maxNameLen {
		return nil, "", ErrInvalidName
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, "", ErrPasswordTooLong
	}

	count, err := s.users.CountByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if count > 0 {
		return nil, "", ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Email:    email,
		Name:     name,
		Password: string(hashed),
		Role:     entity.RoleCustomer,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// lost a concurrent registration race on the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login never tells apart an unknown email from a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", err
		}
		// keep response time close to the wrong-password path
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// CurrentUser resolves a session token to the public user, or nil when the
// token is missing, invalid, expired or names a deleted user.
func (s *AuthService) CurrentUser(ctx context.Context, token string) *entity.PublicUser {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil
	}
	return user.Public()
}

func (s *AuthService) issue(user *entity.User) (string, error) {
	token, err := s.tokens.Issue(utils.Claims{UserID: user.ID, Email: user.Email, Name: user.Name})
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("tapr-timing-equaliser"), s.cost)
	})
	return s.dummyHash
}
