package services

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/tartacosmica/chat-backend/auth"
	"github.com/tartacosmica/chat-backend/domain"
	"github.com/tartacosmica/chat-backend/errors"
	"github.com/tartacosmica/chat-backend/repositories"
)

type IAuthService interface {
	Register(username, password string) (domain.Account, error)
	Authenticate(username, password string) (domain.Account, error)
}

type AuthService struct {
	users repositories.IUserRepository
	log   *slog.Logger
}

func NewAuthService(users repositories.IUserRepository, log *slog.Logger) IAuthService {
	return &AuthService{users: users, log: log}
}

func (s *AuthService) Register(username, password string) (domain.Account, error) {
	username = strings.TrimSpace(username)

	// 1. Validate length constraints before any expensive cryptographic
	// work or store access.
	request := auth.RegisterRequest{Username: username, Password: password}
	if err := auth.ValidateRegister(request); err != nil {
		return domain.Account{}, fmt.Errorf("%w: %v", errors.ErrValidation, err)
	}

	// 2. Hash the password here so the repository never sees a plain one.
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return domain.Account{}, fmt.Errorf("hashing failed: %w", err)
	}

	// 3. Persist; propagates ErrUsernameTaken when the name is held.
	account, err := s.users.CreateUser(username, hashedPassword)
	if err != nil {
		return domain.Account{}, err
	}

	s.log.Info("user registered", "username", account.Username)
	return account, nil
}

// Authenticate resolves the account only when the username exists and the
// password matches. Both failure modes collapse into ErrInvalidCredentials
// so a caller cannot probe for registered names.
func (s *AuthService) Authenticate(username, password string) (domain.Account, error) {
	username = strings.TrimSpace(username)

	account, err := s.users.GetUserByUsername(username)
	if err != nil {
		return domain.Account{}, errors.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(password, account.PasswordHash)
	if err != nil || !match {
		return domain.Account{}, errors.ErrInvalidCredentials
	}
	return account, nil
}
