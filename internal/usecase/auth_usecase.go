package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"jaggery_shop/internal/domain"
	"jaggery_shop/pkg/token"

	"github.com/sirupsen/logrus"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

var _ domain.AuthUseCase = (*authUseCase)(nil)

type authUseCase struct {
	userRepo domain.UserRepository
	tokens   *token.Manager
	log      *logrus.Logger
}

func NewAuthUseCase(repo domain.UserRepository, tokens *token.Manager, logger *logrus.Logger) domain.AuthUseCase {
	return &authUseCase{
		userRepo: repo,
		tokens:   tokens,
		log:      logger,
	}
}

func (uc *authUseCase) Register(ctx context.Context, name, email, password, phone string) (*domain.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	phone = strings.TrimSpace(phone)

	uc.log.Infof("Use Case: Attempting registration for email: %s", email)

	if name == "" {
		return nil, "", errors.New("user name cannot be empty")
	}
	if !isValidEmail(email) {
		uc.log.Warnf("Use Case: Registration failed - invalid email format: %s", email)
		return nil, "", errors.New("invalid email format")
	}
	if err := validatePassword(password); err != nil {
		uc.log.Warnf("Use Case: Registration failed - password validation error: %v", err)
		return nil, "", err
	}
	if phone != "" && !isValidPhone(phone) {
		return nil, "", errors.New("invalid phone number format")
	}

	hash, err := hashPassword(password)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to hash password for %s: %v", email, err)
		return nil, "", fmt.Errorf("internal error processing password: %w", err)
	}

	newUser := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        phone,
		Role:         domain.RoleCustomer,
	}

	createdUser, err := uc.userRepo.CreateUser(ctx, newUser)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create user %s: %v", email, err)
		return nil, "", err
	}

	signed, err := uc.tokens.Issue(createdUser)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to issue token for new user %s: %v", createdUser.ID, err)
		return nil, "", fmt.Errorf("could not issue session token: %w", err)
	}

	uc.log.Infof("Use Case: User registered successfully. ID: %s, Email: %s", createdUser.ID, createdUser.Email)
	return createdUser, signed, nil
}

func (uc *authUseCase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	uc.log.Infof("Use Case: Attempting authentication for email: %s", email)

	if !isValidEmail(email) || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	user, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			uc.log.Warnf("Use Case: Auth failed - user not found: %s", email)
			return nil, "", ErrInvalidCredentials
		}
		uc.log.Errorf("Use Case: Error retrieving user %s during auth: %v", email, err)
		return nil, "", fmt.Errorf("failed to retrieve user: %w", err)
	}

	if !checkPassword(user.PasswordHash, password) {
		uc.log.Warnf("Use Case: Auth failed - incorrect password for user %s (ID: %s)", email, user.ID)
		return nil, "", ErrInvalidCredentials
	}

	signed, err := uc.tokens.Issue(user)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to issue token for user %s: %v", user.ID, err)
		return nil, "", fmt.Errorf("could not issue session token: %w", err)
	}

	uc.log.Infof("Use Case: Authentication successful for user %s (ID: %s)", email, user.ID)
	return user, signed, nil
}

func (uc *authUseCase) UpdateProfile(ctx context.Context, userID, name, phone string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)

	if name == "" || phone == "" {
		return nil, errors.New("name and phone are required")
	}
	if !isValidPhone(phone) {
		return nil, errors.New("please enter a valid phone number")
	}

	uc.log.Infof("Use Case: Updating profile for user %s", userID)
	user, err := uc.userRepo.UpdateProfile(ctx, userID, name, phone)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to update profile for user %s: %v", userID, err)
		return nil, err
	}
	return user, nil
}

func (uc *authUseCase) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return uc.userRepo.GetUserByID(ctx, userID)
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// phonePattern mirrors the relaxed storefront rule: digits with optional
// leading +, spaces and dashes, 8-20 characters.
var phonePattern = regexp.MustCompile(`^\+?[0-9\-\s]{8,20}$`)

func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func isValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return errors.New("password must contain both letters and digits")
	}
	return nil
}
