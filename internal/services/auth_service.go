package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"visiontrain/internal/domain/user"
	"visiontrain/internal/repository"
	visiontrain_errors "visiontrain/pkg/errors"

	"golang.org/x/crypto/bcrypt"
)

const minCredentialLength = 5

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

type SignupInput struct {
	Username string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

// Signup validates the credentials, hashes the password and persists the new
// user. Validation failures are reported in order, first failure wins.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (user.User, error) {
	if err := validateSignup(in); err != nil {
		return user.User{}, err
	}

	_, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err == nil {
		return user.User{}, visiontrain_errors.ErrUsernameTaken
	}
	if !errors.Is(err, visiontrain_errors.ErrNotFound) {
		return user.User{}, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return user.User{}, err
	}

	newUser := &user.User{
		Username:     in.Username,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		// The unique index closes the race between the existence check above
		// and the insert.
		if errors.Is(err, visiontrain_errors.ErrAlreadyExists) {
			return user.User{}, visiontrain_errors.ErrUsernameTaken
		}
		return user.User{}, err
	}

	return *newUser, nil
}

// Login verifies the supplied credentials. An unknown username and a wrong
// password yield the same error so the response never reveals which one it
// was.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (user.User, error) {
	u, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, visiontrain_errors.ErrNotFound) {
			return user.User{}, visiontrain_errors.ErrInvalidCredentials
		}
		return user.User{}, err
	}

	if err := comparePassword(u.PasswordHash, in.Password); err != nil {
		return user.User{}, visiontrain_errors.ErrInvalidCredentials
	}

	return u, nil
}

func validateSignup(in SignupInput) error {
	// Length limits count characters, not bytes, so multibyte usernames are
	// measured the same way the client sees them.
	if utf8.RuneCountInString(in.Username) < minCredentialLength {
		return visiontrain_errors.ErrUsernameTooShort
	}
	if strings.Contains(in.Username, " ") {
		return visiontrain_errors.ErrUsernameHasSpace
	}
	if utf8.RuneCountInString(in.Password) < minCredentialLength {
		return visiontrain_errors.ErrPasswordTooShort
	}
	if strings.Contains(in.Password, " ") {
		return visiontrain_errors.ErrPasswordHasSpace
	}
	return nil
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// HTTPStatus maps service errors to response codes. Validation, conflict and
// credential errors are all plain 400s; upstream errors relay the upstream
// status.
func HTTPStatus(err error) int {
	var upstream *visiontrain_errors.UpstreamError
	switch {
	case errors.Is(err, visiontrain_errors.ErrUsernameTooShort),
		errors.Is(err, visiontrain_errors.ErrUsernameHasSpace),
		errors.Is(err, visiontrain_errors.ErrPasswordTooShort),
		errors.Is(err, visiontrain_errors.ErrPasswordHasSpace),
		errors.Is(err, visiontrain_errors.ErrUsernameTaken),
		errors.Is(err, visiontrain_errors.ErrInvalidCredentials):
		return 400
	case errors.As(err, &upstream):
		if upstream.StatusCode != 0 {
			return upstream.StatusCode
		}
		return 500
	default:
		return 500
	}
}
