package usecases

import (
	"errors"
	"strings"
	"time"

	"saveenergy-server/auth"
	"saveenergy-server/entities"
	"saveenergy-server/repositories"

	"gorm.io/gorm"
)

var (
	// ErrDuplicateAccount is returned when the email already maps to a user.
	ErrDuplicateAccount = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUnauthorized is returned for missing, malformed or stale tokens.
	ErrUnauthorized = errors.New("not authenticated")
)

// ValidationError marks a registration input the client must fix.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

type RegisterInput struct {
	FirstName    string `json:"firstname"`
	LastName     string `json:"lastname"`
	Organization string `json:"organization"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Password     string `json:"password"`
}

type AuthUseCase struct {
	UserRepo repositories.UserRepository
	Secret   []byte
	TokenTTL time.Duration
}

func NewAuthUseCase(userRepo repositories.UserRepository, secret []byte, tokenTTL time.Duration) *AuthUseCase {
	return &AuthUseCase{
		UserRepo: userRepo,
		Secret:   secret,
		TokenTTL: tokenTTL,
	}
}

// Register creates a new account. The password is stored as a bcrypt hash,
// never in plaintext. No session is issued; the caller logs in separately.
func (uc *AuthUseCase) Register(in RegisterInput) (*entities.User, error) {
	required := []struct {
		name  string
		value string
	}{
		{"firstname", in.FirstName},
		{"lastname", in.LastName},
		{"organization", in.Organization},
		{"phone", in.Phone},
		{"email", in.Email},
		{"password", in.Password},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return nil, ValidationError(f.name + " is required")
		}
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !strings.Contains(email, "@") {
		return nil, ValidationError("invalid email address")
	}
	if len(in.Password) < 6 {
		return nil, ValidationError("password must be at least 6 characters")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Organization: strings.TrimSpace(in.Organization),
		Phone:        strings.TrimSpace(in.Phone),
	}
	if err := uc.UserRepo.Create(user); err != nil {
		// The unique index on email decides races between concurrent
		// registrations; the loser surfaces as a duplicate.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateAccount
		}
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a fresh session token.
func (uc *AuthUseCase) Login(email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := uc.UserRepo.GetByEmail(email)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if !auth.CheckPasswordHash(user.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	return auth.GenerateToken(user.ID, uc.Secret, uc.TokenTTL)
}

// ValidateToken resolves a bearer token to the owning user's id. A token
// that no longer maps to an existing user is as invalid as a forged one.
func (uc *AuthUseCase) ValidateToken(token string) (string, error) {
	userID, err := auth.GetUserIDFromToken(token, uc.Secret)
	if err != nil {
		return "", ErrUnauthorized
	}
	if _, err := uc.UserRepo.GetByID(userID); err != nil {
		return "", ErrUnauthorized
	}
	return userID, nil
}
