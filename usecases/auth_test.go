package usecases

import (
	"testing"
	"time"

	"saveenergy-server/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeUserRepo keeps users in a map, enforcing the email unique constraint
// the way the storage layer does.
type fakeUserRepo struct {
	byID    map[string]*entities.User
	byEmail map[string]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    map[string]*entities.User{},
		byEmail: map[string]*entities.User{},
	}
}

func (r *fakeUserRepo) Create(user *entities.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return gorm.ErrDuplicatedKey
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entities.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entities.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		FirstName:    "Anna",
		LastName:     "Muster",
		Organization: "Theater Musterstadt",
		Phone:        "+49 123 456",
		Email:        "Anna@X.com",
		Password:     "secret1",
	}
}

func newAuthUC() *AuthUseCase {
	return NewAuthUseCase(newFakeUserRepo(), []byte("test-secret"), time.Hour)
}

func TestRegister_NormalizesEmailAndHashesPassword(t *testing.T) {
	uc := newAuthUC()

	user, err := uc.Register(validRegisterInput())
	require.NoError(t, err)

	assert.Equal(t, "anna@x.com", user.Email)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "secret1", user.PasswordHash)
}

func TestRegister_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"blank firstname", func(in *RegisterInput) { in.FirstName = "  " }},
		{"blank lastname", func(in *RegisterInput) { in.LastName = "" }},
		{"blank organization", func(in *RegisterInput) { in.Organization = "" }},
		{"blank phone", func(in *RegisterInput) { in.Phone = "" }},
		{"blank email", func(in *RegisterInput) { in.Email = "" }},
		{"email without at sign", func(in *RegisterInput) { in.Email = "annax.com" }},
		{"five char password", func(in *RegisterInput) { in.Password = "12345" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			uc := newAuthUC()
			in := validRegisterInput()
			tc.mutate(&in)

			_, err := uc.Register(in)
			require.Error(t, err)

			var verr ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestRegister_SixCharPasswordAccepted(t *testing.T) {
	uc := newAuthUC()
	in := validRegisterInput()
	in.Password = "123456"

	_, err := uc.Register(in)
	assert.NoError(t, err)
}

func TestRegister_Duplicate(t *testing.T) {
	uc := newAuthUC()

	_, err := uc.Register(validRegisterInput())
	require.NoError(t, err)

	in := validRegisterInput()
	in.Email = "ANNA@x.com"
	_, err = uc.Register(in)
	assert.ErrorIs(t, err, ErrDuplicateAccount)
}

func TestLogin_SuccessAfterRegister(t *testing.T) {
	uc := newAuthUC()

	_, err := uc.Register(validRegisterInput())
	require.NoError(t, err)

	token, err := uc.Login("anna@x.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := uc.UserRepo.GetByEmail("anna@x.com")
	require.NoError(t, err)

	userID, err := uc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestLogin_GenericError(t *testing.T) {
	uc := newAuthUC()

	_, err := uc.Register(validRegisterInput())
	require.NoError(t, err)

	_, unknownErr := uc.Login("nobody@x.com", "secret1")
	_, wrongPassErr := uc.Login("anna@x.com", "wrong")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())
}

func TestValidateToken_Expired(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepo(), []byte("test-secret"), -1*time.Second)

	_, err := uc.Register(validRegisterInput())
	require.NoError(t, err)

	token, err := uc.Login("anna@x.com", "secret1")
	require.NoError(t, err)

	_, err = uc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestValidateToken_Garbage(t *testing.T) {
	uc := newAuthUC()

	_, err := uc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
