package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/feedline/feedline/internal/model"
	"github.com/feedline/feedline/internal/testutil"
)

// MockTokenManager mocks the TokenManager interface
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateToken(userID uuid.UUID, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}

func (m *MockTokenManager) ParseToken(token string) (model.Identity, error) {
	args := m.Called(token)
	return args.Get(0).(model.Identity), args.Error(1)
}

func newTestAuth(users *MockUserStore, tokens *MockTokenManager) *Auth {
	return NewAuth(users, tokens, testutil.MakeNoopLogger())
}

func TestAuth_SignUp(t *testing.T) {
	tests := []struct {
		name      string
		input     SignUpInput
		mockSetup func(*MockUserStore)
		wantKind  model.ErrorKind
	}{
		{
			name:  "successful signup",
			input: SignUpInput{Email: "new@example.com", Password: "secret", Name: "Maria"},
			mockSetup: func(users *MockUserStore) {
				users.On("GetByEmail", mock.Anything, "new@example.com").Return(model.User{}, model.ErrNotFound)
				users.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
					return u.Email == "new@example.com" && u.Name == "Maria" && u.PasswordHash != "secret"
				})).Return(model.User{ID: uuid.New(), Email: "new@example.com", Name: "Maria"}, nil)
			},
		},
		{
			name:      "invalid email",
			input:     SignUpInput{Email: "not-an-email", Password: "secret", Name: "Maria"},
			mockSetup: func(users *MockUserStore) {},
			wantKind:  model.KindValidation,
		},
		{
			name:      "password too short",
			input:     SignUpInput{Email: "new@example.com", Password: "abc", Name: "Maria"},
			mockSetup: func(users *MockUserStore) {},
			wantKind:  model.KindValidation,
		},
		{
			name:      "empty name",
			input:     SignUpInput{Email: "new@example.com", Password: "secret", Name: "   "},
			mockSetup: func(users *MockUserStore) {},
			wantKind:  model.KindValidation,
		},
		{
			name:  "email already taken",
			input: SignUpInput{Email: "taken@example.com", Password: "secret", Name: "Maria"},
			mockSetup: func(users *MockUserStore) {
				users.On("GetByEmail", mock.Anything, "taken@example.com").Return(model.User{ID: uuid.New()}, nil)
			},
			wantKind: model.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &MockUserStore{}
			tt.mockSetup(users)

			svc := newTestAuth(users, &MockTokenManager{})
			user, err := svc.SignUp(context.Background(), tt.input)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, model.KindOf(err))
				users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.input.Email, user.Email)
		})
	}
}

func TestAuth_SignUp_HashesPassword(t *testing.T) {
	users := &MockUserStore{}
	users.On("GetByEmail", mock.Anything, "new@example.com").Return(model.User{}, model.ErrNotFound)

	var storedHash string
	users.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		storedHash = args.Get(1).(model.User).PasswordHash
	}).Return(model.User{ID: uuid.New()}, nil)

	svc := newTestAuth(users, &MockTokenManager{})
	_, err := svc.SignUp(context.Background(), SignUpInput{Email: "new@example.com", Password: "secret", Name: "Maria"})
	require.NoError(t, err)

	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("secret")))
}

func TestAuth_Login(t *testing.T) {
	userID := uuid.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)
	storedUser := model.User{ID: userID, Email: "user@example.com", PasswordHash: string(hash)}

	tests := []struct {
		name      string
		input     LoginInput
		mockSetup func(*MockUserStore, *MockTokenManager)
		wantKind  model.ErrorKind
	}{
		{
			name:  "successful login",
			input: LoginInput{Email: "user@example.com", Password: "correct-password"},
			mockSetup: func(users *MockUserStore, tokens *MockTokenManager) {
				users.On("GetByEmail", mock.Anything, "user@example.com").Return(storedUser, nil)
				tokens.On("GenerateToken", userID, "user@example.com").Return("signed-token", nil)
			},
		},
		{
			name:  "unknown email",
			input: LoginInput{Email: "missing@example.com", Password: "correct-password"},
			mockSetup: func(users *MockUserStore, tokens *MockTokenManager) {
				users.On("GetByEmail", mock.Anything, "missing@example.com").Return(model.User{}, model.ErrNotFound)
			},
			wantKind: model.KindUnauthenticated,
		},
		{
			name:  "wrong password",
			input: LoginInput{Email: "user@example.com", Password: "wrong-password"},
			mockSetup: func(users *MockUserStore, tokens *MockTokenManager) {
				users.On("GetByEmail", mock.Anything, "user@example.com").Return(storedUser, nil)
			},
			wantKind: model.KindUnauthenticated,
		},
		{
			name:  "store failure surfaces as internal",
			input: LoginInput{Email: "user@example.com", Password: "correct-password"},
			mockSetup: func(users *MockUserStore, tokens *MockTokenManager) {
				users.On("GetByEmail", mock.Anything, "user@example.com").Return(model.User{}, errors.New("connection refused"))
			},
			wantKind: model.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &MockUserStore{}
			tokens := &MockTokenManager{}
			tt.mockSetup(users, tokens)

			svc := newTestAuth(users, tokens)
			result, err := svc.Login(context.Background(), tt.input)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, model.KindOf(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "signed-token", result.Token)
			assert.Equal(t, userID, result.UserID)
		})
	}
}

func TestAuth_Identify(t *testing.T) {
	userID := uuid.New()

	t.Run("valid token", func(t *testing.T) {
		tokens := &MockTokenManager{}
		tokens.On("ParseToken", "good").Return(model.Identity{UserID: userID, Email: "user@example.com"}, nil)

		svc := newTestAuth(&MockUserStore{}, tokens)
		identity, err := svc.Identify(context.Background(), "good")
		require.NoError(t, err)
		assert.Equal(t, userID, identity.UserID)
	})

	t.Run("missing token", func(t *testing.T) {
		svc := newTestAuth(&MockUserStore{}, &MockTokenManager{})
		_, err := svc.Identify(context.Background(), "")
		require.Error(t, err)
		assert.Equal(t, model.KindUnauthenticated, model.KindOf(err))
	})

	t.Run("invalid token", func(t *testing.T) {
		tokens := &MockTokenManager{}
		tokens.On("ParseToken", "bad").Return(model.Identity{}, errors.New("bad signature"))

		svc := newTestAuth(&MockUserStore{}, tokens)
		_, err := svc.Identify(context.Background(), "bad")
		require.Error(t, err)
		assert.Equal(t, model.KindUnauthenticated, model.KindOf(err))
	})
}
