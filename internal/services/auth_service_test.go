package services_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"vivaham/internal/apperrors"
	"vivaham/internal/models"
	"vivaham/internal/repositories"
	"vivaham/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

func newAuthService(repo repositories.UserRepository) *services.AuthService {
	return services.NewAuthService(repo, services.NewIdentityGuard(repo), testJWTSecret, time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	user := &models.User{Username: "testuser", Email: "test@example.com", Password: "password123"}

	mockRepo.On("GetByUsername", "testuser").Return(nil, apperrors.NotFoundf("user with username testuser not found")).Once()
	mockRepo.On("GetByEmail", "test@example.com").Return(nil, apperrors.NotFoundf("user with email test@example.com not found")).Once()
	mockRepo.On("Create", mock.MatchedBy(func(u *models.User) bool {
		return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("password123")) == nil
	})).Return(nil).Once()

	err := authService.Register(user)
	assert.NoError(t, err)
	assert.NotEqual(t, "password123", user.Password)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterDuplicates(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	// Username already taken
	mockRepo.On("GetByUsername", "testuser").Return(&models.User{ID: 1}, nil).Once()
	err := authService.Register(&models.User{Username: "testuser", Email: "test@example.com", Password: "password123"})
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "Username already exists")

	// Email already registered
	mockRepo.On("GetByUsername", "testuser").Return(nil, apperrors.NotFoundf("not found")).Once()
	mockRepo.On("GetByEmail", "test@example.com").Return(&models.User{ID: 1}, nil).Once()
	err = authService.Register(&models.User{Username: "testuser", Email: "test@example.com", Password: "password123"})
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "Email already exists")

	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_ConcurrentRegistrationsClaimOnce(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()
	authService := newAuthService(repo)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := authService.Register(&models.User{
				Username: "alice",
				Email:    fmt.Sprintf("alice%d@example.com", i),
				Password: "secret1",
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	users, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{ID: 7, Username: "testuser", Email: "test@example.com", Password: string(hashedPassword)}

	// Successful login
	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	got, err := authService.Login("testuser", "password123")
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.ID)

	// Wrong password
	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	_, wrongPasswordErr := authService.Login("testuser", "wrongpassword")
	assert.Equal(t, apperrors.KindUnauthenticated, apperrors.KindOf(wrongPasswordErr))

	// Unknown user gets the same message
	mockRepo.On("GetByUsername", "nonexistentuser").Return(nil, apperrors.NotFoundf("user with username nonexistentuser not found")).Once()
	_, unknownErr := authService.Login("nonexistentuser", "password123")
	assert.Equal(t, apperrors.KindUnauthenticated, apperrors.KindOf(unknownErr))
	assert.Equal(t, wrongPasswordErr.Error(), unknownErr.Error())
	assert.Contains(t, unknownErr.Error(), "Invalid username or password")

	mockRepo.AssertExpectations(t)
}

func TestAuthService_Tokens(t *testing.T) {
	authService := newAuthService(new(MockUserRepository))

	token, expiresAt, err := authService.IssueToken(&models.User{ID: 42, Username: "testuser"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := authService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "testuser", claims.Username)
	assert.NotEmpty(t, claims.Id)

	// Garbage
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Equal(t, apperrors.KindUnauthenticated, apperrors.KindOf(err))

	// Signed with another secret
	other := services.NewAuthService(new(MockUserRepository), nil, "other_secret", time.Hour)
	foreign, _, err := other.IssueToken(&models.User{ID: 42, Username: "testuser"})
	require.NoError(t, err)
	_, err = authService.ValidateToken(foreign)
	assert.Equal(t, apperrors.KindUnauthenticated, apperrors.KindOf(err))

	// Expired
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, services.Claims{
		UserID:         42,
		Username:       "testuser",
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(-time.Hour).Unix()},
	})
	expiredString, err := expired.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	_, err = authService.ValidateToken(expiredString)
	assert.Equal(t, apperrors.KindUnauthenticated, apperrors.KindOf(err))
}
