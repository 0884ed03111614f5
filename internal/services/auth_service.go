package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"vivaham/internal/apperrors"
	"vivaham/internal/models"
	"vivaham/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const invalidCredentials = "Invalid username or password"

// Claims is the payload of a bearer token.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.StandardClaims
}

// IdentityGuard serialises the username/email uniqueness check with the
// write that depends on it, so two concurrent requests cannot both claim
// the same identity.
type IdentityGuard struct {
	mu    sync.Mutex
	users repositories.UserRepository
}

// NewIdentityGuard creates a new IdentityGuard over users.
func NewIdentityGuard(users repositories.UserRepository) *IdentityGuard {
	return &IdentityGuard{users: users}
}

// Claim runs write while holding the guard, after checking that username
// and email are unused by anyone other than selfID. Empty values are skipped.
func (g *IdentityGuard) Claim(username, email string, selfID uint, write func() error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if username != "" {
		holder, err := g.users.GetByUsername(username)
		if taken, err := isTaken(holder, err, selfID); err != nil {
			return err
		} else if taken {
			return apperrors.Conflict("Username already exists")
		}
	}
	if email != "" {
		holder, err := g.users.GetByEmail(email)
		if taken, err := isTaken(holder, err, selfID); err != nil {
			return err
		} else if taken {
			return apperrors.Conflict("Email already exists")
		}
	}
	return write()
}

func isTaken(holder *models.User, err error, selfID uint) (bool, error) {
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to check identity: %w", err)
	}
	return holder.ID != selfID, nil
}

// AuthService handles registration, credential checks and bearer tokens.
type AuthService struct {
	userRepo  repositories.UserRepository
	guard     *IdentityGuard
	jwtSecret []byte
	tokenTTL  time.Duration
	cost      int
	dummyHash []byte
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, guard *IdentityGuard, jwtSecret string, tokenTTL time.Duration) *AuthService {
	s := &AuthService{
		userRepo:  userRepo,
		guard:     guard,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		cost:      bcrypt.DefaultCost,
	}
	// Compared against for unknown usernames so a miss costs as much as a hit.
	s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("vivaham-timing-equaliser"), s.cost)
	return s
}

// HashPassword hashes a plaintext password with the service's bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Register stores user with a hashed password. user.Password is plaintext
// on entry and holds the hash on return.
func (s *AuthService) Register(user *models.User) error {
	hashed, err := s.HashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = hashed

	return s.guard.Claim(user.Username, user.Email, 0, func() error {
		if err := s.userRepo.Create(user); err != nil {
			return fmt.Errorf("failed to register user: %w", err)
		}
		return nil
	})
}

// Login checks the credentials and returns the matching user. Unknown users
// and wrong passwords produce the same error.
func (s *AuthService) Login(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if apperrors.KindOf(err) != apperrors.KindNotFound {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, apperrors.Unauthenticated(invalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.Unauthenticated(invalidCredentials)
	}
	return user, nil
}

// CurrentUser resolves the user behind an authenticated request.
func (s *AuthService) CurrentUser(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// IssueToken signs an HS256 bearer token for user.
func (s *AuthService) IssueToken(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:   user.ID,
		Username: user.Username,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			IssuedAt:  now.Unix(),
			ExpiresAt: expiresAt.Unix(),
		},
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken parses and validates a bearer token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		if err == nil {
			err = errors.New("token is not valid")
		}
		return nil, &apperrors.Error{Kind: apperrors.KindUnauthenticated, Message: "Invalid or expired token", Err: err}
	}
	if claims.UserID == 0 {
		return nil, apperrors.Unauthenticated("Invalid or expired token")
	}
	return claims, nil
}
