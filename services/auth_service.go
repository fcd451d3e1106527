package services

import (
	"strings"
	"time"

	"cafe-menu-api/apperr"
	"cafe-menu-api/logger"
	"cafe-menu-api/models"
	"cafe-menu-api/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Claims is the token payload: who logged in and until when.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthService handles login and bearer token verification.
type AuthService struct {
	users  *repository.UserRepository
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(users *repository.UserRepository, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{users: users, secret: secret, ttl: ttl, now: time.Now}
}

// WithClock replaces the time source used for minting and expiry checks.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// Login checks the credentials and returns a signed token for the user.
func (s *AuthService) Login(username, password string) (string, *models.User, error) {
	if username == "" || password == "" {
		return "", nil, apperr.BadRequest("username and password are required")
	}

	user, err := s.users.FindByUsername(username)
	if err != nil {
		return "", nil, apperr.Internal(err, "failed to look up user")
	}
	if user == nil {
		return "", nil, apperr.Unauthorized("invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperr.Unauthorized("invalid username or password")
	}

	token, err := s.GenerateToken(user.Username)
	if err != nil {
		return "", nil, apperr.Internal(err, "failed to generate token")
	}
	return token, user, nil
}

// GenerateToken signs an HS256 token for username that expires after the configured TTL.
func (s *AuthService) GenerateToken(username string) (string, error) {
	now := s.now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken verifies signature and expiry.
func (s *AuthService) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, apperr.Unauthorized("invalid or expired token")
	}
	return claims, nil
}

// Authenticate resolves an Authorization header value to a user.
//
// A valid token whose user no longer exists yields (nil, nil): the request
// proceeds without an identity.
func (s *AuthService) Authenticate(header string) (*models.User, error) {
	if strings.TrimSpace(header) == "" {
		return nil, apperr.Unauthorized("authentication token is required")
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return nil, apperr.Unauthorized("malformed authorization header, expected Bearer <token>")
	}

	claims, err := s.ParseToken(parts[1])
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(claims.Username)
	if err != nil {
		return nil, apperr.Internal(err, "failed to look up user")
	}
	if user == nil {
		logger.L().Warnw("token subject no longer exists, continuing without identity", "username", claims.Username)
	}
	return user, nil
}
