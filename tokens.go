package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"teambuilder/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var errInvalidToken = errors.New("invalid token")

func hashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func checkPassword(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

// hashToken is the one-way digest applied to opaque temporary tokens
// before they are stored. Verification re-hashes the incoming token and
// compares digests, so the unhashed value never touches the database.
func hashToken(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:])
}

// generateTemporaryToken returns a random opaque token, its storable hash
// and the expiry timestamp. The unhashed value goes out by mail only.
func generateTemporaryToken(ttl time.Duration) (unhashed, hashed string, expiry time.Time, err error) {
	b := make([]byte, 20)
	if _, err = rand.Read(b); err != nil {
		return "", "", time.Time{}, err
	}
	unhashed = hex.EncodeToString(b)
	hashed = hashToken(unhashed)
	expiry = time.Now().Add(ttl)
	return unhashed, hashed, expiry, nil
}

// accessClaims is the payload of short-lived access tokens.
type accessClaims struct {
	UserID   uint   `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// refreshClaims carries the user id only.
type refreshClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

func (a *App) issueAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &accessClaims{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.cfg.AccessTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(a.cfg.AccessTokenSecret))
}

func (a *App) issueRefreshToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &refreshClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.cfg.RefreshTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(a.cfg.RefreshTokenSecret))
}

func parseClaims(tokenString, secret string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return []byte(secret), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return errInvalidToken
	}
	return nil
}

func (a *App) verifyAccessToken(tokenString string) (*accessClaims, error) {
	claims := &accessClaims{}
	if err := parseClaims(tokenString, a.cfg.AccessTokenSecret, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (a *App) verifyRefreshToken(tokenString string) (*refreshClaims, error) {
	claims := &refreshClaims{}
	if err := parseClaims(tokenString, a.cfg.RefreshTokenSecret, claims); err != nil {
		return nil, err
	}
	return claims, nil
}
