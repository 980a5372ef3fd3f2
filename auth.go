package main

import (
	"errors"
	"strings"
	"time"

	"fintrack/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both unknown usernames and wrong passwords so
// login failures never reveal whether an account exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

const tokenTTL = time.Hour

// Auth hashes passwords and issues/verifies bearer tokens.
type Auth struct {
	store  Store
	secret []byte
}

func NewAuth(store Store, secret []byte) *Auth {
	return &Auth{store: store, secret: secret}
}

// Register creates an account storing a bcrypt hash of the password. The
// plaintext is never persisted or logged.
func (a *Auth) Register(username, password string) (uint, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return 0, errors.New("username required")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	return a.store.CreateUser(username, hashed)
}

// Login verifies the password against the stored hash and returns a signed
// token carrying the caller's identity.
func (a *Auth) Login(username, password string) (string, error) {
	user, err := a.store.FindUserByUsername(strings.TrimSpace(username))
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return a.issueToken(user)
}

func (a *Auth) issueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(tokenTTL).Unix(),
	})
	return token.SignedString(a.secret)
}

// VerifyToken parses and validates a bearer token, returning the identity
// claims embedded at login.
func (a *Auth) VerifyToken(tokenString string) (uint, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return a.secret, nil
	})
	if err != nil {
		return 0, "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, "", jwt.ErrTokenInvalidClaims
	}
	id, ok := claims["id"].(float64)
	if !ok || id <= 0 {
		return 0, "", jwt.ErrTokenInvalidClaims
	}
	username, _ := claims["username"].(string)
	return uint(id), username, nil
}
