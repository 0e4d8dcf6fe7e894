package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"intervox/internal/model"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenService issues and validates room-scoped join tokens. A token is
// minted when a session is created and presented by the candidate when
// attaching to the session host endpoint.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a token service signing with secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// IssueRoomToken signs a join token for one room and identity.
func (s *TokenService) IssueRoomToken(room, identity string) (string, error) {
	claims := &model.RoomClaims{
		Room:     room,
		Identity: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateRoomToken validates a join token and returns its claims.
func (s *TokenService) ValidateRoomToken(tokenString string) (*model.RoomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.RoomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.RoomClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
