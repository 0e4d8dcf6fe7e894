package model

import "github.com/golang-jwt/jwt/v5"

// RoomClaims are JWT claims for room-scoped join tokens. The candidate
// presents this token when attaching to the session host endpoint.
type RoomClaims struct {
	Room     string `json:"room"`
	Identity string `json:"identity"`
	jwt.RegisteredClaims
}
