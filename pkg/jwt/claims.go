package jwt

import "github.com/golang-jwt/jwt/v5"

// LaneClaims are the claims carried by lane and scorer tokens.
type LaneClaims struct {
	jwt.RegisteredClaims
	Lane string `json:"lane,omitempty"`
	Role string `json:"role"`
}

type Role string

const (
	RoleViewer Role = "viewer"
	RoleScorer Role = "scorer"
	RoleAdmin  Role = "admin"
)

// CanScore reports whether the role may enter balls and create games.
func (r Role) CanScore() bool {
	return r == RoleScorer || r == RoleAdmin
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleViewer, RoleScorer, RoleAdmin:
		return true
	}
	return false
}
