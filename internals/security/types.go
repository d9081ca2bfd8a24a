package security

import "github.com/golang-jwt/jwt/v5"

const RoleAdmin = "admin"

type RequestClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
