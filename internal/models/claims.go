package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims are issued by the identity service and only verified here.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID      uint     `json:"user_id"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// HasPermission checks if the claims include a specific permission,
// either explicitly or through the defaults of the role.
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	for _, p := range GetDefaultPermissions(c.Role) {
		if p == permission {
			return true
		}
	}
	return false
}
