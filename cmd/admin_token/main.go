package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"tixpay/internal/config"
	"tixpay/internal/models"
	"tixpay/internal/utils"
)

// admin_token prints a bearer token signed with JWT_SECRET, for operators
// who need to call the admin endpoints outside the identity service.
func main() {
	userID := flag.Uint("user", 0, "user id recorded as publisher")
	email := flag.String("email", "", "email claim")
	role := flag.String("role", "admin", "role claim: admin, checkout, auditor or organizer")
	ttl := flag.Duration("ttl", 15*time.Minute, "token lifetime")
	flag.Parse()

	config.LoadEnv()

	if len(models.GetDefaultPermissions(*role)) == 0 {
		log.Fatalf("Unknown role %q", *role)
	}

	token, err := utils.GenerateToken(&models.UserClaims{
		UserID: uint(*userID),
		Email:  *email,
		Role:   *role,
	}, *ttl)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	fmt.Println(token)
}
