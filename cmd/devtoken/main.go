package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"boothreserve/internal/shared/config"
	"boothreserve/internal/shared/middleware"

	"github.com/joho/godotenv"
)

// Mints an access token signed with JWT_SECRET for local testing
func main() {
	userID := flag.String("user", "vendor-1", "subject (user id) of the token")
	email := flag.String("email", "", "email claim")
	role := flag.String("role", middleware.RoleVendor, "VENDOR or ADMIN")
	ttl := flag.Duration("ttl", 0, "token lifetime (defaults to JWT_EXPIRES_IN)")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	r := strings.ToUpper(*role)
	if r != middleware.RoleVendor && r != middleware.RoleAdmin {
		log.Fatalf("unknown role %q", *role)
	}

	lifetime := *ttl
	if lifetime <= 0 {
		lifetime = cfg.JWT.JWTExpiresIn
	}

	token, err := middleware.IssueAccessToken(cfg.JWT.Secret, *userID, *email, r, lifetime, time.Now())
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	fmt.Println(token)
}
