// Command token mints an access token for the attendance API. User accounts
// live in the HR system, so operators use this to bootstrap admin access.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/samerkamel/aura-sub004/internal/config"
	"github.com/samerkamel/aura-sub004/internal/pkg/jwt"
)

func main() {
	userID := flag.String("user", "", "user id to embed in the token")
	admin := flag.Bool("admin", false, "grant admin privileges")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "-user is required")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).GenerateAccessToken(*userID, *admin)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error generating token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintln(os.Stderr, "expires at", time.Unix(expiresAt, 0).Format(time.RFC3339))
}
