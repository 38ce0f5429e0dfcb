// Command admintoken mints an HS256 admin bearer token for the mutating
// endpoints. The secret comes from -secret or ADMIN_JWT_SECRET.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func main() {
	secret := flag.String("secret", os.Getenv("ADMIN_JWT_SECRET"), "shared admin signing secret")
	subject := flag.String("sub", "admin", "token subject")
	expiry := flag.Duration("exp", 24*time.Hour, "token lifetime, 0 for no expiry")
	flag.Parse()

	if *secret == "" {
		fmt.Fprintln(os.Stderr, "a signing secret is required (-secret or ADMIN_JWT_SECRET)")
		os.Exit(1)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": *subject,
		"iat": now.Unix(),
	}
	if *expiry > 0 {
		claims["exp"] = now.Add(*expiry).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(*secret))
	if err != nil {
		fmt.Fprintf(os.Stderr, "sign token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(signed)
}
