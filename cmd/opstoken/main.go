// Command opstoken prints a short-lived bearer token for the /internal routes.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"snapapp/internal/config"
	"snapapp/internal/middleware"
	"snapapp/internal/pkg/jwt"

	"github.com/joho/godotenv"
	"golang.org/x/term"
)

func main() {
	scope := flag.String("scope", middleware.ScopePurgeLogins, "token scope")
	prompt := flag.Bool("prompt", false, "read the signing secret from the terminal instead of INTERNAL_TOKEN_SECRET")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	secret := cfg.InternalTokenSecret
	if *prompt {
		fmt.Fprint(os.Stderr, "Internal token secret: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			log.Fatalf("read secret: %v", err)
		}
		secret = strings.TrimSpace(string(raw))
	}
	if secret == "" {
		log.Fatal("internal token secret is empty")
	}

	tok, err := jwt.New(secret, cfg.InternalTokenTTL).GenerateToken(middleware.OpsSubject, *scope)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	fmt.Println(tok)
}
