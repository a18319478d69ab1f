// Package main mints StudyTrack access tokens for local development.
//
// In production tokens come from the identity provider that shares the
// server's key. This tool signs one with the same key so the API can be
// exercised with curl.
//
// Usage:
//
//	AUTH_KEY=<64 hex chars> go run ./cmd/mint-token -identity alice
//	go run ./cmd/mint-token -identity alice -data-path ~/StudyTrack/data
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/studytrack/studytrack-server/internal/auth"
)

func main() {
	identity := flag.String("identity", "", "Identity to issue the token to (required)")
	name := flag.String("name", "", "Optional display name claim")
	dataPath := flag.String("data-path", "", "Data path holding auth.key (default: ~/StudyTrack/data)")
	duration := flag.Duration("duration", 24*time.Hour, "Token lifetime")
	flag.Parse()

	if *identity == "" {
		flag.Usage()
		os.Exit(2)
	}

	path := *dataPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to find home directory: %v", err)
		}
		path = filepath.Join(home, "StudyTrack", "data")
	}

	keyHex, err := auth.ResolveKey(os.Getenv("AUTH_KEY"), path)
	if err != nil {
		log.Fatalf("Failed to load key: %v", err)
	}

	tokens, err := auth.NewTokenService(keyHex, *duration)
	if err != nil {
		log.Fatalf("Failed to create token service: %v", err)
	}

	token, err := tokens.GenerateAccessToken(*identity, *name)
	if err != nil {
		log.Fatalf("Failed to mint token: %v", err)
	}

	fmt.Println(token)
}
