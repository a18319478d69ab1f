// Package auth verifies the PASETO access tokens that establish caller identity.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// PASETO v4 requires a 256-bit (32-byte) symmetric key.
	keyLength = 32
	// Expected hex-encoded length (32 bytes = 64 hex characters).
	keyHexLength = 64

	keyFileName = "auth.key"
)

// ResolveKey returns the hex-encoded token key. An explicit keyHex wins;
// otherwise the key is read from, or generated into, dataPath/auth.key.
func ResolveKey(keyHex, dataPath string) (string, error) {
	if keyHex = strings.TrimSpace(keyHex); keyHex != "" {
		if _, err := decodeKey(keyHex); err != nil {
			return "", err
		}
		return keyHex, nil
	}
	key, err := LoadOrGenerateKey(dataPath)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(key), nil
}

// LoadOrGenerateKey loads the 32-byte key stored hex-encoded in
// dataPath/auth.key, generating and saving a new one when the file is missing.
func LoadOrGenerateKey(dataPath string) ([]byte, error) {
	keyPath := filepath.Join(dataPath, keyFileName)

	//#nosec G304 -- Auth key path is derived from the configured data path
	if keyBytes, err := os.ReadFile(keyPath); err == nil {
		return decodeKey(strings.TrimSpace(string(keyBytes)))
	}

	key := make([]byte, keyLength)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate auth key: %w", err)
	}

	if err := os.MkdirAll(dataPath, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := os.WriteFile(keyPath, []byte(hex.EncodeToString(key)), 0o600); err != nil {
		return nil, fmt.Errorf("failed to save auth key: %w", err)
	}

	return key, nil
}

func decodeKey(keyHex string) ([]byte, error) {
	if len(keyHex) != keyHexLength {
		return nil, fmt.Errorf("invalid auth key length: expected %d hex chars, got %d", keyHexLength, len(keyHex))
	}
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid auth key format: not valid hex: %w", err)
	}
	return key, nil
}
