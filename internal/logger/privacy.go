package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

var hashSalt string

// InitHashSalt loads the logging salt from the environment. Set
// LOG_HASH_SALT in production so hashed identifiers are not guessable.
func InitHashSalt() {
	hashSalt = os.Getenv("LOG_HASH_SALT")
	if hashSalt == "" {
		hashSalt = "default-salt-change-in-production"
	}
}

// InitHashSaltForTesting overrides the salt. Only for use in tests.
func InitHashSaltForTesting(salt string) {
	hashSalt = salt
}

func init() {
	InitHashSalt()
}

// HashUserID creates a privacy-preserving hash of a user identifier
// (a phone number for WhatsApp, a chat ID for Telegram). This allows
// correlating a user's messages in logs without exposing the identifier.
func HashUserID(userID string) string {
	data := fmt.Sprintf("%s:%s", userID, hashSalt)
	hash := sha256.Sum256([]byte(data))
	// First 8 characters for readability.
	return hex.EncodeToString(hash[:])[:8]
}

// SanitizeText is a general-purpose sanitizer for user-provided text.
// Message bodies may contain financial details, so log only shape.
func SanitizeText(text string) string {
	if text == "" {
		return "<empty>"
	}

	words := strings.Fields(text)
	return fmt.Sprintf("<redacted: %d words, %d chars>", len(words), len(text))
}
