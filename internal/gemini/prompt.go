package gemini

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// MaxMessageLength is the maximum length of a user message embedded in a prompt.
const MaxMessageLength = 500

// SanitizeForPrompt sanitizes user input to prevent prompt injection attacks.
// It removes or escapes characters that could break prompt structure,
// and truncates to the given maxLength.
func SanitizeForPrompt(input string, maxLength int) string {
	// Remove or escape quotes that could break prompt structure.
	input = strings.ReplaceAll(input, `"`, `'`)
	input = strings.ReplaceAll(input, "`", "'")

	// Remove null bytes and other control characters.
	input = strings.ReplaceAll(input, "\x00", "")

	// Normalize whitespace: splits on any whitespace (spaces, tabs, newlines)
	// and rejoins with single spaces. This handles newline injection and
	// collapses multiple spaces in one efficient operation.
	input = strings.Join(strings.Fields(input), " ")

	// Limit length to prevent prompt stuffing attacks.
	// Trim after truncation to avoid trailing whitespace from mid-word cuts.
	if len(input) > maxLength {
		input = strings.TrimSpace(input[:maxLength])
	}

	return input
}

// sanitizeMessage sanitizes an inbound chat message for safe prompt embedding.
func sanitizeMessage(text string) string {
	return SanitizeForPrompt(text, MaxMessageLength)
}

// hashText creates a SHA256 hash of user text for secure logging.
func hashText(text string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:8]) // First 8 bytes for brevity.
}
