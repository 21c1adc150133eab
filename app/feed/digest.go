package feed

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// ErrMissingContent is returned when an entry lacks the title or description
// needed to compute a content digest.
var ErrMissingContent = errors.New("entry missing title or description")

// ComputeDigest returns a hex-encoded SHA-256 over the title bytes followed
// by the description bytes. The concatenation order is part of the format.
// Both fields must be present; partial content is never hashed.
func ComputeDigest(title, description string) (string, error) {
	if title == "" || description == "" {
		return "", ErrMissingContent
	}

	h := sha256.New()
	h.Write([]byte(title))
	h.Write([]byte(description))
	return hex.EncodeToString(h.Sum(nil)), nil
}
