package id

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const charset = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"
const hashLen = 5

type EntityType string

const (
	Project EntityType = "PROJ"
	Group   EntityType = "GRP"
)

var allTypes = []EntityType{Project, Group}

func New(t EntityType) (string, error) {
	h, err := randomHash(hashLen)
	if err != nil {
		return "", err
	}
	return string(t) + "-" + h, nil
}

// NewSessionID returns a chat session id derived from the creation time.
// A short random suffix keeps ids unique when two sessions are created
// within the same millisecond.
func NewSessionID(at time.Time) (string, error) {
	h, err := randomHash(3)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(at.UnixMilli(), 10) + "-" + h, nil
}

// NewMessageID returns a random message id.
func NewMessageID() string {
	return uuid.NewString()
}

func Parse(id string) (EntityType, string, error) {
	idx := strings.LastIndex(id, "-")
	if idx < 0 {
		return "", "", fmt.Errorf("invalid id %q: missing separator", id)
	}
	prefix := id[:idx]
	hash := id[idx+1:]

	t, err := parsePrefix(prefix)
	if err != nil {
		return "", "", err
	}

	if len(hash) != hashLen {
		return "", "", fmt.Errorf("invalid id %q: hash must be %d chars", id, hashLen)
	}
	for _, c := range hash {
		if !strings.ContainsRune(charset, c) {
			return "", "", fmt.Errorf("invalid id %q: invalid character %q", id, c)
		}
	}
	return t, hash, nil
}

func TypeOf(id string) (EntityType, error) {
	t, _, err := Parse(id)
	return t, err
}

func randomHash(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating id: %w", err)
	}
	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}
	return string(b), nil
}

func parsePrefix(prefix string) (EntityType, error) {
	for _, t := range allTypes {
		if string(t) == prefix {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown entity prefix %q", prefix)
}
