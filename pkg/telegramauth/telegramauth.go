// Package telegramauth verifies Telegram Login Widget payloads.
//
// The widget signs the sorted key=value lines of the payload (hash
// excluded) with HMAC-SHA256, keyed by the SHA-256 digest of the bot token.
package telegramauth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"
)

const maxAuthAge = 24 * time.Hour

var (
	ErrMissingHash  = errors.New("telegramauth: payload has no hash")
	ErrBadSignature = errors.New("telegramauth: signature mismatch")
	ErrExpired      = errors.New("telegramauth: auth_date too old")
	ErrBadPayload   = errors.New("telegramauth: malformed payload")
)

// Verify checks the widget payload signature and freshness and returns the
// authenticated Telegram user id.
func Verify(payload map[string]string, botToken string, now time.Time) (int64, error) {
	hash, ok := payload["hash"]
	if !ok || hash == "" {
		return 0, ErrMissingHash
	}

	lines := make([]string, 0, len(payload)-1)
	for key, value := range payload {
		if key == "hash" {
			continue
		}
		lines = append(lines, key+"="+value)
	}
	sort.Strings(lines)
	dataCheckString := strings.Join(lines, "\n")

	secret := sha256.Sum256([]byte(botToken))
	mac := hmac.New(sha256.New, secret[:])
	mac.Write([]byte(dataCheckString))
	expected := hex.EncodeToString(mac.Sum(nil))

	if subtle.ConstantTimeCompare([]byte(expected), []byte(hash)) != 1 {
		return 0, ErrBadSignature
	}

	authDate, err := strconv.ParseInt(payload["auth_date"], 10, 64)
	if err != nil {
		return 0, ErrBadPayload
	}
	if now.Sub(time.Unix(authDate, 0)) > maxAuthAge {
		return 0, ErrExpired
	}

	userID, err := strconv.ParseInt(payload["id"], 10, 64)
	if err != nil {
		return 0, ErrBadPayload
	}
	return userID, nil
}
