package telegramauth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11"

func sign(payload map[string]string, botToken string) string {
	lines := make([]string, 0, len(payload))
	for key, value := range payload {
		if key == "hash" {
			continue
		}
		lines = append(lines, key+"="+value)
	}
	sort.Strings(lines)

	secret := sha256.Sum256([]byte(botToken))
	mac := hmac.New(sha256.New, secret[:])
	mac.Write([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(mac.Sum(nil))
}

func signedPayload(now time.Time) map[string]string {
	payload := map[string]string{
		"id":         "987654321",
		"first_name": "Anna",
		"username":   "anna",
		"auth_date":  strconv.FormatInt(now.Unix(), 10),
	}
	payload["hash"] = sign(payload, testToken)
	return payload
}

func TestVerify_Valid(t *testing.T) {
	now := time.Now()
	userID, err := Verify(signedPayload(now), testToken, now)
	require.NoError(t, err)
	assert.Equal(t, int64(987654321), userID)
}

func TestVerify_MissingHash(t *testing.T) {
	payload := signedPayload(time.Now())
	delete(payload, "hash")
	_, err := Verify(payload, testToken, time.Now())
	assert.ErrorIs(t, err, ErrMissingHash)
}

func TestVerify_TamperedField(t *testing.T) {
	now := time.Now()
	payload := signedPayload(now)
	payload["id"] = "111111111"
	_, err := Verify(payload, testToken, now)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestVerify_WrongToken(t *testing.T) {
	now := time.Now()
	_, err := Verify(signedPayload(now), "000000:wrong-token", now)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestVerify_StaleAuthDate(t *testing.T) {
	authTime := time.Now().Add(-25 * time.Hour)
	payload := signedPayload(authTime)
	_, err := Verify(payload, testToken, time.Now())
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerify_AuthDateJustInsideWindow(t *testing.T) {
	authTime := time.Now().Add(-23 * time.Hour)
	payload := signedPayload(authTime)
	_, err := Verify(payload, testToken, time.Now())
	assert.NoError(t, err)
}
