// Package otp implements RFC 6238 time-based one-time passwords with SHA-1,
// the profile authenticator apps speak by default.
package otp

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base32"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/skip2/go-qrcode"
)

const secretBytes = 20

type Config struct {
	Issuer string
	Digits int
	Period int
	Skew   int
}

type Engine struct {
	config Config
}

func NewEngine(cfg Config) *Engine {
	if cfg.Digits <= 0 {
		cfg.Digits = 6
	}

	if cfg.Period <= 0 {
		cfg.Period = 30
	}

	if cfg.Skew < 0 {
		cfg.Skew = 0
	}

	return &Engine{config: cfg}
}

// GenerateSecret returns a fresh base32 secret without padding, the format
// authenticator apps expect in otpauth URIs.
func (e *Engine) GenerateSecret() (string, error) {
	raw := make([]byte, secretBytes)

	if _, err := rand.Read(raw); err != nil {
		return "", err
	}

	enc := base32.StdEncoding.WithPadding(base32.NoPadding)

	return enc.EncodeToString(raw), nil
}

func (e *Engine) ProvisioningURI(secret string, account string) string {
	label := url.PathEscape(e.config.Issuer + ":" + account)

	v := url.Values{}
	v.Set("secret", secret)
	v.Set("issuer", e.config.Issuer)
	v.Set("period", strconv.Itoa(e.config.Period))
	v.Set("digits", strconv.Itoa(e.config.Digits))
	v.Set("algorithm", "SHA1")

	return "otpauth://totp/" + label + "?" + v.Encode()
}

func (e *Engine) QRCodeDataURL(uri string) (string, error) {
	png, err := qrcode.Encode(uri, qrcode.Medium, 256)

	if err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// Verify checks a submitted code against the current time step plus Skew
// steps either side. Comparison is constant time per candidate.
func (e *Engine) Verify(secret string, code string, at time.Time) bool {
	trimmed := strings.TrimSpace(code)

	if len(trimmed) != e.config.Digits || !isNumeric(trimmed) {
		return false
	}

	key, err := decodeSecret(secret)

	if err != nil || len(key) == 0 {
		return false
	}

	baseCounter := at.Unix() / int64(e.config.Period)

	for step := -e.config.Skew; step <= e.config.Skew; step++ {
		counter := baseCounter + int64(step)

		if counter < 0 {
			continue
		}

		generated := hotpCode(key, counter, e.config.Digits)

		if subtle.ConstantTimeCompare([]byte(generated), []byte(trimmed)) == 1 {
			return true
		}
	}

	return false
}

// CodeAt computes the code for an exact time step, without skew.
func (e *Engine) CodeAt(secret string, at time.Time) (string, error) {
	key, err := decodeSecret(secret)

	if err != nil {
		return "", err
	}

	if len(key) == 0 {
		return "", errors.New("empty totp secret")
	}

	counter := at.Unix() / int64(e.config.Period)

	return hotpCode(key, counter, e.config.Digits), nil
}

func decodeSecret(secret string) ([]byte, error) {
	normalized := strings.ToUpper(strings.TrimRight(strings.TrimSpace(secret), "="))

	return base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(normalized)
}

// hotpCode is RFC 4226 dynamic truncation over HMAC-SHA1.
func hotpCode(key []byte, counter int64, digits int) string {
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], uint64(counter))

	mac := hmac.New(sha1.New, key)
	_, _ = mac.Write(msg[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	bin := (int(sum[offset])&0x7f)<<24 |
		(int(sum[offset+1])&0xff)<<16 |
		(int(sum[offset+2])&0xff)<<8 |
		(int(sum[offset+3]) & 0xff)

	mod := 1
	for i := 0; i < digits; i++ {
		mod *= 10
	}

	return fmt.Sprintf("%0*d", digits, bin%mod)
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return len(s) > 0
}
