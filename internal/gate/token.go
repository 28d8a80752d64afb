package gate

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	// tokenSeparator joins the payload and MAC segments. It is not part of
	// the base64url alphabet, so a well-formed token contains it exactly once.
	tokenSeparator = "."
	tokenParts     = 2

	errMarshalPayloadFmt = "failed to marshal token payload: %w"
)

var errMarshalPayload = func(err error) error { return fmt.Errorf(errMarshalPayloadFmt, err) }

// Payload is the signed body of a gate token. It binds the credential to a
// single entry: a token minted for one entry never unlocks another.
type Payload struct {
	ResourceID int64 `json:"rid"`
	ExpiresAt  int64 `json:"exp"`
}

// Codec signs and verifies gate tokens. The signing key is derived once from
// the configured secrets and cached for the process lifetime; the derivation
// is deterministic, so racing the sync.Once would only waste work, never
// produce a different key.
type Codec struct {
	authKey  []byte
	authSalt []byte

	once sync.Once
	key  []byte
}

func NewCodec(authKey, authSalt []byte) *Codec {
	return &Codec{
		authKey:  authKey,
		authSalt: authSalt,
	}
}

// signingKey derives the HMAC key as SHA-256 over the concatenation of the
// configured secrets, auth key first, auth salt second. The key never leaves
// this package.
func (c *Codec) signingKey() []byte {
	c.once.Do(func() {
		material := make([]byte, 0, len(c.authKey)+len(c.authSalt))
		material = append(material, c.authKey...)
		material = append(material, c.authSalt...)
		sum := sha256.Sum256(material)
		c.key = sum[:]
	})
	return c.key
}

// Sign serializes the payload, computes its MAC, and joins both parts as
// base64url(body).base64url(mac).
func (c *Codec) Sign(p Payload) (string, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return "", errMarshalPayload(err)
	}

	mac := hmac.New(sha256.New, c.signingKey())
	mac.Write(body)
	sig := mac.Sum(nil)

	return base64.RawURLEncoding.EncodeToString(body) +
		tokenSeparator +
		base64.RawURLEncoding.EncodeToString(sig), nil
}

// Verify parses and authenticates a token, returning its payload or nil.
// Every failure mode - wrong separator count, bad base64, MAC mismatch,
// malformed body, missing or non-positive fields, expiry - collapses to nil
// so callers cannot distinguish a forged token from an expired one.
func (c *Codec) Verify(token string, now time.Time) *Payload {
	parts := strings.Split(token, tokenSeparator)
	if len(parts) != tokenParts {
		return nil
	}

	// Strict decoding rejects nonzero trailing padding bits, so two distinct
	// token strings never decode to the same body.
	body, err := base64.RawURLEncoding.Strict().DecodeString(parts[0])
	if err != nil {
		return nil
	}

	sig, err := base64.RawURLEncoding.Strict().DecodeString(parts[1])
	if err != nil {
		return nil
	}

	mac := hmac.New(sha256.New, c.signingKey())
	mac.Write(body)
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return nil
	}

	payload := decodePayload(body)
	if payload == nil {
		return nil
	}

	if payload.ExpiresAt <= now.Unix() {
		return nil
	}

	return payload
}

// decodePayload decodes the signed body into a fixed-shape payload, failing
// closed: unknown fields, wrong types, trailing data, or non-positive values
// all yield nil.
func decodePayload(body []byte) *Payload {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()

	var p Payload
	if err := decoder.Decode(&p); err != nil {
		return nil
	}

	if decoder.More() {
		return nil
	}

	if p.ResourceID <= 0 || p.ExpiresAt <= 0 {
		return nil
	}

	return &p
}
