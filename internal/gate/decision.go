package gate

import (
	"crypto/sha256"
	"crypto/subtle"
	"time"

	"content-gate/internal/domain/content"
)

// Reason explains why a decision granted or denied access.
type Reason string

const (
	ReasonNoSecret      Reason = "no-secret"
	ReasonPasswordMatch Reason = "password-match"
	ReasonTokenMatch    Reason = "token-match"
	ReasonDenied        Reason = "denied"
)

// Decision is computed fresh per request and never persisted.
type Decision struct {
	Granted bool
	Reason  Reason
}

const (
	// MinTokenTTL is the floor applied to caller-requested expiries; anything
	// lower would mint a credential that dies before the cookie round-trips.
	MinTokenTTL = 60 * time.Second

	// DefaultTokenTTL applies when the caller requests no expiry.
	DefaultTokenTTL = 10 * 24 * time.Hour
)

// Gate combines the token codec with the access-decision rules. All methods
// are stateless and safe for concurrent use.
type Gate struct {
	codec *Codec
	now   func() time.Time
}

func New(codec *Codec) *Gate {
	return &Gate{
		codec: codec,
		now:   time.Now,
	}
}

// Decide evaluates access to an entry, in order: entries without a secret are
// always open; a supplied password is compared in constant time; a presented
// token must verify and be bound to this exact entry. Read paths call this
// with both credentials and never mint anything.
func (g *Gate) Decide(entry *content.Content, password, token string) Decision {
	if entry.Secret == "" {
		return Decision{Granted: true, Reason: ReasonNoSecret}
	}

	if password != "" && constantTimeEquals(password, entry.Secret) {
		return Decision{Granted: true, Reason: ReasonPasswordMatch}
	}

	if token != "" {
		if payload := g.codec.Verify(token, g.now()); payload != nil && payload.ResourceID == entry.ID {
			return Decision{Granted: true, Reason: ReasonTokenMatch}
		}
	}

	return Decision{Granted: false, Reason: ReasonDenied}
}

// Unlock is the submission path: it evaluates the candidate password and, on
// a fresh match, mints a token bound to the entry with the clamped TTL.
// Nothing is minted for open entries (nothing to protect) or on mismatch.
// The returned expiry doubles as the cookie expiry.
func (g *Gate) Unlock(entry *content.Content, password string, ttlSeconds int64) (Decision, string, time.Time, error) {
	if entry.Secret == "" {
		return Decision{Granted: true, Reason: ReasonNoSecret}, "", time.Time{}, nil
	}

	if password != "" && constantTimeEquals(password, entry.Secret) {
		expiresAt := g.now().Add(clampTTL(ttlSeconds))
		token, err := g.codec.Sign(Payload{ResourceID: entry.ID, ExpiresAt: expiresAt.Unix()})
		if err != nil {
			return Decision{Granted: false, Reason: ReasonDenied}, "", time.Time{}, err
		}
		return Decision{Granted: true, Reason: ReasonPasswordMatch}, token, expiresAt, nil
	}

	return Decision{Granted: false, Reason: ReasonDenied}, "", time.Time{}, nil
}

// clampTTL floors requested expiries at MinTokenTTL; zero means unspecified
// and takes the default. There is no upper bound.
func clampTTL(seconds int64) time.Duration {
	if seconds == 0 {
		return DefaultTokenTTL
	}
	if ttl := time.Duration(seconds) * time.Second; ttl >= MinTokenTTL {
		return ttl
	}
	return MinTokenTTL
}

// constantTimeEquals compares two strings without leaking where they diverge.
// Both sides are hashed to a fixed length first, which hides the secret's
// length and keeps unequal-length inputs unequal.
func constantTimeEquals(a, b string) bool {
	aDigest := sha256.Sum256([]byte(a))
	bDigest := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(aDigest[:], bDigest[:]) == 1
}
