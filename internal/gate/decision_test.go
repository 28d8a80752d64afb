package gate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-gate/internal/domain/content"
)

func testGate() *Gate {
	return New(testCodec())
}

func gatedEntry(id int64, secret string) *content.Content {
	return &content.Content{
		ID:       id,
		Type:     "post",
		Slug:     "entry",
		Title:    "Entry",
		Rendered: "<p>hidden</p>",
		Secret:   secret,
	}
}

func TestDecide_NoSecretAlwaysGrants(t *testing.T) {
	g := testGate()
	open := gatedEntry(1, "")

	for _, password := range []string{"", "anything"} {
		for _, token := range []string{"", "garbage"} {
			d := g.Decide(open, password, token)
			assert.True(t, d.Granted)
			assert.Equal(t, ReasonNoSecret, d.Reason)
		}
	}
}

func TestDecide_GatedWithoutCredentialsDenies(t *testing.T) {
	g := testGate()

	d := g.Decide(gatedEntry(1, "swordfish"), "", "")
	assert.False(t, d.Granted)
	assert.Equal(t, ReasonDenied, d.Reason)
}

func TestDecide_PasswordMatch(t *testing.T) {
	g := testGate()
	entry := gatedEntry(1, "swordfish")

	d := g.Decide(entry, "swordfish", "")
	assert.True(t, d.Granted)
	assert.Equal(t, ReasonPasswordMatch, d.Reason)

	d = g.Decide(entry, "wrong", "")
	assert.False(t, d.Granted)
	assert.Equal(t, ReasonDenied, d.Reason)
}

func TestDecide_TokenMatch(t *testing.T) {
	g := testGate()
	entry := gatedEntry(42, "swordfish")

	_, token, _, err := g.Unlock(entry, "swordfish", 0)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	d := g.Decide(entry, "", token)
	assert.True(t, d.Granted)
	assert.Equal(t, ReasonTokenMatch, d.Reason)
}

func TestDecide_WrongPasswordFallsThroughToToken(t *testing.T) {
	g := testGate()
	entry := gatedEntry(42, "swordfish")

	_, token, _, err := g.Unlock(entry, "swordfish", 0)
	require.NoError(t, err)

	// A read request may carry both a stale query password and a valid
	// cookie; the mismatch must not short-circuit the token check.
	d := g.Decide(entry, "wrong", token)
	assert.True(t, d.Granted)
	assert.Equal(t, ReasonTokenMatch, d.Reason)
}

func TestDecide_TokenBoundToSingleEntry(t *testing.T) {
	g := testGate()
	entryA := gatedEntry(42, "swordfish")
	entryB := gatedEntry(43, "marlin")

	_, token, _, err := g.Unlock(entryA, "swordfish", 0)
	require.NoError(t, err)

	d := g.Decide(entryB, "", token)
	assert.False(t, d.Granted)
	assert.Equal(t, ReasonDenied, d.Reason)
}

func TestDecide_ExpiredTokenDenies(t *testing.T) {
	codec := testCodec()
	g := New(codec)
	entry := gatedEntry(42, "swordfish")

	token, err := codec.Sign(Payload{ResourceID: 42, ExpiresAt: time.Now().Add(-time.Minute).Unix()})
	require.NoError(t, err)

	d := g.Decide(entry, "", token)
	assert.False(t, d.Granted)
	assert.Equal(t, ReasonDenied, d.Reason)
}

func TestUnlock_MintsOnlyOnPasswordMatch(t *testing.T) {
	g := testGate()

	d, token, _, err := g.Unlock(gatedEntry(1, "swordfish"), "wrong", 0)
	require.NoError(t, err)
	assert.False(t, d.Granted)
	assert.Empty(t, token)

	d, token, _, err = g.Unlock(gatedEntry(1, ""), "anything", 0)
	require.NoError(t, err)
	assert.True(t, d.Granted)
	assert.Equal(t, ReasonNoSecret, d.Reason)
	assert.Empty(t, token, "open entries have nothing to protect")

	d, token, expiresAt, err := g.Unlock(gatedEntry(1, "swordfish"), "swordfish", 0)
	require.NoError(t, err)
	assert.True(t, d.Granted)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))
}

func TestUnlock_TTLClamping(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	g := New(testCodec())
	g.now = func() time.Time { return fixed }

	entry := gatedEntry(1, "swordfish")

	cases := []struct {
		name string
		ttl  int64
		want time.Time
	}{
		{"negative floors to a minute", -5, fixed.Add(MinTokenTTL)},
		{"below floor floors to a minute", 10, fixed.Add(MinTokenTTL)},
		{"unspecified takes the default", 0, fixed.Add(DefaultTokenTTL)},
		{"explicit value kept", 3600, fixed.Add(time.Hour)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, expiresAt, err := g.Unlock(entry, "swordfish", tc.ttl)
			require.NoError(t, err)
			assert.Equal(t, tc.want, expiresAt)
		})
	}
}

func TestConstantTimeEquals(t *testing.T) {
	assert.True(t, constantTimeEquals("swordfish", "swordfish"))
	assert.False(t, constantTimeEquals("swordfish", "swordfis"))
	assert.False(t, constantTimeEquals("swordfish", "Swordfish"))
	assert.False(t, constantTimeEquals("", "swordfish"))
}

// A NUL-byte secret must not match candidates of a different length; naive
// zero-padding before comparison would collapse them into the same value.
func TestConstantTimeEqualsNulSecrets(t *testing.T) {
	assert.False(t, constantTimeEquals("\x00\x00", "\x00\x00\x00"))
	assert.False(t, constantTimeEquals("\x00\x00\x00", "\x00\x00"))
	assert.False(t, constantTimeEquals("", "\x00"))
	assert.True(t, constantTimeEquals("\x00\x00", "\x00\x00"))
}
