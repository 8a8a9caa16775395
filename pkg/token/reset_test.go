package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetIssuer_IssueAndVerify(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	r := NewResetIssuer(10 * time.Minute).WithClock(fixedClock(now))

	rt, err := r.Issue()
	require.NoError(t, err)

	assert.Len(t, rt.Plain, resetTokenBytes*2)
	assert.NotEqual(t, rt.Plain, rt.Hash)
	assert.Equal(t, HashResetToken(rt.Plain), rt.Hash)
	assert.Equal(t, now.Add(10*time.Minute), rt.ExpiresAt)

	assert.True(t, r.Verify(rt.Plain, rt.Hash, rt.ExpiresAt))
	assert.False(t, r.Verify(rt.Plain+"0", rt.Hash, rt.ExpiresAt))
	assert.False(t, r.Verify("", rt.Hash, rt.ExpiresAt))
}

func TestResetIssuer_ExpiredEvenWhenHashMatches(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	r := NewResetIssuer(10 * time.Minute).WithClock(fixedClock(now))

	rt, err := r.Issue()
	require.NoError(t, err)

	later := r.WithClock(fixedClock(now.Add(11 * time.Minute)))
	assert.False(t, later.Verify(rt.Plain, rt.Hash, rt.ExpiresAt))
}

func TestResetIssuer_TokensAreUnique(t *testing.T) {
	t.Parallel()

	r := NewResetIssuer(time.Minute)
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		rt, err := r.Issue()
		require.NoError(t, err)
		_, dup := seen[rt.Plain]
		require.False(t, dup)
		seen[rt.Plain] = struct{}{}
	}
}
