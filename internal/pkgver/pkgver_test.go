package pkgver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestNormalize covers prefix stripping, leading-v removal, and hyphen conversion.
func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw       string
		tagPrefix string
		want      string
	}{
		{"codex-v1.2.3", "codex-", "1.2.3"},
		{"v2.0.0", "", "2.0.0"},
		{"1-2-3", "", "1.2.3"},
		{"release-2024.1", "release-", "2024.1"},
		{"3.4.5", "", "3.4.5"},
		{"v1.0-rc1", "", "1.0.rc1"},
		{"", "", ""},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, Normalize(tc.raw, tc.tagPrefix), "raw=%q prefix=%q", tc.raw, tc.tagPrefix)
	}
}

// TestNormalize_Idempotent ensures normalizing an already-normalized string is a fixed point.
func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"codex-v1.2.3", "v2.0.0", "1-2-3", "0.50.1"} {
		once := Normalize(raw, "codex-")
		require.Equal(t, once, Normalize(once, "codex-"))
	}
}

// TestCompare verifies change classification including format-only equivalence.
func TestCompare(t *testing.T) {
	t.Parallel()

	cases := []struct {
		current string
		next    string
		want    Change
	}{
		{"1.0.0", "1.0.0", Same},
		{"1.2", "1.2.0", Same},
		{"1.0.0", "1.1.0", Upgrade},
		{"2.0.0", "1.9.9", Downgrade},
		{"not-a-version", "1.0.0", Unknown},
		{"1.0.0", "also-not", Unknown},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, Compare(tc.current, tc.next), "%s -> %s", tc.current, tc.next)
	}
}
