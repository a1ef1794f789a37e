package semver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	v, err := Parse("v1.4.2-rc.1+build.7")
	require.NoError(t, err)
	assert.Equal(t, Version{Major: 1, Minor: 4, Patch: 2, Prerelease: "rc.1", Build: "build.7"}, v)
	assert.Equal(t, "1.4.2-rc.1+build.7", v.String())

	_, err = Parse("1.4")
	assert.Error(t, err)
}

func TestCompare(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "2.0.0", -1},
		{"1.2.0", "1.1.9", 1},
		{"1.0.0-rc.1", "1.0.0", -1},
		{"1.0.0", "1.0.0-rc.1", 1},
		{"1.0.0-alpha", "1.0.0-beta", -1},
		{"1.0.0+a", "1.0.0+b", 0},
	}
	for _, c := range cases {
		a, err := Parse(c.a)
		require.NoError(t, err)
		b, err := Parse(c.b)
		require.NoError(t, err)
		assert.Equal(t, c.want, a.Compare(b), "%s vs %s", c.a, c.b)
	}
}

func TestAnyCompatible(t *testing.T) {
	supported := []Version{New(1, 0, 0)}
	assert.True(t, AnyCompatible(supported, New(1, 9, 3)))
	assert.False(t, AnyCompatible(supported, New(2, 0, 0)))
}
