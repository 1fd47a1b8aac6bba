package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		input     string
		maxLength int
		want      string
	}{
		{"Cell Biology 101", 50, "cell-biology-101"},
		{"  Spaced   Out  ", 50, "spaced-out"},
		{"C++ & Go!", 50, "c-go"},
		{"Ümlauts über alles", 50, "mlauts-ber-alles"},
		{"UPPER", 50, "upper"},
		{"!!!", 50, "item"},
		{"", 50, "item"},
		{"abcdef", 4, "abcd"},
		{"ab-cd", 3, "ab"},
		{"no limit here", 0, "no-limit-here"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.input, tc.maxLength), "Slugify(%q, %d)", tc.input, tc.maxLength)
	}
}
