package postservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTags(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "simple", input: "go,rust", want: []string{"go", "rust"}},
		{name: "spaces and case", input: " Go , RUST ,sql", want: []string{"go", "rust", "sql"}},
		{name: "duplicates", input: "go,Go, go", want: []string{"go"}},
		{name: "empty terms", input: ",, ,go,", want: []string{"go"}},
		{name: "empty", input: "", want: []string{}},
		{name: "only separators", input: " , , ", want: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeTags(tc.input))
		})
	}
}
