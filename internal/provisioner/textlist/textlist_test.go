package textlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
		{
			name:     "single entry",
			input:    "https://github.com/acme/nodes.git",
			expected: []string{"https://github.com/acme/nodes.git"},
		},
		{
			name:     "blank lines and comments ignored",
			input:    "\n# comment\n  \nhttps://a.git\n\n# another\nhttps://b.git\n",
			expected: []string{"https://a.git", "https://b.git"},
		},
		{
			name:     "entries are trimmed",
			input:    "  https://a.git  \n\thttps://b.git\t",
			expected: []string{"https://a.git", "https://b.git"},
		},
		{
			name:     "comment only",
			input:    "# nothing here\n#, really",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Lines(tt.input))
		})
	}
}

func TestPipeSeparated(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
		{
			name:     "single command",
			input:    "echo done",
			expected: []string{"echo done"},
		},
		{
			name:     "multiple commands trimmed",
			input:    "echo one | echo two|echo three ",
			expected: []string{"echo one", "echo two", "echo three"},
		},
		{
			name:     "empty segments dropped",
			input:    "| echo only | |",
			expected: []string{"echo only"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PipeSeparated(tt.input))
		})
	}
}
