package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeEntities(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"decimal numeric", "A&#65;B", "AAB"},
		{"hex numeric", "&#x48;ades", "Hades"},
		{"named quote", "&quot;Hades&quot;", `"Hades"`},
		{"ampersand last", "Ratchet &amp; Clank", "Ratchet & Clank"},
		{"no double unescape", "&amp;#10;", "&#10;"},
		{"mixed order", "&amp;quot;", "&quot;"},
		{"untouched plain text", "no entities here", "no entities here"},
		{"invalid reference kept", "&#zz;", "&#zz;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeEntities(tt.input))
		})
	}
}

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "removes tags",
			input: "<p>A roguelike <b>dungeon crawler</b>.</p>",
			want:  "A roguelike dungeon crawler.",
		},
		{
			name:  "block elements separate words",
			input: "<p>First</p><p>Second</p>",
			want:  "First Second",
		},
		{
			name:  "plain text unchanged",
			input: "Already plain.",
			want:  "Already plain.",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripMarkup(tt.input))
		})
	}
}

func TestCleanDescription(t *testing.T) {
	in := "<p>Fight the gods &amp; escape the underworld&hellip;</p>"
	assert.Equal(t, "Fight the gods & escape the underworld…", CleanDescription(in))
}
