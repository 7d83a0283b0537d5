package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		prefix   string
		wantName string
		wantRest string
		wantOK   bool
	}{
		{name: "bare command", content: "/help", prefix: "/", wantName: "help", wantOK: true},
		{name: "with rest", content: "/Add-Project  Site Web My site ", prefix: "/", wantName: "add-project", wantRest: "Site Web My site", wantOK: true},
		{name: "multi-char prefix", content: "pf!profile <@1>", prefix: "pf!", wantName: "profile", wantRest: "<@1>", wantOK: true},
		{name: "no prefix", content: "help", prefix: "/"},
		{name: "prefix only", content: "/ help", prefix: "/"},
		{name: "empty prefix", content: "help", prefix: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, rest, ok := ParseCommand(tt.content, tt.prefix)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "", want: nil},
		{in: "Site Web My site", want: []string{"Site", "Web", "My", "site"}},
		{in: `"Мой сайт" Веб "Описание проекта"`, want: []string{"Мой сайт", "Веб", "Описание проекта"}},
		{in: `a "" b`, want: []string{"a", "", "b"}},
		{in: `"unterminated quote`, want: []string{"unterminated quote"}},
		{in: "  spaced\tout  ", want: []string{"spaced", "out"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}
}

func TestIsSelection(t *testing.T) {
	assert.True(t, isSelection("2"))
	assert.True(t, isSelection(" 12 "))
	assert.False(t, isSelection(""))
	assert.False(t, isSelection("-1"))
	assert.False(t, isSelection("2a"))
	assert.False(t, isSelection("/help"))
}
