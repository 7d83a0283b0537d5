package portfoliotypes

import (
	"strconv"
	"strings"
)

// MaxProjectsPerUser is the number of projects a single portfolio may hold.
const MaxProjectsPerUser = 3

// DiscordID is the Discord snowflake of a user, kept as text like the gateway sends it.
type DiscordID string

// Validate reports whether the ID looks like a Discord snowflake.
func (id DiscordID) Validate() bool {
	if id == "" {
		return false
	}
	_, err := strconv.ParseUint(string(id), 10, 64)
	return err == nil
}

// Mention renders the ID as a Discord user mention.
func (id DiscordID) Mention() string {
	return "<@" + string(id) + ">"
}

// MediaType classifies an uploaded attachment.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// IsValid reports whether t is one of the supported media types.
func (t MediaType) IsValid() bool {
	return t == MediaTypeImage || t == MediaTypeVideo
}

// ProjectNameKey folds a project name into the form used for case-insensitive
// uniqueness and lookups.
func ProjectNameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Member is the Discord identity shown in profile and preview embeds.
type Member struct {
	ID          DiscordID
	Username    string
	DisplayName string
	AvatarURL   string
}

// Name returns the display name, falling back to the username.
func (m Member) Name() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.Username
}
