package portfoliohandlers

import (
	"context"
	"errors"
	"io"
	"time"

	portfolioevents "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/domain/events"
	portfoliotypes "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/domain/types"
	"github.com/bwmarrin/discordgo"
)

// ErrReplyTimeout is returned by Responder.AwaitReply when no reply arrived in time.
var ErrReplyTimeout = errors.New("no reply before timeout")

// Attachment is a file attached to the invoking message.
type Attachment struct {
	Filename    string
	URL         string
	ContentType string
	Size        int
}

// Request is one prefix-command invocation, independent of the transport.
type Request struct {
	Command   string
	Author    portfoliotypes.Member
	ChannelID string
	// Args are the tokenized arguments; quoted text is a single argument.
	Args []string
	// Rest is the raw text after the command name.
	Rest        string
	Mentions    []portfoliotypes.Member
	Attachments []Attachment
}

// Arg returns the i-th argument or "".
func (r Request) Arg(i int) string {
	if i < 0 || i >= len(r.Args) {
		return ""
	}
	return r.Args[i]
}

// Target returns the first mentioned member, or the author.
func (r Request) Target() portfoliotypes.Member {
	if len(r.Mentions) > 0 {
		return r.Mentions[0]
	}
	return r.Author
}

// Responder sends replies to the channel the request came from.
type Responder interface {
	SendEmbed(ctx context.Context, embed *discordgo.MessageEmbed) error
	SendFile(ctx context.Context, name string, r io.Reader) error
	SendText(ctx context.Context, text string) error
	// AwaitReply waits for a numeric reply from the same author in the same
	// channel and returns its text, or ErrReplyTimeout.
	AwaitReply(ctx context.Context, timeout time.Duration) (string, error)
}

// MediaStore downloads attachments and deletes stored files.
type MediaStore interface {
	Download(ctx context.Context, url string, projectID int64) (string, error)
	Remove(path string) error
}

// Handlers is the command surface the gateway dispatches into.
type Handlers interface {
	Dispatch(ctx context.Context, req Request, resp Responder)
	Commands() []string
}

// EventHandlers react to committed portfolio events.
type EventHandlers interface {
	HandleProjectDeleted(ctx context.Context, payload *portfolioevents.ProjectDeletedPayloadV1) error
	HandleUserDeleted(ctx context.Context, payload *portfolioevents.UserDeletedPayloadV1) error
	HandleMediaRemoved(ctx context.Context, payload *portfolioevents.MediaRemovedPayloadV1) error
}
