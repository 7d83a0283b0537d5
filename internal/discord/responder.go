package discord

import (
	"context"
	"io"
	"time"

	portfoliohandlers "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/infrastructure/handlers"
	"github.com/bwmarrin/discordgo"
)

// Sender is the part of *discordgo.Session used to reply.
type Sender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelFileSend(channelID, name string, r io.Reader, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// channelResponder replies in the channel a command came from.
type channelResponder struct {
	sender    Sender
	waiters   *Waiters
	channelID string
	authorID  string
}

var _ portfoliohandlers.Responder = (*channelResponder)(nil)

func (r *channelResponder) SendEmbed(ctx context.Context, embed *discordgo.MessageEmbed) error {
	_, err := r.sender.ChannelMessageSendEmbed(r.channelID, embed, discordgo.WithContext(ctx))
	return err
}

func (r *channelResponder) SendFile(ctx context.Context, name string, rd io.Reader) error {
	_, err := r.sender.ChannelFileSend(r.channelID, name, rd, discordgo.WithContext(ctx))
	return err
}

func (r *channelResponder) SendText(ctx context.Context, text string) error {
	_, err := r.sender.ChannelMessageSend(r.channelID, text, discordgo.WithContext(ctx))
	return err
}

func (r *channelResponder) AwaitReply(ctx context.Context, timeout time.Duration) (string, error) {
	return r.waiters.Await(ctx, r.channelID, r.authorID, timeout)
}
