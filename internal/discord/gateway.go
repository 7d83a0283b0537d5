// Package discord connects the portfolio command handlers to a Discord bot
// session.
package discord

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	portfoliotypes "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/domain/types"
	portfoliohandlers "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/infrastructure/handlers"
	"github.com/bwmarrin/discordgo"
)

// Intents needed to read prefix commands in guilds and DMs.
const Intents = discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentsMessageContent

// Config holds the gateway settings.
type Config struct {
	Token          string
	Prefix         string
	CommandTimeout time.Duration
}

// Gateway reads messages from Discord and dispatches prefix commands.
type Gateway struct {
	session  *discordgo.Session
	sender   Sender
	handlers portfoliohandlers.Handlers
	waiters  *Waiters
	logger   *slog.Logger
	prefix   string
	timeout  time.Duration

	baseCtx  context.Context
	inFlight sync.WaitGroup
}

// New creates a Gateway for a bot token. The session is opened by Run.
func New(cfg Config, handlers portfoliohandlers.Handlers, logger *slog.Logger) (*Gateway, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = Intents

	g := newGateway(session, cfg, handlers, logger)
	g.session = session
	return g, nil
}

func newGateway(sender Sender, cfg Config, handlers portfoliohandlers.Handlers, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		sender:   sender,
		handlers: handlers,
		waiters:  NewWaiters(),
		logger:   logger,
		prefix:   cfg.Prefix,
		timeout:  cfg.CommandTimeout,
		baseCtx:  context.Background(),
	}
}

// Run opens the session and serves commands until ctx is cancelled. In-flight
// commands are waited for before the session closes.
func (g *Gateway) Run(ctx context.Context) error {
	g.baseCtx = ctx
	remove := g.session.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		g.HandleMessage(m.Message)
	})
	defer remove()

	g.session.AddHandlerOnce(func(_ *discordgo.Session, r *discordgo.Ready) {
		g.logger.Info("Discord session ready",
			slog.String("user", r.User.Username),
			slog.Int("guilds", len(r.Guilds)),
			slog.Any("commands", g.handlers.Commands()),
		)
	})

	if err := g.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}

	<-ctx.Done()
	g.logger.Info("Shutting down Discord gateway")
	g.inFlight.Wait()

	if err := g.session.Close(); err != nil {
		return fmt.Errorf("failed to close discord session: %w", err)
	}
	return nil
}

// HandleMessage consumes pending numeric replies and dispatches prefix
// commands, each on its own goroutine.
func (g *Gateway) HandleMessage(m *discordgo.Message) {
	if m == nil || m.Author == nil || m.Author.Bot {
		return
	}
	if g.waiters.Offer(m.ChannelID, m.Author.ID, m.Content) {
		return
	}

	name, rest, ok := ParseCommand(m.Content, g.prefix)
	if !ok {
		return
	}

	req := portfoliohandlers.Request{
		Command:     name,
		Author:      memberFrom(m.Author, m.Member),
		ChannelID:   m.ChannelID,
		Args:        Tokenize(rest),
		Rest:        rest,
		Mentions:    mentionsFrom(m.Mentions),
		Attachments: attachmentsFrom(m.Attachments),
	}
	resp := &channelResponder{
		sender:    g.sender,
		waiters:   g.waiters,
		channelID: m.ChannelID,
		authorID:  m.Author.ID,
	}

	g.inFlight.Add(1)
	go func() {
		defer g.inFlight.Done()
		ctx, cancel := g.commandContext()
		defer cancel()
		g.handlers.Dispatch(ctx, req, resp)
	}()
}

func (g *Gateway) commandContext() (context.Context, context.CancelFunc) {
	if g.timeout > 0 {
		return context.WithTimeout(g.baseCtx, g.timeout)
	}
	return context.WithCancel(g.baseCtx)
}

// Wait blocks until every dispatched command has returned.
func (g *Gateway) Wait() {
	g.inFlight.Wait()
}

func memberFrom(u *discordgo.User, gm *discordgo.Member) portfoliotypes.Member {
	member := portfoliotypes.Member{
		ID:          portfoliotypes.DiscordID(u.ID),
		Username:    u.Username,
		DisplayName: u.GlobalName,
		AvatarURL:   u.AvatarURL(""),
	}
	if gm != nil && gm.Nick != "" {
		member.DisplayName = gm.Nick
	}
	return member
}

func mentionsFrom(users []*discordgo.User) []portfoliotypes.Member {
	var out []portfoliotypes.Member
	for _, u := range users {
		if u == nil {
			continue
		}
		out = append(out, memberFrom(u, nil))
	}
	return out
}

func attachmentsFrom(atts []*discordgo.MessageAttachment) []portfoliohandlers.Attachment {
	var out []portfoliohandlers.Attachment
	for _, a := range atts {
		if a == nil {
			continue
		}
		out = append(out, portfoliohandlers.Attachment{
			Filename:    a.Filename,
			URL:         a.URL,
			ContentType: a.ContentType,
			Size:        a.Size,
		})
	}
	return out
}
