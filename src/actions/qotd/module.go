// Package qotd runs the Discord side of the bot: it owns the gateway session,
// reads prefixed commands and posts what the command router returns.
package qotd

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stake-plus/qotd/src/actions/core"
	"github.com/stake-plus/qotd/src/commands"
	"github.com/stake-plus/qotd/src/config"
	"github.com/stake-plus/qotd/src/content"
	"github.com/stake-plus/qotd/src/discord"
	"github.com/stake-plus/qotd/src/guild"
	"go.uber.org/zap"
)

var _ core.Module = (*Module)(nil)

const (
	sendAttempts   = 3
	sendRetryDelay = time.Second
)

// Stores are the persistence collaborators of the module.
type Stores struct {
	Config    *guild.ConfigStore
	Questions *content.Repository[string]
	Polls     *content.Repository[content.Poll]
	Publisher DeliveryPublisher
}

type Module struct {
	cfg        config.BotConfig
	log        *zap.Logger
	session    *discordgo.Session
	handler    *Handler
	runtimeCtx context.Context
	cancel     context.CancelFunc
}

func NewModule(cfg config.BotConfig, stores Stores, log *zap.Logger) (*Module, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("qotd: discord token is not configured")
	}
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent

	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("qotd")

	router := commands.NewRouter(commands.Deps{
		Config:    stores.Config,
		Questions: stores.Questions,
		Polls:     stores.Polls,
		Directory: discord.NewDirectory(session),
		Formatter: guild.Formatter{RoleTemplate: guild.DiscordRoleTemplate},
		Prefix:    cfg.Prefix,
	})

	m := &Module{cfg: cfg, log: log, session: session}
	m.handler = &Handler{
		Router:    router,
		Sender:    &sessionSender{session: session},
		Publisher: stores.Publisher,
		Log:       log,
		Prefix:    cfg.Prefix,
		Timeout:   cfg.CommandTimeout,
		Authorize: func(in Inbound) bool {
			return discord.IsAdmin(session, in.GuildID, in.Member, cfg.AdminRole)
		},
	}
	m.initHandlers()
	return m, nil
}

// Name implements core.Module.
func (m *Module) Name() string { return "qotd" }

func (m *Module) initHandlers() {
	m.session.AddHandler(m.onReady)
	m.session.AddHandler(m.onMessageCreate)
}

func (m *Module) onReady(s *discordgo.Session, r *discordgo.Ready) {
	m.log.Info("qotd: logged in",
		zap.String("user", r.User.Username),
		zap.Int("guilds", len(r.Guilds)),
		zap.String("prefix", m.cfg.Prefix),
	)
}

func (m *Module) onMessageCreate(s *discordgo.Session, mc *discordgo.MessageCreate) {
	if mc.Author == nil || mc.Author.Bot || mc.GuildID == "" {
		return
	}
	ctx := m.runtimeCtx
	if ctx == nil {
		ctx = context.Background()
	}
	m.handler.Handle(ctx, Inbound{
		GuildID:   mc.GuildID,
		ChannelID: mc.ChannelID,
		MessageID: mc.ID,
		AuthorID:  mc.Author.ID,
		Content:   mc.Content,
		Member:    mc.Member,
	})
}

func (m *Module) Start(ctx context.Context) error {
	runtimeCtx, cancel := context.WithCancel(ctx)
	m.runtimeCtx = runtimeCtx
	m.cancel = cancel

	if err := m.session.Open(); err != nil {
		cancel()
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}
	return nil
}

func (m *Module) Stop(ctx context.Context) {
	if m.cancel != nil {
		m.cancel()
	}
	if m.session != nil {
		if err := m.session.Close(); err != nil {
			m.log.Warn("qotd: closing session", zap.Error(err))
		}
	}
}

// sessionSender sends through discordgo, retrying rate limits and 5xx.
type sessionSender struct {
	session *discordgo.Session
}

func (s *sessionSender) Send(ctx context.Context, channelID string, msg *discordgo.MessageSend) (*discordgo.Message, error) {
	var sent *discordgo.Message
	err := discord.DoWithRetry(ctx, sendAttempts, sendRetryDelay, func() error {
		var err error
		sent, err = s.session.ChannelMessageSendComplex(channelID, msg, discordgo.WithContext(ctx))
		return err
	})
	return sent, err
}

func (s *sessionSender) React(ctx context.Context, channelID, messageID, emoji string) error {
	return discord.DoWithRetry(ctx, sendAttempts, sendRetryDelay, func() error {
		return s.session.MessageReactionAdd(channelID, messageID, emoji, discordgo.WithContext(ctx))
	})
}
