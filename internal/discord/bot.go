package discord

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/ChatterBot_Go/internal/counter"
	"github.com/osse101/ChatterBot_Go/internal/event"
	"github.com/osse101/ChatterBot_Go/internal/group"
	"github.com/osse101/ChatterBot_Go/internal/rates"
	"github.com/osse101/ChatterBot_Go/internal/stats"
	"github.com/osse101/ChatterBot_Go/internal/tracking"
)

// FXRates looks up fiat exchange rates. *rates.FXClient implements it.
type FXRates interface {
	Latest(ctx context.Context, base string, currencies []string) (*rates.LatestRates, error)
	Convert(ctx context.Context, from, to string, amount float64) (*rates.Conversion, error)
}

// CryptoQuotes looks up cryptocurrency prices. *rates.CryptoClient implements it.
type CryptoQuotes interface {
	Quote(ctx context.Context, symbol string) (*rates.CryptoQuote, error)
}

// Config holds the bot configuration
type Config struct {
	Token string
	AppID string
	// AllowedChannelID restricts the bot to one channel when set.
	AllowedChannelID   string
	AdminUserIDs       []int64
	ForceCommandUpdate bool
}

// Deps are the services the bot drives. FX, Crypto and Publisher are optional.
type Deps struct {
	Tracking  tracking.Service
	Stats     stats.Service
	Counters  counter.Service
	Groups    group.Service
	FX        FXRates
	Crypto    CryptoQuotes
	Publisher event.Publisher
}

// Bot represents the Discord bot
type Bot struct {
	Session  *discordgo.Session
	AppID    string
	Registry *CommandRegistry

	cfg  Config
	deps Deps
}

// New creates a new Discord bot with every chat command registered.
func New(cfg Config, deps Deps) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCreateSession, err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent

	return newBot(s, cfg, deps), nil
}

func newBot(s *discordgo.Session, cfg Config, deps Deps) *Bot {
	if deps.Publisher == nil {
		deps.Publisher = event.NopPublisher{}
	}
	b := &Bot{
		Session:  s,
		AppID:    cfg.AppID,
		Registry: NewCommandRegistry(),
		cfg:      cfg,
		deps:     deps,
	}
	registerAll(b.Registry)
	return b
}

func registerAll(r *CommandRegistry) {
	r.Register(PingCommand())
	r.Register(StatsCommand())
	r.Register(Top10Command())
	r.Register(JoinGroupCommand())
	r.Register(LeaveGroupCommand())
	r.Register(RemoveGroupCommand())
	r.Register(GroupsCommand())
	r.Register(MyGroupsCommand())
	r.Register(MentionCommand())
	r.Register(ConvertCommand())
	r.Register(LatestCommand())
	r.Register(PriceCommand())
}

// Start opens the gateway connection and syncs slash commands.
func (b *Bot) Start() error {
	b.Session.AddHandler(b.ready)
	b.Session.AddHandler(b.interactionCreate)
	b.Session.AddHandler(b.messageCreate)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf(ErrMsgOpenSession, err)
	}

	if err := b.RegisterCommands(b.Registry, b.cfg.ForceCommandUpdate); err != nil {
		b.Stop()
		return err
	}

	slog.Info(LogMsgBotRunning, "commands", len(b.Registry.Commands))
	return nil
}

// Stop closes the gateway connection
func (b *Bot) Stop() {
	if err := b.Session.Close(); err != nil {
		slog.Warn("Error closing Discord session", "error", err)
	}
}

// Run starts the bot and blocks until ctx is cancelled
func (b *Bot) Run(ctx context.Context) error {
	if err := b.Start(); err != nil {
		return err
	}
	defer b.Stop()

	<-ctx.Done()
	return nil
}

func (b *Bot) ready(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info(LogMsgBotReady, "user", r.User.Username, "guilds", len(r.Guilds))
}

func (b *Bot) interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if !b.channelAllowed(i.ChannelID) {
		return
	}
	b.Registry.Handle(s, i, b)
}

func (b *Bot) channelAllowed(channelID string) bool {
	return b.cfg.AllowedChannelID == "" || b.cfg.AllowedChannelID == channelID
}

func (b *Bot) isAdmin(userID int64) bool {
	return slices.Contains(b.cfg.AdminUserIDs, userID)
}
