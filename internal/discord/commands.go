package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/ChatterBot_Go/internal/domain"
	"github.com/osse101/ChatterBot_Go/internal/event"
	"github.com/osse101/ChatterBot_Go/internal/logger"
)

// CommandHandler handles a slash command
type CommandHandler func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot)

// CommandRegistry holds the registered commands
type CommandRegistry struct {
	Commands map[string]*discordgo.ApplicationCommand
	Handlers map[string]CommandHandler
}

// NewCommandRegistry creates a new registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		Commands: make(map[string]*discordgo.ApplicationCommand),
		Handlers: make(map[string]CommandHandler),
	}
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(cmd *discordgo.ApplicationCommand, handler CommandHandler) {
	r.Commands[cmd.Name] = cmd
	r.Handlers[cmd.Name] = handler
}

// Handle processes an interaction. The invoking user's commands_used counter is
// incremented before the handler runs, and a panicking handler is logged and swallowed.
func (r *CommandRegistry) Handle(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
	name := i.ApplicationCommandData().Name
	h, ok := r.Handlers[name]
	if !ok {
		return
	}

	ctx := logger.WithRequestID(context.Background(), i.ID)
	defer func() {
		if rec := recover(); rec != nil {
			logger.FromContext(ctx).Error(LogMsgCommandPanic, "command", name, "panic", rec)
		}
	}()

	b.trackCommand(ctx, i, name)
	h(ctx, s, i, b)
}

// trackCommand records a command event for the invoking user.
func (b *Bot) trackCommand(ctx context.Context, i *discordgo.InteractionCreate, name string) {
	e, err := InboundFromInteraction(i)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgSkipMessage, "command", name, "error", err)
		return
	}
	if b.deps.Tracking != nil {
		if err := b.deps.Tracking.Track(ctx, e); err != nil {
			logger.FromContext(ctx).Debug(LogMsgTrackFailed, "command", name, "error", err)
		}
	}
	if err := b.deps.Publisher.Publish(ctx, event.NewCommandUsedEvent(e.UserID, name)); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "command", name, "error", err)
	}
}

// InboundFromInteraction maps a slash command invocation to a command event.
func InboundFromInteraction(i *discordgo.InteractionCreate) (*domain.InboundEvent, error) {
	user := getInteractionUser(i)
	if user == nil {
		return nil, errors.New(ErrMsgNoAuthor)
	}
	userID, err := parseSnowflake(user.ID)
	if err != nil {
		return nil, err
	}
	e := &domain.InboundEvent{
		UserID:    userID,
		Type:      domain.EventCommand,
		Username:  user.Username,
		FirstName: user.GlobalName,
		Timestamp: time.Now().UTC(),
	}
	// Interaction and channel ids double as the dedupe key for redelivered interactions.
	if id, err := parseSnowflake(i.ID); err == nil {
		e.MessageID = id
	}
	if id, err := parseSnowflake(i.ChannelID); err == nil {
		e.ChatID = id
	}
	return e, nil
}

// RegisterCommands registers or updates commands with Discord.
// Only performs updates if commands have changed to avoid rate limits
func (b *Bot) RegisterCommands(registry *CommandRegistry, forceUpdate bool) error {
	slog.Info(LogMsgCheckingCommands)

	desiredCmds := make([]*discordgo.ApplicationCommand, 0, len(registry.Commands))
	for _, cmd := range registry.Commands {
		desiredCmds = append(desiredCmds, cmd)
	}

	if forceUpdate {
		slog.Info(LogMsgForceUpdate, "count", len(desiredCmds))
		return b.overwriteCommands(desiredCmds)
	}

	existingCmds, err := b.Session.ApplicationCommands(b.AppID, "")
	if err != nil {
		return fmt.Errorf(ErrMsgFetchCommands, err)
	}

	if commandsEqual(existingCmds, desiredCmds) {
		slog.Info(LogMsgCommandsUnchanged, "count", len(existingCmds))
		return nil
	}

	slog.Info(LogMsgCommandsChanged, "existing", len(existingCmds), "desired", len(desiredCmds))
	return b.overwriteCommands(desiredCmds)
}

func (b *Bot) overwriteCommands(cmds []*discordgo.ApplicationCommand) error {
	if _, err := b.Session.ApplicationCommandBulkOverwrite(b.AppID, "", cmds); err != nil {
		return fmt.Errorf(ErrMsgOverwrite, err)
	}
	slog.Info(LogMsgCommandsUpdated, "count", len(cmds))
	return nil
}

// commandsEqual checks if two command sets are equivalent
func commandsEqual(existing, desired []*discordgo.ApplicationCommand) bool {
	if len(existing) != len(desired) {
		return false
	}

	existingMap := make(map[string]*discordgo.ApplicationCommand, len(existing))
	for _, cmd := range existing {
		existingMap[cmd.Name] = cmd
	}

	for _, want := range desired {
		have, ok := existingMap[want.Name]
		if !ok || !commandEqual(have, want) {
			return false
		}
	}
	return true
}

// commandEqual checks if two commands are equivalent
func commandEqual(a, b *discordgo.ApplicationCommand) bool {
	if a.Name != b.Name || a.Description != b.Description {
		return false
	}

	if (a.DefaultMemberPermissions == nil) != (b.DefaultMemberPermissions == nil) {
		return false
	}
	if a.DefaultMemberPermissions != nil && *a.DefaultMemberPermissions != *b.DefaultMemberPermissions {
		return false
	}

	if len(a.Options) != len(b.Options) {
		return false
	}
	for i := range a.Options {
		if !optionEqual(a.Options[i], b.Options[i]) {
			return false
		}
	}
	return true
}

// optionEqual checks if two command options are equivalent
func optionEqual(a, b *discordgo.ApplicationCommandOption) bool {
	if a.Type != b.Type || a.Name != b.Name || a.Description != b.Description || a.Required != b.Required {
		return false
	}

	if len(a.Choices) != len(b.Choices) {
		return false
	}
	for i := range a.Choices {
		if a.Choices[i].Name != b.Choices[i].Name || a.Choices[i].Value != b.Choices[i].Value {
			return false
		}
	}
	return true
}
