package discord

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/ChatterBot_Go/internal/domain"
	"github.com/osse101/ChatterBot_Go/internal/logger"
)

// deferResponse acknowledges an interaction with a deferred message.
// Required before any store or API call that might take longer than 3 seconds.
// Returns false if deferral failed and the handler should return.
func deferResponse(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		logger.FromContext(ctx).Error(LogMsgDeferFailed, "error", err)
		return false
	}
	return true
}

// respondText replies to an interaction immediately without mentioning anyone.
func respondText(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:         content,
			AllowedMentions: noMentions(),
		},
	}); err != nil {
		logger.FromContext(ctx).Error(LogMsgRespondFailed, "error", err)
	}
}

// editResponse replaces a deferred response with plain text.
func editResponse(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content:         &content,
		AllowedMentions: noMentions(),
	}); err != nil {
		logger.FromContext(ctx).Error(LogMsgEditFailed, "error", err)
	}
}

// respondError edits a deferred response with a plain error message.
func respondError(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	editResponse(ctx, s, i, message)
}

// respondServiceError logs err and edits the deferred response with a friendly message.
func respondServiceError(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, command string, err error) {
	logger.FromContext(ctx).Error(LogMsgCommandFailed, "command", command, "error", err)
	respondError(ctx, s, i, friendlyError(err))
}

// friendlyError maps service errors to chat-facing text.
func friendlyError(err error) string {
	switch {
	case errors.Is(err, domain.ErrStoreUnavailable):
		return MsgStoreUnavailable
	case errors.Is(err, domain.ErrUserNotFound):
		return MsgNoStats
	default:
		return MsgGenericError
	}
}

// sendEmbed edits a deferred response with an embed.
func sendEmbed(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds:          &[]*discordgo.MessageEmbed{embed},
		AllowedMentions: noMentions(),
	}); err != nil {
		logger.FromContext(ctx).Error(LogMsgEditFailed, "error", err)
	}
}

// createEmbed creates a standard embed. An empty footerText defaults to FooterChatterBot.
func createEmbed(title, description string, color int, footerText string) *discordgo.MessageEmbed {
	if footerText == "" {
		footerText = FooterChatterBot
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: footerText,
		},
	}
}

// getInteractionUser extracts the user from an interaction.
// Handles both guild (i.Member.User) and DM (i.User) contexts.
func getInteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// getOptions indexes the command options by name.
func getOptions(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := i.ApplicationCommandData().Options
	byName := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		byName[opt.Name] = opt
	}
	return byName
}

// interactionUserID returns the numeric id of the invoking user.
func interactionUserID(i *discordgo.InteractionCreate) (int64, error) {
	user := getInteractionUser(i)
	if user == nil {
		return 0, errors.New(ErrMsgNoAuthor)
	}
	return parseSnowflake(user.ID)
}

// parseSnowflake converts a Discord id to the int64 user ids the stores key on.
func parseSnowflake(id string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: "+ErrMsgParseID, domain.ErrInvalidInput, id, err)
	}
	return n, nil
}

// noMentions suppresses pings from bot output that lists user names.
func noMentions() *discordgo.MessageAllowedMentions {
	return &discordgo.MessageAllowedMentions{Parse: []discordgo.AllowedMentionType{}}
}
