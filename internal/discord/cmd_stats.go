package discord

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/ChatterBot_Go/internal/domain"
)

// StatsCommand returns the stats command definition and handler
func StatsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdStats,
		Description: "Show message statistics for you or another user",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        OptUser,
				Description: "User to look up (default: you)",
				Required:    false,
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
		if !deferResponse(ctx, s, i) {
			return
		}

		userID, err := interactionUserID(i)
		if opt, ok := getOptions(i)[OptUser]; ok {
			userID, err = parseSnowflake(opt.UserValue(nil).ID)
		}
		if err != nil {
			respondServiceError(ctx, s, i, CmdStats, err)
			return
		}

		report, err := b.deps.Stats.UserReport(ctx, userID)
		if errors.Is(err, domain.ErrUserNotFound) {
			respondError(ctx, s, i, MsgNoStats)
			return
		}
		if err != nil {
			respondServiceError(ctx, s, i, CmdStats, err)
			return
		}

		sendEmbed(ctx, s, i, createEmbed("📊 Stats", formatReport(report), ColorStats, ""))
	}

	return cmd, handler
}

// Top10Command returns the top10 command definition and handler
func Top10Command() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdTop10,
		Description: "Show the 10 most active users",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
		if !deferResponse(ctx, s, i) {
			return
		}

		entries, err := b.deps.Stats.Leaderboard(ctx, TopLimit)
		if err != nil {
			respondServiceError(ctx, s, i, CmdTop10, err)
			return
		}

		sendEmbed(ctx, s, i, createEmbed("🏆 Leaderboard", formatLeaderboard(entries), ColorTop, ""))
	}

	return cmd, handler
}
