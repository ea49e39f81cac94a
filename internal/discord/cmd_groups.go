package discord

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/ChatterBot_Go/internal/domain"
	"github.com/osse101/ChatterBot_Go/internal/logger"
)

func groupOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        OptGroup,
		Description: description,
		Required:    true,
		MinLength:   &[]int{domain.GroupNameMinLength}[0],
		MaxLength:   domain.GroupNameMaxLength,
	}
}

type membershipAction func(ctx context.Context, b *Bot, name string, userID int64) (domain.GroupResult, error)

// membershipCommand builds /joingroup and /leavegroup, which differ only in the registry call.
func membershipCommand(name, description string, action membershipAction) (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        name,
		Description: description,
		Options:     []*discordgo.ApplicationCommandOption{groupOption("Group name")},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
		if !deferResponse(ctx, s, i) {
			return
		}

		userID, err := interactionUserID(i)
		if err != nil {
			respondServiceError(ctx, s, i, name, err)
			return
		}

		res, err := action(ctx, b, getOptions(i)[OptGroup].StringValue(), userID)
		if err != nil {
			logger.FromContext(ctx).Error(LogMsgCommandFailed, "command", name, "error", err)
			respondError(ctx, s, i, MsgGroupRequestKO)
			return
		}
		editResponse(ctx, s, i, formatGroupResult(res))
	}

	return cmd, handler
}

// JoinGroupCommand returns the joingroup command definition and handler
func JoinGroupCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	return membershipCommand(CmdJoinGroup, "Join a mention group, creating it if needed",
		func(ctx context.Context, b *Bot, name string, userID int64) (domain.GroupResult, error) {
			return b.deps.Groups.Join(ctx, name, userID)
		})
}

// LeaveGroupCommand returns the leavegroup command definition and handler
func LeaveGroupCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	return membershipCommand(CmdLeaveGroup, "Leave a mention group",
		func(ctx context.Context, b *Bot, name string, userID int64) (domain.GroupResult, error) {
			return b.deps.Groups.Leave(ctx, name, userID)
		})
}

// RemoveGroupCommand returns the admin-only rmgroup command definition and handler
func RemoveGroupCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdRmGroup,
		Description: "Delete a mention group (admin only)",
		Options:     []*discordgo.ApplicationCommandOption{groupOption("Group to delete")},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
		userID, err := interactionUserID(i)
		if err != nil || !b.isAdmin(userID) {
			respondText(ctx, s, i, MsgAdminOnly)
			return
		}
		if !deferResponse(ctx, s, i) {
			return
		}

		res, err := b.deps.Groups.Delete(ctx, getOptions(i)[OptGroup].StringValue())
		if err != nil {
			logger.FromContext(ctx).Error(LogMsgCommandFailed, "command", CmdRmGroup, "error", err)
			respondError(ctx, s, i, MsgGroupRequestKO)
			return
		}
		editResponse(ctx, s, i, formatGroupResult(res))
	}

	return cmd, handler
}

// GroupsCommand returns the groups listing command definition and handler
func GroupsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdGroups,
		Description: "List every mention group and its members",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
		if !deferResponse(ctx, s, i) {
			return
		}

		groups, err := b.deps.Groups.List(ctx)
		if err != nil {
			respondServiceError(ctx, s, i, CmdGroups, err)
			return
		}

		sendEmbed(ctx, s, i, createEmbed("👥 Groups", formatGroups(groups, b.memberNames(ctx, groups)), ColorGroups, ""))
	}

	return cmd, handler
}

// MyGroupsCommand returns the command listing the invoking user's groups
func MyGroupsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdMyGroups,
		Description: "List the mention groups you belong to",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
		if !deferResponse(ctx, s, i) {
			return
		}

		userID, err := interactionUserID(i)
		if err != nil {
			respondServiceError(ctx, s, i, CmdMyGroups, err)
			return
		}
		groups, err := b.deps.Groups.GroupsOf(ctx, userID)
		if err != nil {
			respondServiceError(ctx, s, i, CmdMyGroups, err)
			return
		}
		editResponse(ctx, s, i, formatUserGroups(groups))
	}

	return cmd, handler
}

// MentionCommand returns the mention command definition and handler
func MentionCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdMention,
		Description: "Mention every member of a group",
		Options:     []*discordgo.ApplicationCommandOption{groupOption("Group to mention")},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
		if !deferResponse(ctx, s, i) {
			return
		}

		name := domain.NormalizeGroupName(getOptions(i)[OptGroup].StringValue())
		members, err := b.deps.Groups.MembersOf(ctx, name)
		if errors.Is(err, domain.ErrGroupNotFound) {
			respondError(ctx, s, i, formatGroupResult(domain.GroupResult{
				Outcome: domain.OutcomeNotFound, Group: name, Message: domain.MsgGroupNotFound,
			}))
			return
		}
		if err != nil {
			respondServiceError(ctx, s, i, CmdMention, err)
			return
		}

		content := formatMentions(name, members)
		if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content}); err != nil {
			logger.FromContext(ctx).Error(LogMsgMentionFailed, "group", name, "error", err)
		}
	}

	return cmd, handler
}

// memberNames resolves display names for every member of groups. Users without counters map to "".
func (b *Bot) memberNames(ctx context.Context, groups []domain.Group) map[int64]string {
	names := make(map[int64]string)
	if b.deps.Counters == nil {
		return names
	}
	for _, g := range groups {
		for _, id := range g.Members {
			if _, done := names[id]; done {
				continue
			}
			u, err := b.deps.Counters.Get(ctx, id)
			if err != nil {
				names[id] = ""
				continue
			}
			names[id] = u.DisplayName()
		}
	}
	return names
}
