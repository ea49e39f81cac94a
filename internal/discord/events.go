package discord

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/ChatterBot_Go/internal/domain"
	"github.com/osse101/ChatterBot_Go/internal/logger"
)

// errNothingToTrack marks messages with no countable content, such as embed-only posts.
var errNothingToTrack = errors.New(ErrMsgNothingToTrack)

// InboundFromMessage maps a Discord message to an inbound event.
//
// Stickers win over attachments, audio attachments count as voice, image
// attachments as photos; otherwise text that answers another message is a reply.
func InboundFromMessage(m *discordgo.Message) (*domain.InboundEvent, error) {
	if m.Author == nil {
		return nil, errors.New(ErrMsgNoAuthor)
	}
	userID, err := parseSnowflake(m.Author.ID)
	if err != nil {
		return nil, err
	}
	messageID, err := parseSnowflake(m.ID)
	if err != nil {
		return nil, err
	}
	chatID, err := parseSnowflake(m.ChannelID)
	if err != nil {
		return nil, err
	}

	e := &domain.InboundEvent{
		MessageID: messageID,
		ChatID:    chatID,
		UserID:    userID,
		Username:  m.Author.Username,
		FirstName: m.Author.GlobalName,
		Timestamp: m.Timestamp.UTC(),
	}

	switch {
	case len(m.StickerItems) > 0:
		e.Type = domain.EventSticker
	case hasAttachment(m, "audio/"):
		e.Type = domain.EventVoice
	case hasAttachment(m, "image/"):
		e.Type = domain.EventPhoto
	case strings.TrimSpace(m.Content) == "":
		return nil, errNothingToTrack
	default:
		e.Type = domain.EventText
		e.Text = m.Content
		if target := replyTarget(m); target != 0 {
			e.Type = domain.EventReply
			e.ReplyTargetUserID = target
		}
	}
	return e, nil
}

func hasAttachment(m *discordgo.Message, mimePrefix string) bool {
	for _, a := range m.Attachments {
		if a != nil && strings.HasPrefix(a.ContentType, mimePrefix) {
			return true
		}
	}
	return false
}

func replyTarget(m *discordgo.Message) int64 {
	if m.MessageReference == nil || m.ReferencedMessage == nil || m.ReferencedMessage.Author == nil {
		return 0
	}
	id, err := parseSnowflake(m.ReferencedMessage.Author.ID)
	if err != nil {
		return 0
	}
	return id
}

// groupTrigger extracts the group name from a "/<group>" message. Links and
// messages that do not start with a slash are not triggers.
func groupTrigger(content string) (string, bool) {
	fields := strings.Fields(content)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", false
	}
	if strings.Contains(strings.ToLower(content), "http") {
		return "", false
	}
	name := strings.TrimPrefix(fields[0], "/")
	if domain.ValidateGroupName(name) != nil {
		return "", false
	}
	return domain.NormalizeGroupName(name), true
}

func (b *Bot) messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if !b.channelAllowed(m.ChannelID) {
		return
	}

	ctx := logger.WithRequestID(context.Background(), m.ID)
	b.handleMessage(ctx, s, m.Message)
}

// handleMessage counts a chat message. A "/<group>" message naming an existing
// group pings its members and counts as a command instead of text.
func (b *Bot) handleMessage(ctx context.Context, s *discordgo.Session, m *discordgo.Message) {
	log := logger.FromContext(ctx)

	e, err := InboundFromMessage(m)
	if err != nil {
		log.Debug(LogMsgSkipMessage, "message_id", m.ID, "reason", err)
		return
	}

	if name, ok := groupTrigger(m.Content); ok && b.deps.Groups != nil {
		members, err := b.deps.Groups.MembersOf(ctx, name)
		if err == nil && len(members) > 0 {
			e.Type = domain.EventCommand
			e.Text = ""
			e.ReplyTargetUserID = 0
			b.sendMentions(ctx, s, m, name, members)
		}
	}

	if b.deps.Tracking == nil {
		return
	}
	if err := b.deps.Tracking.Track(ctx, e); err != nil && !errors.Is(err, domain.ErrDuplicateEvent) {
		log.Warn(LogMsgTrackFailed, "message_id", m.ID, "error", err)
	}
}

func (b *Bot) sendMentions(ctx context.Context, s *discordgo.Session, m *discordgo.Message, name string, members []int64) {
	_, err := s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Content:   formatMentions(name, members),
		Reference: m.Reference(),
	})
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgMentionFailed, "group", name, "error", err)
	}
}
