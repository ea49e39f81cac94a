package discord

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/ChatterBot_Go/internal/domain"
	"github.com/osse101/ChatterBot_Go/internal/rates"
)

var printer = message.NewPrinter(language.English)

// formatCount renders n with thousands separators, e.g. 1,234.
func formatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

// formatAmount renders v with thousands separators and two decimals.
func formatAmount(v float64) string {
	return printer.Sprintf("%.2f", v)
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

// formatReport renders a user report the way /stats shows it.
func formatReport(r *domain.UserReport) string {
	avg := float64(r.TotalChars) / float64(max(r.TextMessages, 1))

	var b strings.Builder
	fmt.Fprintf(&b, "📊 User Stats: %s\n\n", r.DisplayName)
	fmt.Fprintf(&b, "Messages sent: %s\n", formatCount(r.TextMessages))
	fmt.Fprintf(&b, "Group contribution: %.2f%%\n", r.PercentageOfTotal)
	fmt.Fprintf(&b, "Average message length: %.2f characters\n", avg)
	fmt.Fprintf(&b, "Stickers sent: %s\n", formatCount(r.Stickers))
	fmt.Fprintf(&b, "Voice messages: %s\n", formatCount(r.Voices))
	fmt.Fprintf(&b, "Images shared: %s\n", formatCount(r.ImagesPosted))
	fmt.Fprintf(&b, "Commands used: %s\n", formatCount(r.CommandsUsed))
	fmt.Fprintf(&b, "Popularity rank: #%d\n", r.PopularityPosition)
	fmt.Fprintf(&b, "Most active on: %s\n", orUnknown(r.FavoriteDay))
	fmt.Fprintf(&b, "Peak activity date: %s (%s messages)\n",
		orUnknown(r.HighestPostingDate), formatCount(r.HighestPostingDateCount))
	fmt.Fprintf(&b, "Peak activity week: Week %s (%s messages)",
		orUnknown(r.HighestPostingWeek), formatCount(r.HighestPostingWeekCount))
	return b.String()
}

var medals = map[int]string{1: "🥇", 2: "🥈", 3: "🥉"}

// formatLeaderboard renders the /top10 list. Activity shares are relative to the listed users.
func formatLeaderboard(entries []domain.LeaderboardEntry) string {
	if len(entries) == 0 {
		return MsgNoMessages
	}

	var total int64
	for _, e := range entries {
		total += e.TextMessages
	}

	var b strings.Builder
	b.WriteString("🏆 Top 10 Most Active Users:\n\n")
	for idx, e := range entries {
		rank := idx + 1
		medal, ok := medals[rank]
		if !ok {
			medal = "👤"
		}
		fmt.Fprintf(&b, "%s #%d. %s\n", medal, rank, e.DisplayName)
		fmt.Fprintf(&b, "   ├ Messages: %s\n", formatCount(e.TextMessages))
		fmt.Fprintf(&b, "   └ Activity: %.1f%%\n\n", domain.PercentageOf(e.TextMessages, total))
	}
	fmt.Fprintf(&b, "📝 Total Messages: %s", formatCount(total))
	return b.String()
}

// formatGroupResult renders a group registry outcome.
func formatGroupResult(res domain.GroupResult) string {
	icon := "✅"
	if !res.Success {
		icon = "❌"
	}
	if res.Outcome == domain.OutcomeInvalidName {
		return fmt.Sprintf("%s Invalid group name '%s': use %d-%d letters, digits or underscores.",
			icon, res.Group, domain.GroupNameMinLength, domain.GroupNameMaxLength)
	}
	return fmt.Sprintf("%s Group '%s': %s", icon, res.Group, res.Message)
}

// formatGroups renders the /groups listing. names maps member ids to display names.
func formatGroups(groups []domain.Group, names map[int64]string) string {
	if len(groups) == 0 {
		return MsgNoGroups
	}

	var b strings.Builder
	b.WriteString("📋 Available Groups:\n\n")
	for _, g := range groups {
		members := make([]string, 0, len(g.Members))
		for _, id := range g.Members {
			members = append(members, displayNameOf(id, names))
		}
		fmt.Fprintf(&b, "👥 %s\n", g.Name)
		fmt.Fprintf(&b, "   ├ Members: %d\n", len(g.Members))
		fmt.Fprintf(&b, "   └ Users: %s\n\n", strings.Join(members, ", "))
	}
	b.WriteString(MsgGroupsHelp)
	return b.String()
}

// formatMentions renders a ping for every member of a group.
func formatMentions(name string, members []int64) string {
	if len(members) == 0 {
		return fmt.Sprintf(MsgGroupEmpty, name)
	}
	mentions := make([]string, 0, len(members))
	for _, id := range members {
		mentions = append(mentions, fmt.Sprintf("<@%d>", id))
	}
	return fmt.Sprintf("🔔 Mentioning members of '%s':\n%s", name, strings.Join(mentions, " "))
}

// formatUserGroups renders the groups a user belongs to.
func formatUserGroups(groups []string) string {
	if len(groups) == 0 {
		return MsgGroupsOfNone
	}
	return "👥 Your groups: " + strings.Join(groups, ", ")
}

// formatLatest renders a rates snapshot with currencies in alphabetical order.
func formatLatest(r *rates.LatestRates) string {
	codes := make([]string, 0, len(r.Rates))
	for code := range r.Rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var b strings.Builder
	fmt.Fprintf(&b, "Latest Exchange Rates (%s base):\n", r.Base)
	if !r.Date.IsZero() {
		fmt.Fprintf(&b, "As of %s\n", r.Date.Format(domain.DateLayout))
	}
	for _, code := range codes {
		fmt.Fprintf(&b, "%s: %.4f\n", code, r.Rates[code])
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatConversion renders a currency conversion.
func formatConversion(c *rates.Conversion) string {
	return fmt.Sprintf("💱 Currency Conversion:\n\n%s %s = %s %s",
		formatAmount(c.Amount), c.From, formatAmount(c.Result), c.To)
}

// formatQuote renders a cryptocurrency quote.
func formatQuote(q *rates.CryptoQuote) string {
	trend := "📉"
	if q.PercentChange24h > 0 {
		trend = "📈"
	}
	return fmt.Sprintf("💎 %s (%s)\n\n💵 Price: $%s\n%s 24h Change: %.2f%%\n💰 Market Cap: $%s\n📊 24h Volume: $%s",
		q.Name, q.Symbol,
		formatAmount(q.Price),
		trend, q.PercentChange24h,
		formatCount(int64(q.MarketCap)),
		formatCount(int64(q.Volume24h)))
}

func displayNameOf(id int64, names map[int64]string) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return domain.ResolveDisplayName(id, "", "", "")
}
