package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// ConvertCommand returns the currency conversion command definition and handler
func ConvertCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdConvert,
		Description: "Convert an amount between currencies",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionNumber,
				Name:        OptAmount,
				Description: "Amount to convert",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        OptFrom,
				Description: "Currency to convert from, e.g. USD",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        OptTo,
				Description: "Currency to convert to, e.g. EUR",
				Required:    true,
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
		if b.deps.FX == nil {
			respondText(ctx, s, i, MsgRatesUnavailable)
			return
		}
		opts := getOptions(i)
		amount := opts[OptAmount].FloatValue()
		if amount <= 0 {
			respondText(ctx, s, i, MsgInvalidAmount)
			return
		}
		if !deferResponse(ctx, s, i) {
			return
		}

		from := strings.ToUpper(strings.TrimSpace(opts[OptFrom].StringValue()))
		to := strings.ToUpper(strings.TrimSpace(opts[OptTo].StringValue()))
		conv, err := b.deps.FX.Convert(ctx, from, to, amount)
		if err != nil {
			respondError(ctx, s, i, fmt.Sprintf(MsgConvertFailed, err))
			return
		}
		sendEmbed(ctx, s, i, createEmbed("💱 Convert", formatConversion(conv), ColorRates, ""))
	}

	return cmd, handler
}

// LatestCommand returns the latest exchange rates command definition and handler
func LatestCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdLatest,
		Description: "Show the latest exchange rates",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        OptBase,
				Description: "Base currency (default: USD)",
				Required:    false,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        OptSymbols,
				Description: "Comma separated currencies, e.g. EUR,GBP",
				Required:    false,
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
		if b.deps.FX == nil {
			respondText(ctx, s, i, MsgRatesUnavailable)
			return
		}
		if !deferResponse(ctx, s, i) {
			return
		}

		opts := getOptions(i)
		var base string
		var symbols []string
		if opt, ok := opts[OptBase]; ok {
			base = strings.ToUpper(strings.TrimSpace(opt.StringValue()))
		}
		if opt, ok := opts[OptSymbols]; ok {
			symbols = splitSymbols(opt.StringValue())
		}

		latest, err := b.deps.FX.Latest(ctx, base, symbols)
		if err != nil {
			respondError(ctx, s, i, fmt.Sprintf(MsgRatesFailed, err))
			return
		}
		sendEmbed(ctx, s, i, createEmbed("💹 Rates", formatLatest(latest), ColorRates, ""))
	}

	return cmd, handler
}

// PriceCommand returns the cryptocurrency price command definition and handler
func PriceCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdPrice,
		Description: "Show the price of a cryptocurrency",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        OptTicker,
				Description: "Ticker symbol, e.g. BTC",
				Required:    true,
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
		if b.deps.Crypto == nil {
			respondText(ctx, s, i, MsgRatesUnavailable)
			return
		}
		if !deferResponse(ctx, s, i) {
			return
		}

		quote, err := b.deps.Crypto.Quote(ctx, getOptions(i)[OptTicker].StringValue())
		if err != nil {
			respondError(ctx, s, i, fmt.Sprintf(MsgPriceFailed, err))
			return
		}
		sendEmbed(ctx, s, i, createEmbed("💰 Price", formatQuote(quote), ColorRates, ""))
	}

	return cmd, handler
}

// splitSymbols parses "eur, gbp" into ["EUR", "GBP"].
func splitSymbols(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if code := strings.ToUpper(strings.TrimSpace(part)); code != "" {
			out = append(out, code)
		}
	}
	return out
}
