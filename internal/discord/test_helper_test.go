package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ChatterBot_Go/internal/activity"
	"github.com/osse101/ChatterBot_Go/internal/counter"
	"github.com/osse101/ChatterBot_Go/internal/database/memory"
	"github.com/osse101/ChatterBot_Go/internal/event"
	"github.com/osse101/ChatterBot_Go/internal/group"
	"github.com/osse101/ChatterBot_Go/internal/popularity"
	"github.com/osse101/ChatterBot_Go/internal/rates"
	"github.com/osse101/ChatterBot_Go/internal/stats"
	"github.com/osse101/ChatterBot_Go/internal/tracking"
)

// MockRoundTripper implements http.RoundTripper for intercepting Discord API calls
type MockRoundTripper struct {
	mu       sync.Mutex
	Requests []CapturedRequest
}

// CapturedRequest is one intercepted Discord API call
type CapturedRequest struct {
	Method string
	Path   string
	Body   []byte
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
	}
	m.mu.Lock()
	m.Requests = append(m.Requests, CapturedRequest{Method: req.Method, Path: req.URL.Path, Body: body})
	m.mu.Unlock()

	// Command endpoints answer with lists, everything else with an object.
	payload := "{}"
	if strings.HasSuffix(req.URL.Path, "/commands") {
		payload = "[]"
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewBufferString(payload)),
		Header:     make(http.Header),
	}, nil
}

// LastText returns the content or first embed description of the last captured call.
func (m *MockRoundTripper) LastText(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.Requests, "no Discord API calls captured")

	var payload struct {
		Content string `json:"content"`
		Embeds  []struct {
			Description string `json:"description"`
		} `json:"embeds"`
		Data *struct {
			Content string `json:"content"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(m.Requests[len(m.Requests)-1].Body, &payload))

	switch {
	case payload.Data != nil:
		return payload.Data.Content
	case len(payload.Embeds) > 0:
		return payload.Embeds[0].Description
	default:
		return payload.Content
	}
}

type fakeFX struct {
	latest  *rates.LatestRates
	convert *rates.Conversion
	err     error
}

func (f *fakeFX) Latest(_ context.Context, base string, _ []string) (*rates.LatestRates, error) {
	return f.latest, f.err
}

func (f *fakeFX) Convert(_ context.Context, from, to string, amount float64) (*rates.Conversion, error) {
	return f.convert, f.err
}

type fakeCrypto struct {
	quote *rates.CryptoQuote
	err   error
}

func (f *fakeCrypto) Quote(context.Context, string) (*rates.CryptoQuote, error) {
	return f.quote, f.err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e event.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

// TestContext bundles a bot wired to an in-memory store and an intercepted Discord session.
type TestContext struct {
	Bot          *Bot
	Session      *discordgo.Session
	DiscordMocks *MockRoundTripper
	Store        *memory.Store
	Publisher    *recordingPublisher
}

func SetupTestContext(t *testing.T, cfg Config) *TestContext {
	t.Helper()

	session, err := discordgo.New("Bot test-token")
	require.NoError(t, err)
	mocks := &MockRoundTripper{}
	session.Client = &http.Client{Transport: mocks}

	store := memory.NewStore()
	timeout := time.Second
	activitySvc := activity.NewService(store, timeout)
	popularitySvc := popularity.NewService(store, timeout)
	counterSvc := counter.NewService(store, timeout)
	pub := &recordingPublisher{}

	deps := Deps{
		Tracking: tracking.NewService(tracking.Deps{
			Counters:   counterSvc,
			Activity:   activitySvc,
			Popularity: popularitySvc,
			Messages:   store,
			Timeout:    timeout,
		}),
		Stats:     stats.NewService(store, activitySvc, popularitySvc, timeout),
		Counters:  counterSvc,
		Groups:    group.NewService(store, nil, timeout),
		Publisher: pub,
	}

	return &TestContext{
		Bot:          newBot(session, cfg, deps),
		Session:      session,
		DiscordMocks: mocks,
		Store:        store,
		Publisher:    pub,
	}
}

// Invoke runs a slash command as userID through the registry.
func (tc *TestContext) Invoke(name, userID string, opts ...*discordgo.ApplicationCommandInteractionDataOption) {
	tc.Bot.Registry.Handle(tc.Session, commandInteraction(name, userID, opts...), tc.Bot)
}

func commandInteraction(name, userID string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:        "9001",
		AppID:     "app",
		Token:     "token",
		ChannelID: "555",
		Type:      discordgo.InteractionApplicationCommand,
		Data:      discordgo.ApplicationCommandInteractionData{Name: name, Options: opts},
		Member:    &discordgo.Member{User: &discordgo.User{ID: userID, Username: "user" + userID}},
	}}
}

func stringOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

func numberOpt(name string, value float64) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionNumber,
		Value: value,
	}
}

func userOpt(name, userID string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionUser,
		Value: userID,
	}
}
