package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ChatterBot_Go/internal/domain"
	"github.com/osse101/ChatterBot_Go/internal/event"
)

func TestEventMetricsCollector(t *testing.T) {
	bus := event.NewMemoryBus()
	NewEventMetricsCollector().Register(bus)
	ctx := context.Background()

	trackedBefore := testutil.ToFloat64(MessagesTracked.WithLabelValues(string(domain.EventSticker)))
	charsBefore := testutil.ToFloat64(CharsTracked)
	droppedBefore := testutil.ToFloat64(MessagesDropped.WithLabelValues(string(domain.EventText), event.DropReasonStoreUnavailable))
	groupBefore := testutil.ToFloat64(GroupOperations.WithLabelValues(string(domain.OutcomeCreated)))
	cmdBefore := testutil.ToFloat64(CommandsUsed.WithLabelValues("stats"))
	retentionBefore := testutil.ToFloat64(RetentionDeleted.WithLabelValues("messages"))

	sticker := &domain.InboundEvent{UserID: 1, Type: domain.EventSticker}
	text := &domain.InboundEvent{UserID: 1, Type: domain.EventText, Text: "abcd"}

	require.NoError(t, bus.Publish(ctx, event.NewMessageTrackedEvent(sticker)))
	require.NoError(t, bus.Publish(ctx, event.NewMessageTrackedEvent(text)))
	require.NoError(t, bus.Publish(ctx, event.NewMessageDroppedEvent(text, event.DropReasonStoreUnavailable)))
	require.NoError(t, bus.Publish(ctx, event.NewGroupChangedEvent(1, domain.GroupResult{Success: true, Outcome: domain.OutcomeCreated, Group: "g"})))
	require.NoError(t, bus.Publish(ctx, event.NewCommandUsedEvent(1, "stats")))
	require.NoError(t, bus.Publish(ctx, event.NewRetentionCompletedEvent("messages", 12, time.Now())))

	assert.Equal(t, trackedBefore+1, testutil.ToFloat64(MessagesTracked.WithLabelValues(string(domain.EventSticker))))
	assert.Equal(t, charsBefore+4, testutil.ToFloat64(CharsTracked))
	assert.Equal(t, droppedBefore+1, testutil.ToFloat64(MessagesDropped.WithLabelValues(string(domain.EventText), event.DropReasonStoreUnavailable)))
	assert.Equal(t, groupBefore+1, testutil.ToFloat64(GroupOperations.WithLabelValues(string(domain.OutcomeCreated))))
	assert.Equal(t, cmdBefore+1, testutil.ToFloat64(CommandsUsed.WithLabelValues("stats")))
	assert.Equal(t, retentionBefore+12, testutil.ToFloat64(RetentionDeleted.WithLabelValues("messages")))
}

func TestEventMetricsCollector_BadPayload(t *testing.T) {
	before := testutil.ToFloat64(EventHandlerErrors.WithLabelValues(string(event.CommandUsed)))

	err := NewEventMetricsCollector().HandleEvent(context.Background(), event.New(event.CommandUsed, make(chan int)))

	assert.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(EventHandlerErrors.WithLabelValues(string(event.CommandUsed))))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/v1/groups/{name}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/groups/{name}", "404"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/groups/gamers", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/groups/{name}", "404")))
	assert.Zero(t, testutil.ToFloat64(HTTPRequestsInFlight))
}
