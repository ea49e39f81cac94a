package tracking

import (
	"github.com/osse101/ChatterBot_Go/internal/domain"
)

// DeltasFor maps an inbound event to the counters it increments.
func DeltasFor(e *domain.InboundEvent) domain.CounterDeltas {
	switch e.Type {
	case domain.EventText, domain.EventReply:
		return domain.CounterDeltas{
			domain.FieldTextMessages: 1,
			domain.FieldTotalChars:   int64(e.CharCount()),
		}
	case domain.EventSticker:
		return domain.CounterDeltas{domain.FieldStickers: 1}
	case domain.EventVoice:
		return domain.CounterDeltas{domain.FieldVoices: 1}
	case domain.EventPhoto:
		return domain.CounterDeltas{domain.FieldImagesPosted: 1}
	case domain.EventCommand:
		return domain.CounterDeltas{domain.FieldCommandsUsed: 1}
	}
	return domain.CounterDeltas{}
}

// ProfileFor returns the profile overwrites carried by an event. Empty names leave stored values untouched.
func ProfileFor(e *domain.InboundEvent) domain.ProfileUpdate {
	var p domain.ProfileUpdate
	if e.Username != "" {
		p.Username = &e.Username
	}
	if e.FirstName != "" {
		p.FirstName = &e.FirstName
	}
	if e.LastName != "" {
		p.LastName = &e.LastName
	}
	ts := e.Timestamp
	p.LastActive = &ts
	return p
}

// CountsTowardActivity reports whether the event is appended to the activity log.
func CountsTowardActivity(e *domain.InboundEvent) bool {
	return e.IsText() || e.Type == domain.EventSticker
}
