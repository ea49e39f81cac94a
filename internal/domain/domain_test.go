package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGroupName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"too short", "ab", false},
		{"too long", "this_name_is_way_too_long_to_be_valid_12", false},
		{"mixed case accepted", "valid_Name1", true},
		{"minimum length", "abc", true},
		{"maximum length", "abcdefghijabcdefghijabcdefghij12", true},
		{"hyphen rejected", "bad-name", false},
		{"space rejected", "bad name", false},
		{"empty", "", false},
		{"unicode rejected", "grüße", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGroupName(tt.input)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidName)
			}
		})
	}
}

func TestNormalizeGroupName(t *testing.T) {
	assert.Equal(t, "gamers_1", NormalizeGroupName("GaMeRs_1"))
}

func TestResolveDisplayName(t *testing.T) {
	tests := []struct {
		name                  string
		username, first, last string
		want                  string
	}{
		{"username wins", "alice", "Alice", "Smith", "@alice"},
		{"first and last", "", "Alice", "Smith", "Alice Smith"},
		{"first only", "", "Alice", "", "Alice"},
		{"last only falls back", "", "", "Smith", "User 42"},
		{"nothing", "", "", "", "User 42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveDisplayName(42, tt.username, tt.first, tt.last))
		})
	}
}

func TestNewCounterDeltas(t *testing.T) {
	d, err := NewCounterDeltas(map[string]int64{"text_messages": 1, "total_chars": 12})
	require.NoError(t, err)
	assert.Equal(t, int64(12), d[FieldTotalChars])

	_, err = NewCounterDeltas(map[string]int64{"karma": 1})
	assert.ErrorIs(t, err, ErrInvalidField)

	_, err = NewCounterDeltas(map[string]int64{"stickers": -1})
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestUserCountersAddAndValue(t *testing.T) {
	var u UserCounters
	for _, f := range CounterFields {
		u.Add(f, 2)
	}
	u.Add(CounterField("bogus"), 100)

	for _, f := range CounterFields {
		assert.Equal(t, int64(2), u.Value(f), f)
	}
	assert.Zero(t, u.Value(CounterField("bogus")))
}

func TestProfileUpdateApply(t *testing.T) {
	name := "bob"
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	u := UserCounters{FirstName: "Robert"}

	ProfileUpdate{Username: &name, LastActive: &now}.Apply(&u)

	assert.Equal(t, "bob", u.Username)
	assert.Equal(t, "Robert", u.FirstName)
	require.NotNil(t, u.LastActive)
	assert.True(t, now.Equal(*u.LastActive))
	assert.True(t, ProfileUpdate{}.IsEmpty())
}

func TestNewActivityEvent(t *testing.T) {
	// 23:30 at UTC-5 is already the next day in UTC.
	loc := time.FixedZone("EST", -5*3600)
	at := time.Date(2024, 12, 30, 23, 30, 0, 0, loc)

	e := NewActivityEvent(7, at)

	assert.Equal(t, "2024-12-31", e.MessageDate)
	assert.Equal(t, "Tuesday", e.DayOfWeek)
	assert.Equal(t, "2025-W01", e.WeekNumber)
}

func TestISOWeekKey(t *testing.T) {
	assert.Equal(t, "2020-W53", ISOWeekKey(time.Date(2021, 1, 3, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-W10", ISOWeekKey(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)))
}

func TestActivityBucketOrdering(t *testing.T) {
	a := ActivityBucket{Key: "2024-01-01", Count: 3}
	b := ActivityBucket{Key: "2024-01-02", Count: 3}
	c := ActivityBucket{Key: "2023-12-31", Count: 1}

	assert.True(t, a.Before(b), "equal counts break ties by earliest key")
	assert.True(t, b.Before(c))
	assert.False(t, c.Before(a))
}

func TestPopularityRanksAhead(t *testing.T) {
	assert.True(t, PopularityRecord{UserID: 9, ReplyCount: 5}.RanksAhead(PopularityRecord{UserID: 1, ReplyCount: 4}))
	assert.True(t, PopularityRecord{UserID: 1, ReplyCount: 4}.RanksAhead(PopularityRecord{UserID: 2, ReplyCount: 4}))
}

func TestPercentageOf(t *testing.T) {
	assert.Equal(t, 0.0, PercentageOf(0, 0))
	assert.Equal(t, 25.0, PercentageOf(1, 4))
}

func TestInboundEventHelpers(t *testing.T) {
	e := InboundEvent{UserID: 1, Type: EventReply, Text: "héllo", ReplyTargetUserID: 1}
	assert.True(t, e.IsText())
	assert.Equal(t, 5, e.CharCount())
	assert.True(t, e.CreditsReply(), "self replies are credited")

	e.ReplyTargetUserID = 0
	assert.False(t, e.CreditsReply())

	e.ReplyTargetUserID = 2
	e.TextLength = 12
	assert.True(t, e.CreditsReply())
	assert.Equal(t, 12, e.CharCount())
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection refused")
	err := StoreError("get counters", cause)

	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "get counters")
	assert.NoError(t, StoreError("noop", nil))
	assert.ErrorIs(t, ErrUserNotFound, ErrNotFound)
}
