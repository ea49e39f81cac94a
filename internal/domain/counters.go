package domain

import (
	"fmt"
	"strconv"
	"time"
)

// CounterField names one of the numeric tallies kept per user.
type CounterField string

const (
	FieldTextMessages CounterField = "text_messages"
	FieldTotalChars   CounterField = "total_chars"
	FieldStickers     CounterField = "stickers"
	FieldVoices       CounterField = "voices"
	FieldImagesPosted CounterField = "images_posted"
	FieldCommandsUsed CounterField = "commands_used"
	FieldWarnings     CounterField = "warnings"
)

// CounterFields is the closed set of counters, in storage column order.
var CounterFields = []CounterField{
	FieldTextMessages,
	FieldTotalChars,
	FieldStickers,
	FieldVoices,
	FieldImagesPosted,
	FieldCommandsUsed,
	FieldWarnings,
}

// Valid reports whether f is a known counter.
func (f CounterField) Valid() bool {
	for _, known := range CounterFields {
		if f == known {
			return true
		}
	}
	return false
}

// ParseCounterField converts a raw name into a CounterField.
func ParseCounterField(name string) (CounterField, error) {
	f := CounterField(name)
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidField, name)
	}
	return f, nil
}

// UserCounters is the per-user tally record.
type UserCounters struct {
	UserID       int64      `json:"user_id" bson:"user_id"`
	TextMessages int64      `json:"text_messages" bson:"text_messages"`
	TotalChars   int64      `json:"total_chars" bson:"total_chars"`
	Stickers     int64      `json:"stickers" bson:"stickers"`
	Voices       int64      `json:"voices" bson:"voices"`
	ImagesPosted int64      `json:"images_posted" bson:"images_posted"`
	CommandsUsed int64      `json:"commands_used" bson:"commands_used"`
	Warnings     int64      `json:"warnings" bson:"warnings"`
	Username     string     `json:"username,omitempty" bson:"username,omitempty"`
	FirstName    string     `json:"first_name,omitempty" bson:"first_name,omitempty"`
	LastName     string     `json:"last_name,omitempty" bson:"last_name,omitempty"`
	JoinedDate   time.Time  `json:"joined_date" bson:"joined_date"`
	LastActive   *time.Time `json:"last_active,omitempty" bson:"last_active,omitempty"`
}

// Value returns the current value of counter f.
func (u *UserCounters) Value(f CounterField) int64 {
	if p := u.field(f); p != nil {
		return *p
	}
	return 0
}

// Add increments counter f by delta. Unknown fields are ignored.
func (u *UserCounters) Add(f CounterField, delta int64) {
	if p := u.field(f); p != nil {
		*p += delta
	}
}

func (u *UserCounters) field(f CounterField) *int64 {
	switch f {
	case FieldTextMessages:
		return &u.TextMessages
	case FieldTotalChars:
		return &u.TotalChars
	case FieldStickers:
		return &u.Stickers
	case FieldVoices:
		return &u.Voices
	case FieldImagesPosted:
		return &u.ImagesPosted
	case FieldCommandsUsed:
		return &u.CommandsUsed
	case FieldWarnings:
		return &u.Warnings
	}
	return nil
}

// DisplayName resolves the name shown in leaderboards:
// @username, then "first last", then first, then "User {id}".
func (u *UserCounters) DisplayName() string {
	return ResolveDisplayName(u.UserID, u.Username, u.FirstName, u.LastName)
}

// ResolveDisplayName applies the display name precedence to raw profile fields.
func ResolveDisplayName(userID int64, username, firstName, lastName string) string {
	switch {
	case username != "":
		return "@" + username
	case firstName != "" && lastName != "":
		return firstName + " " + lastName
	case firstName != "":
		return firstName
	default:
		return "User " + strconv.FormatInt(userID, 10)
	}
}

// CounterDeltas maps counters to non-negative increments.
type CounterDeltas map[CounterField]int64

// NewCounterDeltas validates raw counter names and values.
func NewCounterDeltas(raw map[string]int64) (CounterDeltas, error) {
	deltas := make(CounterDeltas, len(raw))
	for name, v := range raw {
		f, err := ParseCounterField(name)
		if err != nil {
			return nil, err
		}
		deltas[f] = v
	}
	if err := deltas.Validate(); err != nil {
		return nil, err
	}
	return deltas, nil
}

// Validate rejects unknown counters and negative deltas.
func (d CounterDeltas) Validate() error {
	for f, v := range d {
		if !f.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidField, string(f))
		}
		if v < 0 {
			return fmt.Errorf("%w: %s delta must be non-negative, got %d", ErrInvalidField, f, v)
		}
	}
	return nil
}

// ProfileUpdate carries last-write-wins profile overwrites. Nil fields are left untouched.
type ProfileUpdate struct {
	Username   *string
	FirstName  *string
	LastName   *string
	LastActive *time.Time
}

// IsEmpty reports whether no field is set.
func (p ProfileUpdate) IsEmpty() bool {
	return p.Username == nil && p.FirstName == nil && p.LastName == nil && p.LastActive == nil
}

// Apply overwrites the set fields on u.
func (p ProfileUpdate) Apply(u *UserCounters) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.LastActive != nil {
		t := *p.LastActive
		u.LastActive = &t
	}
}
