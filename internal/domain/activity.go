package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format of ActivityEvent.MessageDate.
const DateLayout = "2006-01-02"

// ActivityEvent is one append-only record of user activity.
type ActivityEvent struct {
	UserID      int64     `json:"user_id" bson:"user_id"`
	MessageDate string    `json:"message_date" bson:"message_date"`
	DayOfWeek   string    `json:"day_of_week" bson:"day_of_week"`
	WeekNumber  string    `json:"week_number" bson:"week_number"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// NewActivityEvent derives the date keys of an event from its time in UTC.
func NewActivityEvent(userID int64, at time.Time) ActivityEvent {
	utc := at.UTC()
	return ActivityEvent{
		UserID:      userID,
		MessageDate: utc.Format(DateLayout),
		DayOfWeek:   utc.Weekday().String(),
		WeekNumber:  ISOWeekKey(utc),
		CreatedAt:   utc,
	}
}

// ISOWeekKey formats the ISO-8601 week of t as YYYY-Www.
func ISOWeekKey(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// ActivityGrouping selects the key activity events are counted by.
type ActivityGrouping string

const (
	GroupByDate      ActivityGrouping = "message_date"
	GroupByWeek      ActivityGrouping = "week_number"
	GroupByDayOfWeek ActivityGrouping = "day_of_week"
)

// Valid reports whether g is a known grouping.
func (g ActivityGrouping) Valid() bool {
	switch g {
	case GroupByDate, GroupByWeek, GroupByDayOfWeek:
		return true
	}
	return false
}

// KeyOf returns the grouping key of e.
func (g ActivityGrouping) KeyOf(e ActivityEvent) string {
	switch g {
	case GroupByWeek:
		return e.WeekNumber
	case GroupByDayOfWeek:
		return e.DayOfWeek
	default:
		return e.MessageDate
	}
}

// ActivityBucket is a grouped count. Buckets are ordered by Count desc, then Key asc.
type ActivityBucket struct {
	Key   string `json:"key" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}

// Before reports whether b sorts ahead of o.
func (b ActivityBucket) Before(o ActivityBucket) bool {
	if b.Count != o.Count {
		return b.Count > o.Count
	}
	return b.Key < o.Key
}
