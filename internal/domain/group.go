package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Group name limits
const (
	GroupNameMinLength = 3
	GroupNameMaxLength = 32
)

var groupNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)

// ValidateGroupName fails with ErrInvalidName unless name is 3-32 letters, digits or underscores.
func ValidateGroupName(name string) error {
	if !groupNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q must be %d-%d letters, digits or underscores",
			ErrInvalidName, name, GroupNameMinLength, GroupNameMaxLength)
	}
	return nil
}

// NormalizeGroupName returns the stored form of a group name.
func NormalizeGroupName(name string) string {
	return strings.ToLower(name)
}

// Group is a named mention-group.
type Group struct {
	Name      string    `json:"group_name" bson:"group_name"`
	Members   []int64   `json:"members" bson:"members"`
	CreatedBy int64     `json:"created_by" bson:"created_by"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// HasMember reports whether userID belongs to the group.
func (g *Group) HasMember(userID int64) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// GroupOutcome identifies the result of a registry operation.
type GroupOutcome string

const (
	OutcomeCreated       GroupOutcome = "created"
	OutcomeJoined        GroupOutcome = "joined"
	OutcomeAlreadyMember GroupOutcome = "already_member"
	OutcomeLeft          GroupOutcome = "left"
	OutcomeLeftDeleted   GroupOutcome = "left_deleted"
	OutcomeDeleted       GroupOutcome = "deleted"
	OutcomeNotFound      GroupOutcome = "not_found"
	OutcomeNotMember     GroupOutcome = "not_member"
	OutcomeInvalidName   GroupOutcome = "invalid_name"
)

// Result messages
const (
	MsgGroupCreated       = "created and joined"
	MsgGroupJoined        = "joined"
	MsgGroupAlreadyMember = "already a member"
	MsgGroupLeft          = "left"
	MsgGroupLeftDeleted   = "left; group deleted"
	MsgGroupDeleted       = "deleted"
	MsgGroupNotFound      = "does not exist"
	MsgGroupNotMember     = "not a member"
)

// GroupResult is the (success, message) shape returned by group operations.
type GroupResult struct {
	Success bool         `json:"success"`
	Outcome GroupOutcome `json:"outcome"`
	Group   string       `json:"group"`
	Message string       `json:"message"`
}
