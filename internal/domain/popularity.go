package domain

// PopularityRecord counts the replies a user has received.
type PopularityRecord struct {
	UserID     int64 `json:"user_id" bson:"user_id"`
	ReplyCount int64 `json:"reply_count" bson:"reply_count"`
}

// RanksAhead reports whether r ranks ahead of o: more replies first, then lower user id.
func (r PopularityRecord) RanksAhead(o PopularityRecord) bool {
	if r.ReplyCount != o.ReplyCount {
		return r.ReplyCount > o.ReplyCount
	}
	return r.UserID < o.UserID
}
