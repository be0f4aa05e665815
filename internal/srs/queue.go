package srs

import (
	"sort"
	"time"
)

// DefaultQueueLimit caps the daily due queue so a single request never
// pulls an unbounded backlog.
const DefaultQueueLimit = 200

// Entry is the scheduling view of one card used for queue selection.
type Entry struct {
	CardID uint64
	Due    time.Time
}

// DueQueue returns the entries due on or before asOf, earliest due date
// first with CardID as a deterministic tie-break, capped at limit
// (limit <= 0 means DefaultQueueLimit). The input slice is not modified.
func DueQueue(entries []Entry, asOf time.Time, limit int) []Entry {
	cutoff := DateOf(asOf)
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !DateOf(e.Due).After(cutoff) {
			out = append(out, e)
		}
	}
	sortByDue(out)
	return capQueue(out, limit)
}

// SessionQueue orders all entries for an explicit study session, ignoring
// due dates: a category the user asked to study is always available. The
// ordering and cap rules match DueQueue.
func SessionQueue(entries []Entry, limit int) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sortByDue(out)
	return capQueue(out, limit)
}

func sortByDue(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Due.Equal(entries[j].Due) {
			return entries[i].CardID < entries[j].CardID
		}
		return entries[i].Due.Before(entries[j].Due)
	})
}

func capQueue(entries []Entry, limit int) []Entry {
	if limit <= 0 {
		limit = DefaultQueueLimit
	}
	if len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
