package query

import (
	"sync"
	"time"

	"github.com/majorfi/shootdesk/pkg/utils"
)

/**************************************************************************************************
** History is the bounded log of past submissions, most recent first. The oldest entry is
** dropped once the capacity is exceeded.
**************************************************************************************************/
type History struct {
	mu       sync.Mutex
	entries  []utils.THistoryEntry
	capacity int
	lastID   int64
}

// NewHistory creates an empty history holding utils.HistoryCapacity entries.
func NewHistory() *History {
	return &History{capacity: utils.HistoryCapacity}
}

/**************************************************************************************************
** Record snapshots a query into a new entry and pushes it. Ids follow the submission clock in
** milliseconds and stay strictly increasing when two submissions share a millisecond.
**
** @param q - Submitted query
** @param now - Submission time
** @return utils.THistoryEntry - The recorded entry
**************************************************************************************************/
func (h *History) Record(q utils.TSearchQuery, now time.Time) utils.THistoryEntry {
	h.mu.Lock()
	id := now.UnixMilli()
	if id <= h.lastID {
		id = h.lastID + 1
	}
	h.lastID = id
	h.mu.Unlock()

	entry := utils.THistoryEntry{
		ID:         id,
		Mode:       q.Mode,
		TextQuery:  q.TextQuery,
		BaseImages: q.BaseImages,
		Tags:       q.Tags,
		CreatedAt:  now,
	}
	h.Push(entry)
	return copyEntry(entry)
}

/**************************************************************************************************
** Push prepends a copy of the entry and trims the history to its capacity.
**************************************************************************************************/
func (h *History) Push(entry utils.THistoryEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries := make([]utils.THistoryEntry, 0, len(h.entries)+1)
	entries = append(entries, copyEntry(entry))
	entries = append(entries, h.entries...)
	if len(entries) > h.capacity {
		entries = entries[:h.capacity]
	}
	h.entries = entries
}

// Entries returns copies of the entries, most recent first.
func (h *History) Entries() []utils.THistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]utils.THistoryEntry, 0, len(h.entries))
	for _, entry := range h.entries {
		out = append(out, copyEntry(entry))
	}
	return out
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

/**************************************************************************************************
** Replay seeds the builder input with a past entry: mode, text, images (as ad-hoc query images)
** and tags. It neither filters nor submits.
**
** @param entry - Entry to replay
** @param state - Builder input to overwrite
**************************************************************************************************/
func Replay(entry utils.THistoryEntry, state *State) {
	state.Mode = entry.Mode
	state.TextQuery = entry.TextQuery
	state.QueryImages = append([]*utils.TImageAsset{}, entry.BaseImages...)
	state.Tags = utils.NewTagSet(entry.Tags...)
}

func copyEntry(entry utils.THistoryEntry) utils.THistoryEntry {
	entry.BaseImages = append([]*utils.TImageAsset{}, entry.BaseImages...)
	entry.Tags = append([]string{}, entry.Tags...)
	return entry
}
