// Package model defines shared data structures.
package model

// Synthetic history entry types written by the session generator.
const (
	EntryTypeRevision   = "Revision"
	EntryTypeNotStudied = "Not Studied"
)

// DateLayout is the calendar-date format used for history entries.
const DateLayout = "2006-01-02"

// HistoryEntry is one assessment result. Synthetic rows carry zero or
// negative scores.
type HistoryEntry struct {
	Subject string
	Type    string
	Score   float64
	Date    string
}

// WeightedTotals accumulates the weighted score signal for one subject.
type WeightedTotals struct {
	WeightedSum float64
	WeightTotal float64
}

// DateDecayConfig bounds the recency discount applied to entry weights.
// ZeroDayThreshold is the age in days at which an entry's weight bottoms
// out at MinWeight.
type DateDecayConfig struct {
	MinWeight        float64
	MaxWeight        float64
	ZeroDayThreshold int
}

// SessionParameters controls one plan-generation run. Times are minutes.
type SessionParameters struct {
	Count       int
	SessionTime int
	BreakTime   int
	Shots       int
}

// SessionPlan is the outcome of a single shot. Subjects is the display
// order (shuffled); NewEntries holds the synthetic rows persisted for the
// shot; History is the working history snapshot including those rows.
type SessionPlan struct {
	Subjects   []string
	NewEntries []HistoryEntry
	History    []HistoryEntry
}

// StatsConfig defines filters for history reporting.
type StatsConfig struct {
	Since string
	Last  int
}
