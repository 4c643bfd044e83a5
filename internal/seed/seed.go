// Package seed synthesises history entries from predicted grades, for
// populating a fresh store with plausible assessment data.
package seed

import (
	"math/rand"
	"sort"
	"time"

	"github.com/verrev/revise/internal/model"
)

// EventTypes are the assessment types sampled for generated entries.
// Synthetic types are deliberately absent.
var EventTypes = []string{"Homework", "Quiz", "Topic Test", "Mock Exam", "Exam"}

// Params bounds a generation run. Scores are on the [0, 1] grade scale and
// written as 0-100 entry scores.
type Params struct {
	MinEvents     int
	MaxEvents     int
	MinScore      float64
	MaxScore      float64
	AverageOffset float64
	DaysBack      int
}

// DefaultParams mirrors the usual generation run.
func DefaultParams() Params {
	return Params{
		MinEvents:     5,
		MaxEvents:     12,
		MinScore:      0.3,
		MaxScore:      1.0,
		AverageOffset: 0.05,
		DaysBack:      210,
	}
}

// Generator produces randomized assessment history.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed for reproducible runs.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// History generates entries for every subject with a predicted grade,
// biased so each subject's score average sits near its prediction minus
// the configured offset. Entries are dated newest-first within the
// days-back window ending at anchor.
func (g *Generator) History(predictedGrades map[string]float64, p Params, anchor time.Time) []model.HistoryEntry {
	subjects := make([]string, 0, len(predictedGrades))
	for subject := range predictedGrades {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)

	var entries []model.HistoryEntry
	for _, subject := range subjects {
		count := g.eventCount(p)
		dates := g.dates(count, p.DaysBack, anchor)
		target := clamp(predictedGrades[subject]-p.AverageOffset, p.MinScore, p.MaxScore)
		for i := 0; i < count; i++ {
			score := clamp(target+g.noise(), p.MinScore, p.MaxScore)
			entries = append(entries, model.HistoryEntry{
				Subject: subject,
				Type:    EventTypes[g.rnd.Intn(len(EventTypes))],
				Score:   score * 100,
				Date:    dates[i],
			})
		}
	}
	return entries
}

func (g *Generator) eventCount(p Params) int {
	lo, hi := p.MinEvents, p.MaxEvents
	if lo < 1 {
		lo = 1
	}
	if hi < lo {
		hi = lo
	}
	return lo + g.rnd.Intn(hi-lo+1)
}

// noise spreads scores around the target mean.
func (g *Generator) noise() float64 {
	return (g.rnd.Float64() - 0.5) * 0.3
}

// dates samples day offsets into the past and orders them newest first.
func (g *Generator) dates(count, daysBack int, anchor time.Time) []string {
	if daysBack < 1 {
		daysBack = 1
	}
	offsets := make([]int, count)
	for i := range offsets {
		offsets[i] = g.rnd.Intn(daysBack + 1)
	}
	sort.Ints(offsets)

	dates := make([]string, count)
	for i, offset := range offsets {
		dates[i] = anchor.AddDate(0, 0, -offset).Format(model.DateLayout)
	}
	return dates
}

func clamp(value, lower, upper float64) float64 {
	if value < lower {
		return lower
	}
	if value > upper {
		return upper
	}
	return value
}
