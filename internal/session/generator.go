// Package session generates study session plans by iterating the scoring
// pipeline and feeding synthetic results back into the working history.
package session

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/verrev/revise/internal/model"
	"github.com/verrev/revise/internal/schedule"
)

// ErrNoPredictedGrades is returned when no predicted grades are configured,
// leaving nothing to schedule.
var ErrNoPredictedGrades = errors.New("session: no predicted grades configured")

// Per-session feedback applied to the local score map: the chosen subject
// gains scaled study credit, every other subject drifts down toward zero.
const (
	studiedTimeFactor = 0.005
	notStudiedDelta   = 0.005
)

// Store persists the synthetic entries produced by each shot.
type Store interface {
	AppendHistoryEntries(ctx context.Context, entries []model.HistoryEntry) (int, error)
}

// Config carries the read-only inputs of the scoring pipeline.
type Config struct {
	AssessmentWeights map[string]float64
	PredictedGrades   map[string]float64
	Decay             model.DateDecayConfig
}

// Generator runs the per-shot selection state machine.
type Generator struct {
	cfg   Config
	store Store
	rnd   *rand.Rand
	now   func() time.Time
}

// New returns a Generator. A nil store disables persistence, which is how
// dry runs are produced.
func New(cfg Config, store Store) *Generator {
	return &Generator{
		cfg:   cfg,
		store: store,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
	}
}

// GeneratePlan runs the state machine params.Shots times sequentially. Each
// shot re-derives its starting scores from the accumulated working history,
// including the synthetic entries of earlier shots in the same call.
// entryDate stamps the synthetic rows; empty means today.
func (g *Generator) GeneratePlan(ctx context.Context, history []model.HistoryEntry, params model.SessionParameters, entryDate string) ([]model.SessionPlan, error) {
	if len(g.cfg.PredictedGrades) == 0 {
		return nil, ErrNoPredictedGrades
	}

	shots := params.Shots
	if shots < 1 {
		shots = 1
	}
	if entryDate == "" {
		entryDate = g.now().Format(model.DateLayout)
	}

	working := append([]model.HistoryEntry(nil), history...)
	plans := make([]model.SessionPlan, 0, shots)
	for i := 0; i < shots; i++ {
		plan, extended, err := g.runShot(ctx, working, params, entryDate)
		if err != nil {
			return nil, fmt.Errorf("shot %d: %w", i+1, err)
		}
		working = extended
		plans = append(plans, plan)
	}
	return plans, nil
}

// runShot executes one full shot: score initialisation, the selection loop
// with local feedback, the penalty pass, and persistence. It returns the
// plan plus the working history extended with this shot's entries.
func (g *Generator) runShot(ctx context.Context, working []model.HistoryEntry, params model.SessionParameters, entryDate string) (model.SessionPlan, []model.HistoryEntry, error) {
	count := params.Count
	if count < 0 {
		count = 0
	}
	sessionTime := float64(params.SessionTime)
	breakTime := float64(params.BreakTime)

	localScores := g.initialiseScores(working)
	tracked := g.trackedSubjects(working)

	selected := make([]string, 0, count)
	selectedSet := make(map[string]struct{}, count)
	newEntries := make([]model.HistoryEntry, 0, count+len(tracked))

	for i := 0; i < count; i++ {
		normalised := schedule.NormaliseScores(localScores)
		subject, err := schedule.ChooseLowest(normalised)
		if err != nil {
			return model.SessionPlan{}, nil, err
		}
		selected = append(selected, subject)
		selectedSet[subject] = struct{}{}
		tracked[subject] = struct{}{}

		entry := g.revisionEntry(subject, sessionTime, breakTime, entryDate)
		working = append(working, entry)
		newEntries = append(newEntries, entry)

		adjustLocalScores(localScores, subject, sessionTime, breakTime)
	}

	for _, subject := range sortedSubjects(tracked) {
		if _, ok := selectedSet[subject]; ok {
			continue
		}
		entry := g.notStudiedEntry(subject, sessionTime, breakTime, entryDate)
		working = append(working, entry)
		newEntries = append(newEntries, entry)
	}

	if g.store != nil && len(newEntries) > 0 {
		if _, err := g.store.AppendHistoryEntries(ctx, newEntries); err != nil {
			return model.SessionPlan{}, nil, fmt.Errorf("persist entries: %w", err)
		}
	}

	plan := model.SessionPlan{
		Subjects:   g.shuffled(selected),
		NewEntries: append([]model.HistoryEntry(nil), newEntries...),
		History:    append([]model.HistoryEntry(nil), working...),
	}
	return plan, working, nil
}

// initialiseScores runs the weighting and aggregation stages over the
// working history and scales the result into the range the feedback
// adjustments operate in.
func (g *Generator) initialiseScores(working []model.HistoryEntry) map[string]float64 {
	totals := schedule.ApplyWeighting(working, g.cfg.AssessmentWeights, g.cfg.PredictedGrades, g.cfg.Decay, g.now())
	aggregated := schedule.AggregateScores(totals, g.cfg.PredictedGrades)

	scores := make(map[string]float64, len(aggregated))
	for subject, score := range aggregated {
		scores[subject] = score / 100
	}
	return scores
}

// trackedSubjects is the union of subjects seen in history and subjects
// with a predicted grade.
func (g *Generator) trackedSubjects(working []model.HistoryEntry) map[string]struct{} {
	tracked := make(map[string]struct{}, len(g.cfg.PredictedGrades))
	for _, entry := range working {
		if entry.Subject != "" {
			tracked[entry.Subject] = struct{}{}
		}
	}
	for subject := range g.cfg.PredictedGrades {
		tracked[subject] = struct{}{}
	}
	return tracked
}

// revisionEntry synthesises study credit for a selected subject. The
// sinusoidal shaping keeps the credit non-monotonic in the predicted grade.
func (g *Generator) revisionEntry(subject string, sessionTime, breakTime float64, entryDate string) model.HistoryEntry {
	grade := g.cfg.PredictedGrades[subject]
	x := math.Abs(grade-1) * 2 * math.Pi
	score := math.Sin(x/4+math.Pi/2) * (sessionTime + breakTime)
	return model.HistoryEntry{
		Subject: subject,
		Type:    model.EntryTypeRevision,
		Score:   score,
		Date:    entryDate,
	}
}

// notStudiedEntry synthesises the skip penalty for a tracked subject that
// was never selected during the shot.
func (g *Generator) notStudiedEntry(subject string, sessionTime, breakTime float64, entryDate string) model.HistoryEntry {
	grade := g.cfg.PredictedGrades[subject]
	x := (1 - grade) * math.Pi
	score := -math.Sin(x) * (sessionTime + breakTime)
	return model.HistoryEntry{
		Subject: subject,
		Type:    model.EntryTypeNotStudied,
		Score:   score,
		Date:    entryDate,
	}
}

// adjustLocalScores discourages immediate re-selection: the chosen subject
// rises with the studied time, everything else decays, floored at zero.
func adjustLocalScores(scores map[string]float64, chosen string, sessionTime, breakTime float64) {
	for subject := range scores {
		if subject == chosen {
			scores[subject] += studiedTimeFactor * (2.5*sessionTime + breakTime)
			continue
		}
		scores[subject] = math.Max(scores[subject]-notStudiedDelta, 0)
	}
}

// shuffled returns a display-order copy; the selection order itself stays
// untouched for penalty computation and later shots.
func (g *Generator) shuffled(subjects []string) []string {
	out := append([]string(nil), subjects...)
	g.rnd.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

func sortedSubjects(set map[string]struct{}) []string {
	subjects := make([]string, 0, len(set))
	for subject := range set {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)
	return subjects
}
