// Package main provides the CLI entrypoint for revise.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verrev/revise/internal/config"
	"github.com/verrev/revise/internal/model"
	"github.com/verrev/revise/internal/planui"
	"github.com/verrev/revise/internal/report"
	"github.com/verrev/revise/internal/schedule"
	"github.com/verrev/revise/internal/seed"
	"github.com/verrev/revise/internal/session"
	"github.com/verrev/revise/internal/store"
)

var (
	planSessions    int
	planSessionTime int
	planBreakTime   int
	planShots       int
	planUser        string
	planDate        string
	planDryRun      bool
	planInteractive bool

	statsUser  string
	statsSince string
	statsLast  int
	statsUI    bool

	gradesUser   string
	gradesDerive bool
	gradesSave   bool

	resetUser string

	seedUser      string
	seedMinEvents int
	seedMaxEvents int
	seedMinScore  float64
	seedMaxScore  float64
	seedOffset    float64
	seedDaysBack  int
	seedValue     int64

	importUser    string
	importGrades  string
	importHistory string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "revise",
		Short:         "Study session recommender",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlanCmd,
	}

	rootCmd.Flags().IntVar(&planSessions, "sessions", config.DefaultSessionCount, "sessions to schedule per shot")
	rootCmd.Flags().IntVar(&planSessionTime, "session-time", config.DefaultSessionTime, "minutes of study per session")
	rootCmd.Flags().IntVar(&planBreakTime, "break-time", config.DefaultBreakTime, "minutes of break per session")
	rootCmd.Flags().IntVar(&planShots, "shots", config.DefaultShots, "number of plans to generate in sequence")
	rootCmd.Flags().StringVar(&planUser, "user", config.DefaultUser, "user to plan for")
	rootCmd.Flags().StringVar(&planDate, "date", "", "entry date for recorded sessions (YYYY-MM-DD, default today)")
	rootCmd.Flags().BoolVar(&planDryRun, "dry-run", false, "compute the plan without recording it")
	rootCmd.Flags().BoolVar(&planInteractive, "interactive", false, "browse the plan in a TUI")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newGradesCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newImportCmd())

	return rootCmd
}

// userStore binds the per-user append operation to the session generator.
type userStore struct {
	st   *store.Store
	user string
}

func (u *userStore) AppendHistoryEntries(ctx context.Context, entries []model.HistoryEntry) (int, error) {
	return u.st.AppendHistoryEntries(ctx, u.user, entries)
}

func runPlanCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "sessions", &planSessions, fileCfg.Sessions.Count)
	applyIntConfig(cmd, "session-time", &planSessionTime, fileCfg.Sessions.SessionTime)
	applyIntConfig(cmd, "break-time", &planBreakTime, fileCfg.Sessions.BreakTime)
	applyIntConfig(cmd, "shots", &planShots, fileCfg.Sessions.Shots)
	applyStringConfig(cmd, "user", &planUser, fileCfg.User.Name)

	params := model.SessionParameters{
		Count:       planSessions,
		SessionTime: planSessionTime,
		BreakTime:   planBreakTime,
		Shots:       planShots,
	}
	if err := validateParams(params); err != nil {
		return err
	}
	if planDate != "" {
		if _, err := time.Parse(model.DateLayout, planDate); err != nil {
			return fmt.Errorf("invalid --date value (expected YYYY-MM-DD): %w", err)
		}
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	if _, err := st.EnsureUser(ctx, planUser, fileCfg.ActiveRole()); err != nil {
		return fmt.Errorf("failed to ensure user: %w", err)
	}

	inputs, err := loadPlanInputs(ctx, st, fileCfg, planUser)
	if err != nil {
		return err
	}

	var appendStore session.Store
	if !planDryRun {
		appendStore = &userStore{st: st, user: planUser}
	}
	gen := session.New(session.Config{
		AssessmentWeights: inputs.weights,
		PredictedGrades:   inputs.grades,
		Decay:             fileCfg.DateDecay(),
	}, appendStore)

	plans, err := gen.GeneratePlan(ctx, inputs.history, params, planDate)
	if err != nil {
		return fmt.Errorf("failed to generate plan: %w", err)
	}
	insights := report.Analyse(plans)

	if planInteractive {
		return runPlanBrowser(planui.Data{
			User:           planUser,
			Plans:          plans,
			Insights:       insights,
			StartingScores: inputs.startingScores,
			Grades:         inputs.grades,
			History:        inputs.history,
			Params:         params,
			DryRun:         planDryRun,
		})
	}

	out := cmd.OutOrStdout()
	if err := report.RenderScoreBars(out, "Starting scores (lowest is scheduled first):", inputs.startingScores, 0, false); err != nil {
		return fmt.Errorf("failed to render scores: %w", err)
	}
	for i, plan := range plans {
		shotNumber := 0
		if len(plans) > 1 {
			shotNumber = i + 1
		}
		if _, err := fmt.Fprintln(out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if err := report.RenderPlan(out, plan, shotNumber); err != nil {
			return fmt.Errorf("failed to render plan: %w", err)
		}
	}
	if err := report.RenderInsights(out, insights, params.Count); err != nil {
		return fmt.Errorf("failed to render insights: %w", err)
	}
	if planDryRun {
		logErrln("Dry run: no entries were recorded.")
	}
	return nil
}

// planInputs bundles everything the scoring pipeline reads for one user.
type planInputs struct {
	weights        map[string]float64
	grades         map[string]float64
	history        []model.HistoryEntry
	startingScores map[string]float64
}

func loadPlanInputs(ctx context.Context, st *store.Store, fileCfg config.FileConfig, user string) (planInputs, error) {
	var inputs planInputs
	weights, err := st.GetAssessmentWeights(ctx)
	if err != nil {
		return inputs, fmt.Errorf("failed to load assessment weights: %w", err)
	}
	inputs.weights = fileCfg.MergeWeights(weights)

	grades, err := st.GetPredictedGrades(ctx, user)
	if err != nil {
		return inputs, fmt.Errorf("failed to load predicted grades: %w", err)
	}
	if len(grades) == 0 {
		return inputs, noGradesError(user)
	}
	inputs.grades = grades

	history, err := st.GetStudyHistory(ctx, user)
	if err != nil {
		return inputs, fmt.Errorf("failed to load history: %w", err)
	}
	inputs.history = history

	totals := schedule.ApplyWeighting(history, inputs.weights, grades, fileCfg.DateDecay(), time.Now())
	inputs.startingScores = schedule.NormaliseScores(schedule.AggregateScores(totals, grades))
	return inputs, nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show history and run insights",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsUser, "user", config.DefaultUser, "user to report on")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N entries")
	cmd.Flags().BoolVar(&statsUI, "ui", false, "browse in a TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "user", &statsUser, fileCfg.User.Name)
	if statsSince != "" {
		if _, err := time.Parse(model.DateLayout, statsSince); err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	history, err := st.GetStudyHistory(ctx, statsUser)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	history = filterHistory(history, model.StatsConfig{Since: statsSince, Last: statsLast})

	grades, err := st.GetPredictedGrades(ctx, statsUser)
	if err != nil {
		return fmt.Errorf("failed to load predicted grades: %w", err)
	}

	params := fileCfg.SessionDefaults()
	var plans []model.SessionPlan
	var insights report.RunInsights
	var startingScores map[string]float64
	if len(grades) > 0 {
		// Insights come from a throwaway dry run over the filtered history.
		inputs, err := loadStatsInputs(ctx, st, fileCfg, grades, history)
		if err != nil {
			return err
		}
		startingScores = inputs.startingScores
		gen := session.New(session.Config{
			AssessmentWeights: inputs.weights,
			PredictedGrades:   grades,
			Decay:             fileCfg.DateDecay(),
		}, nil)
		plans, err = gen.GeneratePlan(ctx, history, params, "")
		if err != nil {
			return fmt.Errorf("failed to simulate plan: %w", err)
		}
		insights = report.Analyse(plans)
	}

	if statsUI {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("--ui requires a terminal")
		}
		return runPlanBrowser(planui.Data{
			User:           statsUser,
			Plans:          plans,
			Insights:       insights,
			StartingScores: startingScores,
			Grades:         grades,
			History:        history,
			Params:         params,
			DryRun:         true,
		})
	}

	out := cmd.OutOrStdout()
	if err := report.RenderHistoryTable(out, history, 0); err != nil {
		return fmt.Errorf("failed to render history: %w", err)
	}
	if len(grades) == 0 {
		logErrln("No predicted grades configured; skipping insights.")
		return nil
	}
	if err := report.RenderScoreBars(out, "\nStarting scores (lowest is scheduled first):", startingScores, 0, false); err != nil {
		return fmt.Errorf("failed to render scores: %w", err)
	}
	if err := report.RenderInsights(out, insights, params.Count); err != nil {
		return fmt.Errorf("failed to render insights: %w", err)
	}
	return nil
}

func loadStatsInputs(ctx context.Context, st *store.Store, fileCfg config.FileConfig, grades map[string]float64, history []model.HistoryEntry) (planInputs, error) {
	var inputs planInputs
	weights, err := st.GetAssessmentWeights(ctx)
	if err != nil {
		return inputs, fmt.Errorf("failed to load assessment weights: %w", err)
	}
	inputs.weights = fileCfg.MergeWeights(weights)
	inputs.grades = grades
	inputs.history = history
	totals := schedule.ApplyWeighting(history, inputs.weights, grades, fileCfg.DateDecay(), time.Now())
	inputs.startingScores = schedule.NormaliseScores(schedule.AggregateScores(totals, grades))
	return inputs, nil
}

func filterHistory(entries []model.HistoryEntry, cfg model.StatsConfig) []model.HistoryEntry {
	filtered := entries
	if cfg.Since != "" {
		// Entries are YYYY-MM-DD so the lexicographic order is the date order.
		kept := make([]model.HistoryEntry, 0, len(filtered))
		for _, entry := range filtered {
			if entry.Date >= cfg.Since {
				kept = append(kept, entry)
			}
		}
		filtered = kept
	}
	if cfg.Last > 0 && len(filtered) > cfg.Last {
		filtered = filtered[:cfg.Last]
	}
	return filtered
}

func newGradesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grades",
		Short: "Show or derive predicted grades",
		Args:  cobra.NoArgs,
		RunE:  runGradesCmd,
	}
	cmd.Flags().StringVar(&gradesUser, "user", config.DefaultUser, "user to report on")
	cmd.Flags().BoolVar(&gradesDerive, "derive", false, "recompute grades from history instead of showing stored ones")
	cmd.Flags().BoolVar(&gradesSave, "save", false, "persist the derived grades (requires --derive)")
	return cmd
}

func runGradesCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "user", &gradesUser, fileCfg.User.Name)
	if gradesSave && !gradesDerive {
		return fmt.Errorf("--save requires --derive")
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	out := cmd.OutOrStdout()
	if !gradesDerive {
		grades, err := st.GetPredictedGrades(ctx, gradesUser)
		if err != nil {
			return fmt.Errorf("failed to load predicted grades: %w", err)
		}
		if err := report.RenderGradesTable(out, grades); err != nil {
			return fmt.Errorf("failed to render grades: %w", err)
		}
		return nil
	}

	weights, err := st.GetAssessmentWeights(ctx)
	if err != nil {
		return fmt.Errorf("failed to load assessment weights: %w", err)
	}
	history, err := st.GetStudyHistory(ctx, gradesUser)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	derived := schedule.DerivePredictedGrades(history, fileCfg.MergeWeights(weights))
	if len(derived) == 0 {
		return fmt.Errorf("no graded history for %q to derive from", gradesUser)
	}
	if err := report.RenderGradesTable(out, derived); err != nil {
		return fmt.Errorf("failed to render grades: %w", err)
	}
	if gradesSave {
		if err := st.PutPredictedGrades(ctx, gradesUser, derived); err != nil {
			return fmt.Errorf("failed to save grades: %w", err)
		}
		logErrf("Saved %d predicted grades for %s\n", len(derived), gradesUser)
	}
	return nil
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete recorded revision entries",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
	cmd.Flags().StringVar(&resetUser, "user", config.DefaultUser, "user to reset")
	return cmd
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "user", &resetUser, fileCfg.User.Name)

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	removed, err := st.ResetSyntheticHistory(context.Background(), resetUser)
	if err != nil {
		return fmt.Errorf("failed to reset history: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Removed %d recorded entries for %s\n", removed, resetUser); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newSeedCmd() *cobra.Command {
	defaults := seed.DefaultParams()
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate synthetic history from predicted grades",
		Args:  cobra.NoArgs,
		RunE:  runSeedCmd,
	}
	cmd.Flags().StringVar(&seedUser, "user", config.DefaultUser, "user to seed")
	cmd.Flags().IntVar(&seedMinEvents, "min-events", defaults.MinEvents, "minimum events per subject")
	cmd.Flags().IntVar(&seedMaxEvents, "max-events", defaults.MaxEvents, "maximum events per subject")
	cmd.Flags().Float64Var(&seedMinScore, "min-score", defaults.MinScore, "score lower bound (0-1)")
	cmd.Flags().Float64Var(&seedMaxScore, "max-score", defaults.MaxScore, "score upper bound (0-1)")
	cmd.Flags().Float64Var(&seedOffset, "average-offset", defaults.AverageOffset, "how far below the predicted grade scores centre")
	cmd.Flags().IntVar(&seedDaysBack, "days-back", defaults.DaysBack, "spread of event dates into the past")
	cmd.Flags().Int64Var(&seedValue, "seed", 0, "fixed random seed for reproducible output")
	return cmd
}

func runSeedCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "user", &seedUser, fileCfg.User.Name)

	params := seed.Params{
		MinEvents:     seedMinEvents,
		MaxEvents:     seedMaxEvents,
		MinScore:      seedMinScore,
		MaxScore:      seedMaxScore,
		AverageOffset: seedOffset,
		DaysBack:      seedDaysBack,
	}
	if err := validateSeedParams(params); err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	grades, err := st.GetPredictedGrades(ctx, seedUser)
	if err != nil {
		return fmt.Errorf("failed to load predicted grades: %w", err)
	}
	if len(grades) == 0 {
		return noGradesError(seedUser)
	}

	gen := seed.New()
	if cmd.Flags().Changed("seed") {
		gen = seed.NewSeeded(seedValue)
	}
	entries := gen.History(grades, params, time.Now())
	written, err := st.AppendHistoryEntries(ctx, seedUser, entries)
	if err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d history entries for %s\n", written, seedUser); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import predicted grades and history from JSON or YAML",
		Args:  cobra.NoArgs,
		RunE:  runImportCmd,
	}
	cmd.Flags().StringVar(&importUser, "user", config.DefaultUser, "user to import for")
	cmd.Flags().StringVar(&importGrades, "grades", "", "predicted grades file (.json or .yaml)")
	cmd.Flags().StringVar(&importHistory, "history", "", "history file (.json or .yaml)")
	return cmd
}

func runImportCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "user", &importUser, fileCfg.User.Name)
	if importGrades == "" && importHistory == "" {
		return fmt.Errorf("nothing to import: pass --grades and/or --history")
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	summary, err := st.ImportDatasets(context.Background(), importUser, fileCfg.ActiveRole(), importGrades, importHistory)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Imported %d grades and %d history entries for %s\n",
		summary.Grades, summary.History, importUser); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func runPlanBrowser(data planui.Data) error {
	program := tea.NewProgram(planui.NewModel(data), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func validateParams(params model.SessionParameters) error {
	if params.Count < 0 {
		return fmt.Errorf("--sessions must be >= 0")
	}
	if params.SessionTime <= 0 {
		return fmt.Errorf("--session-time must be > 0")
	}
	if params.BreakTime < 0 {
		return fmt.Errorf("--break-time must be >= 0")
	}
	if params.Shots < 1 {
		return fmt.Errorf("--shots must be >= 1")
	}
	return nil
}

func validateSeedParams(p seed.Params) error {
	if p.MinEvents < 1 {
		return fmt.Errorf("--min-events must be >= 1")
	}
	if p.MaxEvents < p.MinEvents {
		return fmt.Errorf("--max-events must be >= --min-events")
	}
	if p.MinScore < 0 || p.MinScore > 1 {
		return fmt.Errorf("--min-score must be between 0 and 1")
	}
	if p.MaxScore < p.MinScore || p.MaxScore > 1 {
		return fmt.Errorf("--max-score must be between --min-score and 1")
	}
	if p.DaysBack < 1 {
		return fmt.Errorf("--days-back must be >= 1")
	}
	return nil
}

func noGradesError(user string) error {
	lines := []string{
		fmt.Sprintf("no predicted grades configured for %q", user),
		fmt.Sprintf("Import them: revise import --user %s --grades grades.json", user),
		fmt.Sprintf("Or derive from history: revise grades --user %s --derive --save", user),
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# revise configuration
# Uncomment a value to enable it. CLI flags override config values.

[user]
# name = %q              # User to plan for
# role = "student"            # Stored on the user row

[sessions]
# count = %d                   # Sessions per shot
# session-time = %d           # Minutes of study per session
# break-time = %d             # Minutes of break per session
# shots = %d                   # Plans generated per run

[decay]
# min-weight = %.1f            # Weight of entries at the threshold age
# max-weight = %.1f            # Weight of entries dated today
# zero-day-threshold = %d    # Days until the minimum weight applies

[weights]
# Override the stored per-type assessment weights.
# "Exam" = 0.6
# "Mock Exam" = 0.5
# "Topic Test" = 0.4
# "Quiz" = 0.3
# "Homework" = 0.2
# "Revision" = 0.1
`,
		config.DefaultUser,
		config.DefaultSessionCount,
		config.DefaultSessionTime,
		config.DefaultBreakTime,
		config.DefaultShots,
		config.DefaultDecayMinWeight,
		config.DefaultDecayMaxWeight,
		config.DefaultDecayThresholdDay,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
