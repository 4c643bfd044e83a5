package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const (
	barFillChar         = "█"
	minBarWidth         = 10
	terminalWidthBackup = 80
)

var (
	weakestBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	barLabelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
)

// RenderScoreBars prints a horizontal bar per subject, weakest first. The
// weakest subject, the next recommendation, is highlighted when colour is
// available. width <= 0 fits the current terminal.
func RenderScoreBars(w io.Writer, title string, scores map[string]float64, width int, forceColor bool) error {
	if len(scores) == 0 {
		return nil
	}

	subjects := make([]string, 0, len(scores))
	labelWidth := 0
	maxScore := 0.0
	for subject, score := range scores {
		subjects = append(subjects, subject)
		if l := displayWidth(subject); l > labelWidth {
			labelWidth = l
		}
		if score > maxScore {
			maxScore = score
		}
	}
	sort.Slice(subjects, func(i, j int) bool {
		if scores[subjects[i]] == scores[subjects[j]] {
			return subjects[i] < subjects[j]
		}
		return scores[subjects[i]] < scores[subjects[j]]
	})

	if width <= 0 {
		width = terminalWidth()
	}
	barWidth := width - labelWidth - 10
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}

	useColor := shouldUseColor(w, forceColor)
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for i, subject := range subjects {
		length := 0
		if maxScore > 0 {
			length = int(scores[subject] / maxScore * float64(barWidth))
		}
		bar := strings.Repeat(barFillChar, length)
		label := padCell(subject, labelWidth, false)
		line := fmt.Sprintf("%s %s %.4f", label, bar, scores[subject])
		if useColor {
			if i == 0 {
				line = weakestBarStyle.Render(line)
			} else {
				line = barLabelStyle.Render(line)
			}
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
