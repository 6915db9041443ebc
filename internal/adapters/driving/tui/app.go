package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driving"
)

// pollEvery is how often the view refreshes run progress.
const pollEvery = 100 * time.Millisecond

// App is the run progress view following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// spec describes the run this view drives.
	spec RunSpec

	// ctx is the context for cancellation; cancel aborts the run.
	ctx    context.Context
	cancel context.CancelFunc

	// styles holds the TUI styles.
	styles *Styles

	// spinner animates while the run is active.
	spinner spinner.Model

	// progress is the latest polled run progress.
	progress driving.Progress

	// summary holds the run result once the run finishes.
	summary *domain.Summary

	// err holds the run error, if any.
	err error

	// done marks the run as finished.
	done bool

	// quitting marks a user-requested cancel in flight.
	quitting bool

	// width is the terminal width.
	width int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the run view for the given ports and run spec.
func NewApp(ports *Ports, spec RunSpec) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if spec.Run == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingRun)
	}

	s := DefaultStyles()
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Spinner

	return &App{
		ports:   ports,
		spec:    spec,
		ctx:     context.Background(),
		cancel:  func() {},
		styles:  s,
		spinner: sp,
	}, nil
}

// WithContext sets the context for the app. The run executes under a
// child of it, so the q key can cancel without touching the parent.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx, a.cancel = context.WithCancel(ctx)
	return a
}

// Init implements tea.Model.
// It starts the run alongside the spinner and the progress poll.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.startRun(), a.poll())
}

// startRun executes the pipeline and reports its result.
func (a *App) startRun() tea.Cmd {
	return func() tea.Msg {
		summary, err := a.spec.Run(a.ctx)
		return runFinished{summary: summary, err: err}
	}
}

// poll schedules the next progress refresh.
func (a *App) poll() tea.Cmd {
	return tea.Tick(pollEvery, func(t time.Time) tea.Msg {
		return pollTick(t)
	})
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if a.done {
				return a, tea.Quit
			}
			// Cancel the run; the runFinished message quits.
			a.quitting = true
			a.cancel()
			return a, nil
		}
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case pollTick:
		if a.done {
			return a, nil
		}
		a.progress = a.ports.Pipeline.Progress()
		return a, a.poll()

	case runFinished:
		a.done = true
		a.summary = msg.summary
		a.err = msg.err
		a.progress = a.ports.Pipeline.Progress()
		return a, tea.Quit
	}

	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("nlp-pipeline"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %s -> %s\n\n",
		describeStore(a.spec.Source.Kind, a.spec.Source.Location),
		describeStore(a.spec.Dest.Kind, a.spec.Dest.Location)))

	switch {
	case a.quitting && !a.done:
		b.WriteString("  cancelling...\n")
	case a.done && a.err != nil:
		b.WriteString(a.styles.Error.Render(fmt.Sprintf("  run failed: %v", a.err)))
		b.WriteString("\n")
	case a.done:
		b.WriteString("  done\n")
	default:
		b.WriteString(fmt.Sprintf("  %s %s\n", a.spinner.View(), a.stateLine()))
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Muted.Render("  q to cancel"))
	b.WriteString("\n")

	return b.String()
}

// stateLine describes the current run phase.
func (a *App) stateLine() string {
	switch a.progress.State {
	case domain.StateLoading:
		return "loading source"
	case domain.StateScoring:
		if a.progress.Total > 0 {
			return fmt.Sprintf("scoring %d/%d rows", a.progress.Processed, a.progress.Total)
		}
		return "scoring"
	case domain.StateSaving:
		return fmt.Sprintf("saving %d rows", a.progress.Total)
	default:
		return "starting"
	}
}

// describeStore renders a store endpoint for the header line.
func describeStore(kind domain.StoreKind, location string) string {
	if location == "" {
		return string(kind)
	}
	return fmt.Sprintf("%s %s", kind, location)
}

// Summary returns the run summary once the run has finished.
func (a *App) Summary() *domain.Summary {
	return a.summary
}

// Err returns the run error, if any.
func (a *App) Err() error {
	return a.err
}
