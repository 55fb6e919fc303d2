// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package tui is a thin demonstration Bubble Tea shell (spec §1: the TUI
// framework is an external collaborator, not part of the core). It drains
// the Notification Bus (internal/asyncjob) and re-reads the documented Job
// Latch / StatusSnapshot contract rather than owning any git state itself.
// It is not a layout engine; callers compose richer screens from here,
// grounded on the teacher's pkg/tui.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gizzahub/asyncgit/internal/asyncjob"
	"github.com/gizzahub/asyncgit/internal/gitadapt"
	"github.com/gizzahub/asyncgit/pkg/commithelper"
	"github.com/gizzahub/asyncgit/pkg/config"
)

// spinnerTickInterval matches the animation rate typical of the charm
// ecosystem's own spinner component.
const spinnerTickInterval = 100 * time.Millisecond

// wakeMsg is delivered whenever the Notification Bus wakes this model's
// subscription; its payload is the drained set of kinds (spec §5: the UI
// "re-reads canonical state", it does not trust the notification payload).
type wakeMsg struct {
	kinds []asyncjob.Kind
}

// spinnerTickMsg advances the commit-helper spinner animation (spec §9:
// "polled once per UI tick").
type spinnerTickMsg struct{}

// Model is the root Bubble Tea model. It owns no git state directly: it
// holds the handles needed to submit jobs and re-read canonical state
// after a wake.
type Model struct {
	bus        *asyncjob.Bus
	sub        *asyncjob.Subscription
	repo       *gitadapt.Repository
	dispatcher *asyncjob.Dispatcher
	generation *asyncjob.Generation

	statusLatch *asyncjob.Latch[[]gitadapt.Item]
	status      []gitadapt.Item
	statusErr   error
	spinner     commithelper.Spinner
	keys        keyMap

	quitting bool
}

// NewModel subscribes to bus and returns a Model ready to run. repo may be
// nil if only demonstrating bus plumbing without a live repository. Key
// bindings default to config.DefaultKeyConfig(); call SetKeyConfig to load
// the user's key_config.yaml instead.
func NewModel(bus *asyncjob.Bus, repo *gitadapt.Repository) *Model {
	return &Model{
		bus:         bus,
		sub:         bus.Subscribe(),
		repo:        repo,
		dispatcher:  asyncjob.NewDispatcher(asyncjob.DefaultWorkers),
		generation:  &asyncjob.Generation{},
		statusLatch: &asyncjob.Latch[[]gitadapt.Item]{},
		keys:        newKeyMap(config.DefaultKeyConfig()),
	}
}

// waitForWake returns a tea.Cmd that blocks on the bus wake channel,
// converting it into a Bubble Tea message. Re-issued after every wake so
// the model keeps listening (the standard Bubble Tea "waiting on a channel"
// pattern).
func (m *Model) waitForWake() tea.Cmd {
	return func() tea.Msg {
		<-m.sub.Wake()
		return wakeMsg{kinds: m.sub.Drain()}
	}
}

func (m *Model) Init() tea.Cmd {
	m.refreshStatus()
	return m.waitForWake()
}

// StartHelper transitions the commit-helper spinner to running and begins
// its tick animation. Callers submit the actual helper job (pkg/commithelper
// via internal/asyncjob) separately and call SucceedHelper/FailHelper when
// it completes.
func (m *Model) StartHelper() tea.Cmd {
	m.spinner.Start()
	return tickSpinner()
}

// SucceedHelper and FailHelper record a completed commit-helper invocation's
// outcome for the next View render.
func (m *Model) SucceedHelper(result string) { m.spinner.Succeed(result) }
func (m *Model) FailHelper(err error)        { m.spinner.Fail(err) }

func tickSpinner() tea.Cmd {
	return tea.Tick(spinnerTickInterval, func(time.Time) tea.Msg { return spinnerTickMsg{} })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
	case wakeMsg:
		m.handleWake(msg.kinds)
		return m, m.waitForWake()
	case spinnerTickMsg:
		if m.spinner.State == commithelper.SpinnerRunning {
			m.spinner.Tick()
			return m, tickSpinner()
		}
	}
	return m, nil
}

// handleWake re-reads canonical state for every kind observed, per spec §5
// ("the UI treats each kind of notification independently and re-reads
// canonical state").
func (m *Model) handleWake(kinds []asyncjob.Kind) {
	for _, kind := range kinds {
		if kind == asyncjob.KindStatus {
			m.refreshStatus()
		}
	}
}

// refreshStatus submits a status job through the Job Latch, fingerprinted
// against the current Generation (spec §4.B, §4.C): a job already pending
// is deduped rather than re-run. The Latch bumps m.generation itself on
// every completion, so the next refreshStatus computes a fresh fingerprint
// and re-fetches even without --watcher — status is never cached forever
// between polls. Either way the latch's last completed result is pulled
// into m.status, so a wake caused by the job's own completion (Latch.Submit
// publishes on bus) picks up the fresh value without dispatching a second
// job.
func (m *Model) refreshStatus() {
	if m.repo == nil {
		return
	}
	fingerprint := asyncjob.Fingerprint(m.repo.Path(), m.generation.Load())
	m.statusLatch.Submit(fingerprint, m.dispatcher, m.bus, m.generation, asyncjob.KindStatus, func() ([]gitadapt.Item, error) {
		return m.repo.Status(gitadapt.ShowBoth, gitadapt.UntrackedAll)
	})
	if status, err, hasResult, _ := m.statusLatch.Get(); hasResult {
		m.status, m.statusErr = status, err
	}
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("asyncgit") + "\n\n")

	if m.statusErr != nil {
		b.WriteString(UnhealthyStyle.Render(m.statusErr.Error()) + "\n")
	}
	for _, item := range m.status {
		line := fmt.Sprintf("%s %s", statusGlyph(item.Status), item.Path)
		if item.Status == gitadapt.ItemConflicted {
			b.WriteString(UnhealthyStyle.Render(line) + "\n")
		} else {
			b.WriteString(DirtyStyle.Render(line) + "\n")
		}
	}

	switch m.spinner.State {
	case commithelper.SpinnerRunning:
		b.WriteString(fmt.Sprintf("\n%c running commit helper...\n", m.spinner.Frame()))
	case commithelper.SpinnerError:
		b.WriteString("\n" + UnhealthyStyle.Render("commit helper failed: "+m.spinner.Err.Error()) + "\n")
	case commithelper.SpinnerSuccess:
		b.WriteString("\n" + m.spinner.Result + "\n")
	}

	b.WriteString("\n" + SubtleStyle.Render("q: quit"))
	return b.String()
}

func statusGlyph(s gitadapt.ItemType) string {
	switch s {
	case gitadapt.ItemNew:
		return "+"
	case gitadapt.ItemModified:
		return "~"
	case gitadapt.ItemDeleted:
		return "-"
	case gitadapt.ItemRenamed:
		return "→"
	case gitadapt.ItemTypeChanged:
		return "T"
	case gitadapt.ItemConflicted:
		return "!"
	default:
		return " "
	}
}
