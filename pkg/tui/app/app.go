// Package app is the root Bubble Tea model: the record picker next to the
// selection list it feeds.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/celexta/pkg/app"
	"tableflip.dev/celexta/pkg/catalog"
	"tableflip.dev/celexta/pkg/selection"
	"tableflip.dev/celexta/pkg/store"
	"tableflip.dev/celexta/pkg/tui/components/picker"
	"tableflip.dev/celexta/pkg/tui/events"
	"tableflip.dev/celexta/pkg/tui/theme"
)

const pickerID = events.ComponentID("picker")

type selectionsLoadedMsg struct {
	list string
	all  []*selection.Selection
	err  error
}

type selectedMsg struct {
	sel     *selection.Selection
	already bool
	err     error
}

type unselectedMsg struct {
	sel *selection.Selection
	err error
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

// Model composes the picker with the selection list panel.
type Model struct {
	ctx   context.Context
	svc   *app.Service
	list  string
	theme theme.Theme

	picker   *picker.Model
	selected []*selection.Selection

	status    string
	statusErr bool

	width  int
	height int

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// New constructs a root model adding records to list.
func New(ctx context.Context, svc *app.Service, list string) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if list == "" {
		list = selection.DefaultList
	}
	th := theme.Default()
	p := picker.NewModel(svc.Catalog, picker.Options{
		ID:          pickerID,
		Placeholder: "type to search",
		Theme:       &th,
	})
	return &Model{
		ctx:    ctx,
		svc:    svc,
		list:   list,
		theme:  th,
		picker: p,
		status: "Ready",
	}
}

// Run launches the Bubble Tea program.
func Run(ctx context.Context, svc *app.Service, list string) error {
	if svc == nil || svc.Catalog == nil {
		return errors.New("tui: no catalog loaded")
	}
	m := New(ctx, svc, list)
	defer m.close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.picker.Init(), m.loadSelected(), startWatchCmd(m.ctx, m.svc))
}

func (m *Model) close() {
	m.stopWatch()
	m.picker.Close()
}

func (m *Model) loadSelected() tea.Cmd {
	svc, ctx, list := m.svc, m.ctx, m.list
	return func() tea.Msg {
		all, err := svc.Selected(ctx, list)
		return selectionsLoadedMsg{list: list, all: all, err: err}
	}
}

// selectCmd persists r. It works on the record value so the catalog is
// never read off the update goroutine.
func (m *Model) selectCmd(r catalog.Record) tea.Cmd {
	svc, ctx, list := m.svc, m.ctx, m.list
	return func() tea.Msg {
		sel, err := svc.SelectRecord(ctx, list, r)
		if errors.Is(err, app.ErrAlreadySelected) {
			return selectedMsg{sel: sel, already: true}
		}
		return selectedMsg{sel: sel, err: err}
	}
}

func (m *Model) unselectLastCmd() tea.Cmd {
	if len(m.selected) == 0 {
		return nil
	}
	last := m.selected[len(m.selected)-1]
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		sel, err := svc.Unselect(ctx, last.List, last.ID)
		return unselectedMsg{sel: sel, err: err}
	}
}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	if svc == nil || svc.Persistence == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = "ERR: " + err.Error()
	m.statusErr = true
}

// Update routes Bubble Tea messages to the picker and the list panel.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	forward := true

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			m.stopWatch()
			return m, tea.Quit
		case "ctrl+d":
			forward = false
			if cmd := m.unselectLastCmd(); cmd != nil {
				cmds = append(cmds, cmd)
			} else {
				m.setStatus("Nothing to remove")
			}
		}
	case events.QueryChangeMsg:
		if msg.Component == pickerID {
			m.setStatus(fmt.Sprintf("%d matching", msg.Matches))
		}
	case events.RecordSelectMsg:
		if msg.Component == pickerID {
			cmds = append(cmds, m.selectCmd(msg.Record.Record))
		}
	case events.PickerCancelMsg:
		if msg.Component == pickerID {
			m.stopWatch()
			return m, tea.Quit
		}
	case selectedMsg:
		switch {
		case msg.err != nil:
			m.setError(msg.err)
		case msg.already:
			m.setStatus(msg.sel.String() + " is already selected")
		default:
			m.setStatus("Added " + msg.sel.String())
			cmds = append(cmds, events.SelectionChangeCmd(pickerID, events.ChangeCreate, msg.sel))
		}
		cmds = append(cmds, m.loadSelected())
	case unselectedMsg:
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.setStatus("Removed " + msg.sel.String())
			cmds = append(cmds, events.SelectionChangeCmd(pickerID, events.ChangeDelete, msg.sel))
		}
		cmds = append(cmds, m.loadSelected())
	case selectionsLoadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			break
		}
		if msg.list == m.list {
			m.selected = msg.all
		}
	case watchStartedMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("watch: %w", msg.err))
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		cmds = append(cmds, m.waitForWatch())
	case watchEventMsg:
		if msg.event.Type == store.EventListsInvalidated || msg.event.List == m.list {
			cmds = append(cmds, m.loadSelected())
		}
		cmds = append(cmds, m.waitForWatch())
	case watchStoppedMsg:
		m.stopWatch()
		if m.ctx.Err() == nil {
			cmds = append(cmds, startWatchCmd(m.ctx, m.svc))
		}
	}

	if forward {
		_, cmd := m.picker.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) pickerWidth() int {
	w := m.width * 3 / 5
	if w < 20 {
		w = m.width
	}
	return w
}

func (m *Model) layout() {
	h := m.height - 1
	if h < 3 {
		h = 3
	}
	m.picker.SetSize(m.pickerWidth(), h)
}

// View renders the picker, the list panel and a status line.
func (m *Model) View() (string, *tea.Cursor) {
	left, cursor := m.picker.View()
	body := left
	if panelWidth := m.width - m.pickerWidth(); panelWidth >= 20 {
		left = lipgloss.NewStyle().Width(m.pickerWidth()).Render(left)
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, m.renderPanel(panelWidth))
	}

	footer := m.theme.Footer.Help.Render("enter add · ctrl+d remove last · ctrl+s sort · esc clear/quit")
	status := m.theme.Footer.Status.Render(m.status)
	if m.statusErr {
		status = m.theme.Footer.Error.Render(m.status)
	}

	lines := strings.Split(body, "\n")
	if m.height > 0 {
		for len(lines) < m.height-1 {
			lines = append(lines, "")
		}
	}
	lines = append(lines, footer+"  "+status)
	return strings.Join(lines, "\n"), cursor
}

func (m *Model) renderPanel(width int) string {
	th := m.theme.Panel
	frame := th.Frame.Width(width - th.Frame.GetHorizontalFrameSize())

	rows := make([]string, 0, len(m.selected)+1)
	rows = append(rows, th.Title.Render(fmt.Sprintf("%s (%d)", m.list, len(m.selected))))
	if len(m.selected) == 0 {
		rows = append(rows, th.Faint.Render("nothing selected"))
	}
	for i, s := range m.selected {
		row := fmt.Sprintf("%d. %s", i+1, th.Body.Render(s.Record.Primary))
		if s.Record.Secondary != "" {
			row += " " + th.Faint.Render(s.Record.Secondary)
		}
		rows = append(rows, row)
	}
	return frame.Render(strings.Join(rows, "\n"))
}
