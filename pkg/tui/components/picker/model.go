// Package picker implements a combo box over a catalog: a text prompt whose
// value narrows the catalog records shown beneath it.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/celexta/pkg/catalog"
	"tableflip.dev/celexta/pkg/tui/events"
	"tableflip.dev/celexta/pkg/tui/theme"
)

// Options configures the picker.
type Options struct {
	ID          events.ComponentID
	Prompt      string
	Placeholder string
	// Limit caps the number of visible rows.
	Limit int
	Theme *theme.Theme
}

// Model is a Bubble Tea component that filters a catalog as the user types.
// The catalog is shared by reference and the picker re-filters whenever it
// reports a change.
type Model struct {
	id      events.ComponentID
	catalog *catalog.Model
	cancel  func()
	theme   theme.Theme

	prompt       textinput.Model
	promptPrefix string

	matches     []int
	index       int
	current     *catalog.Record
	windowStart int
	limit       int

	width  int
	height int
}

// NewModel builds a picker over c. Call Close to stop listening for
// catalog changes.
func NewModel(c *catalog.Model, opts Options) *Model {
	prompt := textinput.New()
	prompt.Placeholder = opts.Placeholder
	prompt.Prompt = ""
	prompt.Focus()

	id := opts.ID
	if id == "" {
		id = events.ComponentID("picker")
	}
	prefix := opts.Prompt
	if prefix == "" {
		prefix = "> "
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}
	th := theme.Default()
	if opts.Theme != nil {
		th = *opts.Theme
	}

	m := &Model{
		id:           id,
		catalog:      c,
		theme:        th,
		prompt:       prompt,
		promptPrefix: prefix,
		index:        -1,
		limit:        limit,
		width:        40,
		height:       limit + 2,
	}
	m.cancel = c.Subscribe(m.onChange)
	m.refresh()
	return m
}

// ID exposes the component identifier.
func (m *Model) ID() events.ComponentID { return m.id }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Close drops the catalog subscription.
func (m *Model) Close() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// Query returns the current prompt contents.
func (m *Model) Query() string { return m.prompt.Value() }

// SetQuery replaces the prompt contents and re-filters.
func (m *Model) SetQuery(q string) tea.Cmd {
	m.prompt.SetValue(q)
	m.prompt.CursorEnd()
	m.clearHighlight()
	m.refresh()
	return events.QueryChangeCmd(m.id, q, len(m.matches))
}

// Matches returns the catalog positions currently shown, in catalog order.
func (m *Model) Matches() []int {
	return append([]int(nil), m.matches...)
}

// Highlighted returns the record under the cursor.
func (m *Model) Highlighted() (events.RecordRef, bool) {
	if m.index < 0 || m.index >= len(m.matches) {
		return events.RecordRef{}, false
	}
	return m.ref(m.matches[m.index])
}

func (m *Model) ref(i int) (events.RecordRef, bool) {
	r, err := m.catalog.At(i)
	if err != nil {
		return events.RecordRef{}, false
	}
	label, _ := m.catalog.LabelAt(i)
	return events.RecordRef{Index: i, Record: r, Label: label}, true
}

// SetSize configures the area the picker may draw in.
func (m *Model) SetSize(width, height int) {
	if width <= 0 {
		width = 1
	}
	if height < 3 {
		height = 3
	}
	m.width = width
	m.height = height
	promptWidth := width - lipgloss.Width(m.promptPrefix) - 1
	if promptWidth < 1 {
		promptWidth = 1
	}
	m.prompt.SetWidth(promptWidth)
	m.updateWindow()
}

// Focus gives the prompt keyboard focus.
func (m *Model) Focus() tea.Cmd { return m.prompt.Focus() }

// Blur releases focus.
func (m *Model) Blur() { m.prompt.Blur() }

func (m *Model) onChange(catalog.Change) {
	m.refresh()
}

// refresh recomputes the matches for the current query. The highlight
// follows its record if the record is still shown.
func (m *Model) refresh() {
	m.matches = m.catalog.Matches(m.prompt.Value())
	m.index = -1
	if m.current != nil {
		for pos, i := range m.matches {
			if r, err := m.catalog.At(i); err == nil && r == *m.current {
				m.index = pos
				break
			}
		}
		if m.index < 0 {
			m.current = nil
		}
	}
	m.updateWindow()
}

func (m *Model) clearHighlight() {
	m.index = -1
	m.current = nil
	m.windowStart = 0
}

func (m *Model) visibleRows() int {
	rows := m.height - 2
	if rows > m.limit {
		rows = m.limit
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) updateWindow() {
	total := len(m.matches)
	rows := m.visibleRows()
	if m.windowStart > total-rows {
		m.windowStart = total - rows
	}
	if m.windowStart < 0 {
		m.windowStart = 0
	}
	if m.index >= 0 {
		if m.index < m.windowStart {
			m.windowStart = m.index
		} else if m.index >= m.windowStart+rows {
			m.windowStart = m.index - rows + 1
		}
	}
}

func (m *Model) cycle(delta int) tea.Cmd {
	total := len(m.matches)
	if total == 0 {
		return nil
	}
	if m.index == -1 {
		if delta > 0 {
			m.index = 0
		} else {
			m.index = total - 1
		}
	} else {
		m.index = (m.index + delta) % total
		if m.index < 0 {
			m.index += total
		}
	}
	ref, ok := m.ref(m.matches[m.index])
	if !ok {
		m.clearHighlight()
		return nil
	}
	r := ref.Record
	m.current = &r
	m.updateWindow()
	return events.RecordHighlightCmd(m.id, ref)
}

// Update routes key presses to the prompt and the match list.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	handledKey := false

	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "up", "shift+tab":
			handledKey = true
			cmds = append(cmds, m.cycle(-1))
		case "down", "tab":
			handledKey = true
			cmds = append(cmds, m.cycle(1))
		case "enter":
			handledKey = true
			ref, ok := m.Highlighted()
			if !ok && len(m.matches) == 1 {
				ref, ok = m.ref(m.matches[0])
			}
			if ok {
				cmds = append(cmds, events.RecordSelectCmd(m.id, ref))
			}
		case "esc":
			handledKey = true
			if m.prompt.Value() != "" {
				cmds = append(cmds, m.SetQuery(""))
			} else {
				cmds = append(cmds, events.PickerCancelCmd(m.id))
			}
		case "ctrl+s":
			handledKey = true
			// The change notification re-filters.
			m.catalog.Sort()
		}
	}

	if !handledKey {
		prev := m.prompt.Value()
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		cmds = append(cmds, cmd)
		if newVal := m.prompt.Value(); newVal != prev {
			m.clearHighlight()
			m.refresh()
			cmds = append(cmds, events.QueryChangeCmd(m.id, newVal, len(m.matches)))
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the prompt, the visible matches and a match count.
func (m *Model) View() (string, *tea.Cursor) {
	th := m.theme.Picker
	lines := make([]string, 0, m.visibleRows()+2)

	lines = append(lines, th.Prompt.Render(m.promptPrefix)+m.prompt.View())
	var cursor *tea.Cursor
	if c := m.prompt.Cursor(); c != nil {
		copy := *c
		copy.X += lipgloss.Width(m.promptPrefix)
		copy.Y = 0
		cursor = &copy
	}

	if len(m.matches) == 0 {
		lines = append(lines, th.Empty.Render("  no matching records"))
	}
	end := m.windowStart + m.visibleRows()
	if end > len(m.matches) {
		end = len(m.matches)
	}
	for pos := m.windowStart; pos < end; pos++ {
		lines = append(lines, m.renderRow(pos))
	}

	count := fmt.Sprintf("  %d/%d", len(m.matches), m.catalog.Size())
	lines = append(lines, th.Count.Render(count))
	return strings.Join(lines, "\n"), cursor
}

func (m *Model) renderRow(pos int) string {
	th := m.theme.Picker
	label, err := m.catalog.LabelAt(m.matches[pos])
	if err != nil {
		return ""
	}
	width := m.width - 2
	if width < 1 {
		width = 1
	}
	label = truncate.StringWithTail(label, uint(width), "…")
	if pos == m.index {
		return th.Highlighted.Render("→ " + label)
	}

	// The part after the primary name (separator and affiliation) is dimmed.
	r, _ := m.catalog.At(m.matches[pos])
	n := len(r.Primary)
	if n == 0 || len(label) <= n || !strings.HasPrefix(label, r.Primary) {
		return "  " + th.Row.Render(label)
	}
	return "  " + th.Row.Render(label[:n]) + th.Secondary.Render(label[n:])
}
