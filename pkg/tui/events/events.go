package events

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/celexta/pkg/catalog"
	"tableflip.dev/celexta/pkg/selection"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// RecordRef identifies a catalog record at the moment an event was emitted.
// Index is only meaningful until the catalog is next mutated.
type RecordRef struct {
	Index  int
	Record catalog.Record
	Label  string
}

// QueryChangeMsg is emitted when the picker query changes.
type QueryChangeMsg struct {
	Component ComponentID
	Query     string
	Matches   int
}

// Describe implements the logging helper.
func (m QueryChangeMsg) Describe() string {
	return fmt.Sprintf(`query:%q matches:%d`, m.Query, m.Matches)
}

// RecordHighlightMsg is emitted when the user moves onto a record.
type RecordHighlightMsg struct {
	Component ComponentID
	Record    RecordRef
}

// Describe implements the logging helper.
func (m RecordHighlightMsg) Describe() string {
	return fmt.Sprintf(`index:%d label:%q`, m.Record.Index, m.Record.Label)
}

// RecordSelectMsg is emitted when the user activates a record.
type RecordSelectMsg struct {
	Component ComponentID
	Record    RecordRef
}

// Describe implements the logging helper.
func (m RecordSelectMsg) Describe() string {
	return fmt.Sprintf(`index:%d label:%q`, m.Record.Index, m.Record.Label)
}

// PickerCancelMsg is emitted when the user dismisses an empty picker.
type PickerCancelMsg struct {
	Component ComponentID
}

// Describe implements the logging helper.
func (m PickerCancelMsg) Describe() string {
	return fmt.Sprintf(`component:%q`, m.Component)
}

// ChangeType enumerates supported change actions across components.
type ChangeType string

const (
	// ChangeCreate indicates a selection was added.
	ChangeCreate ChangeType = "create"
	// ChangeDelete indicates a selection was removed.
	ChangeDelete ChangeType = "delete"
)

// SelectionChangeMsg announces that a selection list changed because of a
// user action.
type SelectionChangeMsg struct {
	Component ComponentID
	Action    ChangeType
	Selection *selection.Selection
}

// Describe implements the logging helper.
func (m SelectionChangeMsg) Describe() string {
	label, list := "", ""
	if m.Selection != nil {
		label, list = m.Selection.String(), m.Selection.List
	}
	return fmt.Sprintf(`action:%q list:%q record:%q`, m.Action, list, label)
}

// QueryChangeCmd wraps QueryChangeMsg.
func QueryChangeCmd(component ComponentID, query string, matches int) tea.Cmd {
	return func() tea.Msg {
		return QueryChangeMsg{Component: component, Query: query, Matches: matches}
	}
}

// RecordHighlightCmd wraps RecordHighlightMsg.
func RecordHighlightCmd(component ComponentID, ref RecordRef) tea.Cmd {
	return func() tea.Msg {
		return RecordHighlightMsg{Component: component, Record: ref}
	}
}

// RecordSelectCmd wraps RecordSelectMsg.
func RecordSelectCmd(component ComponentID, ref RecordRef) tea.Cmd {
	return func() tea.Msg {
		return RecordSelectMsg{Component: component, Record: ref}
	}
}

// PickerCancelCmd wraps PickerCancelMsg.
func PickerCancelCmd(component ComponentID) tea.Cmd {
	return func() tea.Msg {
		return PickerCancelMsg{Component: component}
	}
}

// SelectionChangeCmd wraps SelectionChangeMsg.
func SelectionChangeCmd(component ComponentID, action ChangeType, sel *selection.Selection) tea.Cmd {
	return func() tea.Msg {
		return SelectionChangeMsg{Component: component, Action: action, Selection: sel}
	}
}
