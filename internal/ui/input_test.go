package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stackmill/env-dashboard/internal/picker"
)

func pickerModel() *Model {
	m := offlineModel()
	m.mode = ModePicker
	m.stack = []*level{newLevel(picker.LevelProjects, "Projects", []picker.Item{
		{ID: "proj-1", Label: "acme   2 environments", Name: "acme"},
		{ID: "proj-2", Label: "beta   1 environment", Name: "beta"},
		{ID: "proj-3", Label: "gamma  3 environments", Name: "gamma"},
	})}
	return m
}

func TestTypingNarrowsPickerItems(t *testing.T) {
	m := pickerModel()
	handled, _ := m.handleTextInput(keyRunes("b"))
	if !handled {
		t.Fatal("expected rune input to be handled")
	}
	lvl := m.stack[0]
	if lvl.Filter != "b" {
		t.Fatalf("expected filter %q, got %q", "b", lvl.Filter)
	}
	if len(lvl.Items) != 1 || lvl.Items[0].Name != "beta" {
		t.Fatalf("expected only beta to match, got %#v", lvl.Items)
	}
	if lvl.Cursor != 0 {
		t.Fatalf("expected cursor on the match, got %d", lvl.Cursor)
	}
}

func TestBackspaceRestoresItemsAndCursor(t *testing.T) {
	m := pickerModel()
	lvl := m.stack[0]
	startCursor := lvl.Cursor

	m.handleTextInput(keyRunes("b"))
	handled, _ := m.handleTextInput(tea.KeyMsg{Type: tea.KeyBackspace})
	if !handled {
		t.Fatal("expected backspace to be handled")
	}
	if lvl.Filter != "" {
		t.Fatalf("expected filter cleared, got %q", lvl.Filter)
	}
	if len(lvl.Items) != 3 {
		t.Fatalf("expected full item set restored, got %d", len(lvl.Items))
	}
	if lvl.Cursor != startCursor {
		t.Fatalf("expected cursor restored to %d, got %d", startCursor, lvl.Cursor)
	}
}

func TestBackspaceOnEmptyFilterIsUnhandled(t *testing.T) {
	m := pickerModel()
	handled, _ := m.handleTextInput(tea.KeyMsg{Type: tea.KeyBackspace})
	if handled {
		t.Fatal("expected backspace on an empty filter to fall through")
	}
}

func TestCtrlUClearsFilter(t *testing.T) {
	m := pickerModel()
	m.handleTextInput(keyRunes("g"))
	m.handleTextInput(keyRunes("a"))

	handled, _ := m.handleTextInput(tea.KeyMsg{Type: tea.KeyCtrlU})
	if !handled {
		t.Fatal("expected ctrl+u to be handled")
	}
	lvl := m.stack[0]
	if lvl.Filter != "" {
		t.Fatalf("expected filter cleared, got %q", lvl.Filter)
	}
	if len(lvl.Items) != 3 {
		t.Fatalf("expected full item set restored, got %d", len(lvl.Items))
	}
}

func TestCtrlWDeletesPrecedingWord(t *testing.T) {
	m := pickerModel()
	lvl := m.stack[0]
	lvl.SetFilter("acme beta", len([]rune("acme beta")))

	handled, _ := m.handleTextInput(tea.KeyMsg{Type: tea.KeyCtrlW})
	if !handled {
		t.Fatal("expected ctrl+w to be handled")
	}
	if lvl.Filter != "acme " {
		t.Fatalf("expected the last word deleted, got %q", lvl.Filter)
	}
}

func TestFilterCursorMovement(t *testing.T) {
	m := pickerModel()
	lvl := m.stack[0]
	lvl.SetFilter("abc", 3)

	if handled, _ := m.handleTextInput(tea.KeyMsg{Type: tea.KeyCtrlA}); !handled {
		t.Fatal("expected ctrl+a to be handled")
	}
	if lvl.FilterCursorPos() != 0 {
		t.Fatalf("expected cursor at start, got %d", lvl.FilterCursorPos())
	}

	if handled, _ := m.handleTextInput(tea.KeyMsg{Type: tea.KeyRight}); !handled {
		t.Fatal("expected right to be handled")
	}
	if lvl.FilterCursorPos() != 1 {
		t.Fatalf("expected cursor advanced, got %d", lvl.FilterCursorPos())
	}

	if handled, _ := m.handleTextInput(tea.KeyMsg{Type: tea.KeyCtrlE}); !handled {
		t.Fatal("expected ctrl+e to be handled")
	}
	if lvl.FilterCursorPos() != 3 {
		t.Fatalf("expected cursor at end, got %d", lvl.FilterCursorPos())
	}

	if handled, _ := m.handleTextInput(tea.KeyMsg{Type: tea.KeyLeft}); !handled {
		t.Fatal("expected left to be handled")
	}
	if lvl.FilterCursorPos() != 2 {
		t.Fatalf("expected cursor stepped back, got %d", lvl.FilterCursorPos())
	}
}

func TestSpaceInsertsIntoFilter(t *testing.T) {
	m := pickerModel()
	m.handleTextInput(keyRunes("a"))
	handled, _ := m.handleTextInput(tea.KeyMsg{Type: tea.KeySpace})
	if !handled {
		t.Fatal("expected space to be handled")
	}
	if got := m.stack[0].Filter; got != "a " {
		t.Fatalf("expected space appended, got %q", got)
	}
}

func TestAltRunesFallThrough(t *testing.T) {
	m := pickerModel()
	handled, _ := m.handleTextInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true})
	if handled {
		t.Fatal("expected alt-modified runes to fall through")
	}
	if got := m.stack[0].Filter; got != "" {
		t.Fatalf("expected filter untouched, got %q", got)
	}
}

func TestFilterPromptShowsPlaceholderAndQuery(t *testing.T) {
	m := pickerModel()
	prompt := m.filterPrompt()
	if !strings.Contains(prompt, "type to search") {
		t.Fatalf("expected the placeholder, got %q", prompt)
	}

	m.handleTextInput(keyRunes("b"))
	prompt = m.filterPrompt()
	if !strings.Contains(prompt, "b") {
		t.Fatalf("expected the query in the prompt, got %q", prompt)
	}
}
