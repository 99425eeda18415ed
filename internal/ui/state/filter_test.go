package state

import (
	"reflect"
	"testing"

	"github.com/stackmill/env-dashboard/internal/picker"
)

func TestSetFilterTracksCursorAndRestoresPosition(t *testing.T) {
	level := newTestLevel("one", "two", "three")
	level.Cursor = 2
	level.SetFilter("two", len("two"))

	if level.Filter != "two" {
		t.Fatalf("expected filter persisted, got %q", level.Filter)
	}
	if level.FilterCursor != len("two") {
		t.Fatalf("expected cursor at end, got %d", level.FilterCursor)
	}
	if level.Cursor != 0 {
		t.Fatalf("expected filtered cursor at 0, got %d", level.Cursor)
	}
	if len(level.Items) != 1 || level.Items[0].ID != "two" {
		t.Fatalf("expected filtered items to contain only 'two', got %#v", level.Items)
	}

	level.SetFilter("", 0)
	if level.Cursor != 2 {
		t.Fatalf("expected cursor restored to 2, got %d", level.Cursor)
	}
	if level.LastCursor != -1 {
		t.Fatalf("expected last cursor reset, got %d", level.LastCursor)
	}
}

func TestInsertAndDeleteFilterText(t *testing.T) {
	level := newTestLevel("alpha")

	if !level.InsertFilterText("ab") {
		t.Fatal("expected insert to succeed")
	}
	if level.Filter != "ab" || level.FilterCursor != 2 {
		t.Fatalf("unexpected filter state %q/%d", level.Filter, level.FilterCursor)
	}

	level.FilterCursor = 1
	if !level.InsertFilterText("z") {
		t.Fatal("expected insert in middle to succeed")
	}
	if level.Filter != "azb" {
		t.Fatalf("expected insert into middle, got %q", level.Filter)
	}

	if !level.DeleteFilterRuneBackward() {
		t.Fatal("expected rune deletion to succeed")
	}
	if level.Filter != "ab" || level.FilterCursor != 1 {
		t.Fatalf("unexpected filter state after delete %q/%d", level.Filter, level.FilterCursor)
	}

	level.SetFilter("abc def", len("abc def"))
	if !level.DeleteFilterWordBackward() {
		t.Fatal("expected word deletion to succeed")
	}
	if level.Filter != "abc " {
		t.Fatalf("expected trailing word removed, got %q", level.Filter)
	}

	level.SetFilter("abc", 0)
	if level.DeleteFilterRuneBackward() {
		t.Fatal("expected delete at start to fail")
	}
}

func TestFilterCursorNavigation(t *testing.T) {
	level := newTestLevel("one", "two")
	level.SetFilter("one two", len("one two"))

	if !level.MoveFilterCursorWordBackward() {
		t.Fatal("expected word backward movement")
	}
	if level.FilterCursor != 4 {
		t.Fatalf("expected cursor at 4, got %d", level.FilterCursor)
	}
	if !level.MoveFilterCursorWordForward() {
		t.Fatal("expected word forward movement")
	}
	if level.FilterCursor != len("one two") {
		t.Fatalf("expected cursor restored to end, got %d", level.FilterCursor)
	}

	if !level.MoveFilterCursorRuneBackward() {
		t.Fatal("expected rune backward movement")
	}
	if !level.MoveFilterCursorRuneForward() {
		t.Fatal("expected rune forward movement")
	}
	if !level.MoveFilterCursorStart() {
		t.Fatal("expected move to start")
	}
	if level.FilterCursor != 0 {
		t.Fatalf("expected cursor at 0, got %d", level.FilterCursor)
	}
	if !level.MoveFilterCursorEnd() {
		t.Fatal("expected move back to end")
	}
}

func TestFilterItemsMatchesNameAndClones(t *testing.T) {
	items := []picker.Item{
		{ID: "env-1", Label: "prod-1    Running", Name: "prod-1"},
		{ID: "env-2", Label: "staging   Stopped", Name: "staging"},
	}
	filtered := FilterItems(items, "stag")
	if len(filtered) != 1 || filtered[0].Name != "staging" {
		t.Fatalf("unexpected filtered results %#v", filtered)
	}

	clone := CloneItems(items)
	if &clone[0] == &items[0] {
		t.Fatal("expected clone to allocate new backing array")
	}
	filtered[0].Label = "changed"
	if items[1].Label != "staging   Stopped" {
		t.Fatal("expected original slice to remain unchanged")
	}

	if len(FilterItems(items, "nomatch")) != 0 {
		t.Fatal("expected empty results when nothing matches")
	}
}

func TestBestMatchIndexPrefersNames(t *testing.T) {
	items := []picker.Item{
		{ID: "env-1", Label: "prod-1    Running", Name: "prod-1"},
		{ID: "env-2", Label: "prod-2    Stopped", Name: "prod-2"},
		{ID: "env-3", Label: "staging   Running", Name: "staging"},
	}

	if idx := BestMatchIndex(items, "prod-2"); idx != 1 {
		t.Fatalf("expected exact name match index 1, got %d", idx)
	}
	if idx := BestMatchIndex(items, "env-3"); idx != 2 {
		t.Fatalf("expected ID match index 2, got %d", idx)
	}
	if idx := BestMatchIndex(items, "stag"); idx != 2 {
		t.Fatalf("expected name prefix match index 2, got %d", idx)
	}
	if idx := BestMatchIndex(items, "zzz"); idx != 0 {
		t.Fatalf("expected fallback index 0, got %d", idx)
	}
	if idx := BestMatchIndex(nil, "anything"); idx != -1 {
		t.Fatalf("expected -1 for empty slice, got %d", idx)
	}
}

func TestSetFilterSelectsFuzzyMatch(t *testing.T) {
	items := []picker.Item{
		{ID: "env-1", Label: "Alpha", Name: "Alpha"},
		{ID: "env-2", Label: "Beta", Name: "Beta"},
	}
	level := NewLevel("id", "title", items)
	level.SetFilter("alp", 3)
	if level.Cursor != 0 {
		t.Fatalf("expected fuzzy match to select first item, got %d", level.Cursor)
	}
	want := []picker.Item{{ID: "env-1", Label: "Alpha", Name: "Alpha"}}
	if !reflect.DeepEqual(level.Items, want) {
		t.Fatalf("expected filtered items to contain Alpha, got %#v", level.Items)
	}
}
