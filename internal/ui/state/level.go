package state

import "github.com/stackmill/env-dashboard/internal/picker"

// Level holds one picker screen: its items, the fuzzy filter, and the
// cursor/viewport pair that keeps the selection on screen.
type Level struct {
	ID             string
	Title          string
	Items          []picker.Item
	Full           []picker.Item
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

func NewLevel(id, title string, items []picker.Item) *Level {
	l := &Level{
		ID:         id,
		Title:      title,
		Cursor:     -1,
		LastCursor: -1,
	}
	l.UpdateItems(items)
	return l
}

// IndexOf returns the index of the item with the given id, or -1.
func (l *Level) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// UpdateItems replaces the full item set, re-applies the filter, and keeps
// the viewport offset when it still points at a valid row.
func (l *Level) UpdateItems(items []picker.Item) {
	prevOffset := l.ViewportOffset
	l.Full = CloneItems(items)
	l.applyFilter()
	if len(l.Items) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevOffset < 0 {
		prevOffset = 0
	}
	if prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}

// CloneItems produces a shallow copy of the provided picker items.
func CloneItems(items []picker.Item) []picker.Item {
	dup := make([]picker.Item, len(items))
	copy(dup, items)
	return dup
}
