// Package billing computes GST line items and document totals shared by
// every document type. All functions are pure.
package billing

import "github.com/google/uuid"

// Document is an immutable snapshot of a document being edited: a header and
// its ordered lines. Every edit returns a new snapshot and leaves the receiver
// untouched, so a snapshot can be shared freely between goroutines.
type Document struct {
	Header Header     `json:"header"`
	Items  []LineItem `json:"items"`
}

// NewDocument returns the snapshot a creation form starts from: the given
// header and a single blank line.
func NewDocument(header Header) Document {
	return Document{Header: header, Items: []LineItem{NewLineItem()}}
}

// WithHeader replaces the header.
func (d Document) WithHeader(header Header) Document {
	return Document{Header: header, Items: d.cloneItems()}
}

// AddLine appends item, assigning an identity if it has none, and recomputes it.
func (d Document) AddLine(item LineItem) Document {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	items := append(d.cloneItems(), Recompute(item))
	return Document{Header: d.Header, Items: items}
}

// UpdateLine applies edit to a copy of the line identified by id and
// recomputes it. The line keeps its identity even if edit changes ID. The
// second return value is false when no line has that id.
func (d Document) UpdateLine(id uuid.UUID, edit func(*LineItem)) (Document, bool) {
	items := d.cloneItems()
	for i := range items {
		if items[i].ID != id {
			continue
		}
		line := items[i]
		edit(&line)
		line.ID = id
		items[i] = Recompute(line)
		return Document{Header: d.Header, Items: items}, true
	}
	return d, false
}

// RemoveLine drops the line identified by id, if present.
func (d Document) RemoveLine(id uuid.UUID) Document {
	items := make([]LineItem, 0, len(d.Items))
	for i := range d.Items {
		if d.Items[i].ID != id {
			items = append(items, d.Items[i])
		}
	}
	return Document{Header: d.Header, Items: items}
}

// Line returns the line identified by id.
func (d Document) Line(id uuid.UUID) (LineItem, bool) {
	for i := range d.Items {
		if d.Items[i].ID == id {
			return d.Items[i], true
		}
	}
	return LineItem{}, false
}

// Recompute returns a snapshot with every line's derived amounts refreshed.
func (d Document) Recompute() Document {
	items := make([]LineItem, len(d.Items))
	for i := range d.Items {
		items[i] = Recompute(d.Items[i])
	}
	return Document{Header: d.Header, Items: items}
}

// Totals computes the document totals for this snapshot.
func (d Document) Totals() Totals {
	return ComputeTotals(d.Items, d.Header)
}

func (d Document) cloneItems() []LineItem {
	items := make([]LineItem, len(d.Items))
	copy(items, d.Items)
	return items
}
