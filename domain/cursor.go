package domain

import "time"

// Cursor is a position in a newest-first listing ordered by (Date, ID)
// descending. The zero Cursor starts from the newest item.
type Cursor struct {
	Date time.Time
	ID   string
}

func (c Cursor) IsZero() bool {
	return c.Date.IsZero() && c.ID == ""
}

// Admits reports whether an item at (date, id) belongs after the cursor.
// Items sharing the cursor's date are split by id so none is skipped.
func (c Cursor) Admits(date time.Time, id string) bool {
	if c.IsZero() {
		return true
	}
	return date.Before(c.Date) || (date.Equal(c.Date) && id < c.ID)
}

// NewestFirst is the listing order: later dates first, ties by id descending.
func NewestFirst(aDate time.Time, aID string, bDate time.Time, bID string) bool {
	if !aDate.Equal(bDate) {
		return aDate.After(bDate)
	}
	return aID > bID
}
