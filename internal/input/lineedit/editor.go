// Package lineedit implements the single-line query editor used by the
// picker. The query holds printable ASCII only, so the cursor is both a
// character and a byte offset.
package lineedit

// Editor is a single-line text buffer with a cursor.
//
// Every operation clamps at the buffer boundaries instead of failing, so
// 0 <= Cursor() <= Len() holds after any sequence of calls.
type Editor struct {
	text   []byte
	cursor int
}

// New creates an empty editor.
func New() *Editor {
	return &Editor{}
}

// Query returns the current text.
func (e *Editor) Query() string {
	return string(e.text)
}

// Cursor returns the cursor offset.
func (e *Editor) Cursor() int {
	return e.cursor
}

// Len returns the number of characters in the query.
func (e *Editor) Len() int {
	return len(e.text)
}

// IsPrintable reports whether r can be stored in the query.
func IsPrintable(r rune) bool {
	return r >= ' ' && r <= '~'
}

// Insert inserts r at the cursor and advances the cursor. Characters outside
// the printable ASCII range are ignored.
func (e *Editor) Insert(r rune) {
	if !IsPrintable(r) {
		return
	}
	e.text = append(e.text, 0)
	copy(e.text[e.cursor+1:], e.text[e.cursor:])
	e.text[e.cursor] = byte(r)
	e.cursor++
}

// InsertString inserts each printable character of s.
func (e *Editor) InsertString(s string) {
	for _, r := range s {
		e.Insert(r)
	}
}

// DeleteBackward removes the character left of the cursor.
func (e *Editor) DeleteBackward() {
	if e.cursor == 0 {
		return
	}
	e.removeRange(e.cursor-1, e.cursor)
}

// DeleteWordBackward removes characters left of the cursor up to and
// including the nearest space, then any spaces immediately before that.
func (e *Editor) DeleteWordBackward() {
	start := e.cursor
	for start > 0 {
		start--
		if e.text[start] == ' ' {
			break
		}
	}
	for start > 0 && e.text[start-1] == ' ' {
		start--
	}
	e.removeRange(start, e.cursor)
}

// DeleteToStart removes everything left of the cursor.
func (e *Editor) DeleteToStart() {
	e.removeRange(0, e.cursor)
}

// DeleteToEnd removes everything at and right of the cursor.
func (e *Editor) DeleteToEnd() {
	e.text = e.text[:e.cursor]
}

// Clear empties the query.
func (e *Editor) Clear() {
	e.text = e.text[:0]
	e.cursor = 0
}

// MoveToStart moves the cursor to offset 0.
func (e *Editor) MoveToStart() {
	e.cursor = 0
}

// MoveToEnd moves the cursor past the last character.
func (e *Editor) MoveToEnd() {
	e.cursor = len(e.text)
}

// MoveLeft moves the cursor one character left.
func (e *Editor) MoveLeft() {
	if e.cursor > 0 {
		e.cursor--
	}
}

// MoveRight moves the cursor one character right.
func (e *Editor) MoveRight() {
	if e.cursor < len(e.text) {
		e.cursor++
	}
}

// removeRange deletes text[from:to], where to is the cursor, and moves the
// cursor to from.
func (e *Editor) removeRange(from, to int) {
	if from >= to {
		return
	}
	e.text = append(e.text[:from], e.text[to:]...)
	e.cursor = from
}
