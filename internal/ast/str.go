package ast

import "strings"

// Str is an interior-mutable string cell. Attributes that participate in
// deferred substitution are stored as *Str so that patch lists built during
// a tree walk keep pointing at the current value when the substitution
// engine finally runs.
type Str struct {
	s string
}

// NewStr allocates a cell holding s.
func NewStr(s string) *Str {
	return &Str{s: s}
}

// String returns the current value. Safe on a nil cell.
func (c *Str) String() string {
	if c == nil {
		return ""
	}
	return c.s
}

// Set overwrites the value.
func (c *Str) Set(v string) {
	if c == nil {
		return
	}
	c.s = v
}

// Append concatenates v onto the value.
func (c *Str) Append(v string) {
	if c == nil {
		return
	}
	c.s += v
}

// Empty reports whether the cell is nil or holds "".
func (c *Str) Empty() bool {
	return c == nil || c.s == ""
}

// Contains reports whether the value contains sub.
func (c *Str) Contains(sub string) bool {
	return c != nil && strings.Contains(c.s, sub)
}

// Copy returns a fresh cell with the same value, or nil for a nil cell.
func (c *Str) Copy() *Str {
	if c == nil {
		return nil
	}
	return &Str{s: c.s}
}
