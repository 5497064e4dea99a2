package ast

import "strings"

// Parm is one parameter in a singly linked parameter list. Template
// parameters, template arguments and function parameters all use this
// shape; which fields are populated depends on the role.
type Parm struct {
	Name    string
	Type    *Str
	Value   *Str
	Default bool // expanded from a primary template default
	Next    *Parm
}

// NewParm builds a parameter with an encoded type and optional name.
func NewParm(typ, name string) *Parm {
	return &Parm{Name: name, Type: NewStr(typ)}
}

// Copy duplicates the list starting at p.
func (p *Parm) Copy() *Parm {
	if p == nil {
		return nil
	}
	head := &Parm{
		Name:    p.Name,
		Type:    p.Type.Copy(),
		Value:   p.Value.Copy(),
		Default: p.Default,
	}
	head.Next = p.Next.Copy()
	return head
}

// Len counts the parameters in the list.
func (p *Parm) Len() int {
	n := 0
	for q := p; q != nil; q = q.Next {
		n++
	}
	return n
}

// NumRequired counts leading parameters without a default value.
func (p *Parm) NumRequired() int {
	n := 0
	for q := p; q != nil; q = q.Next {
		if !q.Value.Empty() || q.Default {
			break
		}
		n++
	}
	return n
}

// Nth returns the parameter at 0-based index i, or nil past the end.
func (p *Parm) Nth(i int) *Parm {
	q := p
	for ; q != nil && i > 0; i-- {
		q = q.Next
	}
	return q
}

// Last returns the final parameter of the list.
func (p *Parm) Last() *Parm {
	if p == nil {
		return nil
	}
	q := p
	for q.Next != nil {
		q = q.Next
	}
	return q
}

// Join appends tail to the list and returns the head.
func (p *Parm) Join(tail *Parm) *Parm {
	if p == nil {
		return tail
	}
	p.Last().Next = tail
	return p
}

// ReplaceLast substitutes the final parameter of the list with repl (a list)
// and returns the new head.
func (p *Parm) ReplaceLast(repl *Parm) *Parm {
	if p == nil {
		return repl
	}
	if p.Next == nil {
		return repl
	}
	q := p
	for q.Next.Next != nil {
		q = q.Next
	}
	q.Next = repl
	return p
}

// ArgString renders the list the way template arguments are encoded:
// value-or-type, comma separated.
func (p *Parm) ArgString() string {
	var b strings.Builder
	for q := p; q != nil; q = q.Next {
		if q != p {
			b.WriteByte(',')
		}
		if !q.Value.Empty() {
			b.WriteString(q.Value.String())
		} else {
			b.WriteString(q.Type.String())
		}
	}
	return b.String()
}
