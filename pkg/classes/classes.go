/*
Package classes defines the letter-class model for pattern matching.

A class is a named set of uppercase letters, like "A-F" for {A..F}. A table is an
ordered collection of classes; order matters because the inverse mapping picks the
first class containing a letter. Tables are immutable once built and safe to share
across goroutines.

Classes must be pairwise disjoint. The original four-class split of A-Z satisfies
this trivially, but tables are built from configuration and a table where two
classes claim the same letter would make the word-to-pattern mapping ambiguous,
so New rejects it outright. Full coverage of A-Z is not required: letters outside
every class simply make PatternOf fail for words containing them.
*/
package classes

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownClass is returned when a label does not resolve to any class.
	ErrUnknownClass = errors.New("unknown class label")
	// ErrUnmappedLetter is returned when a letter belongs to no class.
	ErrUnmappedLetter = errors.New("letter not covered by any class")
	// ErrInvalidTable is returned by New for empty, overlapping or non A-Z definitions.
	ErrInvalidTable = errors.New("invalid class table")
)

// Set holds a group of uppercase ASCII letters as a bitmask over 'A'..'Z'.
type Set uint32

// Contains reports whether the uppercase letter r is in the set.
func (s Set) Contains(r rune) bool {
	if r < 'A' || r > 'Z' {
		return false
	}
	return s&(1<<uint(r-'A')) != 0
}

// Len returns the number of letters in the set.
func (s Set) Len() int {
	n := 0
	for b := s; b != 0; b &= b - 1 {
		n++
	}
	return n
}

// Letters renders the set as a sorted string of its letters, e.g. "ABCDEF".
func (s Set) Letters() string {
	var sb strings.Builder
	for r := 'A'; r <= 'Z'; r++ {
		if s.Contains(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Definition is one class as it appears in configuration: a label and the
// letters it contains, e.g. {Label: "A-F", Letters: "ABCDEF"}.
type Definition struct {
	Label   string
	Letters string
}

// Class is a resolved definition inside a table.
type Class struct {
	Label   string
	Letters Set
}

// Table is an ordered, immutable set of letter classes.
type Table struct {
	classes []Class
	byLabel map[string]Set
}

// New builds a table from ordered definitions. Labels are trimmed and
// uppercased. It fails if any class is empty, contains a character outside
// A-Z, duplicates a label, or shares a letter with an earlier class.
func New(defs []Definition) (*Table, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: no classes defined", ErrInvalidTable)
	}

	t := &Table{
		classes: make([]Class, 0, len(defs)),
		byLabel: make(map[string]Set, len(defs)),
	}
	var claimed Set

	for _, def := range defs {
		label := strings.ToUpper(strings.TrimSpace(def.Label))
		if label == "" {
			return nil, fmt.Errorf("%w: empty label", ErrInvalidTable)
		}
		if _, dup := t.byLabel[label]; dup {
			return nil, fmt.Errorf("%w: duplicate label %q", ErrInvalidTable, label)
		}

		var set Set
		for _, r := range strings.ToUpper(def.Letters) {
			if r < 'A' || r > 'Z' {
				return nil, fmt.Errorf("%w: class %q contains %q, want A-Z only", ErrInvalidTable, label, r)
			}
			set |= 1 << uint(r-'A')
		}
		if set == 0 {
			return nil, fmt.Errorf("%w: class %q has no letters", ErrInvalidTable, label)
		}
		if claimed&set != 0 {
			return nil, fmt.Errorf("%w: class %q overlaps an earlier class", ErrInvalidTable, label)
		}
		claimed |= set

		t.classes = append(t.classes, Class{Label: label, Letters: set})
		t.byLabel[label] = set
	}
	return t, nil
}

// Default returns the standard table splitting A-Z into four contiguous classes.
func Default() *Table {
	t, err := New([]Definition{
		{Label: "A-F", Letters: "ABCDEF"},
		{Label: "G-M", Letters: "GHIJKLM"},
		{Label: "N-T", Letters: "NOPQRST"},
		{Label: "U-Z", Letters: "UVWXYZ"},
	})
	if err != nil {
		// The builtin definitions are constant and valid.
		panic(err)
	}
	return t
}

// Resolve returns the letter set for label, after trimming and uppercasing it.
func (t *Table) Resolve(label string) (Set, error) {
	set, ok := t.byLabel[strings.ToUpper(strings.TrimSpace(label))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownClass, label)
	}
	return set, nil
}

// Classes returns the classes in table order. The slice is shared; callers
// must not modify it.
func (t *Table) Classes() []Class {
	return t.classes
}

// Labels returns the class labels in table order.
func (t *Table) Labels() []string {
	labels := make([]string, len(t.classes))
	for i, c := range t.classes {
		labels[i] = c.Label
	}
	return labels
}

// Len returns the number of classes in the table.
func (t *Table) Len() int {
	return len(t.classes)
}

// PatternOf maps a word to the space-joined sequence of class labels it
// satisfies, taking for each letter the first class in table order that
// contains it. The empty word maps to the empty string. Letters outside
// every class fail with ErrUnmappedLetter.
func (t *Table) PatternOf(word string) (string, error) {
	if word == "" {
		return "", nil
	}

	labels := make([]string, 0, len(word))
	for _, r := range strings.ToUpper(word) {
		label, ok := t.labelOf(r)
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrUnmappedLetter, r)
		}
		labels = append(labels, label)
	}
	return strings.Join(labels, " "), nil
}

// labelOf finds the first class containing r, in table order.
func (t *Table) labelOf(r rune) (string, bool) {
	for _, c := range t.classes {
		if c.Letters.Contains(r) {
			return c.Label, true
		}
	}
	return "", false
}
