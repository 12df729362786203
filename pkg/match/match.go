/*
Package match is the core engine: it compiles class-label patterns and scans
the lexicon for words satisfying them.

A pattern string is a whitespace-separated sequence of class labels, one per
letter position, like "N-T A-F N-T G-M N-T". Compiling resolves each label to
its letter set; matching then checks one length bucket of the lexicon, letter
by letter. Matching performs no ranking: results come back in the order the
words were loaded.
*/
package match

import (
	"strings"

	"github.com/graydel/classmatch/pkg/classes"
	"github.com/graydel/classmatch/pkg/lexicon"
)

// Pattern is a compiled pattern: one letter set per word position.
type Pattern []classes.Set

// Matches reports whether word satisfies the pattern at every position. Words
// of a different length never match.
func (p Pattern) Matches(word string) bool {
	i := 0
	for _, r := range strings.ToUpper(word) {
		if i >= len(p) || !p[i].Contains(r) {
			return false
		}
		i++
	}
	return i == len(p)
}

// Engine ties a class table to a lexicon and answers pattern queries. It is
// stateless beyond its two collaborators and safe for concurrent use.
type Engine struct {
	table *classes.Table
	lex   *lexicon.Lexicon
}

// NewEngine returns an engine over the given table and lexicon.
func NewEngine(table *classes.Table, lex *lexicon.Lexicon) *Engine {
	return &Engine{table: table, lex: lex}
}

// ParsePattern compiles a pattern string into letter sets. Tokens are split on
// whitespace and uppercased before resolution; an unresolvable token fails
// with classes.ErrUnknownClass naming it. The empty string compiles to an
// empty pattern.
func (e *Engine) ParsePattern(patternStr string) (Pattern, error) {
	tokens := strings.Fields(patternStr)
	pattern := make(Pattern, 0, len(tokens))
	for _, token := range tokens {
		set, err := e.table.Resolve(token)
		if err != nil {
			return nil, err
		}
		pattern = append(pattern, set)
	}
	return pattern, nil
}

// FindMatches returns every lexicon word of the pattern's exact length whose
// letter at each position lies in that position's class. Result order is the
// bucket's load order; duplicates in the source stay duplicated. The cost is
// one pass over a single length bucket.
func (e *Engine) FindMatches(patternStr string) ([]string, error) {
	pattern, err := e.ParsePattern(patternStr)
	if err != nil {
		return nil, err
	}

	var matches []string
	for _, word := range e.lex.WordsOfLength(len(pattern)) {
		if pattern.Matches(word) {
			matches = append(matches, word)
		}
	}
	return matches, nil
}

// PatternOf returns the pattern string the given word satisfies, per the
// engine's class table.
func (e *Engine) PatternOf(word string) (string, error) {
	return e.table.PatternOf(word)
}
