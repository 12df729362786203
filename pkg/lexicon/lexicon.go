// Package lexicon holds the word list, bucketed by exact length so a pattern
// query only ever scans words that could possibly match. A patricia trie over
// the same words backs prefix listing for callers that have confirmed the
// first letters of a word.
package lexicon

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// ErrSourceUnavailable is returned by Load when the word source cannot be read.
var ErrSourceUnavailable = errors.New("word source unavailable")

var errStopVisit = errors.New("stop visit")

// Stats describes the currently loaded word list.
type Stats struct {
	TotalWords int
	Buckets    int
	MinLength  int
	MaxLength  int
}

// Lexicon is a length-bucketed word store. Load replaces the whole content in
// one swap, so readers see either the previous or the new word list, never a
// partial rebuild. The zero value is not usable; call New.
type Lexicon struct {
	mu      sync.RWMutex
	buckets map[int][]string
	trie    *patricia.Trie
	total   int

	loadMu sync.Mutex
}

// New returns an empty lexicon.
func New() *Lexicon {
	return &Lexicon{
		buckets: make(map[int][]string),
		trie:    patricia.NewTrie(),
	}
}

// Load reads a one-word-per-line UTF-8 file into the lexicon, replacing any
// prior content. Words are trimmed and uppercased; blank lines are skipped;
// with minLength > 0, shorter words are dropped. Bucket order is file order
// and duplicates are kept as-is. On any read error the lexicon keeps its
// previous content and Load returns an error wrapping ErrSourceUnavailable.
func (lx *Lexicon) Load(path string, minLength int) error {
	lx.loadMu.Lock()
	defer lx.loadMu.Unlock()

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}
	defer file.Close()

	buckets := make(map[int][]string)
	trie := patricia.NewTrie()
	total := 0

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.ToUpper(strings.TrimSpace(scanner.Text()))
		if word == "" {
			continue
		}
		n := len([]rune(word))
		if minLength > 0 && n < minLength {
			continue
		}
		buckets[n] = append(buckets[n], word)
		trie.Insert(patricia.Prefix(word), n)
		total++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}

	lx.mu.Lock()
	lx.buckets = buckets
	lx.trie = trie
	lx.total = total
	lx.mu.Unlock()

	log.Debugf("Loaded %d words into %d buckets from %s", total, len(buckets), path)
	return nil
}

// WordsOfLength returns the bucket for length n, or nil if none is loaded.
// The returned slice is a live snapshot; callers must not modify it.
func (lx *Lexicon) WordsOfLength(n int) []string {
	lx.mu.RLock()
	defer lx.mu.RUnlock()
	return lx.buckets[n]
}

// WordsWithPrefix lists words starting with the given prefix in lexicographic
// order, at most limit of them (limit <= 0 means no cap). The prefix is
// uppercased before lookup; duplicates in the source collapse to one entry.
func (lx *Lexicon) WordsWithPrefix(prefix string, limit int) []string {
	lx.mu.RLock()
	trie := lx.trie
	lx.mu.RUnlock()

	var words []string
	upper := strings.ToUpper(strings.TrimSpace(prefix))
	err := trie.VisitSubtree(patricia.Prefix(upper), func(p patricia.Prefix, _ patricia.Item) error {
		words = append(words, string(p))
		if limit > 0 && len(words) >= limit {
			return errStopVisit
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopVisit) {
		log.Errorf("Visiting prefix subtree: %v", err)
		return nil
	}
	return words
}

// Len returns the number of loaded words, duplicates included.
func (lx *Lexicon) Len() int {
	lx.mu.RLock()
	defer lx.mu.RUnlock()
	return lx.total
}

// Stats returns counts over the current buckets.
func (lx *Lexicon) Stats() Stats {
	lx.mu.RLock()
	defer lx.mu.RUnlock()

	st := Stats{TotalWords: lx.total, Buckets: len(lx.buckets)}
	for n := range lx.buckets {
		if st.MinLength == 0 || n < st.MinLength {
			st.MinLength = n
		}
		if n > st.MaxLength {
			st.MaxLength = n
		}
	}
	return st
}
