package classes

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultTable(t *testing.T) {
	table := Default()

	if table.Len() != 4 {
		t.Fatalf("expected 4 classes, got %d", table.Len())
	}

	wantLabels := []string{"A-F", "G-M", "N-T", "U-Z"}
	for i, label := range table.Labels() {
		if label != wantLabels[i] {
			t.Errorf("label %d: got %q, want %q", i, label, wantLabels[i])
		}
	}

	// every letter A-Z lands in exactly one class
	for r := 'A'; r <= 'Z'; r++ {
		count := 0
		for _, c := range table.Classes() {
			if c.Letters.Contains(r) {
				count++
			}
		}
		if count != 1 {
			t.Errorf("letter %q in %d classes, want 1", r, count)
		}
	}
}

func TestResolve(t *testing.T) {
	table := Default()

	cases := []struct {
		label   string
		letters string
		wantErr bool
	}{
		{"A-F", "ABCDEF", false},
		{"a-f", "ABCDEF", false},
		{"  N-T ", "NOPQRST", false},
		{"U-Z", "UVWXYZ", false},
		{"ZZ", "", true},
		{"", "", true},
		{"A-G", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.label, func(t *testing.T) {
			set, err := table.Resolve(tc.label)
			if tc.wantErr {
				if !errors.Is(err, ErrUnknownClass) {
					t.Fatalf("got err %v, want ErrUnknownClass", err)
				}
				if err != nil && tc.label != "" && !strings.Contains(err.Error(), tc.label) {
					t.Errorf("error %q does not name the offending label", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := set.Letters(); got != tc.letters {
				t.Errorf("got letters %q, want %q", got, tc.letters)
			}
		})
	}
}

func TestNewValidation(t *testing.T) {
	cases := []struct {
		name string
		defs []Definition
		ok   bool
	}{
		{"empty table", nil, false},
		{"empty label", []Definition{{Label: " ", Letters: "ABC"}}, false},
		{"empty letters", []Definition{{Label: "X", Letters: ""}}, false},
		{"outside alphabet", []Definition{{Label: "X", Letters: "AB1"}}, false},
		{"duplicate label", []Definition{{Label: "X", Letters: "AB"}, {Label: "x", Letters: "CD"}}, false},
		{"overlap", []Definition{{Label: "X", Letters: "ABC"}, {Label: "Y", Letters: "CDE"}}, false},
		{"singleton", []Definition{{Label: "Q", Letters: "Q"}}, true},
		{"partial coverage", []Definition{{Label: "VOWELS", Letters: "AEIOU"}}, true},
		{"lowercase letters", []Definition{{Label: "ab", Letters: "ab"}}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.defs)
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidTable) {
				t.Fatalf("got err %v, want ErrInvalidTable", err)
			}
		})
	}
}

func TestPatternOf(t *testing.T) {
	table := Default()

	cases := []struct {
		word string
		want string
	}{
		{"PARIS", "N-T A-F N-T G-M N-T"},
		{"PIZZA", "N-T G-M U-Z U-Z A-F"},
		{"HELLO", "G-M A-F G-M G-M N-T"},
		{"paris", "N-T A-F N-T G-M N-T"},
		{"", ""},
	}

	for _, tc := range cases {
		t.Run(tc.word, func(t *testing.T) {
			got, err := table.PatternOf(tc.word)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("PatternOf(%q) = %q, want %q", tc.word, got, tc.want)
			}
		})
	}
}

func TestPatternOfUnmappedLetter(t *testing.T) {
	table := Default()
	for _, word := range []string{"123", "HELLO!", "CAFÉ"} {
		if _, err := table.PatternOf(word); !errors.Is(err, ErrUnmappedLetter) {
			t.Errorf("PatternOf(%q): got err %v, want ErrUnmappedLetter", word, err)
		}
	}

	// a table with gaps fails on uncovered letters
	partial, err := New([]Definition{{Label: "VOWELS", Letters: "AEIOU"}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := partial.PatternOf("CAB"); !errors.Is(err, ErrUnmappedLetter) {
		t.Errorf("got err %v, want ErrUnmappedLetter", err)
	}
	if got, err := partial.PatternOf("EAU"); err != nil || got != "VOWELS VOWELS VOWELS" {
		t.Errorf("got %q, %v", got, err)
	}
}

func TestPatternOfTableOrder(t *testing.T) {
	// first matching class wins; with disjoint classes the winner is the
	// unique class, but the label still reflects definition order
	table, err := New([]Definition{
		{Label: "LATE", Letters: "NOPQRSTUVWXYZ"},
		{Label: "EARLY", Letters: "ABCDEFGHIJKLM"},
	})
	if err != nil {
		t.Fatal(err)
	}
	got, err := table.PatternOf("AZ")
	if err != nil {
		t.Fatal(err)
	}
	if got != "EARLY LATE" {
		t.Errorf("got %q, want %q", got, "EARLY LATE")
	}
}

func TestSet(t *testing.T) {
	table := Default()
	set, err := table.Resolve("G-M")
	if err != nil {
		t.Fatal(err)
	}

	if set.Len() != 7 {
		t.Errorf("Len() = %d, want 7", set.Len())
	}
	if !set.Contains('G') || !set.Contains('M') {
		t.Error("boundary letters missing from G-M")
	}
	if set.Contains('F') || set.Contains('N') {
		t.Error("neighboring letters leaked into G-M")
	}
	if set.Contains('g') || set.Contains('1') {
		t.Error("Contains must only accept uppercase A-Z")
	}
}
