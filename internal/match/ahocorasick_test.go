package match

import (
	"errors"
	"reflect"
	"sync"
	"testing"
)

func TestNewAutomaton(t *testing.T) {
	t.Run("rejects empty pattern set", func(t *testing.T) {
		if _, err := NewAutomaton(nil); !errors.Is(err, ErrNoPatterns) {
			t.Errorf("NewAutomaton(nil) error = %v, want ErrNoPatterns", err)
		}
		if _, err := NewAutomaton([]string{"", "  "}); !errors.Is(err, ErrNoPatterns) {
			t.Errorf("NewAutomaton of blanks error = %v, want ErrNoPatterns", err)
		}
	})

	t.Run("normalizes and deduplicates patterns", func(t *testing.T) {
		a, err := NewAutomaton([]string{"Java", " java ", "Go"})
		if err != nil {
			t.Fatalf("NewAutomaton error: %v", err)
		}
		want := []string{"java", "go"}
		if !reflect.DeepEqual(a.Patterns(), want) {
			t.Errorf("Patterns() = %v, want %v", a.Patterns(), want)
		}
	})
}

func TestAutomatonFindAll(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		text     string
		want     []PatternMatch
	}{
		{
			"two keywords one document",
			[]string{"java", "go"},
			"Java and Go developer",
			[]PatternMatch{{Pattern: "java", Offset: 0}, {Pattern: "go", Offset: 9}},
		},
		{
			"pattern inside another",
			[]string{"he", "she", "hers"},
			"ushers",
			[]PatternMatch{{Pattern: "she", Offset: 1}, {Pattern: "he", Offset: 2}, {Pattern: "hers", Offset: 2}},
		},
		{
			"repeated keyword",
			[]string{"java"},
			"I know Java and also Java EE",
			[]PatternMatch{{Pattern: "java", Offset: 7}, {Pattern: "java", Offset: 21}},
		},
		{
			"no matches",
			[]string{"rust", "zig"},
			"Java developer",
			nil,
		},
		{
			"overlapping occurrences",
			[]string{"aa"},
			"aaa",
			[]PatternMatch{{Pattern: "aa", Offset: 0}, {Pattern: "aa", Offset: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAutomaton(tt.patterns)
			if err != nil {
				t.Fatalf("NewAutomaton(%v) error: %v", tt.patterns, err)
			}
			got := a.FindAll(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindAll(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

// The built automaton is read-only; concurrent FindAll calls over the same
// automaton must agree with a serial run.
func TestAutomatonConcurrentFindAll(t *testing.T) {
	a, err := NewAutomaton([]string{"go", "java", "sql"})
	if err != nil {
		t.Fatalf("NewAutomaton error: %v", err)
	}
	text := "Go and Java and SQL and more go"
	want := a.FindAll(text)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := a.FindAll(text); !reflect.DeepEqual(got, want) {
				t.Errorf("concurrent FindAll = %v, want %v", got, want)
			}
		}()
	}
	wg.Wait()
}
