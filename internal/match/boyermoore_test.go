package match

import (
	"reflect"
	"testing"
)

func TestFindAllBoyerMoore(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
		want    []int
	}{
		{"single occurrence", "java", "I know Java", []int{7}},
		{"multiple occurrences", "Java", "I know Java and also Java EE", []int{7, 21}},
		{"case insensitive", "SQL", "sql, SQL and PostgreSQL", []int{0, 5, 20}},
		{"overlapping matches", "aa", "aaaa", []int{0, 1, 2}},
		{"no match", "rust", "I know Java", nil},
		{"empty pattern", "", "some text", nil},
		{"empty text", "go", "", nil},
		{"pattern longer than text", "golang", "go", nil},
		{"pattern equals text", "go", "go", []int{0}},
		{"match at start and end", "ab", "ab cd ab", []int{0, 6}},
		{"unicode text", "café", "visit the café today", []int{10}},
		{"good-suffix shift keeps later runs", "aa", "bbbbaaaabaababbabbbaa", []int{4, 5, 6, 9, 19}},
		{"good-suffix shift after partial suffix match", "bab", "ababbab", []int{1, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindAllBoyerMoore(tt.pattern, tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindAllBoyerMoore(%q, %q) = %v, want %v", tt.pattern, tt.text, got, tt.want)
			}
		})
	}
}

// The good-suffix table must hold alignment shifts: the search loop adds its
// entries straight to the alignment start, so a table built from shifts of the
// mismatch text position would overshoot by the matched suffix length and skip
// occurrences.
func TestBuildGoodSuffixAlignmentShifts(t *testing.T) {
	tests := []struct {
		pattern string
		want    []int
	}{
		{"aa", []int{1, 2}},
		{"bab", []int{2, 2, 1}},
		{"abcab", []int{3, 3, 3, 5, 1}},
	}
	for _, tt := range tests {
		got := buildGoodSuffix([]rune(tt.pattern))
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("buildGoodSuffix(%q) = %v, want %v", tt.pattern, got, tt.want)
		}
	}
}

func TestBoyerMooreMatchesKMPOnOverlapHeavyText(t *testing.T) {
	tests := []struct {
		pattern string
		text    string
	}{
		{"aa", "bbbbaaaabaababbabbbaa"},
		{"bab", "babbabbababbabab"},
		{"abab", "abababababab"},
		{"aab", "aabaabaabaab"},
	}
	for _, tt := range tests {
		kmp := FindAllKMP(tt.pattern, tt.text)
		bm := FindAllBoyerMoore(tt.pattern, tt.text)
		if !reflect.DeepEqual(kmp, bm) {
			t.Errorf("pattern %q text %q: KMP %v != Boyer-Moore %v", tt.pattern, tt.text, kmp, bm)
		}
	}
}

func TestBuildLastOccurrence(t *testing.T) {
	table := buildLastOccurrence([]rune("abcab"))
	if table['a'] != 3 {
		t.Errorf("last occurrence of 'a' = %d, want 3", table['a'])
	}
	if table['b'] != 4 {
		t.Errorf("last occurrence of 'b' = %d, want 4", table['b'])
	}
	if table['c'] != 2 {
		t.Errorf("last occurrence of 'c' = %d, want 2", table['c'])
	}
	if lastIndex(table, 'z') != -1 {
		t.Error("absent rune should report -1")
	}
}
