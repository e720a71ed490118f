package dictionary

import (
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func mustIndex(t testing.TB, table map[string]int) *Index {
	t.Helper()
	idx, err := FromMap(table, DefaultMaxScore)
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	return idx
}

func TestLookupZeroSubstitution(t *testing.T) {
	idx := mustIndex(t, map[string]int{"cat": 5, "act": 12, "tac": 0})

	testCases := []struct {
		word  string
		score int
		found bool
	}{
		{"cat", 5, true},
		{"act", 12, true},
		{"tac", DefaultMaxScore, true},
		{"dog", 0, false},
		{"ca", 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.word, func(t *testing.T) {
			score, ok := idx.Lookup(tc.word)
			if ok != tc.found || score != tc.score {
				t.Errorf("Lookup(%q) = (%d, %v), want (%d, %v)", tc.word, score, ok, tc.score, tc.found)
			}
		})
	}
}

func TestCustomMaxScore(t *testing.T) {
	idx, err := FromMap(map[string]int{"zebra": 0}, 42)
	if err != nil {
		t.Fatal(err)
	}
	if score, _ := idx.Lookup("zebra"); score != 42 {
		t.Errorf("expected substituted score 42, got %d", score)
	}
	if idx.MaxScore() != 42 {
		t.Errorf("MaxScore() = %d", idx.MaxScore())
	}
}

func TestHasPrefix(t *testing.T) {
	idx := mustIndex(t, map[string]int{"catalog": 1, "dog": 2})

	for prefix, want := range map[string]bool{
		"c":        true,
		"cata":     true,
		"catalog":  true,
		"catalogs": false,
		"do":       true,
		"x":        false,
	} {
		if got := idx.HasPrefix(prefix); got != want {
			t.Errorf("HasPrefix(%q) = %v, want %v", prefix, got, want)
		}
	}
}

func TestSignatureBuckets(t *testing.T) {
	b := NewBuilder(DefaultMaxScore)
	for _, w := range []string{"listen", "Silent", "enlist", "tinsel", "google"} {
		if err := b.Add(w, 1); err != nil {
			t.Fatal(err)
		}
	}
	idx := b.Build()

	got := idx.WordsWithSignature(Signature("inlets"))
	want := []string{"listen", "silent", "enlist", "tinsel"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WordsWithSignature = %v, want %v", got, want)
	}
	if idx.WordsWithSignature("zzz") != nil {
		t.Errorf("unknown signature should return nil")
	}

	// callers must not be able to change the index through the returned slice
	got[0] = "mutated"
	if idx.WordsWithSignature(Signature("inlets"))[0] != "listen" {
		t.Errorf("index was mutated through returned slice")
	}
}

func TestBuilderAdd(t *testing.T) {
	b := NewBuilder(DefaultMaxScore)
	if err := b.Add("  ", 3); err == nil {
		t.Errorf("expected error for empty word")
	}
	if err := b.Add("word", -1); err == nil {
		t.Errorf("expected error for negative frequency")
	}
	for _, w := range []string{"ice cream", "ice\tcream", "a\u00a0b"} {
		if err := b.Add(w, 1); err == nil {
			t.Errorf("Add(%q): expected error for inner whitespace", w)
		}
	}
	if err := b.Add("Word", 10); err != nil {
		t.Fatal(err)
	}
	if err := b.Add("word", 20); err != nil {
		t.Fatal(err)
	}
	idx := b.Build()

	if idx.Len() != 1 {
		t.Fatalf("duplicate add should keep one entry, got %d", idx.Len())
	}
	if score, _ := idx.Lookup("word"); score != 20 {
		t.Errorf("last write should win, got %d", score)
	}
	if n := len(idx.WordsWithSignature(Signature("word"))); n != 1 {
		t.Errorf("duplicate add should not duplicate signature bucket, got %d", n)
	}
}

func TestStats(t *testing.T) {
	idx := mustIndex(t, map[string]int{"cat": 5, "act": 12, "tac": 0, "dog": 7})
	stats := idx.Stats()
	if stats["totalWords"] != 4 || stats["maxFrequency"] != 12 || stats["unknownFreq"] != 1 || stats["signatures"] != 2 {
		t.Errorf("unexpected stats: %v", stats)
	}
}

func BenchmarkLookup(b *testing.B) {
	table := make(map[string]int, 10000)
	for i := 0; i < 10000; i++ {
		table[strings.Repeat("ab", i%7+1)+string(rune('a'+i%26))+string(rune('a'+(i/26)%26))] = i
	}
	idx := mustIndex(b, table)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		idx.Lookup("ababqz")
		idx.HasPrefix("abab")
	}
}

func TestQueriesAndNormalization(t *testing.T) {
	idx := mustIndex(t, map[string]int{"Cat": 5})

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"Contains normalizes", idx.Contains("CAT"), true},
		{"Contains trims", idx.Contains(" cat "), true},
		{"Contains absent", idx.Contains("dog"), false},
		{"HasPrefix normalized", idx.HasPrefix("ca"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	if _, ok := idx.Lookup("cat"); !ok {
		t.Errorf("Lookup of the normalized form should hit")
	}
	if _, ok := idx.Lookup("CAT"); ok {
		t.Errorf("Lookup takes the normalized form only")
	}
}
