package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestNormalizeWord(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Cat", "cat"},
		{"  DOG \n", "dog"},
		{"ＡＣＴ", "act"}, // fullwidth folds under NFKC
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := NormalizeWord(tt.in); got != tt.want {
			t.Errorf("NormalizeWord(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSortRunes(t *testing.T) {
	if got := SortRunes("tca"); got != "act" {
		t.Errorf("SortRunes(tca) = %q", got)
	}
	if SortRunes("listen") != SortRunes("silent") {
		t.Errorf("anagrams should share a sorted form")
	}
}

func TestIsOnlyLetters(t *testing.T) {
	for in, want := range map[string]bool{"cat": true, "café": true, "c4t": false, "": false, "a b": false} {
		if got := IsOnlyLetters(in); got != want {
			t.Errorf("IsOnlyLetters(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseInts(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"3", []int{3}, false},
		{"4,2", []int{4, 2}, false},
		{"1, 2 3", []int{1, 2, 3}, false},
		{"", []int{}, false},
		{"3,x", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseInts(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseInts(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
	if got := FormatInts([]int{4, 2}); got != "4,2" {
		t.Errorf("FormatInts = %q", got)
	}
	if got := FormatCount(1234567); got != "1,234,567" {
		t.Errorf("FormatCount = %q", got)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results_1.txt")
	for _, body := range []string{"first\n", "second\n"} {
		if err := WriteFileAtomic(path, []byte(body)); err != nil {
			t.Fatal(err)
		}
		b, err := os.ReadFile(path)
		if err != nil || string(b) != body {
			t.Errorf("content = %q (%v), want %q", b, err, body)
		}
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestResolveDataPath(t *testing.T) {
	pr, err := NewPathResolver()
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	existing := filepath.Join(dir, "freq_dict.json")
	if err := os.WriteFile(existing, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := pr.ResolveDataPath(existing); got != existing {
		t.Errorf("existing path resolved to %q", got)
	}
	missing := filepath.Join(dir, "nope", "missing_dict.json")
	if got := pr.ResolveDataPath(missing); got != missing {
		t.Errorf("missing path should come back unchanged, got %q", got)
	}
	if got := pr.ResolveDataPath(""); got != "" {
		t.Errorf("empty path resolved to %q", got)
	}
}
