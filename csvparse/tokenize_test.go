package csvparse

import (
	"reflect"
	"testing"
)

func TestSniffDelimiter(t *testing.T) {
	cases := []struct {
		header string
		want   byte
	}{
		{"a;b;c", ';'},
		{"a,b,c", ','},
		{"a;b,c", ','}, // tie goes to comma
		{"a,b;c;d", ';'},
		{"singlecolumn", ','},
	}
	for _, c := range cases {
		if got := SniffDelimiter(c.header); got != c.want {
			t.Errorf("SniffDelimiter(%q) = %q, want %q", c.header, got, c.want)
		}
	}
}

func TestTokenizeBasic(t *testing.T) {
	rows := Tokenize("a;b;c\n1;2;3\n4;5;6\n")
	want := [][]string{{"a", "b", "c"}, {"1", "2", "3"}, {"4", "5", "6"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("Tokenize = %v, want %v", rows, want)
	}
}

func TestTokenizeQuotedDelimiter(t *testing.T) {
	// A delimiter behind an odd number of quotes is data, not a split
	// point; quote characters themselves are stripped from tokens.
	rows := Tokenize("a;b\n\"x;y\";z\n")
	want := [][]string{{"a", "b"}, {"x;y", "z"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("Tokenize = %v, want %v", rows, want)
	}
}

func TestTokenizeShortRows(t *testing.T) {
	// One missing trailing column is tolerated; shorter rows are
	// dropped as malformed.
	rows := Tokenize("a;b;c;d\n1;2;3;4\n1;2;3\n1;2\n")
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3 (header + full + one-short)", len(rows))
	}
	if !reflect.DeepEqual(rows[2], []string{"1", "2", "3"}) {
		t.Errorf("one-short row = %v", rows[2])
	}
}

func TestTokenizeBlankLinesAndCRLF(t *testing.T) {
	rows := Tokenize("a;b\r\n\r\n1;2\r\n   \r\n3;4\r\n")
	want := [][]string{{"a", "b"}, {"1", "2"}, {"3", "4"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("Tokenize = %v, want %v", rows, want)
	}
}

func TestTokenizeEmpty(t *testing.T) {
	if rows := Tokenize(""); rows != nil {
		t.Errorf("Tokenize(\"\") = %v, want nil", rows)
	}
	if rows := Tokenize("\n  \n"); rows != nil {
		t.Errorf("Tokenize(blank) = %v, want nil", rows)
	}
}

func TestTokenizeTrimsTokens(t *testing.T) {
	rows := Tokenize("a;b\n  1  ; \"2\" \n")
	want := [][]string{{"a", "b"}, {"1", "2"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("Tokenize = %v, want %v", rows, want)
	}
}
