package pdftext

import (
	"testing"

	lpdf "github.com/ledongthuc/pdf"
)

func TestRunWords_SplitsAndPositions(t *testing.T) {
	run := lpdf.Text{
		S:        "1.1 LIMPEZA DO TERRENO",
		X:        50,
		Y:        700,
		W:        220, // 22 runes, 10 points each
		FontSize: 10,
	}

	tokens := runWords(run, 842)

	words := []string{"1.1", "LIMPEZA", "DO", "TERRENO"}
	if len(tokens) != len(words) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(words))
	}
	for i, want := range words {
		if tokens[i].Text != want {
			t.Errorf("token %d = %q, want %q", i, tokens[i].Text, want)
		}
	}

	if got := tokens[0].BBox.X; got != 50 {
		t.Errorf("first token X = %v, want 50", got)
	}
	// "LIMPEZA" starts at rune 4.
	if got := tokens[1].BBox.X; got != 50+4*10 {
		t.Errorf("second token X = %v, want %v", got, 50+4*10)
	}
	// Y flipped to a top-left origin: 842 - 700 - 10.
	if got := tokens[0].BBox.Y; got != 132 {
		t.Errorf("token Y = %v, want 132", got)
	}
	for _, tok := range tokens {
		if tok.Confidence != 1 {
			t.Errorf("token %q confidence = %v, want 1", tok.Text, tok.Confidence)
		}
	}
}

func TestRunWords_EmptyRun(t *testing.T) {
	if got := runWords(lpdf.Text{S: "   ", W: 30, FontSize: 10}, 842); len(got) != 0 {
		t.Errorf("blank run produced %d tokens", len(got))
	}
	if got := runWords(lpdf.Text{S: "X", W: 0}, 842); len(got) != 0 {
		t.Errorf("zero-width run produced %d tokens", len(got))
	}
}
