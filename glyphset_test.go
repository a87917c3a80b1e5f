package img2ascii

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestComputeGlyphSetSkipsMissing(t *testing.T) {
	src := newStubGlyphs(map[rune]int{'a': 10, 'b': 20})
	set, err := ComputeGlyphSet(src, "stub", []rune{'b', 'x', 'a'})
	if err != nil {
		t.Fatalf("ComputeGlyphSet failed: %v", err)
	}
	if got := set.Runes(); !reflect.DeepEqual(got, []rune{'a', 'b'}) {
		t.Errorf("Runes() = %q, want ab", got)
	}
	if set.Name() != "stub" || set.Len() != 2 {
		t.Errorf("Name() = %q, Len() = %d", set.Name(), set.Len())
	}
}

func TestGlyphSetSaveLoad(t *testing.T) {
	set, err := ComputeGlyphSet(NewBasicFontGlyphs(), "basic", []rune(" #.@█"))
	if err != nil {
		t.Fatalf("ComputeGlyphSet failed: %v", err)
	}

	var buf bytes.Buffer
	if err := set.Save(&buf); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := LoadGlyphSet(&buf)
	if err != nil {
		t.Fatalf("LoadGlyphSet failed: %v", err)
	}

	if loaded.Name() != "basic" {
		t.Errorf("Name() = %q, want basic", loaded.Name())
	}
	if !reflect.DeepEqual(loaded.Runes(), set.Runes()) {
		t.Errorf("Runes() = %q, want %q", loaded.Runes(), set.Runes())
	}
	for _, r := range set.Runes() {
		want, _ := set.Glyph(r)
		got, err := loaded.Glyph(r)
		if err != nil {
			t.Fatalf("Glyph(%q) failed: %v", r, err)
		}
		if got != want {
			t.Errorf("Glyph(%q) changed after round trip", r)
		}
	}
}

func TestLoadGlyphSetInvalid(t *testing.T) {
	if _, err := LoadGlyphSet(bytes.NewReader([]byte("plain text"))); err == nil {
		t.Error("expected an error for non-gzip data")
	}
}

func TestGlyphSetFallback(t *testing.T) {
	set, err := ComputeGlyphSet(newStubGlyphs(map[rune]int{'a': 10}), "stub", []rune{'a'})
	if err != nil {
		t.Fatalf("ComputeGlyphSet failed: %v", err)
	}

	if _, err := set.Glyph('b'); !errors.Is(err, ErrGlyphNotFound) {
		t.Errorf("Glyph('b') without fallback: got %v, want ErrGlyphNotFound", err)
	}

	set.WithFallback(newStubGlyphs(map[rune]int{'b': 30}))
	g, err := set.Glyph('b')
	if err != nil {
		t.Fatalf("Glyph('b') with fallback failed: %v", err)
	}
	if g.OnCount() != 30 {
		t.Errorf("fallback glyph has %d pixels, want 30", g.OnCount())
	}
}

func TestOpenGlyphSource(t *testing.T) {
	src, err := OpenGlyphSource("")
	if err != nil {
		t.Fatalf("OpenGlyphSource(\"\") failed: %v", err)
	}
	if _, ok := src.(*BasicFontGlyphs); !ok {
		t.Errorf("OpenGlyphSource(\"\") = %T, want *BasicFontGlyphs", src)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "stub.glyphs")
	set, err := ComputeGlyphSet(newStubGlyphs(map[rune]int{'a': 77}), "stub", []rune{'a'})
	if err != nil {
		t.Fatalf("ComputeGlyphSet failed: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := set.Save(f); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	f.Close()

	src, err = OpenGlyphSource(path)
	if err != nil {
		t.Fatalf("OpenGlyphSource(%s) failed: %v", path, err)
	}
	if g, _ := src.Glyph('a'); g.OnCount() != 77 {
		t.Errorf("stored glyph has %d pixels, want 77", g.OnCount())
	}
	// Runes outside the table come from the basic font.
	if _, err := src.Glyph('#'); err != nil {
		t.Errorf("fallback Glyph('#') failed: %v", err)
	}

	if _, err := OpenGlyphSource(filepath.Join(dir, "font.woff")); err == nil {
		t.Error("expected an error for an unsupported extension")
	}
	otfPath := filepath.Join(dir, "goregular.otf")
	if err := os.WriteFile(otfPath, goregular.TTF, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	src, err = OpenGlyphSource(otfPath)
	if err != nil {
		t.Fatalf("OpenGlyphSource(%s) failed: %v", otfPath, err)
	}
	if _, ok := src.(*OpenTypeGlyphs); !ok {
		t.Errorf("OpenGlyphSource(.otf) = %T, want *OpenTypeGlyphs", src)
	}

	if _, err := OpenGlyphSource(filepath.Join(dir, "missing.glyphs")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing glyph file: got %v, want os.ErrNotExist", err)
	}
}
