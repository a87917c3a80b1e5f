package main

import (
	"strings"
	"testing"

	"github.com/codegangsta/cli"
)

func TestFontFlagListsFormats(t *testing.T) {
	var usage string
	for _, f := range flags() {
		if sf, ok := f.(cli.StringFlag); ok && sf.Name == "font" {
			usage = sf.Usage
		}
	}
	if usage == "" {
		t.Fatal("no font flag")
	}
	for _, ext := range []string{".ttf", ".otf", ".ttc", ".glyphs"} {
		if !strings.Contains(usage, ext) {
			t.Errorf("font usage %q does not mention %s", usage, ext)
		}
	}
}
