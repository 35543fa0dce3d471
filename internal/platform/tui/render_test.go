package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/pocket-arcade/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawText(0, 0, "plain")
	s.DrawTextColored(0, 1, "red", core.ColorRed)
	s.DrawTextColored(3, 1, "ok", core.ColorGreen)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "plain") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "red") || !strings.Contains(lines[1], "ok") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestColorStylesCoverPalette(t *testing.T) {
	colors := []core.Color{
		core.ColorDefault, core.ColorRed, core.ColorGreen, core.ColorYellow,
		core.ColorBlue, core.ColorMagenta, core.ColorCyan, core.ColorWhite,
		core.ColorBrightGreen, core.ColorBrightYellow, core.ColorBrightCyan,
		core.ColorOrange, core.ColorGray,
	}
	for _, c := range colors {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("no style for color %v", c)
		}
	}
}

func TestStarString(t *testing.T) {
	tests := map[int]string{
		-1: "☆☆☆",
		0:  "☆☆☆",
		1:  "★☆☆",
		2:  "★★☆",
		3:  "★★★",
		7:  "★★★",
	}
	for stars, expected := range tests {
		if got := StarString(stars); got != expected {
			t.Errorf("StarString(%d) = %q, expected %q", stars, got, expected)
		}
	}
}
