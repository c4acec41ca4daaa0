package document

import (
	"fmt"
	"strings"
)

// verdictColors maps short verdict labels to their display color. An
// unmapped verdict is a data error and must fail, never default.
var verdictColors = map[string]Color{
	"Awful":     {R: 255, G: 0, B: 0},     // red
	"Bad":       {R: 139, G: 0, B: 0},     // dark red
	"Lower":     {R: 205, G: 92, B: 92},   // indian red
	"Good":      {R: 255, G: 255, B: 0},   // yellow
	"Perfect":   {R: 124, G: 252, B: 0},   // lawn green
	"Verified":  {R: 147, G: 112, B: 219}, // medium purple
	"Certified": {R: 147, G: 112, B: 219}, // medium purple
}

// ShortVerdict strips a trailing case-insensitive "stage" suffix from the
// verdict value. A verdict without the suffix passes through unchanged.
func ShortVerdict(verdict string) string {
	if len(verdict) >= 5 && strings.EqualFold(verdict[len(verdict)-5:], "stage") {
		return verdict[:len(verdict)-5]
	}
	return verdict
}

// VerdictColor resolves the display color for a verdict value.
func VerdictColor(verdict string) (Color, error) {
	c, ok := verdictColors[ShortVerdict(verdict)]
	if !ok {
		return Color{}, fmt.Errorf("no color mapped for verdict %q", verdict)
	}
	return c, nil
}
