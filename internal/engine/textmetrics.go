package engine

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// lineHeightFactor is the synthetic line height multiplier applied to the
// font size; layout stays stable regardless of which face renders the text.
const lineHeightFactor = 1.35

// basicFaceSize is the nominal pixel size of basicfont.Face7x13, used to
// scale its advances to an arbitrary font size.
const basicFaceSize = 13.0

// MeasureText returns the world-space width and height of a multi-line text
// block at the given font size. Line widths come from the bundled fixed font
// scaled to the requested size, so measurement is deterministic.
func MeasureText(content string, fontSize float64) (float64, float64) {
	lines := strings.Split(content, "\n")
	maxAdvance := 0.0
	for _, line := range lines {
		adv := float64(font.MeasureString(basicfont.Face7x13, line).Round())
		if adv > maxAdvance {
			maxAdvance = adv
		}
	}
	return maxAdvance * fontSize / basicFaceSize, float64(len(lines)) * lineHeightFactor * fontSize
}
