package renderer

import (
	"fmt"

	"github.com/npillmayer/parcoords/action"
	"github.com/npillmayer/parcoords/axis"
	"github.com/npillmayer/parcoords/colors"
	"github.com/npillmayer/parcoords/coords"
	"github.com/npillmayer/parcoords/selection"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Config holds the settings a renderer starts with.
type Config struct {
	QueueCapacity   int                    // capacity of the event queue
	RemPixels       float32                // size of 1rem in screen pixels
	InteractionMode action.InteractionMode // initial interaction mode
	Easing          selection.FadingType   // easing of labels added without one
	Combination     selection.Combination  // how overlapping brushes form a curve
	SelectionBounds [2]float32             // selection bounds of labels added without them
	Background      colors.Color
	Brush           colors.Color
	Unselected      colors.Color
	ColorScale      *colors.Scale
}

// DefaultConfig returns the default settings.
func DefaultConfig() Config {
	scale, err := colors.NamedScale("viridis")
	if err != nil {
		panic(err)
	}
	return Config{
		QueueCapacity:   64,
		RemPixels:       16,
		InteractionMode: action.Full,
		Easing:          selection.Linear,
		Combination:     selection.Replace,
		SelectionBounds: [2]float32{boundsEpsilon, 1},
		Background:      mustColor("white"),
		Brush:           mustColor("rgb(15 127 255)"),
		Unselected:      mustColor("rgb(211 211 211 0.2)"),
		ColorScale:      scale,
	}
}

// Validate checks the settings.
func (c Config) Validate() error {
	if c.QueueCapacity < 1 {
		return fmt.Errorf("queue capacity must be positive, is %d", c.QueueCapacity)
	}
	if c.RemPixels <= 0 {
		return fmt.Errorf("rem size must be positive, is %g", c.RemPixels)
	}
	if c.Combination != selection.Replace && c.Combination != selection.Maximum {
		return fmt.Errorf("invalid curve combination %s", c.Combination)
	}
	if c.SelectionBounds[0] > c.SelectionBounds[1] {
		return fmt.Errorf("selection bounds %v are inverted", c.SelectionBounds)
	}
	if c.ColorScale == nil {
		return fmt.Errorf("missing color scale")
	}
	return nil
}

func mustColor(css string) colors.Color {
	c, err := colors.Parse(css)
	if err != nil {
		panic(err)
	}
	return c
}

// remLength returns the function converting rem to screen pixels.
func (c Config) remLength() axis.RemLengthFunc {
	return func(rem float32) coords.Length[coords.Screen] {
		return coords.Len[coords.Screen](rem * c.RemPixels)
	}
}

// DefaultTextLength measures text set in a fixed 7x13 pixel face.
func DefaultTextLength(text string) (w, h coords.Length[coords.Screen]) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text)
	height := face.Metrics().Height
	return coords.Len[coords.Screen](float32(width.Ceil())), coords.Len[coords.Screen](float32(height.Ceil()))
}
