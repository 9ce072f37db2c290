package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/npillmayer/parcoords/action"
	"github.com/npillmayer/parcoords/axis"
	"github.com/npillmayer/parcoords/colors"
	"github.com/npillmayer/parcoords/coords"
	"github.com/npillmayer/parcoords/renderer"
	"gopkg.in/yaml.v3"
)

// scenario is a plot set up together with the gestures to replay on it.
type scenario struct {
	Canvas          canvas                 `yaml:"canvas"`
	Axes            []axisDesc             `yaml:"axes"`
	Order           []string               `yaml:"order"`
	Labels          []labelDesc            `yaml:"labels"`
	ActiveLabel     string                 `yaml:"active_label"`
	ColorBar        bool                   `yaml:"color_bar"`
	ColorMode       *colorModeDesc         `yaml:"color_mode"`
	ColorScale      *colors.ScaleDesc      `yaml:"color_scale"`
	InteractionMode string                 `yaml:"interaction_mode"`
	Brushes         renderer.Brushes       `yaml:"brushes"`
	Debug           *renderer.DebugOptions `yaml:"debug"`
	Gestures        []gesture              `yaml:"gestures"`
}

type canvas struct {
	Width      float32 `yaml:"width"`
	Height     float32 `yaml:"height"`
	PixelRatio float32 `yaml:"pixel_ratio"`
}

type axisDesc struct {
	Key          string      `yaml:"key"`
	Label        string      `yaml:"label"`
	Datums       []float32   `yaml:"datums"`
	Range        *[2]float32 `yaml:"range"`
	VisibleRange *[2]float32 `yaml:"visible_range"`
	Ticks        []tickDesc  `yaml:"ticks"`
	Hidden       bool        `yaml:"hidden"`
}

type tickDesc struct {
	Position float32 `yaml:"position"`
	Label    string  `yaml:"label"`
}

type labelDesc struct {
	ID              string      `yaml:"id"`
	Color           string      `yaml:"color"`
	SelectionBounds *[2]float32 `yaml:"selection_bounds"`
	Easing          string      `yaml:"easing"`
}

type colorModeDesc struct {
	Mode      string  `yaml:"mode"` // "constant", "attribute" or "probability"
	Value     float32 `yaml:"value"`
	Attribute string  `yaml:"attribute"`
}

// gesture is a drag with the primary pointer button. It starts either on
// the label of an axis or at a value on its axis line, and moves by DX
// pixels to the right and to the value To. Positions are taken from the
// layout before the first gesture.
type gesture struct {
	Axis    string   `yaml:"axis"`
	OnLabel bool     `yaml:"on_label"`
	From    float32  `yaml:"from"`
	To      *float32 `yaml:"to"`
	DX      float32  `yaml:"dx"`
	Steps   int      `yaml:"steps"`
}

func loadScenario(path string) (*scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseScenario(data)
}

func parseScenario(data []byte) (*scenario, error) {
	sc := &scenario{Canvas: canvas{Width: 800, Height: 600, PixelRatio: 1}}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(sc); err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	if c := sc.Canvas; c.Width <= 0 || c.Height <= 0 || c.PixelRatio <= 0 {
		return nil, fmt.Errorf("scenario: invalid canvas %gx%g@%g", c.Width, c.Height, c.PixelRatio)
	}
	return sc, nil
}

// transaction builds the setup of the plot.
func (sc *scenario) transaction() (*renderer.Transaction, error) {
	b := renderer.NewTransaction()
	for _, ad := range sc.Axes {
		b.AddAxis(ad.Key, ad.args())
	}
	if sc.Order != nil {
		b.SetAxisOrder(sc.Order)
	}
	for _, ld := range sc.Labels {
		desc := renderer.LabelDesc{ID: ld.ID, SelectionBounds: ld.SelectionBounds, Easing: ld.Easing}
		if ld.Color != "" {
			desc.Color = &colors.Query{CSS: ld.Color}
		}
		b.AddLabel(desc)
	}
	if sc.ActiveLabel != "" {
		b.SwitchActiveLabel(sc.ActiveLabel)
	}
	if sc.ColorScale != nil {
		b.SetColorScale(*sc.ColorScale)
	}
	if sc.ColorMode != nil {
		mode, err := sc.ColorMode.mode()
		if err != nil {
			return nil, err
		}
		b.SetDataColorMode(mode)
	}
	b.SetColorBarVisibility(sc.ColorBar)
	if sc.InteractionMode != "" {
		mode, err := action.ParseInteractionMode(sc.InteractionMode)
		if err != nil {
			return nil, err
		}
		b.SetInteractionMode(mode)
	}
	if sc.Brushes != nil {
		b.SetBrushes(sc.Brushes)
	}
	if sc.Debug != nil {
		b.SetDebugOptions(*sc.Debug)
	}
	return b.Build()
}

func (ad axisDesc) args() *axis.Args {
	args := axis.NewArgs(ad.Label, ad.Datums)
	if ad.Range != nil {
		args.WithRange(ad.Range[0], ad.Range[1])
	}
	if ad.VisibleRange != nil {
		args.WithVisibleRange(ad.VisibleRange[0], ad.VisibleRange[1])
	}
	if ad.Ticks != nil {
		ticks := make([]axis.Tick, len(ad.Ticks))
		for i, td := range ad.Ticks {
			ticks[i] = axis.Tick{Position: td.Position, Label: td.Label}
		}
		args.WithTicks(ticks)
	}
	return args.WithHidden(ad.Hidden)
}

func (cm colorModeDesc) mode() (renderer.DataColorMode, error) {
	switch cm.Mode {
	case "constant":
		return renderer.DataColorMode{Mode: renderer.ConstantColor, Value: cm.Value}, nil
	case "attribute":
		return renderer.DataColorMode{Mode: renderer.AttributeColor, Attribute: cm.Attribute}, nil
	case "probability":
		return renderer.DataColorMode{Mode: renderer.ProbabilityColor}, nil
	}
	return renderer.DataColorMode{}, fmt.Errorf("unknown color mode %q", cm.Mode)
}

// pointerEvents converts a gesture into pointer events, using the current
// layout of the axes.
func (g gesture) pointerEvents(axes *axis.Axes) ([]pointerStep, error) {
	ax, ok := axes.Axis(g.Axis)
	if !ok || ax.IsHidden() {
		return nil, fmt.Errorf("gesture on unknown or hidden axis %q", g.Axis)
	}
	var start coords.Position[coords.Local]
	if g.OnLabel {
		bb := ax.LabelBoundingBox()
		start = bb.Start().Lerp(bb.End(), 0.5)
	} else {
		start = ax.PositionOfValue(g.From)
	}
	from := toScreen(ax, start)
	to := from
	if g.To != nil {
		to.Y = toScreen(ax, ax.PositionOfValue(*g.To)).Y
	}
	to.X += g.DX
	steps := max(g.Steps, 1)
	events := []pointerStep{{kind: pointerDown, event: pointerEvent(from, coords.Off[coords.Screen](0, 0))}}
	prev := from
	for i := 1; i <= steps; i++ {
		p := from.Lerp(to, float32(i)/float32(steps))
		events = append(events, pointerStep{kind: pointerMove, event: pointerEvent(p, p.Sub(prev))})
		prev = p
	}
	events = append(events, pointerStep{kind: pointerUp, event: pointerEvent(to, coords.Off[coords.Screen](0, 0))})
	return events, nil
}

func toScreen(ax *axis.Axis, p coords.Position[coords.Local]) coords.Position[coords.Screen] {
	w := ax.SpaceTransformer().Inverse().Position(p)
	return ax.Axes().ScreenToWorld().Inverse().Position(w)
}

type pointerKind int8

const (
	pointerDown pointerKind = iota
	pointerMove
	pointerUp
)

type pointerStep struct {
	kind  pointerKind
	event renderer.PointerEvent
}

func pointerEvent(p coords.Position[coords.Screen], movement coords.Offset[coords.Screen]) renderer.PointerEvent {
	return renderer.PointerEvent{
		OffsetX:   p.X,
		OffsetY:   p.Y,
		MovementX: movement.X,
		MovementY: movement.Y,
		IsPrimary: true,
	}
}

func (s pointerStep) send(q renderer.EventQueue) error {
	switch s.kind {
	case pointerDown:
		return q.PointerDown(s.event)
	case pointerMove:
		return q.PointerMove(s.event)
	}
	return q.PointerUp(s.event)
}
