package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"

	"github.com/npillmayer/parcoords/renderer"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var outputFormat string

var replayCmd = &cobra.Command{
	Use:   "replay <scenario.yaml>",
	Short: "Replay the gestures of a scenario",
	Long: `Sets up the plot described by a scenario file, sends its gestures
through the event queue of the renderer, draws one frame and reports the
resulting state.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&outputFormat, "format", "text", "Output format: text, yaml")
	rootCmd.AddCommand(replayCmd)
}

// report is the state of the plot after a replay.
type report struct {
	Events    string           `yaml:"events"`
	Order     []string         `yaml:"order"`
	Collapsed []string         `yaml:"collapsed,omitempty"`
	Labels    []labelReport    `yaml:"labels"`
	Brushes   renderer.Brushes `yaml:"brushes,omitempty"`
	ColorBar  string           `yaml:"color_bar,omitempty"`
}

type labelReport struct {
	ID       string `yaml:"id"`
	Active   bool   `yaml:"active"`
	Selected []int  `yaml:"selected"`
}

func runReplay(cmd *cobra.Command, args []string) error {
	if outputFormat != "text" && outputFormat != "yaml" {
		return fmt.Errorf("unknown output format %q", outputFormat)
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	sc, err := loadScenario(args[0])
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	rep, err := replay(ctx, cfg, sc)
	if err != nil {
		return err
	}
	return rep.write(cmd.OutOrStdout(), outputFormat)
}

// replay sets up the plot, runs the event loop and sends the gestures to
// it.
func replay(ctx context.Context, cfg renderer.Config, sc *scenario) (*report, error) {
	c := sc.Canvas
	r := renderer.New(cfg, c.Width, c.Height, c.PixelRatio, nil)
	tx, err := sc.transaction()
	if err != nil {
		return nil, err
	}
	if err := r.Commit(tx); err != nil {
		return nil, err
	}
	var steps []pointerStep
	for i, g := range sc.Gestures {
		events, err := g.pointerEvents(r.Axes())
		if err != nil {
			return nil, fmt.Errorf("gesture %d: %w", i, err)
		}
		steps = append(steps, events...)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	q := r.EventQueue()
	for _, s := range steps {
		if err := s.send(q); err != nil {
			return nil, err
		}
	}
	frame, err := q.Draw(ctx)
	if err != nil {
		return nil, err
	}
	if err := q.Exit(); err != nil {
		return nil, err
	}
	if err := <-done; err != nil {
		return nil, err
	}
	return newReport(r, frame), nil
}

func newReport(r *renderer.Renderer, frame renderer.Frame) *report {
	rep := &report{
		Events:  frame.Events.String(),
		Order:   frame.Order,
		Brushes: r.Brushes(),
	}
	for ax := range r.Axes().VisibleAxes() {
		if ax.IsCollapsed() {
			rep.Collapsed = append(rep.Collapsed, ax.Key())
		}
	}
	if frame.ColorBar != nil {
		rep.ColorBar = frame.ColorBar.Label
	}
	active, hasActive := r.ActiveLabel()
	for _, lf := range frame.Labels {
		lr := labelReport{ID: lf.ID, Active: hasActive && active.ID == lf.ID, Selected: []int{}}
		for i, sel := range lf.Selected {
			if sel {
				lr.Selected = append(lr.Selected, i)
			}
		}
		rep.Labels = append(rep.Labels, lr)
	}
	return rep
}

func (rep *report) write(w io.Writer, format string) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	}
	fmt.Fprintf(w, "events:    %s\n", rep.Events)
	fmt.Fprintf(w, "order:     %v\n", rep.Order)
	if len(rep.Collapsed) > 0 {
		fmt.Fprintf(w, "collapsed: %v\n", rep.Collapsed)
	}
	if rep.ColorBar != "" {
		fmt.Fprintf(w, "color bar: %s\n", rep.ColorBar)
	}
	for _, lr := range rep.Labels {
		marker := " "
		if lr.Active {
			marker = "*"
		}
		fmt.Fprintf(w, "label %s%s: %d selected %v\n", marker, lr.ID, len(lr.Selected), lr.Selected)
	}
	keys := make([]string, 0, len(rep.Brushes))
	for key := range rep.Brushes {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		ids := make([]string, 0, len(rep.Brushes[key]))
		for id := range rep.Brushes[key] {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		for _, id := range ids {
			for _, br := range rep.Brushes[key][id] {
				fmt.Fprintf(w, "brush %s/%s: [%.3f, %.3f]\n", key, id, br.Range[0], br.Range[1])
			}
		}
	}
	return nil
}
