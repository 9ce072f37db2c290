package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/npillmayer/parcoords/renderer"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseScenario(t *testing.T) {
	sc, err := loadScenario("testdata/scenario.yaml")
	require.NoError(t, err)
	assert.Len(t, sc.Axes, 3)
	assert.Equal(t, float32(800), sc.Canvas.Width)
	require.Len(t, sc.Gestures, 2)
	assert.True(t, sc.Gestures[1].OnLabel)
	assert.InDelta(t, 0.6, sc.Brushes["b"]["m"][0].Range[0], 1e-6)

	_, err = parseScenario([]byte("axes: []\nbogus: 1\n"))
	assert.Error(t, err)
	_, err = parseScenario([]byte("canvas: {width: 0, height: 10, pixel_ratio: 1}\n"))
	assert.Error(t, err)
	sc, err = parseScenario([]byte("color_mode: {mode: rainbow}\n"))
	require.NoError(t, err)
	_, err = sc.transaction()
	assert.Error(t, err)
}

func TestReplay(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sc, err := loadScenario("testdata/scenario.yaml")
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rep, err := replay(ctx, renderer.DefaultConfig(), sc)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, rep.Order)
	assert.Equal(t, []string{"a"}, rep.Collapsed)
	assert.Equal(t, "Beta", rep.ColorBar)
	require.Len(t, rep.Labels, 2)
	assert.Equal(t, labelReport{ID: "l", Active: true, Selected: []int{1}}, rep.Labels[0])
	assert.Equal(t, labelReport{ID: "m", Selected: []int{2, 3}}, rep.Labels[1])
	require.Len(t, rep.Brushes["a"]["l"], 1)
	assert.InDelta(t, 0.2, rep.Brushes["a"]["l"][0].Range[0], 1e-3)
	assert.InDelta(t, 0.6, rep.Brushes["a"]["l"][0].Range[1], 1e-3)

	var out bytes.Buffer
	require.NoError(t, rep.write(&out, "text"))
	assert.Contains(t, out.String(), "order:     [a b]")
	assert.Contains(t, out.String(), "label *l: 1 selected [1]")
	assert.Contains(t, out.String(), "brush b/m: [0.600, 1.000]")

	out.Reset()
	require.NoError(t, rep.write(&out, "yaml"))
	var back report
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &back))
	assert.Equal(t, rep.Labels, back.Labels)
}

func TestReplayErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sc, err := parseScenario([]byte(`
axes:
  - {key: a, label: A, datums: [1, 2]}
gestures:
  - {axis: z, from: 0.5}
`))
	require.NoError(t, err)
	_, err = replay(context.Background(), renderer.DefaultConfig(), sc)
	assert.Error(t, err)

	sc, err = parseScenario([]byte(`
axes:
  - {key: a, label: A, datums: [1, 2]}
order: [a, b]
`))
	require.NoError(t, err)
	_, err = replay(context.Background(), renderer.DefaultConfig(), sc)
	assert.Error(t, err)
}
