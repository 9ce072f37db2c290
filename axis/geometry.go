package axis

import (
	"github.com/chewxy/math32"
	"github.com/npillmayer/parcoords"
	"github.com/npillmayer/parcoords/coords"
)

type local = coords.Local

func (ax *Axis) remLength(rem float32) (w, h float32) {
	lw, lh := ax.Axes().remLengthLocal(rem)
	return lw.L, lh.L
}

func (ax *Axis) textLength(text string) (w, h float32) {
	lw, lh := ax.Axes().textLengthLocal(text)
	return lw.L, lh.L
}

// axisLineEnds returns the local y of the line ends for the whole data range.
func (ax *Axis) axisLineEnds() (lo, hi float32) {
	_, topPadding := ax.remLength(axisTopPadding)
	_, labelPadding := ax.remLength(labelPaddingRem)
	_, labelMargin := ax.remLength(labelMarginRem)
	_, minLabelHeight := ax.textLength(ax.minLabel)
	_, maxLabelHeight := ax.textLength(ax.maxLabel)
	_, labelHeight := ax.textLength(ax.label)

	lo = minLabelHeight + labelMargin
	hi = localAxisHeight - topPadding - labelPadding - labelHeight - labelPadding -
		maxLabelHeight - labelMargin
	return
}

// AxisLineRange returns the end points of the axis line, covering the
// visible range.
func (ax *Axis) AxisLineRange() (start, end coords.Position[local]) {
	lo, hi := ax.axisLineEnds()
	start = coords.Pos[local](AxisX, parcoords.Lerp(lo, hi, ax.visibleRangeNorm[0]))
	end = coords.Pos[local](AxisX, parcoords.Lerp(lo, hi, ax.visibleRangeNorm[1]))
	return
}

// AxisValueAt returns the normalized data value at the height of a local
// position.
func (ax *Axis) AxisValueAt(p coords.Position[local]) float32 {
	lo, hi := ax.axisLineEnds()
	return parcoords.InvLerp(p.Y, lo, hi)
}

// PositionOfValue returns the local position of a normalized data value on
// the axis line.
func (ax *Axis) PositionOfValue(value float32) coords.Position[local] {
	lo, hi := ax.axisLineEnds()
	return coords.Pos[local](AxisX, parcoords.Lerp(lo, hi, value))
}

// AxisValueLength returns the local height of one normalized data unit.
func (ax *Axis) AxisValueLength() float32 {
	lo, hi := ax.axisLineEnds()
	return math32.Abs(hi - lo)
}

// LabelPosition returns the position of the axis label.
func (ax *Axis) LabelPosition() coords.Position[local] {
	_, topPadding := ax.remLength(axisTopPadding)
	_, labelHeight := ax.textLength(ax.label)
	_, padding := ax.remLength(axisLinePaddingRem)
	return coords.Pos[local](AxisX, localAxisHeight-topPadding-padding-labelHeight)
}

// MinLabelPosition returns the position of the min label, below the axis
// line.
func (ax *Axis) MinLabelPosition() coords.Position[local] {
	_, margin := ax.remLength(labelMarginRem)
	_, h := ax.textLength(ax.minLabel)
	start, _ := ax.AxisLineRange()
	return coords.Pos[local](start.X, start.Y-margin-h)
}

// MaxLabelPosition returns the position of the max label, above the axis
// line.
func (ax *Axis) MaxLabelPosition() coords.Position[local] {
	_, margin := ax.remLength(labelMarginRem)
	_, h := ax.textLength(ax.maxLabel)
	_, end := ax.AxisLineRange()
	return coords.Pos[local](end.X, end.Y+margin+h)
}

// TicksRange returns the line along which ticks are drawn. For expanded
// axes it sits at the outer edge of the curve band.
func (ax *Axis) TicksRange(expanded bool) (start, end coords.Position[local]) {
	start, end = ax.AxisLineRange()
	if expanded {
		x := ax.CurvesBoundingBox().Start().X
		start.X, end.X = x, x
	}
	padding, _ := ax.remLength(ticksPaddingRem)
	offset := coords.Off[local](padding, ax.maxTickHeight/2)
	return start.SubOffset(offset), end.SubOffset(offset)
}

// AxisLineBoundingBox returns the box around the axis line and its padding.
func (ax *Axis) AxisLineBoundingBox() coords.Aabb[local] {
	start, end := ax.AxisLineRange()
	w, _ := ax.remLength(axisLinePaddingRem + axisLinePaddingRem + axisLineSizeRem)
	half := coords.Off[local](w/2, 0)
	return coords.NewAabb(start.SubOffset(half), end.Add(half))
}

// CurvesBoundingBox returns the band left of the axis line where the curves
// of an expanded axis are drawn. It is empty for other states.
func (ax *Axis) CurvesBoundingBox() coords.Aabb[local] {
	end := coords.Pos[local](AxisX, 1)
	if ax.IsExpanded() {
		return coords.NewAabb(coords.Pos[local](curveBandStart, 0), end)
	}
	return coords.NewAabb(end, end)
}

// CurveOffsetAtCurveValue returns the horizontal offset from the axis line
// at which a curve value in [0,1] is drawn.
func (ax *Axis) CurveOffsetAtCurveValue(value float32) coords.Offset[local] {
	t := parcoords.Lerp(minCurveT, maxCurveT, value)
	return coords.Off[local](parcoords.Lerp(0, curveBandStart-AxisX, t), 0)
}

// SelectionOffsetAtRank returns the horizontal offset from the axis line of
// the selections of a rank.
func (ax *Axis) SelectionOffsetAtRank(rank int) coords.Offset[local] {
	size, _ := ax.remLength(selectionLineSizeRem)
	padding, _ := ax.remLength(selectionLinePaddingRem)
	margin, _ := ax.remLength(selectionLineMarginRem)
	return coords.Off[local](float32(rank)*(size+padding+padding+margin), 0)
}

// SelectionsBoundingBox returns the box covering the selection lines of a
// label. Collapsed axes show rank 0 only.
func (ax *Axis) SelectionsBoundingBox(label int) coords.Aabb[local] {
	rank := 0
	if ax.IsExpanded() {
		rank = ax.builders[label].MaxRank()
	}
	radius, _ := ax.remLength(controlPointsRadiusRem)
	startX := AxisX - radius
	endX := AxisX + ax.SelectionOffsetAtRank(rank).X + radius
	return coords.NewAabb(coords.Pos[local](startX, 0), coords.Pos[local](endX, 1))
}

// SelectionRankAtPosition returns the rank of the selection line under a
// local position.
func (ax *Axis) SelectionRankAtPosition(p coords.Position[local], label int) (int, bool) {
	maxRank := ax.builders[label].MaxRank()
	radius, _ := ax.remLength(controlPointsRadiusRem)
	for rank := 0; rank <= maxRank; rank++ {
		middle := AxisX + ax.SelectionOffsetAtRank(rank).X
		if p.X >= middle-radius && p.X <= middle+radius {
			return rank, true
		}
		if p.X < middle-radius {
			break
		}
	}
	return -1, false
}

// LabelBoundingBox returns the box around the axis label.
func (ax *Axis) LabelBoundingBox() coords.Aabb[local] {
	labelWidth, labelHeight := ax.textLength(ax.label)
	_, topPadding := ax.remLength(axisTopPadding)
	padW, padH := ax.remLength(axisLinePaddingRem)
	start := coords.Pos[local](
		AxisX-padW-labelWidth/2,
		localAxisHeight-topPadding-padH-labelHeight-padH,
	)
	end := coords.Pos[local](AxisX+padW+labelWidth/2, localAxisHeight-topPadding)
	return coords.NewAabb(start, end)
}

// BoundingBox returns the box around all parts of the axis. It includes the
// selection lines of the given label if hasLabel is set. Expanded axes
// cover the whole local width.
func (ax *Axis) BoundingBox(label int, hasLabel bool) coords.Aabb[local] {
	if ax.IsExpanded() {
		return coords.NewAabb(coords.Pos[local](0, 0), coords.Pos[local](1, 1))
	}
	bb := ax.LabelBoundingBox().Union(ax.AxisLineBoundingBox())
	if hasLabel {
		bb = bb.Union(ax.SelectionsBoundingBox(label))
	}
	lo := parcoords.Clamp(bb.Start().X, curveBandStart, 1-curveBandStart)
	hi := parcoords.Clamp(bb.End().X, curveBandStart, 1-curveBandStart)
	return coords.NewAabb(coords.Pos[local](lo, 0), coords.Pos[local](hi, 1))
}

// WorldBoundingBox returns BoundingBox in world space.
func (ax *Axis) WorldBoundingBox(label int, hasLabel bool) coords.Aabb[coords.World] {
	return ax.SpaceTransformer().Inverse().Aabb(ax.BoundingBox(label, hasLabel))
}
