package render

import (
	"sort"

	"github.com/sensordonut/sensordonut/internal/card"
)

// Anchor is the offset class of a text block relative to the donut's
// bounding box.
type Anchor string

const (
	// AnchorCenter stacks the block in the centered slot inside the ring.
	AnchorCenter Anchor = "center"
	// AnchorLeft places the block outside the circle on the horizontal axis.
	AnchorLeft Anchor = "left"
	// AnchorRight mirrors AnchorLeft.
	AnchorRight Anchor = "right"
	// AnchorTop places the block above the circle, centered horizontally.
	AnchorTop Anchor = "top"
	// AnchorBottom stacks the block beneath the circle, centered horizontally.
	AnchorBottom Anchor = "bottom"
)

// BlockKind names one of the two text blocks a donut can draw.
type BlockKind string

const (
	BlockValue BlockKind = "value"
	BlockLabel BlockKind = "label"
)

// Placement is the resolved slot of one text block.
type Placement struct {
	Position card.Position `json:"position"`
	Anchor   Anchor        `json:"anchor"`

	// Order sorts blocks that share a slot: inside the ring the value comes
	// first, outside it the label does.
	Order int `json:"order"`
}

// Inside reports whether the block is drawn inside the ring.
func (p Placement) Inside() bool {
	return p.Position == card.PositionInside
}

var anchors = map[card.Position]Anchor{
	card.PositionInside: AnchorCenter,
	card.PositionLeft:   AnchorLeft,
	card.PositionRight:  AnchorRight,
	card.PositionAbove:  AnchorTop,
	card.PositionBelow:  AnchorBottom,
}

// ResolvePlacement maps pos onto its slot. Unset or unknown positions fall
// back to below.
func ResolvePlacement(pos card.Position, isLabel bool) Placement {
	anchor, ok := anchors[pos]
	if !ok {
		pos, anchor = card.PositionBelow, AnchorBottom
	}

	order := 0
	switch {
	case pos == card.PositionInside && isLabel:
		order = 1
	case pos != card.PositionInside && !isLabel:
		order = 1
	}
	return Placement{Position: pos, Anchor: anchor, Order: order}
}

// Offset is a manual position override for the outside text container.
type Offset struct {
	Left string `json:"left"`
	Top  string `json:"top"`

	// Absolute is set when either axis is non-zero. The container is then
	// positioned at (Left, Top) instead of its anchor class default.
	Absolute bool `json:"absolute"`
}

// ResolveOffset normalizes the align_h and align_v lengths into CSS pixel
// strings.
func ResolveOffset(h, v card.Length) Offset {
	return Offset{
		Left:     h.CSS(),
		Top:      v.CSS(),
		Absolute: !h.IsZero() || !v.IsZero(),
	}
}

// Layout holds the placements of a donut's visible text blocks. A hidden
// block has a nil placement.
type Layout struct {
	Value  *Placement `json:"value,omitempty"`
	Label  *Placement `json:"label,omitempty"`
	Offset Offset     `json:"offset"`
}

// Group is the set of blocks drawn in one outside slot.
type Group struct {
	Position card.Position `json:"position"`
	Anchor   Anchor        `json:"anchor"`
	Blocks   []BlockKind   `json:"blocks"`
	Offset   Offset        `json:"offset"`
}

// ResolveLayout resolves the value and label placements for d.
func ResolveLayout(d card.Donut) Layout {
	l := Layout{Offset: ResolveOffset(d.AlignH, d.AlignV)}
	if d.ShowValue {
		p := ResolvePlacement(d.ValuePosition, false)
		l.Value = &p
	}
	if d.ShowName {
		p := ResolvePlacement(d.LabelPosition, true)
		l.Label = &p
	}
	return l
}

// Inside returns the blocks stacked in the centered slot, top to bottom.
func (l Layout) Inside() []BlockKind {
	var out []BlockKind
	for _, b := range l.blocks() {
		if b.placement.Inside() {
			out = append(out, b.kind)
		}
	}
	return out
}

// outsideOrder fixes the order groups are emitted in.
var outsideOrder = []card.Position{
	card.PositionAbove,
	card.PositionLeft,
	card.PositionRight,
	card.PositionBelow,
}

// Outside returns the non-inside groups in above, left, right, below order.
// Each group carries the layout's manual offset.
func (l Layout) Outside() []Group {
	var out []Group
	for _, pos := range outsideOrder {
		var g *Group
		for _, b := range l.blocks() {
			if b.placement.Position != pos {
				continue
			}
			if g == nil {
				g = &Group{Position: pos, Anchor: b.placement.Anchor, Offset: l.Offset}
			}
			g.Blocks = append(g.Blocks, b.kind)
		}
		if g != nil {
			out = append(out, *g)
		}
	}
	return out
}

type block struct {
	kind      BlockKind
	placement Placement
}

// blocks returns the visible blocks sorted by Order.
func (l Layout) blocks() []block {
	var out []block
	if l.Value != nil {
		out = append(out, block{BlockValue, *l.Value})
	}
	if l.Label != nil {
		out = append(out, block{BlockLabel, *l.Label})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].placement.Order < out[j].placement.Order
	})
	return out
}
