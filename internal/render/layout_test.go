package render

import (
	"reflect"
	"testing"

	"github.com/sensordonut/sensordonut/internal/card"
)

func TestResolvePlacement(t *testing.T) {
	tests := []struct {
		pos       card.Position
		isLabel   bool
		wantPos   card.Position
		wantAnch  Anchor
		wantOrder int
	}{
		{card.PositionInside, false, card.PositionInside, AnchorCenter, 0},
		{card.PositionInside, true, card.PositionInside, AnchorCenter, 1},
		{card.PositionLeft, false, card.PositionLeft, AnchorLeft, 1},
		{card.PositionRight, true, card.PositionRight, AnchorRight, 0},
		{card.PositionAbove, true, card.PositionAbove, AnchorTop, 0},
		{card.PositionBelow, false, card.PositionBelow, AnchorBottom, 1},
		{card.PositionUnset, false, card.PositionBelow, AnchorBottom, 1},
		{card.Position("diagonal"), true, card.PositionBelow, AnchorBottom, 0},
	}
	for _, tt := range tests {
		got := ResolvePlacement(tt.pos, tt.isLabel)
		if got.Position != tt.wantPos || got.Anchor != tt.wantAnch || got.Order != tt.wantOrder {
			t.Errorf("ResolvePlacement(%q, label=%v) = %+v, want {%q %q %d}",
				tt.pos, tt.isLabel, got, tt.wantPos, tt.wantAnch, tt.wantOrder)
		}
	}
}

func TestResolveOffset(t *testing.T) {
	h, err := card.ParseLength("-10")
	if err != nil {
		t.Fatal(err)
	}
	got := ResolveOffset(h, card.Px(5))
	want := Offset{Left: "-10px", Top: "5px", Absolute: true}
	if got != want {
		t.Errorf("ResolveOffset = %+v, want %+v", got, want)
	}

	zero := ResolveOffset(card.Length{}, card.Length{})
	if zero.Absolute || zero.Left != "0px" || zero.Top != "0px" {
		t.Errorf("zero offset = %+v, want {0px 0px false}", zero)
	}

	oneAxis := ResolveOffset(card.Length{}, card.Px(3))
	if !oneAxis.Absolute {
		t.Error("a single non-zero axis should activate absolute positioning")
	}
}

func TestLayout_BothInsideStackValueFirst(t *testing.T) {
	d := card.DefaultDonut()
	d.ValuePosition = card.PositionInside
	d.LabelPosition = card.PositionInside

	l := ResolveLayout(d)
	if got, want := l.Inside(), []BlockKind{BlockValue, BlockLabel}; !reflect.DeepEqual(got, want) {
		t.Errorf("Inside = %v, want %v", got, want)
	}
	if len(l.Outside()) != 0 {
		t.Errorf("Outside = %+v, want none", l.Outside())
	}
}

func TestLayout_SharedOutsideSlotLabelFirst(t *testing.T) {
	d := card.DefaultDonut()
	d.ValuePosition = card.PositionBelow
	d.LabelPosition = card.PositionBelow

	groups := ResolveLayout(d).Outside()
	if len(groups) != 1 {
		t.Fatalf("Outside: got %d groups, want 1", len(groups))
	}
	if got, want := groups[0].Blocks, []BlockKind{BlockLabel, BlockValue}; !reflect.DeepEqual(got, want) {
		t.Errorf("Blocks = %v, want %v", got, want)
	}
}

func TestLayout_GroupOrderAndOffset(t *testing.T) {
	d := card.DefaultDonut()
	d.ValuePosition = card.PositionRight
	d.LabelPosition = card.PositionAbove
	d.AlignH = card.Px(-4)

	groups := ResolveLayout(d).Outside()
	if len(groups) != 2 {
		t.Fatalf("Outside: got %d groups, want 2", len(groups))
	}
	if groups[0].Position != card.PositionAbove || groups[1].Position != card.PositionRight {
		t.Errorf("group order: got %q, %q; want above, right", groups[0].Position, groups[1].Position)
	}
	for _, g := range groups {
		if !g.Offset.Absolute || g.Offset.Left != "-4px" || g.Offset.Top != "0px" {
			t.Errorf("group %q offset = %+v", g.Position, g.Offset)
		}
	}
}

func TestLayout_HiddenBlocks(t *testing.T) {
	d := card.DefaultDonut()
	d.ShowValue = false

	l := ResolveLayout(d)
	if l.Value != nil {
		t.Errorf("Value placement = %+v, want nil when show_value is false", l.Value)
	}
	if l.Label == nil || l.Label.Position != card.PositionBelow {
		t.Errorf("Label placement = %+v, want below", l.Label)
	}
	if len(l.Inside()) != 0 {
		t.Errorf("Inside = %v, want empty", l.Inside())
	}

	d.ShowName = false
	l = ResolveLayout(d)
	if len(l.Inside()) != 0 || len(l.Outside()) != 0 {
		t.Error("no blocks should be placed when both are hidden")
	}
}
