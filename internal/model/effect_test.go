package model

import "testing"

func TestEffect_RenderSingleSegment(t *testing.T) {
	// S1 continued into the compositor: led_count=10, segment covers
	// 2..8 with red at full opacity, everything else black.
	palette := NewPaletteBook()
	palette.Set("A", []RGB{{0, 0, 0}, {255, 0, 0}})

	eff := NewEffect(1, 10, 10)
	eff.PaletteName = "A"
	seg := NewSegment(1)
	seg.SetColor([4]int{1, 1, 1, 1})
	seg.SetTransparency([4]float64{1, 1, 1, 1})
	seg.SetLength([3]int{2, 2, 2})
	seg.SetMoveRange(0, 9)
	seg.SetCurrentPosition(5)
	eff.AddSegment(seg)

	frame := eff.Render(palette)
	for p, rgb := range frame {
		want := RGB{0, 0, 0}
		if p >= 2 && p <= 8 {
			want = RGB{255, 0, 0}
		}
		if rgb != want {
			t.Errorf("pixel %d = %v, want %v", p, rgb, want)
		}
	}
}

func TestEffect_CompositeTwoSegments(t *testing.T) {
	// S3: seg 1 red alpha=1 fully covering a pixel; seg 2 blue alpha=0.5
	// covering the same pixel, composited after (ascending id order).
	// Expected: (127,0,127) at opacity 1.0.
	palette := NewPaletteBook()
	palette.Set("A", []RGB{
		{0, 0, 0},
		{255, 0, 0}, // index 1: red
		{0, 0, 0},
		{0, 0, 255}, // index 3: blue
	})

	eff := NewEffect(1, 5, 10)
	eff.PaletteName = "A"

	segA := NewSegment(1)
	segA.SetColor([4]int{1, 1, 1, 1})
	segA.SetTransparency([4]float64{1, 1, 1, 1})
	segA.SetLength([3]int{0, 0, 0})
	segA.SetMoveRange(0, 4)
	segA.SetCurrentPosition(2)
	eff.AddSegment(segA)

	segB := NewSegment(2)
	segB.SetColor([4]int{3, 3, 3, 3})
	segB.SetTransparency([4]float64{0.5, 0.5, 0.5, 0.5})
	segB.SetLength([3]int{0, 0, 0})
	segB.SetMoveRange(0, 4)
	segB.SetCurrentPosition(2)
	eff.AddSegment(segB)

	frame := eff.Render(palette)
	got := frame[2]
	want := RGB{R: 127, G: 0, B: 127}
	// Allow +-1 for rounding.
	if abs(int(got.R)-int(want.R)) > 1 || got.G != want.G || abs(int(got.B)-int(want.B)) > 1 {
		t.Errorf("pixel 2 = %v, want ~%v", got, want)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestEffect_RemoveSegment(t *testing.T) {
	eff := NewEffect(1, 10, 10)
	eff.AddSegment(NewSegment(1))
	if !eff.RemoveSegment(1) {
		t.Fatal("expected RemoveSegment to report removal")
	}
	if eff.RemoveSegment(1) {
		t.Fatal("expected RemoveSegment to report no-op for missing segment")
	}
}

func TestEffect_SegmentIDsAscending(t *testing.T) {
	eff := NewEffect(1, 10, 10)
	eff.AddSegment(NewSegment(5))
	eff.AddSegment(NewSegment(1))
	eff.AddSegment(NewSegment(3))

	ids := eff.SegmentIDs()
	want := []int{1, 3, 5}
	for i, id := range want {
		if ids[i] != id {
			t.Errorf("SegmentIDs()[%d] = %d, want %d", i, ids[i], id)
		}
	}
}

func TestEffect_EnsureSegmentAutoCreates(t *testing.T) {
	eff := NewEffect(7, 225, 60)
	seg := eff.EnsureSegment(3)
	if seg == nil || seg.ID != 3 {
		t.Fatalf("expected auto-created segment 3, got %v", seg)
	}
	if eff.Segment(3) != seg {
		t.Error("EnsureSegment should register the new segment on the effect")
	}
}
