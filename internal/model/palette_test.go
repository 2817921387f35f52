package model

import "testing"

func TestPaletteBook_SetFromFlatRGB(t *testing.T) {
	// S4: palette A gets 6 entries; get_color_by_id(5, "A") == (13,14,15).
	pb := NewPaletteBook()
	flat := []int{0, 0, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	if err := pb.SetFromFlatRGB("A", flat); err != nil {
		t.Fatalf("SetFromFlatRGB: %v", err)
	}

	if got := pb.ColorAt("A", 5); got != (RGB{13, 14, 15}) {
		t.Errorf("ColorAt(A, 5) = %v, want {13,14,15}", got)
	}
	if len(pb.Get("A")) != 6 {
		t.Errorf("palette A length = %d, want 6", len(pb.Get("A")))
	}
}

func TestPaletteBook_RejectsNonMultipleOf3(t *testing.T) {
	pb := NewPaletteBook()
	err := pb.SetFromFlatRGB("A", []int{1, 2, 3, 4})
	if err == nil {
		t.Fatal("expected error for list length not a multiple of 3")
	}
}

func TestPaletteBook_ClampsChannels(t *testing.T) {
	pb := NewPaletteBook()
	if err := pb.SetFromFlatRGB("B", []int{-10, 300, 128}); err != nil {
		t.Fatalf("SetFromFlatRGB: %v", err)
	}
	got := pb.ColorAt("B", 0)
	if got != (RGB{0, 255, 128}) {
		t.Errorf("ColorAt(B, 0) = %v, want {0,255,128}", got)
	}
}

func TestPaletteBook_UndefinedNameFallsBackToA(t *testing.T) {
	pb := NewPaletteBook()
	pb.Set("A", []RGB{{9, 9, 9}})
	got := pb.Get("Z")
	if len(got) != 1 || got[0] != (RGB{9, 9, 9}) {
		t.Errorf("Get(undefined) = %v, want fallback to palette A", got)
	}
}

func TestPaletteBook_UnsetIndexIsBlack(t *testing.T) {
	pb := NewPaletteBook()
	if got := pb.ColorAt("A", -1); got != (RGB{}) {
		t.Errorf("ColorAt(A, -1) = %v, want black", got)
	}
}

func TestPaletteBook_OutOfRangeIndexFallsBackToErrorColor(t *testing.T) {
	pb := NewPaletteBook()
	pb.Set("A", []RGB{{1, 2, 3}})
	if got := pb.ColorAt("A", 5); got != ErrorColor {
		t.Errorf("ColorAt out of range = %v, want ErrorColor %v", got, ErrorColor)
	}
}
