package wizard

import "testing"

func TestButtonBarFocusWalk(t *testing.T) {
	bar := BackNext()
	if bar.Focused() {
		t.Fatal("new bar starts focused")
	}

	bar.FocusFirst()
	if id, ok := bar.FocusedButton(); !ok || id != ButtonBack {
		t.Fatalf("FocusFirst landed on %v, want Back", id)
	}

	if !bar.FocusNext() {
		t.Fatal("FocusNext fell off with a button remaining")
	}
	if id, _ := bar.FocusedButton(); id != ButtonNext {
		t.Fatalf("focused %v, want Next", id)
	}

	// Walking off the end blurs the bar.
	if bar.FocusNext() {
		t.Error("FocusNext succeeded past the last button")
	}
	if bar.Focused() {
		t.Error("bar still focused after walking off")
	}
}

func TestButtonBarSkipsDisabled(t *testing.T) {
	bar := BackNext()
	bar.SetDisabled(ButtonBack, true)
	bar.FocusFirst()
	if id, _ := bar.FocusedButton(); id != ButtonNext {
		t.Fatalf("FocusFirst landed on %v, want Next over disabled Back", id)
	}

	// Disabling the focused button drops focus.
	bar.SetDisabled(ButtonNext, true)
	if bar.Focused() {
		t.Error("focus stayed on a disabled button")
	}
}

func TestSelectListPreservesSelectionByID(t *testing.T) {
	list := NewSelectList(40, 3)
	list.SetOptions([]Option{
		{ID: "a", Label: "Alpha"},
		{ID: "b", Label: "Beta"},
		{ID: "c", Label: "Gamma"},
	})
	list.SelectID("b")
	if list.SelectedID() != "b" {
		t.Fatalf("selected %q, want b", list.SelectedID())
	}

	// Refresh keeps the selection when the id survives.
	list.SetOptions([]Option{
		{ID: "b", Label: "Beta"},
		{ID: "c", Label: "Gamma"},
	})
	if list.SelectedID() != "b" {
		t.Errorf("selected %q after refresh, want b", list.SelectedID())
	}

	// Refresh resets to the top when it does not.
	list.SetOptions([]Option{{ID: "x", Label: "Other"}})
	if list.SelectedID() != "x" {
		t.Errorf("selected %q after removal, want x", list.SelectedID())
	}
}

func TestIsImagePath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"banner.png", true},
		{"photo.JPG", true},
		{"pic.jpeg", true},
		{"hero.webp", true},
		{"notes.txt", false},
		{"archive.png.zip", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := IsImagePath(tt.path); got != tt.want {
			t.Errorf("IsImagePath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate kept = %q", got)
	}
	if got := truncate("a very long label indeed", 10); got != "a very ..." {
		t.Errorf("truncate = %q", got)
	}
}
