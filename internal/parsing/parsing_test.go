package parsing

import (
	"testing"
)

// ---------------------------------------------------------------------------
// TestBulletRecord_Matches
// ---------------------------------------------------------------------------

func TestBulletRecord_Matches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		record BulletRecord
		token  string
		level  int
		want   bool
	}{
		{"strict at level", BulletRecord{From: "-", Level: 0, Strict: true}, "-", 0, true},
		{"strict deeper", BulletRecord{From: "-", Level: 0, Strict: true}, "-", 1, false},
		{"loose at level", BulletRecord{From: "-", Level: 1}, "-", 1, true},
		{"loose deeper", BulletRecord{From: "-", Level: 1}, "-", 3, true},
		{"loose shallower", BulletRecord{From: "-", Level: 1}, "-", 0, false},
		{"other token", BulletRecord{From: "*"}, "+", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.record.Matches(tt.token, tt.level); got != tt.want {
				t.Errorf("Matches(%q, %d) = %v, want %v", tt.token, tt.level, got, tt.want)
			}
		})
	}
}

func TestDefaultBullets_DashLevels(t *testing.T) {
	t.Parallel()

	first := func(level int) string {
		for _, r := range DefaultBullets() {
			if r.Matches("-", level) {
				return r.To
			}
		}
		return ""
	}
	if got := first(0); got != BulletDisc {
		t.Errorf("level 0 dash = %q, want disc", got)
	}
	if got := first(2); got != BulletCircle {
		t.Errorf("level 2 dash = %q, want circle", got)
	}
}

// ---------------------------------------------------------------------------
// TestBibliography_Lookup
// ---------------------------------------------------------------------------

func TestBibliography_Lookup(t *testing.T) {
	t.Parallel()

	b := Bibliography{{Key: "a"}, {Key: "b", Title: "Second"}}

	n, r, ok := b.Lookup("b")
	if !ok || n != 2 || r.Title != "Second" {
		t.Errorf("Lookup(b) = %d, %+v, %v", n, r, ok)
	}
	if _, _, ok := b.Lookup("c"); ok {
		t.Error("Lookup(c) found a missing key")
	}
}

// ---------------------------------------------------------------------------
// TestConfiguration_Clone
// ---------------------------------------------------------------------------

func TestConfiguration_Clone(t *testing.T) {
	t.Parallel()

	orig := DefaultConfiguration()
	orig.References["k"] = "v"
	orig.Bibliography = Bibliography{{Key: "x"}}

	c := orig.Clone()
	c.References["k"] = "changed"
	c.Bullets[0].To = "changed"
	c.Bibliography[0].Key = "changed"
	c.StrictListCheck = false

	if orig.References["k"] != "v" || orig.Bullets[0].To != BulletDisc || orig.Bibliography[0].Key != "x" {
		t.Error("Clone shares state with the original")
	}
	if !orig.StrictListCheck {
		t.Error("Clone shares scalar fields with the original")
	}
}

// ---------------------------------------------------------------------------
// TestContext
// ---------------------------------------------------------------------------

func TestNewContext_Defaults(t *testing.T) {
	t.Parallel()

	pc := NewContext(nil, nil, nil)
	if pc.Config == nil || pc.Logger == nil || pc.Images == nil {
		t.Fatalf("NewContext left nil fields: %+v", pc)
	}
	if !pc.Config.StrictImageSrcCheck {
		t.Error("nil configuration did not fall back to defaults")
	}
}

func TestContext_Location(t *testing.T) {
	t.Parallel()

	base := NewContext(nil, nil, nil)
	doc := base.InDocument("intro")
	ch := doc.InChapter("setup")

	if base.Location != (Location{}) {
		t.Errorf("base moved: %+v", base.Location)
	}
	if doc.Location != (Location{Document: "intro"}) {
		t.Errorf("InDocument = %+v", doc.Location)
	}
	if ch.Location != (Location{Document: "intro", Chapter: "setup"}) {
		t.Errorf("InChapter = %+v", ch.Location)
	}
	if ch.Config != base.Config || ch.Images != base.Images {
		t.Error("derived contexts must share configuration and image cache")
	}
}
