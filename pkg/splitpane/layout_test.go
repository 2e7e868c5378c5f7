package splitpane

import "testing"

func TestComputeStyle(t *testing.T) {
	cases := []struct {
		name        string
		size        Size
		minSize     Size
		orientation Orientation
		want        string
	}{
		{"width from size", Size{240, UnitPx}, Size{}, Vertical, "width:240px;"},
		{"height from size", Size{240, UnitPx}, Size{}, Horizontal, "height:240px;"},
		{"flex fill", Size{}, Size{}, Vertical, "flex:1;"},
		{"min then flex", Size{}, Size{100, UnitPx}, Horizontal, "min-height:100px;flex:1;"},
		{"min then size", Size{30, UnitPercent}, Size{10, UnitPercent}, Vertical, "min-width:10%;width:30%;"},
		{"rem size", Size{2, UnitRem}, Size{}, Vertical, "width:2rem;"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeStyle(tc.size, tc.minSize, tc.orientation)
			if got != tc.want {
				t.Errorf("ComputeStyle(%+v, %+v, %v) = %q, want %q",
					tc.size, tc.minSize, tc.orientation, got, tc.want)
			}
		})
	}
}

// ComputeStyle is idempotent: recomputing from the same inputs yields the
// same declarations.
func TestComputeStyleIdempotent(t *testing.T) {
	a := ComputeStyle(Size{240, UnitPx}, Size{100, UnitPx}, Vertical)
	b := ComputeStyle(Size{240, UnitPx}, Size{100, UnitPx}, Vertical)
	if a != b {
		t.Errorf("ComputeStyle not idempotent: %q vs %q", a, b)
	}
}

// Every expression the parser accepts must compute a style without panics
// or surprises.
func TestParseComputeRoundTrip(t *testing.T) {
	exprs := []string{"", "240px", "30%", "2rem", "5", "12em", "50vh", "75vw"}
	for _, sizeExpr := range exprs {
		for _, minExpr := range exprs {
			size, err := ParseSize(sizeExpr)
			if err != nil {
				t.Fatalf("ParseSize(%q): %v", sizeExpr, err)
			}
			min, err := ParseSize(minExpr)
			if err != nil {
				t.Fatalf("ParseSize(%q): %v", minExpr, err)
			}
			for _, o := range []Orientation{Vertical, Horizontal} {
				if got := ComputeStyle(size, min, o); got == "" {
					t.Errorf("ComputeStyle(%q, %q, %v) produced empty style", sizeExpr, minExpr, o)
				}
			}
		}
	}
}

func TestParseOrientation(t *testing.T) {
	cases := []struct {
		input   string
		want    Orientation
		wantErr bool
	}{
		{"", Vertical, false},
		{"vertical", Vertical, false},
		{"horizontal", Horizontal, false},
		{"diagonal", Vertical, true},
	}
	for _, tc := range cases {
		got, err := ParseOrientation(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseOrientation(%q) expected error", tc.input)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseOrientation(%q) = %v, %v; want %v", tc.input, got, err, tc.want)
		}
	}
}
