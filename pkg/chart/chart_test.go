package chart

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/inflate/pkg/errors"
	"github.com/matzehuels/inflate/pkg/growth"
)

var reference = growth.Request{FirstCellHeight: 0.001, Layers: 10, TotalHeight: 0.05}

func solve(t *testing.T, req growth.Request) growth.Result {
	t.Helper()
	res, err := growth.Solve(req, growth.Options{})
	if err != nil {
		t.Fatalf("growth.Solve() error: %v", err)
	}
	return res
}

func TestValidateKind(t *testing.T) {
	tests := []struct {
		kind    string
		wantErr bool
	}{
		{"residual", false},
		{"layers", false},
		{"bars", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateKind(tt.kind)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateKind(%q) error = %v, wantErr %v", tt.kind, err, tt.wantErr)
		}
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"out.png", false},
		{"out.SVG", false},
		{"dir/out.pdf", false},
		{"out.gif", true},
		{"out", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v, want %v", tt.path, errors.GetCode(err), errors.ErrCodeInvalidFormat)
		}
	}
}

func TestResidualCurve(t *testing.T) {
	p, err := ResidualCurve(reference, solve(t, reference), 50)
	if err != nil {
		t.Fatalf("ResidualCurve() error: %v", err)
	}
	if !strings.Contains(p.Title.Text, "Residual") {
		t.Errorf("Title = %q, want residual title", p.Title.Text)
	}
	if p.X.Min > growth.LowerBound || p.X.Max < growth.InitialUpperBound {
		t.Errorf("X range = [%g, %g], want it to cover [%g, %g]", p.X.Min, p.X.Max, growth.LowerBound, growth.InitialUpperBound)
	}
}

func TestResidualCurveFollowsExpansion(t *testing.T) {
	req := growth.Request{FirstCellHeight: 0.001, Layers: 10, TotalHeight: 5}
	res := solve(t, req)
	if res.Expansions == 0 {
		t.Fatal("expected the bracket to expand")
	}

	p, err := ResidualCurve(req, res, 0)
	if err != nil {
		t.Fatalf("ResidualCurve() error: %v", err)
	}
	if p.X.Max < res.GrowthRatio {
		t.Errorf("X.Max = %g, want >= root %g", p.X.Max, res.GrowthRatio)
	}
}

func TestLayerHeights(t *testing.T) {
	layers := growth.Distribute(reference, solve(t, reference).GrowthRatio)

	p, err := LayerHeights(layers)
	if err != nil {
		t.Fatalf("LayerHeights() error: %v", err)
	}
	if p.Title.Text != "Layer heights, 10 layers" {
		t.Errorf("Title = %q, want %q", p.Title.Text, "Layer heights, 10 layers")
	}
}

func TestLayerHeightsEmpty(t *testing.T) {
	if _, err := LayerHeights(nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("LayerHeights(nil) error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestLayerLabels(t *testing.T) {
	short := layerLabels(3)
	if strings.Join(short, ",") != "1,2,3" {
		t.Errorf("layerLabels(3) = %v, want [1 2 3]", short)
	}

	long := layerLabels(45)
	shown := 0
	for _, l := range long {
		if l != "" {
			shown++
		}
	}
	if shown > maxLabels+1 {
		t.Errorf("layerLabels(45) shows %d labels, want at most %d", shown, maxLabels+1)
	}
	if long[0] != "1" || long[44] != "45" {
		t.Errorf("layerLabels(45) ends = %q, %q, want 1, 45", long[0], long[44])
	}
}

func TestSave(t *testing.T) {
	res := solve(t, reference)
	residual, err := ResidualCurve(reference, res, 0)
	if err != nil {
		t.Fatalf("ResidualCurve() error: %v", err)
	}
	bars, err := LayerHeights(growth.Distribute(reference, res.GrowthRatio))
	if err != nil {
		t.Fatalf("LayerHeights() error: %v", err)
	}

	dir := t.TempDir()
	for _, name := range []string{"residual.png", "residual.svg"} {
		path := filepath.Join(dir, name)
		if err := Save(residual, path, 0, 0); err != nil {
			t.Fatalf("Save(%s) error: %v", name, err)
		}
		assertNonEmpty(t, path)
	}

	path := filepath.Join(dir, "layers.pdf")
	if err := Save(bars, path, 0, 0); err != nil {
		t.Fatalf("Save(layers.pdf) error: %v", err)
	}
	assertNonEmpty(t, path)

	if err := Save(bars, filepath.Join(dir, "layers.gif"), 0, 0); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Save(.gif) error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func assertNonEmpty(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	if info.Size() == 0 {
		t.Errorf("%s is empty", path)
	}
}
