package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/welcomescreen/pkg/render/layout"
	"github.com/matzehuels/welcomescreen/pkg/render/sink"
)

func TestRunLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := runLayout("basic", path); err != nil {
		t.Fatalf("runLayout: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Style    string          `json:"style"`
		Geometry layout.Geometry `json:"geometry"`
		Glass    struct {
			Fill          string          `json:"fill"`
			Highlight     json.RawMessage `json:"highlight"`
			RightVignette bool            `json:"right_vignette"`
		} `json:"glass"`
		Gradients []struct {
			Pass string `json:"pass"`
		} `json:"gradients"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if doc.Style != "basic" {
		t.Errorf("style = %q", doc.Style)
	}
	if diff := layout.Diff(layout.Default(), doc.Geometry, 0); len(diff) != 0 {
		t.Errorf("geometry round trip differs: %v", diff)
	}
	if doc.Glass.Fill != "rgba(255,255,255,0.16)" {
		t.Errorf("glass.fill = %q", doc.Glass.Fill)
	}
	if doc.Glass.Highlight != nil || doc.Glass.RightVignette {
		t.Error("basic style should have no highlight or right vignette")
	}
	if len(doc.Gradients) != 2 || doc.Gradients[0].Pass != "vertical-vignette" {
		t.Errorf("gradients = %+v", doc.Gradients)
	}
}

func TestRunLayoutBadStyle(t *testing.T) {
	if err := runLayout("neon", ""); err == nil {
		t.Error("unknown style should fail")
	}
}

func TestConformanceTable(t *testing.T) {
	reports := []sink.Report{
		{Backend: "canvas"},
		{Backend: "svg", Mismatches: []layout.Mismatch{
			{Element: "title.y", Want: 460, Got: 470},
			{Element: "name.y", Want: 620, Got: 630},
		}},
	}

	out := conformanceTable(reports)
	for _, want := range []string{"BACKEND", "canvas", "svg", "title.y", "+1 more"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
