package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/matzehuels/taskloop/pkg/errors"
)

func TestGraphDOTStdout(t *testing.T) {
	out, _, err := execute(t, "graph")
	if err != nil {
		t.Fatalf("graph error = %v", err)
	}
	for _, want := range []string{"digraph G", `"t0" -> "t1"`, `step: 4`} {
		if !strings.Contains(out, want) {
			t.Errorf("graph output missing %q:\n%s", want, out)
		}
	}
}

func TestGraphToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loop.dot")

	out, _, err := execute(t, "graph", "-o", path)
	if err != nil {
		t.Fatalf("graph error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "digraph G {") {
		t.Errorf("file content = %q", data)
	}
	if !strings.Contains(out, path) {
		t.Errorf("output should name the written file, got %q", out)
	}
}

func TestGraphCycleHighlights(t *testing.T) {
	path := writeLoop(t, "cycle.toml", cycleLoop)

	out, _, err := execute(t, "graph", "--config", path)
	if err != nil {
		t.Fatalf("graph error = %v", err)
	}
	if !strings.Contains(out, "color=red") {
		t.Errorf("cyclic stages should be highlighted:\n%s", out)
	}
}

func TestGraphUnsupportedFormat(t *testing.T) {
	_, _, err := execute(t, "graph", "--format", "png")
	if !apperrors.Is(err, apperrors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestGraphJSON(t *testing.T) {
	out, _, err := execute(t, "graph", "--format", "json")
	if err != nil {
		t.Fatalf("graph error = %v", err)
	}
	for _, want := range []string{`"name": "collide"`, `"handler": "check-collisions"`, `"step": 3`} {
		if !strings.Contains(out, want) {
			t.Errorf("json output missing %q:\n%s", want, out)
		}
	}
}

func TestGraphJSONRoundTripThroughRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loop.json")

	out, _, err := execute(t, "graph", "-o", path)
	if err != nil {
		t.Fatalf("graph error = %v", err)
	}
	if !strings.Contains(out, "Wrote json graph") {
		t.Errorf("format should follow the .json extension, got %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "{") {
		t.Fatalf("file content = %q", data)
	}

	out, _, err = execute(t, "run", "--config", path)
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	if out != defaultLoopOutput {
		t.Errorf("output =\n%s\nwant\n%s", out, defaultLoopOutput)
	}
}

func TestGraphJSONRoundTripKeepsCycle(t *testing.T) {
	cyclic := writeLoop(t, "cycle.toml", cycleLoop)
	path := filepath.Join(t.TempDir(), "cycle.json")

	if _, _, err := execute(t, "graph", "--config", cyclic, "--format", "json", "-o", path); err != nil {
		t.Fatalf("graph error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"blocked": true`) {
		t.Errorf("cyclic export should mark blocked stages:\n%s", data)
	}

	_, _, err = execute(t, "run", "--strict", "--config", path)
	if !apperrors.Is(err, apperrors.ErrCodeCycleDetected) {
		t.Errorf("error = %v, want CYCLE_DETECTED", err)
	}
}
