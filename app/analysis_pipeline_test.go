package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"axostats/domain/histo"
	"axostats/internal/config"
)

// fixtureCSV builds a two-region dataset: region A separates cleanly by
// age, region B has identical distributions at every age.
func fixtureCSV(t *testing.T) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("Age,Region,CellCount\n")
	for i, age := range []string{"4m", "24m", "48m"} {
		for v := 1; v <= 5; v++ {
			fmt.Fprintf(&b, "%s,A,%d\n", age, v+10*i)
		}
		for v := 0; v <= 4; v++ {
			fmt.Fprintf(&b, "%s,B,%d\n", age, v)
		}
	}
	path := filepath.Join(t.TempDir(), "counts.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func runPipeline(t *testing.T, input, outDir string) *AnalysisManifest {
	t.Helper()
	t.Setenv("INPUT_FILE", input)
	t.Setenv("OUTPUT_DIR", outDir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	manifest, err := NewPipeline(cfg).Run(context.Background())
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	return manifest
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	return lines
}

func TestPipeline_EndToEnd(t *testing.T) {
	input := fixtureCSV(t)
	outDir := t.TempDir()

	manifest := runPipeline(t, input, outDir)

	if manifest.Rows != 30 {
		t.Errorf("Rows = %d, want 30", manifest.Rows)
	}
	if manifest.Groups != 6 {
		t.Errorf("Groups = %d, want 3 ages x 2 regions", manifest.Groups)
	}
	// Every group is a short evenly spaced run, so nothing rejects
	// normality and the mean survives as the representative statistic.
	if manifest.Policy != histo.TendencyMean {
		t.Errorf("Policy = %s, want %s", manifest.Policy, histo.TendencyMean)
	}
	if len(manifest.Tables) != 6 {
		t.Errorf("Tables = %d, want 6", len(manifest.Tables))
	}
	// The radar needs three regions; with two it is skipped, the rest draw.
	if len(manifest.Images) != 3 {
		t.Errorf("Images = %d, want boxplot, ecdf and ecdf_zoom: %v", len(manifest.Images), manifest.Images)
	}
	for _, path := range append(append([]string{}, manifest.Tables...), manifest.Images...) {
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Errorf("export %s missing or empty (err=%v)", path, err)
		}
	}

	kruskal := readLines(t, filepath.Join(outDir, "epidermis_kruskal_wallis.csv"))
	if len(kruskal) != 3 {
		t.Fatalf("kruskal table has %d lines, want header plus one row per region", len(kruskal))
	}

	// Only region A clears the omnibus threshold, so the post-hoc holds
	// exactly its C(3,2) comparisons.
	dunn := readLines(t, filepath.Join(outDir, "epidermis_dunn_posthoc.csv"))
	if len(dunn) != 4 {
		t.Fatalf("dunn table has %d lines, want header plus 3 comparisons", len(dunn))
	}
	for _, line := range dunn[1:] {
		if !strings.HasPrefix(line, "A,") {
			t.Errorf("post-hoc row outside significant region: %q", line)
		}
	}

	recoded := readLines(t, filepath.Join(outDir, "epidermis_descriptives.csv"))
	for _, line := range recoded[1:] {
		if strings.HasPrefix(line, "4m,") || strings.HasPrefix(line, "24m,") || strings.HasPrefix(line, "48m,") {
			t.Errorf("age code not recoded in output: %q", line)
		}
	}
}

func TestPipeline_DeterministicTables(t *testing.T) {
	input := fixtureCSV(t)
	first := t.TempDir()
	second := t.TempDir()

	runPipeline(t, input, first)
	runPipeline(t, input, second)

	for _, name := range []string{
		"epidermis_descriptives.csv",
		"epidermis_shapiro.csv",
		"epidermis_kruskal_wallis.csv",
		"epidermis_dunn_posthoc.csv",
		"epidermis_mann_whitney.csv",
	} {
		a, err := os.ReadFile(filepath.Join(first, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		b, err := os.ReadFile(filepath.Join(second, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		if !bytes.Equal(a, b) {
			t.Errorf("%s differs between identical runs", name)
		}
	}
}
