package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fragrancerater/adapters/memory"
)

func TestParseNotesSplitsAndTrims(t *testing.T) {
	notes := parseNotes(" bergamot, rose ,, musk")
	want := []string{"bergamot", "rose", "musk"}
	if len(notes) != len(want) {
		t.Fatalf("expected %v, got %v", want, notes)
	}
	for i := range want {
		if notes[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, notes)
		}
	}
}

func TestParseAccordsBareListDefaultsToFullIntensity(t *testing.T) {
	accords := parseAccords("woody, floral")
	if accords["woody"] != 1.0 || accords["floral"] != 1.0 {
		t.Fatalf("expected full intensity for bare accords, got %v", accords)
	}
}

func TestParseAccordsWithExplicitIntensity(t *testing.T) {
	accords := parseAccords("woody:0.8, floral:0.3")
	if accords["woody"] != 0.8 || accords["floral"] != 0.3 {
		t.Fatalf("expected explicit intensities, got %v", accords)
	}
}

func TestParseRowRejectsMissingNameOrBrand(t *testing.T) {
	colMap := mapColumns([]string{"name", "brand"})
	_, ok := parseRow([]string{"", "House"}, colMap)
	if ok {
		t.Fatal("expected row with empty name to be rejected")
	}
}

func TestParseRowExtractsYearFromFreeText(t *testing.T) {
	colMap := mapColumns([]string{"name", "brand", "year"})
	parsed, ok := parseRow([]string{"Scent", "House", "Launched in 2017"}, colMap)
	if !ok {
		t.Fatal("expected row to parse")
	}
	if parsed.launchYear == nil || *parsed.launchYear != 2017 {
		t.Fatalf("expected launch year 2017, got %v", parsed.launchYear)
	}
}

func TestImportFileCSVEndToEnd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.csv")
	content := "name,brand,year,gender,family,top_notes,heart_notes,base_notes,accords\n" +
		"Dawn,House A,2020,women,floral,bergamot,rose,musk,floral:0.9\n" +
		",House B,2019,men,woody,lemon,cedar,oud,woody:0.7\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cat := memory.NewCatalog()
	importer := NewImporter(cat)

	result, err := importer.ImportFile(context.Background(), path, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalRows != 2 {
		t.Fatalf("expected 2 total rows, got %d", result.TotalRows)
	}
	if result.Imported != 1 {
		t.Fatalf("expected 1 imported row (second has no name), got %d", result.Imported)
	}
	if result.Skipped != 1 {
		t.Fatalf("expected 1 skipped row, got %d", result.Skipped)
	}

	candidates, err := cat.IterCandidates(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 1 || candidates[0].Name != "Dawn" {
		t.Fatalf("expected catalog to contain Dawn, got %v", candidates)
	}
}

func TestImportFileDryRunDoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.csv")
	content := "name,brand\nDawn,House A\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cat := memory.NewCatalog()
	importer := NewImporter(cat)

	result, err := importer.ImportFile(context.Background(), path, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Imported != 1 {
		t.Fatalf("expected dry run to still count as imported, got %d", result.Imported)
	}

	candidates, err := cat.IterCandidates(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("expected dry run to write nothing, got %d", len(candidates))
	}
}
