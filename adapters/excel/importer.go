// Package excel implements a bulk catalog importer reading CSV or XLSX
// files with flexible column matching, adapted from the source's Kaggle
// importer (SPEC_FULL.md §11.3 "auxiliary pieces... a CSV bulk importer").
package excel

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"fragrancerater/domain/fragrance"
	"fragrancerater/ports"
)

// Result reports the outcome of an import run.
type Result struct {
	TotalRows int
	Imported  int
	Skipped   int
	Errors    []string
}

// column name candidates, lower-cased, mirroring the flexible matching
// the source importer performs against a Kaggle-style export.
var (
	nameCols          = []string{"name", "perfume", "fragrance", "title"}
	brandCols         = []string{"brand", "house", "designer", "company"}
	concentrationCols = []string{"concentration", "type", "strength"}
	yearCols          = []string{"year", "launch_year", "release_year", "launched"}
	genderCols        = []string{"gender", "for", "target", "sex"}
	familyCols        = []string{"family", "main_accords", "category"}
	topNotesCols      = []string{"top", "top_notes", "top notes", "opening"}
	heartNotesCols    = []string{"heart", "heart_notes", "heart notes", "middle", "middle_notes"}
	baseNotesCols     = []string{"base", "base_notes", "base notes", "dry_down", "drydown"}
	accordsCols       = []string{"accords", "accord", "notes", "scent_profile"}
)

var yearPattern = regexp.MustCompile(`\d{4}`)

// Importer reads a catalog file and writes it through a CatalogWriter.
type Importer struct {
	writer ports.CatalogWriter
}

// NewImporter wires an Importer to a catalog write port.
func NewImporter(writer ports.CatalogWriter) *Importer {
	return &Importer{writer: writer}
}

// ImportFile reads filePath (.csv or .xlsx) and upserts every valid row.
// dryRun parses and validates without calling the writer.
func (imp *Importer) ImportFile(ctx context.Context, filePath string, dryRun bool) (*Result, error) {
	rows, headers, err := readRows(filePath)
	if err != nil {
		return nil, err
	}
	if len(headers) == 0 {
		return &Result{Errors: []string{"file has no headers"}}, nil
	}

	colMap := mapColumns(headers)
	if colMap["name"] == -1 || colMap["brand"] == -1 {
		return &Result{Errors: []string{"file must have name and brand columns"}}, nil
	}

	result := &Result{}
	for i, row := range rows {
		result.TotalRows++
		parsed, ok := parseRow(row, colMap)
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing name or brand", i+2))
			result.Skipped++
			continue
		}

		if !dryRun {
			if err := imp.save(ctx, parsed); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+2, err))
				result.Skipped++
				continue
			}
		}
		result.Imported++
	}
	return result, nil
}

func (imp *Importer) save(ctx context.Context, p parsedFragrance) error {
	f := fragrance.Fragrance{
		Name:          p.name,
		Brand:         p.brand,
		Concentration: p.concentration,
		LaunchYear:    p.launchYear,
		GenderTarget:  p.genderTarget,
		PrimaryFamily: p.primaryFamily,
		Subfamily:     p.primaryFamily,
	}

	for _, n := range p.topNotes {
		noteID, err := imp.writer.UpsertNote(ctx, fragrance.Note{Name: n})
		if err != nil {
			return fmt.Errorf("upsert top note %q: %w", n, err)
		}
		f.Notes = append(f.Notes, fragrance.PositionedNote{Note: fragrance.Note{ID: noteID, Name: n}, Position: fragrance.PositionTop})
	}
	for _, n := range p.heartNotes {
		noteID, err := imp.writer.UpsertNote(ctx, fragrance.Note{Name: n})
		if err != nil {
			return fmt.Errorf("upsert heart note %q: %w", n, err)
		}
		f.Notes = append(f.Notes, fragrance.PositionedNote{Note: fragrance.Note{ID: noteID, Name: n}, Position: fragrance.PositionHeart})
	}
	for _, n := range p.baseNotes {
		noteID, err := imp.writer.UpsertNote(ctx, fragrance.Note{Name: n})
		if err != nil {
			return fmt.Errorf("upsert base note %q: %w", n, err)
		}
		f.Notes = append(f.Notes, fragrance.PositionedNote{Note: fragrance.Note{ID: noteID, Name: n}, Position: fragrance.PositionBase})
	}
	for accordType, intensity := range p.accords {
		f.Accords = append(f.Accords, fragrance.Accord{Type: accordType, Intensity: intensity})
	}

	return imp.writer.UpsertFragrance(ctx, f)
}

type parsedFragrance struct {
	name          string
	brand         string
	concentration string
	launchYear    *int
	genderTarget  string
	primaryFamily string
	topNotes      []string
	heartNotes    []string
	baseNotes     []string
	accords       map[string]float64
}

func mapColumns(headers []string) map[string]int {
	lower := make(map[string]int, len(headers))
	for i, h := range headers {
		lower[strings.ToLower(strings.TrimSpace(h))] = i
	}

	find := func(candidates []string) int {
		for _, c := range candidates {
			if idx, ok := lower[c]; ok {
				return idx
			}
		}
		return -1
	}

	return map[string]int{
		"name":          find(nameCols),
		"brand":         find(brandCols),
		"concentration": find(concentrationCols),
		"year":          find(yearCols),
		"gender":        find(genderCols),
		"family":        find(familyCols),
		"top_notes":     find(topNotesCols),
		"heart_notes":   find(heartNotesCols),
		"base_notes":    find(baseNotesCols),
		"accords":       find(accordsCols),
	}
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func parseRow(row []string, colMap map[string]int) (parsedFragrance, bool) {
	name := cell(row, colMap["name"])
	brand := cell(row, colMap["brand"])
	if name == "" || brand == "" {
		return parsedFragrance{}, false
	}

	var launchYear *int
	if yearStr := cell(row, colMap["year"]); yearStr != "" {
		if match := yearPattern.FindString(yearStr); match != "" {
			if y, err := strconv.Atoi(match); err == nil {
				launchYear = &y
			}
		}
	}

	genderRaw := strings.ToLower(cell(row, colMap["gender"]))
	genderTarget := "Unisex"
	switch {
	case strings.Contains(genderRaw, "male") && !strings.Contains(genderRaw, "female"):
		genderTarget = "Masculine"
	case strings.Contains(genderRaw, "female") || strings.Contains(genderRaw, "women"):
		genderTarget = "Feminine"
	}

	concentration := cell(row, colMap["concentration"])
	if concentration == "" {
		concentration = "EDP"
	}

	family := cell(row, colMap["family"])
	if family == "" {
		family = "Unknown"
	}

	return parsedFragrance{
		name:          name,
		brand:         brand,
		concentration: concentration,
		launchYear:    launchYear,
		genderTarget:  genderTarget,
		primaryFamily: family,
		topNotes:      parseNotes(cell(row, colMap["top_notes"])),
		heartNotes:    parseNotes(cell(row, colMap["heart_notes"])),
		baseNotes:     parseNotes(cell(row, colMap["base_notes"])),
		accords:       parseAccords(cell(row, colMap["accords"])),
	}, true
}

func parseNotes(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// parseAccords accepts either a bare comma-separated list (each accord
// assumed full intensity) or "type:intensity" pairs.
func parseAccords(s string) map[string]float64 {
	if s == "" {
		return nil
	}
	out := make(map[string]float64)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if name, weight, ok := strings.Cut(part, ":"); ok {
			if v, err := strconv.ParseFloat(strings.TrimSpace(weight), 64); err == nil {
				out[strings.TrimSpace(name)] = v
				continue
			}
		}
		out[part] = 1.0
	}
	return out
}

func readRows(filePath string) ([][]string, []string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	if ext == ".csv" {
		return readCSVRows(filePath)
	}
	return readXLSXRows(filePath)
}

func readXLSXRows(filePath string) ([][]string, []string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open xlsx file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	return rows[1:], rows[0], nil
}
