package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"paysheet/adapters/excel"
)

// inspect runs header location and formula extraction against a local
// workbook and prints the result as JSON, for checking a salary template
// before uploading it.
func main() {
	headerRow := flag.Int("header-row", -1, "0-based header row override; -1 scores rows automatically")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: inspect [-header-row N] <workbook.xlsx>")
		os.Exit(1)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to read workbook: %v", err)
	}

	f, sheet, err := excel.Open(data)
	if err != nil {
		log.Fatalf("Failed to open workbook: %v", err)
	}
	defer f.Close()

	cfg := excel.DefaultExtractionConfig()
	var override *int
	if *headerRow >= 0 {
		override = headerRow
	}

	header, err := excel.LocateHeader(f, sheet, override, cfg)
	if err != nil {
		log.Fatalf("Failed to locate header: %v", err)
	}

	formulas, err := excel.ExtractFormulas(f, sheet, header, cfg)
	if err != nil {
		log.Fatalf("Failed to extract formulas: %v", err)
	}

	out := map[string]interface{}{
		"sheet":             sheet,
		"header_row_index":  header.RowIndex,
		"columns":           header.Columns,
		"formula_templates": formulas,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
}
