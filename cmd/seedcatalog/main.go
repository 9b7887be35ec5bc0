// Command seedcatalog converts an item-master spreadsheet into a SQL seed for
// catalog_items. The first row of the sheet must be a header naming at least
// the item name column; GST labels are normalized onto the picker set.
// Usage: go run ./cmd/seedcatalog -in items.xlsx [-sheet Items] [-out db/seeds/catalog_items.sql]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/xuri/excelize/v2"

	"khata/internal/seed"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	in := flag.String("in", "item_master.xlsx", "item master spreadsheet")
	sheet := flag.String("sheet", "", "sheet name (default: first sheet)")
	outPath := flag.String("out", "db/seeds/catalog_items.sql", "output SQL file")
	flag.Parse()

	f, err := excelize.OpenFile(*in)
	if err != nil {
		return fmt.Errorf("open item master: %w", err)
	}
	defer func() { _ = f.Close() }()

	name := *sheet
	if name == "" {
		name = f.GetSheetName(0)
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return fmt.Errorf("read sheet %q: %w", name, err)
	}

	items, err := seed.ParseCatalogRows(rows)
	if err != nil {
		return fmt.Errorf("parse sheet %q: %w", name, err)
	}
	log.Printf("sheet %q: %d items from %d rows", name, len(items), len(rows)-1)

	values := make([][]string, len(items))
	for i := range items {
		values[i] = items[i].Values()
	}

	out, err := os.Create(*outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	script := seed.CatalogScript
	script.Comments = []string{
		"Catalog item seed generated from " + *in + ".",
		"Run: psql \"$DATABASE_URL\" -f " + *outPath,
	}
	if err := script.Write(out, values); err != nil {
		return fmt.Errorf("write seed: %w", err)
	}

	log.Printf("wrote %d catalog items to %s", len(items), *outPath)
	return nil
}
