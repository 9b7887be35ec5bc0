// Command seedhsn converts the GST HSN/SAC master workbook into a SQL seed for
// hsn_codes. Goods come from the first sheet and services from SAC_Master.
// Usage: go run ./cmd/seedhsn -in hsn_master.xlsx [-out db/seeds/hsn_codes.sql]
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
	in := flag.String("in", "hsn_master.xlsx", "HSN/SAC master workbook")
	outPath := flag.String("out", "db/seeds/hsn_codes.sql", "output SQL file")
	flag.Parse()

	f, err := excelize.OpenFile(*in)
	if err != nil {
		return fmt.Errorf("open HSN master: %w", err)
	}
	defer func() { _ = f.Close() }()

	collector := seed.NewHSNCollector()

	goods, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return fmt.Errorf("read goods sheet: %w", err)
	}
	log.Printf("goods sheet: %d entries", collector.AddGoods(goods))

	services, err := f.GetRows("SAC_Master")
	if err != nil {
		log.Printf("services sheet skipped: %v", err)
	} else {
		log.Printf("services sheet: %d entries", collector.AddServices(services))
	}

	out, err := os.Create(*outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	script := seed.HSNScript
	script.Comments = []string{"HSN/SAC code seed generated from " + *in + "."}
	if err := script.Write(out, collector.Values()); err != nil {
		return fmt.Errorf("write seed: %w", err)
	}

	log.Printf("wrote %d entries to %s", len(collector.Rows), *outPath)
	return nil
}
