package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"

	"sheetstep/pkg/config"
	"sheetstep/pkg/engine"
	"sheetstep/pkg/sheets"
	"sheetstep/pkg/xlsx"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose logging")
	configFile := flag.String("config", "sheetstep.toml", "Config file path")
	op := flag.String("op", "", "Operation: append, clear, lookup, read or update (required)")
	sheet := flag.String("sheet", "", "Sheet name")
	rng := flag.String("range", "", "A1 range within the sheet")
	keyRow := flag.Int("key-row", 0, "Header row index")
	dataStartRow := flag.Int("data-start-row", 1, "First data row index")
	keyField := flag.String("key-field", "", "Key column name for keyed update")
	lookupColumn := flag.String("lookup-column", "", "Criterion column for lookup")
	all := flag.Bool("all", false, "Return all lookup matches instead of the first")
	raw := flag.Bool("raw", false, "Raw mode: move 2-D grids without header decoding")
	input := flag.String("input", "", "Value input mode: RAW or USER_ENTERED")
	render := flag.String("render", "", "Value render mode: FORMATTED_VALUE, FORMULA or UNFORMATTED_VALUE")
	unmatched := flag.String("unmatched", "", "Unmatched update key policy: skip, append or error")

	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	if *op == "" {
		log.Error("You must specify an operation with -op")
		flag.Usage()
		os.Exit(1)
	}

	_ = godotenv.Load()

	ds, err := config.NewDatastore(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *sheet == "" {
		*sheet = ds.Store.DefaultSheet
	}

	items, err := readItems(os.Stdin)
	if err != nil {
		log.Fatalf("Failed to read items from stdin: %v", err)
	}

	ctx := context.Background()
	svc, err := newService(ctx, ds.Store)
	if err != nil {
		log.Fatalf("Failed to create spreadsheet service: %v", err)
	}

	params := engine.Params{
		Operation:        engine.Operation(*op),
		Sheet:            *sheet,
		Range:            *rng,
		KeyRow:           *keyRow,
		DataStartRow:     *dataStartRow,
		KeyField:         *keyField,
		LookupColumn:     *lookupColumn,
		ReturnAllMatches: *all,
		RawMode:          *raw,
		ValueInput:       sheets.ValueInputMode(*input),
		ValueRender:      sheets.ValueRenderMode(*render),
		Unmatched:        engine.UnmatchedPolicy(*unmatched),
	}

	out, err := engine.New(svc).Run(ctx, params, items)
	if err != nil {
		log.Fatalf("Step failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}
}

func newService(ctx context.Context, store config.Store) (sheets.Service, error) {
	if store.XLSXFile != "" {
		return xlsx.NewBackend(store.XLSXFile), nil
	}
	return sheets.NewClient(ctx, store.CredentialsFile, store.SpreadsheetID)
}

func readItems(r io.Reader) ([]engine.Item, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, nil
	}
	var items []engine.Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, err
	}
	return items, nil
}
