// Command extract runs the extraction pipeline offline over a directory of
// already-linearized .txt documents and writes the results to a workbook.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"imidok/internal/domain"
	"imidok/internal/export"
	"imidok/internal/extractor"
	"imidok/internal/normalizer"
	"imidok/internal/service"
)

func main() {
	dir := flag.String("dir", ".", "directory of .txt documents to process")
	out := flag.String("out", "", "output workbook path (default <dir>/extracted_data_<timestamp>.xlsx)")
	hint := flag.String("type", domain.LayoutHintAuto, "layout override applied to every file (SKTT, EVLN, ITAS, ITK, NOTIFIKASI, DKPTKA)")
	concurrency := flag.Int("concurrency", 8, "number of documents processed in parallel")
	flag.Parse()

	if err := run(*dir, *out, *hint, *concurrency); err != nil {
		log.Fatal(err)
	}
}

func run(dir, out, hint string, concurrency int) error {
	if hint != domain.LayoutHintAuto {
		if _, ok := domain.ParseLayoutKind(hint); !ok {
			return fmt.Errorf("unknown document type %q", hint)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}

	var docs []domain.RawDocument
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("reading %s: %w", entry.Name(), err)
		}
		docs = append(docs, domain.RawDocument{
			Source:     entry.Name(),
			Text:       string(data),
			LayoutHint: hint,
		})
	}
	if len(docs) == 0 {
		return fmt.Errorf("no .txt documents found in %s", dir)
	}

	dispatcher := extractor.NewDispatcher(normalizer.New())
	batch := service.NewBatchService(dispatcher, nil, concurrency)
	result := batch.Run(context.Background(), docs)

	for _, it := range result.Items {
		if it.Status == domain.ItemStatusFailed {
			log.Printf("failed: %s: %s", it.Source, it.Reason)
		}
	}
	if result.AllFailed() {
		return fmt.Errorf("no documents could be processed")
	}

	rows := make([]export.Row, 0, len(result.Items))
	for _, it := range result.Items {
		if it.Status == domain.ItemStatusSuccess {
			rows = append(rows, export.Row{Source: it.Source, Record: it.Record})
		}
	}
	data, err := export.WriteXLSX(rows)
	if err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	if out == "" {
		out = filepath.Join(dir, export.BuildFilename("extracted_data", "xlsx"))
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	log.Printf("processed %d documents (%d succeeded), wrote %s",
		len(result.Items), result.Succeeded(), out)
	return nil
}
