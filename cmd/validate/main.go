// Command validate is the offline dataset-validation stage. It checks a
// materialized CSV table against the schema contract and exits non-zero on
// any violation, so the pipeline never trains on a dataset with known
// defects.
package main

import (
	"encoding/csv"
	"flag"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"treatment-scoring-service/internal/adapters/secondary/schemafile"
	"treatment-scoring-service/internal/core/domain"
	"treatment-scoring-service/internal/core/services"
)

func main() {
	schemaPath := flag.String("schema", "configs/schema.yaml", "schema contract file")
	inputPath := flag.String("in", "", "ingested CSV dataset to validate")
	outputPath := flag.String("out", "", "where to write the validated copy (optional)")
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if *inputPath == "" {
		log.Fatal("missing -in: path to the ingested dataset")
	}

	registry, err := schemafile.Load(*schemaPath)
	if err != nil {
		log.Fatalf("load schema: %v", err)
	}

	table, err := readTable(*inputPath)
	if err != nil {
		log.Fatalf("read dataset: %v", err)
	}
	log.Infof("validating %d rows, %d columns...", len(table.Rows), len(table.Columns))

	report := services.NewDatasetValidator(registry).Validate(table)
	if !report.Empty() {
		log.Error("VALIDATION FAILED:")
		for i, v := range report {
			log.Errorf("  %d. %s: %s", i+1, v.Field, v.Message)
		}
		os.Exit(1)
	}

	if *outputPath != "" {
		if err := copyFile(*inputPath, *outputPath); err != nil {
			log.Fatalf("write validated copy: %v", err)
		}
		log.Infof("output: %s", *outputPath)
	}

	log.Infof("validation passed: %d rows, all schema checks OK", len(table.Rows))
}

func readTable(path string) (domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Table{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return domain.Table{}, err
	}

	table := domain.Table{Columns: header}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return domain.Table{}, err
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
