package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/grovetools/deck/config"
	"github.com/grovetools/deck/logging"
)

func main() {
	outputPath := flag.String("out", filepath.Join("schema", "deck.embedded.schema.json"), "where to write the generated schema")
	check := flag.Bool("check", false, "fail if the schema on disk is out of date instead of writing it")
	flag.Parse()

	pretty := logging.NewPrettyLogger()

	schemaBytes, err := config.GenerateSchema()
	if err != nil {
		pretty.Fail("Error generating schema", err)
		os.Exit(1)
	}
	schemaBytes = append(schemaBytes, '\n')

	if *check {
		current, err := os.ReadFile(*outputPath)
		if err != nil {
			pretty.Fail("Error reading schema", err)
			os.Exit(1)
		}
		if !bytes.Equal(current, schemaBytes) {
			pretty.Fail("Schema is stale", fmt.Errorf("%s differs from config.Config; run the generator", *outputPath))
			os.Exit(1)
		}
		pretty.Success("Schema is up to date")
		return
	}

	if err := os.MkdirAll(filepath.Dir(*outputPath), 0755); err != nil {
		pretty.Fail("Error creating schema directory", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outputPath, schemaBytes, 0644); err != nil {
		pretty.Fail("Error writing schema file", err)
		os.Exit(1)
	}
	pretty.Path("Generated schema", *outputPath)
}
