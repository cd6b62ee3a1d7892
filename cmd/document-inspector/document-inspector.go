package main

import (
	"context"
	"os"
	"sort"

	"github.com/diwise/document-model/pkg/documents"
	"github.com/diwise/document-model/pkg/documents/schema"
	"github.com/diwise/document-model/pkg/documents/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
)

const (
	appName string = "document-inspector"
)

func main() {
	appVersion := buildinfo.SourceVersion()

	ctx, log, cleanup := o11y.Init(context.Background(), appName, appVersion, "json")
	defer cleanup()

	cfg := LoadConfiguration(ctx)

	definitions, err := loadSchema(cfg.schemaPath)
	if err != nil {
		log.Error("failed to load schema", "err", err.Error())
		os.Exit(1)
	}

	definition, ok := definitions[cfg.documentType]
	if !ok {
		log.Error("schema does not define document type", "type", cfg.documentType)
		os.Exit(1)
	}

	doc, err := loadDocument(definition, cfg.documentPath)
	if err != nil {
		log.Error("failed to load document", "err", err.Error())
		os.Exit(1)
	}

	hints := definition.PredicateHints()

	fields := make([]string, 0, len(hints))
	for field := range hints {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		value, err := doc.Get(field)
		if err != nil {
			log.Error("failed to read attribute", "field", field, "err", err.Error())
			os.Exit(1)
		}

		log.Info("attribute", "field", field, "hint", hints[field], "value", value)
	}

	log.Info("done inspecting", "type", definition.Name(), "attributes", len(fields))
}

type Config struct {
	schemaPath   string
	documentPath string
	documentType string
}

func LoadConfiguration(ctx context.Context) Config {
	return Config{
		schemaPath:   env.GetVariableOrDefault(ctx, "SCHEMA_PATH", "schema.yaml"),
		documentPath: env.GetVariableOrDefault(ctx, "DOCUMENT_PATH", "document.json"),
		documentType: env.GetVariableOrDefault(ctx, "DOCUMENT_TYPE", ""),
	}
}

func loadSchema(path string) (map[string]*documents.Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := schema.LoadConfiguration(f)
	if err != nil {
		return nil, err
	}

	return cfg.BuildDefinitions(types.Default())
}

func loadDocument(definition *documents.Definition, path string) (*documents.Document, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return definition.FromJSON(body)
}
