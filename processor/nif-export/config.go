package nifexport

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/c360studio/semnif/export"
	"github.com/c360studio/semstreams/component"
)

// nifExportSchema defines the configuration schema.
var nifExportSchema = component.GenerateConfigSchema(reflect.TypeOf(Config{}))

// Config holds configuration for the nif-export component.
type Config struct {
	URL           string `json:"url" yaml:"url" schema:"type:string,description:NATS server URL,category:basic,default:nats://127.0.0.1:4222"`
	InputSubject  string `json:"input_subject" yaml:"input_subject" schema:"type:string,description:Subject carrying annotation batches,category:basic,default:annotation.batch"`
	OutputSubject string `json:"output_subject" yaml:"output_subject" schema:"type:string,description:Subject receiving RDF payloads,category:basic,default:annotation.export.rdf"`
	QueueGroup    string `json:"queue_group,omitempty" yaml:"queue_group,omitempty" schema:"type:string,description:Queue group shared by exporter replicas,category:advanced"`
	// IngestSubject, when set, also receives one entity message per subject.
	IngestSubject string `json:"ingest_subject,omitempty" yaml:"ingest_subject,omitempty" schema:"type:string,description:Graph ingest subject for per-entity messages,category:advanced"`
	Format        string `json:"format" yaml:"format" schema:"type:string,description:RDF serialization format (rdfxml/ntriples/turtle),category:basic,default:turtle"`
}

// DefaultConfig returns the default configuration for nif-export.
func DefaultConfig() Config {
	return Config{
		URL:           "nats://127.0.0.1:4222",
		InputSubject:  "annotation.batch",
		OutputSubject: "annotation.export.rdf",
		Format:        string(export.FormatTurtle),
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.InputSubject == "" {
		return errors.New("input_subject is required")
	}
	if c.Format != "" {
		if _, err := export.ParseFormat(c.Format); err != nil {
			return fmt.Errorf("format: %w", err)
		}
	}
	return nil
}

// GetFormat returns the configured format, defaulting to Turtle.
func (c *Config) GetFormat() export.Format {
	f, err := export.ParseFormat(c.Format)
	if err != nil {
		return export.FormatTurtle
	}
	return f
}
