package nifexport

import (
	"encoding/json"
	"fmt"

	"github.com/c360studio/semstreams/component"
)

const (
	componentName        = "nif-export"
	componentDescription = "Converts NIF annotation record batches to RDF (RDF/XML, N-Triples, Turtle)"
	componentVersion     = "1.0.0"
)

// RegistryInterface defines the minimal interface needed for registration.
type RegistryInterface interface {
	RegisterWithConfig(component.RegistrationConfig) error
}

// Register registers the nif-export processor with the given registry.
func Register(registry RegistryInterface) error {
	if registry == nil {
		return fmt.Errorf("registry cannot be nil")
	}
	return registry.RegisterWithConfig(component.RegistrationConfig{
		Name:        componentName,
		Factory:     NewFromConfig,
		Schema:      nifExportSchema,
		Type:        "processor",
		Protocol:    "nats",
		Domain:      "semantic",
		Description: componentDescription,
		Version:     componentVersion,
	})
}

// NewFromConfig creates a nif-export component from raw JSON configuration
// and the platform dependencies. Unset fields keep their defaults.
func NewFromConfig(rawConfig json.RawMessage, deps component.Dependencies) (component.Discoverable, error) {
	config := DefaultConfig()
	if len(rawConfig) > 0 {
		if err := json.Unmarshal(rawConfig, &config); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}

	var conn Conn
	if deps.NATSClient != nil {
		if nc := deps.NATSClient.GetConnection(); nc != nil {
			conn = nc
		}
	}

	return NewComponent(config, conn, deps.GetLoggerWithComponent(componentName), nil)
}
