// Package nifexport provides a NATS component that receives batches of
// annotation records, builds their NIF graph and publishes the serialized RDF.
package nifexport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/c360studio/semnif/export"
	"github.com/c360studio/semnif/graph"
	"github.com/c360studio/semnif/metric"
	"github.com/c360studio/semstreams/component"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// Conn is the subset of *nats.Conn the component uses.
type Conn interface {
	Subscribe(subj string, cb nats.MsgHandler) (*nats.Subscription, error)
	QueueSubscribe(subj, queue string, cb nats.MsgHandler) (*nats.Subscription, error)
	Publish(subj string, data []byte) error
}

// ErrAlreadyRunning is returned by Start on a running component.
var ErrAlreadyRunning = errors.New("component already running")

var _ component.LifecycleComponent = (*Component)(nil)

// Component implements the nif-export processor.
type Component struct {
	config  Config
	conn    Conn
	logger  *slog.Logger
	metrics *metric.Metrics
	format  export.Format

	// Lifecycle
	running   bool
	startTime time.Time
	sub       *nats.Subscription
	mu        sync.RWMutex

	// Counters
	batchesProcessed atomic.Int64
	batchesFailed    atomic.Int64
	publishErrors    atomic.Int64
	lastActivityMu   sync.RWMutex
	lastActivity     time.Time
}

// NewComponent creates a nif-export component publishing through conn.
func NewComponent(config Config, conn Conn, logger *slog.Logger, metrics *metric.Metrics) (*Component, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Component{
		config:  config,
		conn:    conn,
		logger:  logger,
		metrics: metrics,
		format:  config.GetFormat(),
	}, nil
}

// Handle turns one encoded Batch into its RDF payload.
func (c *Component) Handle(data []byte) (*Payload, error) {
	payload, _, err := c.handle(data)
	return payload, err
}

func (c *Component) handle(data []byte) (*Payload, *graph.Graph, error) {
	var batch Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, nil, fmt.Errorf("unmarshal batch: %w", err)
	}

	format := c.format
	if batch.Format != "" {
		f, err := export.ParseFormat(batch.Format)
		if err != nil {
			return nil, nil, err
		}
		format = f
	}

	exp := export.NewExporter(batch.Records,
		export.WithLogger(c.logger),
		export.WithMetrics(c.metrics))
	info, _ := export.GetFormatInfo(format)

	return &Payload{
		ID:       uuid.NewString(),
		BatchID:  batch.ID,
		Format:   string(format),
		MIMEType: info.MIMEType,
		Triples:  exp.Graph().Len(),
		Content:  exp.Render(format),
	}, exp.Graph(), nil
}

// Initialize prepares the component.
func (c *Component) Initialize() error {
	return nil
}

// Start subscribes to the input subject. Payloads go to the message reply
// subject when one is set, otherwise to the output subject.
func (c *Component) Start(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return ErrAlreadyRunning
	}
	if c.conn == nil {
		return errors.New("NATS connection required")
	}

	var (
		sub *nats.Subscription
		err error
	)
	if c.config.QueueGroup != "" {
		sub, err = c.conn.QueueSubscribe(c.config.InputSubject, c.config.QueueGroup, c.handleMessage)
	} else {
		sub, err = c.conn.Subscribe(c.config.InputSubject, c.handleMessage)
	}
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", c.config.InputSubject, err)
	}

	c.sub = sub
	c.running = true
	c.startTime = time.Now()

	c.logger.Info("nif-export started",
		"format", c.format,
		"input", c.config.InputSubject,
		"output", c.config.OutputSubject,
		"queue", c.config.QueueGroup)
	return nil
}

func (c *Component) handleMessage(msg *nats.Msg) {
	payload, g, err := c.handle(msg.Data)
	if err != nil {
		c.batchesFailed.Add(1)
		c.logger.Warn("Failed to export batch",
			"subject", msg.Subject,
			"error", err)
		return
	}

	if err := payload.Validate(); err != nil {
		c.batchesFailed.Add(1)
		c.logger.Warn("Invalid RDF payload",
			"batch_id", payload.BatchID,
			"error", err)
		return
	}

	out, err := json.Marshal(payload)
	if err != nil {
		c.batchesFailed.Add(1)
		c.logger.Warn("Failed to marshal payload", "error", err)
		return
	}

	target := c.config.OutputSubject
	if msg.Reply != "" {
		target = msg.Reply
	}
	if target == "" {
		c.logger.Warn("No output subject for payload", "batch_id", payload.BatchID)
		c.publishErrors.Add(1)
		return
	}

	if err := c.conn.Publish(target, out); err != nil {
		c.publishErrors.Add(1)
		c.logger.Warn("Failed to publish RDF payload",
			"batch_id", payload.BatchID,
			"subject", target,
			"error", err)
		return
	}

	if c.config.IngestSubject != "" {
		c.publishEntities(g)
	}

	c.batchesProcessed.Add(1)
	c.updateLastActivity()

	c.logger.Debug("Exported annotation batch",
		"batch_id", payload.BatchID,
		"format", payload.Format,
		"triples", payload.Triples,
		"output_bytes", len(payload.Content))
}

// publishEntities forwards every subject of g to the graph ingest subject.
func (c *Component) publishEntities(g *graph.Graph) {
	for _, entity := range graph.EntityMessages(g, "semnif.nif-export", time.Now()) {
		data, err := json.Marshal(entity)
		if err != nil {
			c.publishErrors.Add(1)
			c.logger.Warn("Failed to marshal entity", "entity_id", entity.ID, "error", err)
			continue
		}
		if err := c.conn.Publish(c.config.IngestSubject, data); err != nil {
			c.publishErrors.Add(1)
			c.logger.Warn("Failed to publish entity",
				"entity_id", entity.ID,
				"subject", c.config.IngestSubject,
				"error", err)
		}
	}
}

// Stop drains the subscription.
func (c *Component) Stop(_ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil
	}

	var err error
	if c.sub != nil {
		err = c.sub.Drain()
	}
	c.sub = nil
	c.running = false

	c.logger.Info("nif-export stopped",
		"batches_processed", c.batchesProcessed.Load(),
		"batches_failed", c.batchesFailed.Load(),
		"publish_errors", c.publishErrors.Load())
	return err
}

// Meta returns component metadata.
func (c *Component) Meta() component.Metadata {
	return component.Metadata{
		Name:        componentName,
		Type:        "processor",
		Description: componentDescription,
		Version:     componentVersion,
	}
}

// InputPorts returns the batch input port.
func (c *Component) InputPorts() []component.Port {
	return []component.Port{{
		Name:        "batches_in",
		Direction:   component.DirectionInput,
		Required:    true,
		Description: "Annotation record batches",
		Config: component.NATSPort{
			Subject: c.config.InputSubject,
			Queue:   c.config.QueueGroup,
		},
	}}
}

// OutputPorts returns the RDF output port, plus the entity ingest port when
// one is configured.
func (c *Component) OutputPorts() []component.Port {
	ports := []component.Port{{
		Name:        "rdf_out",
		Direction:   component.DirectionOutput,
		Required:    true,
		Description: "Serialized RDF payloads",
		Config:      component.NATSPort{Subject: c.config.OutputSubject},
	}}
	if c.config.IngestSubject != "" {
		ports = append(ports, component.Port{
			Name:        "entities_out",
			Direction:   component.DirectionOutput,
			Description: "Per-subject entity messages for the graph pipeline",
			Config:      component.NATSPort{Subject: c.config.IngestSubject},
		})
	}
	return ports
}

// ConfigSchema returns the configuration schema.
func (c *Component) ConfigSchema() component.ConfigSchema {
	return nifExportSchema
}

// Processed returns the number of batches published so far.
func (c *Component) Processed() int64 {
	return c.batchesProcessed.Load()
}

// Health returns the current health status.
func (c *Component) Health() component.HealthStatus {
	c.mu.RLock()
	running := c.running
	startTime := c.startTime
	c.mu.RUnlock()

	status := "stopped"
	var uptime time.Duration
	if running {
		status = "running"
		uptime = time.Since(startTime)
	}

	return component.HealthStatus{
		Healthy:    running,
		LastCheck:  time.Now(),
		ErrorCount: int(c.batchesFailed.Load() + c.publishErrors.Load()),
		Uptime:     uptime,
		Status:     status,
	}
}

// DataFlow returns current data flow metrics.
func (c *Component) DataFlow() component.FlowMetrics {
	return component.FlowMetrics{
		LastActivity: c.getLastActivity(),
	}
}

func (c *Component) updateLastActivity() {
	c.lastActivityMu.Lock()
	c.lastActivity = time.Now()
	c.lastActivityMu.Unlock()
}

func (c *Component) getLastActivity() time.Time {
	c.lastActivityMu.RLock()
	defer c.lastActivityMu.RUnlock()
	return c.lastActivity
}

// Connect dials NATS at url with the component's client name.
func Connect(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("semnif"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second))
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", url, err)
	}
	return nc, nil
}
