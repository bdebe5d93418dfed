// Package worker consumes import jobs from NATS and runs the processing
// pipeline: fetch the file, locate a processor, extract documents, submit.
package worker

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/nats-io/nats.go"

	"ogparsing/internal/logger"
	"ogparsing/internal/models"
	"ogparsing/internal/processor"
	"ogparsing/internal/report"
)

// ErrNoLocationVendors is returned when a job's location vendor IDs resolve
// to nothing.
var ErrNoLocationVendors = errors.New("no location vendors found for job")

// FileSource downloads the file an import job points at.
type FileSource interface {
	Fetch(url string) ([]byte, error)
}

// AccountSource loads the location vendors a job names.
type AccountSource interface {
	LocationVendorsByIDs(ids []uint) ([]*models.LocationVendor, error)
}

// DocumentSink receives processed documents.
type DocumentSink interface {
	SubmitAll(docs []*models.OrderGuideDocument) error
}

// Pipeline runs one import job end to end.
type Pipeline struct {
	files    FileSource
	accounts AccountSource
	locator  *processor.Locator
	sink     DocumentSink
	metrics  *Metrics
	logger   *logger.Logger
}

// NewPipeline wires the pipeline stages together.
func NewPipeline(
	files FileSource,
	accounts AccountSource,
	locator *processor.Locator,
	sink DocumentSink,
	metrics *Metrics,
	log *logger.Logger,
) *Pipeline {
	return &Pipeline{
		files:    files,
		accounts: accounts,
		locator:  locator,
		sink:     sink,
		metrics:  metrics,
		logger:   log,
	}
}

// Run processes one job. An unmatched file is a normal outcome reflected in
// the returned report, not an error.
func (p *Pipeline) Run(job *ImportJob) (*report.RunReport, error) {
	rep := report.NewRunReport(job.FileURL)

	lvs, err := p.accounts.LocationVendorsByIDs(job.LocationVendorIDs)
	if err != nil {
		return rep, err
	}

	if len(lvs) == 0 {
		return rep, fmt.Errorf("%w: ids %v", ErrNoLocationVendors, job.LocationVendorIDs)
	}

	body, err := p.files.Fetch(job.FileURL)
	if err != nil {
		return rep, err
	}

	return p.processBytes(rep, body, lvs)
}

// RunLocal processes an already loaded file, for the import CLI.
func (p *Pipeline) RunLocal(path string, body []byte, lvs []*models.LocationVendor) (*report.RunReport, error) {
	return p.processBytes(report.NewRunReport(path), body, lvs)
}

func (p *Pipeline) processBytes(rep *report.RunReport, body []byte, lvs []*models.LocationVendor) (*report.RunReport, error) {
	f := bytes.NewReader(body)

	proc, err := p.locator.Locate(f, lvs)
	if err != nil {
		return rep, err
	}

	if proc == nil {
		p.logger.Warn("no processor matched file", "file", rep.FileURL)
		p.metrics.FilesUnmatched.Inc()

		return rep, nil
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return rep, err
	}

	docs, err := proc.Process(f, lvs)
	if err != nil {
		return rep, fmt.Errorf("processor %s failed: %w", proc.Name(), err)
	}

	rep.AddDocuments(proc.Name(), docs)
	p.recordMetrics(proc.Name(), docs)

	if err := p.sink.SubmitAll(docs); err != nil {
		return rep, err
	}

	p.logger.Info("file processed",
		"file", rep.FileURL,
		"processor", proc.Name(),
		"documents", len(docs),
		"items", rep.ItemCount())

	return rep, nil
}

func (p *Pipeline) recordMetrics(procName string, docs []*models.OrderGuideDocument) {
	p.metrics.FilesProcessed.WithLabelValues(procName).Inc()

	for _, doc := range docs {
		p.metrics.ItemsTotal.Add(float64(len(doc.Items)))

		for _, e := range doc.Errors {
			p.metrics.ErrorsTotal.WithLabelValues(string(e.Kind)).Inc()
		}

		for _, item := range doc.Items {
			for _, e := range item.Errors {
				p.metrics.ErrorsTotal.WithLabelValues(string(e.Kind)).Inc()
			}
		}
	}
}

// Worker subscribes to the import subject and feeds jobs to the pipeline.
type Worker struct {
	conn     *nats.Conn
	subject  string
	queue    string
	pipeline *Pipeline
	metrics  *Metrics
	logger   *logger.Logger
	sub      *nats.Subscription
}

// NewWorker connects to NATS and prepares a queue consumer.
func NewWorker(natsURL, subject, queue string, pipeline *Pipeline, metrics *Metrics, log *logger.Logger) (*Worker, error) {
	conn, err := nats.Connect(natsURL,
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("nats disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &Worker{
		conn:     conn,
		subject:  subject,
		queue:    queue,
		pipeline: pipeline,
		metrics:  metrics,
		logger:   log,
	}, nil
}

// Start begins consuming jobs. Returns immediately; handling is async.
func (w *Worker) Start() error {
	sub, err := w.conn.QueueSubscribe(w.subject, w.queue, w.handleMessage)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", w.subject, err)
	}

	w.sub = sub
	w.logger.Info("worker started", "subject", w.subject, "queue", w.queue)

	return nil
}

// Stop drains the subscription and closes the connection.
func (w *Worker) Stop() {
	if w.sub != nil {
		_ = w.sub.Drain()
	}

	w.conn.Close()
	w.logger.Info("worker stopped")
}

// handleMessage alerts and skips on any failure. A bad job or a broken file
// must not take the consumer down.
func (w *Worker) handleMessage(msg *nats.Msg) {
	job, err := ParseJob(msg.Data)
	if err != nil {
		w.logger.Error("skipping malformed job", "error", err)
		w.metrics.FilesFailed.Inc()

		return
	}

	log := w.logger.With("file", job.FileURL)
	log.Info("job received", "locationVendors", len(job.LocationVendorIDs))

	if _, err := w.pipeline.Run(job); err != nil {
		log.Error("job failed", "error", err)
		w.metrics.FilesFailed.Inc()
	}
}
