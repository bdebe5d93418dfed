// Package payload submits processed order guide documents to the backend API.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"ogparsing/internal/logger"
	"ogparsing/internal/models"
)

// ErrSubmitFailed is returned when the backend rejects a document.
var ErrSubmitFailed = errors.New("document submission failed")

const dateLayout = "2006-01-02"

// Submitter posts order guide documents to the backend REST API.
type Submitter struct {
	client   *http.Client
	endpoint string
	apiKey   string
	logger   *logger.Logger
}

// NewSubmitter creates a submitter for the given endpoint. The API key is
// sent as a bearer token on every request.
func NewSubmitter(endpoint, apiKey string, timeout time.Duration, log *logger.Logger) *Submitter {
	return &Submitter{
		client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
		apiKey:   apiKey,
		logger:   log,
	}
}

// Submit posts one document. The backend answer is all-or-nothing per
// document, so a failed submission leaves no partial state to clean up.
func (s *Submitter) Submit(doc *models.OrderGuideDocument) error {
	body, err := json.Marshal(MapDocument(doc))
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", doc.ID, err)
	}

	req, err := http.NewRequest(http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to submit document %s: %w", doc.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return fmt.Errorf("%w: document %s: status %d: %s",
			ErrSubmitFailed, doc.ID, resp.StatusCode, string(snippet))
	}

	s.logger.Info("document submitted",
		"document", doc.ID.String(),
		"processor", doc.Processor,
		"items", len(doc.Items),
		"errors", len(doc.Errors))

	return nil
}

// SubmitAll posts documents in order, stopping at the first failure. Files
// rarely produce more than a handful of documents, so there is no need for
// concurrent submission.
func (s *Submitter) SubmitAll(docs []*models.OrderGuideDocument) error {
	for _, doc := range docs {
		if err := s.Submit(doc); err != nil {
			return err
		}
	}

	return nil
}

// MapDocument converts a document to its wire shape. Effective values are
// resolved here: pack size defaulting and price basis selection happen at
// the transport boundary, leaving the in-memory item untouched.
func MapDocument(doc *models.OrderGuideDocument) Document {
	out := Document{
		ID:                doc.ID.String(),
		Processor:         doc.Processor,
		LocationVendorIDs: make([]uint, 0, len(doc.LocationVendors)),
		Items:             make([]Item, 0, len(doc.Items)),
	}

	if !doc.Date.IsZero() {
		out.Date = strPtr(doc.Date.Format(dateLayout))
	}

	for _, lv := range doc.LocationVendors {
		out.LocationVendorIDs = append(out.LocationVendorIDs, lv.ID)
	}

	for _, item := range doc.Items {
		out.Items = append(out.Items, mapItem(item))
	}

	for _, e := range doc.Errors {
		out.Errors = append(out.Errors, mapError(e))
	}

	return out
}

func mapItem(item *models.OrderGuideItem) Item {
	out := Item{
		ItemNo:       item.ItemNo,
		PackType:     string(item.PackType),
		PackSize:     item.EffectivePackSize(),
		Description:  item.Description,
		Brand:        item.Brand,
		Barcode:      item.Barcode,
		Discontinued: item.Discontinued,
	}

	if price := item.Price(); price != nil {
		out.Price = strPtr(price.String())
		out.PriceType = string(item.PriceType())
	}

	if !item.PriceDate.IsZero() {
		out.PriceDate = strPtr(item.PriceDate.Format(dateLayout))
	}

	for _, match := range item.Matches {
		out.MatchIDs = append(out.MatchIDs, match.ID)
	}

	for _, e := range item.Errors {
		out.Errors = append(out.Errors, mapError(e))
	}

	return out
}

func mapError(e *models.OrderGuideError) ItemError {
	out := ItemError{
		Kind:    string(e.Kind),
		Message: e.Message,
		ItemNo:  e.ItemNo,
	}

	if e.LocationVendor != nil {
		id := e.LocationVendor.ID
		out.LocationVendor = &id
	}

	return out
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
