// Package backup exports and restores the full persisted dataset: the
// state and timer blobs plus every stored plan document.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/solarwork/crewledger/internal/logger"
	"github.com/solarwork/crewledger/internal/store"
)

// Version identifies the backup document format.
const Version = "4.1"

// FormatError reports a malformed backup file on restore.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "invalid backup file: " + e.Reason
}

// PlanRecord is one plan document in a backup; PDF bytes marshal as
// base64 in JSON.
type PlanRecord struct {
	ID  string `json:"id"`
	PDF []byte `json:"pdf"`
}

type blobStores struct {
	PDFStore []PlanRecord `json:"pdfStore"`
}

// Document is the backup file layout. LocalStorage holds the raw kv
// blobs under their storage keys, preserved byte for byte so a restore
// reproduces the exact persisted state.
type Document struct {
	Version      string            `json:"version"`
	Timestamp    int64             `json:"timestamp"`
	LocalStorage map[string]string `json:"localStorage"`
	IndexedDB    blobStores        `json:"indexedDB"`
}

// Export captures the full dataset from the store.
func Export(ctx context.Context, st *store.Store) (*Document, error) {
	doc := &Document{
		Version:      Version,
		Timestamp:    time.Now().UnixMilli(),
		LocalStorage: map[string]string{},
	}

	keys, err := st.Keys()
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		value, err := st.Get(key)
		if err != nil {
			return nil, err
		}
		doc.LocalStorage[key] = value
	}

	plans, err := st.AllPlans(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range plans {
		doc.IndexedDB.PDFStore = append(doc.IndexedDB.PDFStore, PlanRecord{ID: p.ID, PDF: p.PDF})
	}

	return doc, nil
}

// ExportJSON renders the backup document as JSON.
func ExportJSON(ctx context.Context, st *store.Store) ([]byte, error) {
	doc, err := Export(ctx, st)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Restore replaces the store's entire contents with the backup's. The
// caller must reload afterward: in-memory state and the blob store
// have to be rebuilt together, a partial hot-reload is not attempted.
func Restore(ctx context.Context, st *store.Store, data []byte) error {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return &FormatError{Reason: err.Error()}
	}
	if doc.Version == "" || doc.LocalStorage == nil {
		return &FormatError{Reason: "missing version or localStorage section"}
	}

	if err := st.ClearKV(); err != nil {
		return err
	}
	if err := st.ClearPlans(ctx); err != nil {
		return err
	}

	for key, value := range doc.LocalStorage {
		if err := st.Put(key, value); err != nil {
			return err
		}
	}
	for _, p := range doc.IndexedDB.PDFStore {
		if p.ID == "" {
			return &FormatError{Reason: "plan record without id"}
		}
		if err := st.SavePlan(ctx, p.ID, p.PDF); err != nil {
			return err
		}
	}

	logger.Info("backup restored",
		logger.F("keys", len(doc.LocalStorage)),
		logger.F("plans", len(doc.IndexedDB.PDFStore)))
	return nil
}

// IsFormatError reports whether err is a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
