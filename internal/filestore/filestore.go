// Package filestore is the content-addressable document store backing
// Issue.documentRef: it accepts raw bytes and returns a public URL plus a
// content hash. The ledger only ever sees the hash.
package filestore

import (
	"context"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"

	dErrors "skillchain/pkg/domain-errors"
)

// MaxDocumentSize caps uploads at 8 MiB; diplomas are documents, not media.
const MaxDocumentSize = 8 << 20

// Store defines the blob persistence contract, keyed by content hash.
type Store interface {
	Put(ctx context.Context, cid string, data []byte) error
	Get(ctx context.Context, cid string) ([]byte, error)
}

// PinResult is what callers embed in a certification: where the document is
// served from and the hash that makes it tamper-evident.
type PinResult struct {
	URL string
	CID string
}

// Service pins documents and resolves them by content hash.
type Service struct {
	store   Store
	baseURL string
}

func New(store Store, baseURL string) *Service {
	return &Service{store: store, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Pin stores the document under its sha3-256 digest. Pinning the same bytes
// twice is a no-op returning the same CID, which is what makes documentRef
// stable across retries.
func (s *Service) Pin(ctx context.Context, data []byte) (PinResult, error) {
	if len(data) == 0 {
		return PinResult{}, dErrors.New(dErrors.CodeInvalidInput, "document is empty")
	}
	if len(data) > MaxDocumentSize {
		return PinResult{}, dErrors.New(dErrors.CodeInvalidInput, "document exceeds maximum size")
	}

	digest := sha3.Sum256(data)
	cid := hex.EncodeToString(digest[:])
	if err := s.store.Put(ctx, cid, data); err != nil {
		return PinResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store document")
	}
	return PinResult{URL: s.baseURL + "/" + cid, CID: cid}, nil
}

// Fetch returns the raw document for a content hash.
func (s *Service) Fetch(ctx context.Context, cid string) ([]byte, error) {
	data, err := s.store.Get(ctx, cid)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "document not found")
	}
	return data, nil
}
