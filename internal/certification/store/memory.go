package store

import (
	"context"
	"sync"
	"time"

	"skillchain/internal/certification/models"
	"skillchain/internal/sentinel"
	id "skillchain/pkg/domain"
)

// ErrNotFound is returned when a certification is not found.
var ErrNotFound = sentinel.ErrNotFound

// InMemory is the arena-style record store: certifications indexed by token
// id, per-issuer mint counts, and per-identity activity timestamps. Records
// never reference each other, so a flat map per concern is all the ledger
// needs. Writes go through deep copies; callers never share memory with the
// canonical state.
type InMemory struct {
	mu        sync.RWMutex
	records   map[id.TokenID]*models.Certification
	issued    map[id.Identity]int
	activity  map[id.Identity]*models.IdentityState
	nextToken id.TokenID
}

// NewInMemory creates an empty ledger store. Token ids start at 1.
func NewInMemory() *InMemory {
	return &InMemory{
		records:   make(map[id.TokenID]*models.Certification),
		issued:    make(map[id.Identity]int),
		activity:  make(map[id.Identity]*models.IdentityState),
		nextToken: 1,
	}
}

// Create persists a freshly issued record, assigning the next sequential
// token id. Ids are dense and never reused.
func (s *InMemory) Create(_ context.Context, cert *models.Certification) (id.TokenID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokenID := s.nextToken
	s.nextToken++

	cp := cert.Clone()
	cp.ID = tokenID
	s.records[tokenID] = cp
	s.issued[cp.Issuer]++

	cert.ID = tokenID
	return tokenID, nil
}

// FindByID retrieves a deep copy of a certification record.
func (s *InMemory) FindByID(_ context.Context, tokenID id.TokenID) (*models.Certification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.records[tokenID]; ok {
		return c.Clone(), nil
	}
	return nil, ErrNotFound
}

// Update replaces the stored record with the given state.
func (s *InMemory) Update(_ context.Context, cert *models.Certification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[cert.ID]; !ok {
		return ErrNotFound
	}
	s.records[cert.ID] = cert.Clone()
	return nil
}

// UpdatePair replaces two records in one step so a committed swap is never
// partially observable.
func (s *InMemory) UpdatePair(_ context.Context, a, b *models.Certification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[a.ID]; !ok {
		return ErrNotFound
	}
	if _, ok := s.records[b.ID]; !ok {
		return ErrNotFound
	}
	s.records[a.ID] = a.Clone()
	s.records[b.ID] = b.Clone()
	return nil
}

// CountByIssuer returns how many certifications the issuer has minted.
func (s *InMemory) CountByIssuer(_ context.Context, issuer id.Identity) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.issued[issuer], nil
}

// LastActionAt returns the identity's most recent successful transfer or
// swap leg. The zero time means the identity has never acted.
func (s *InMemory) LastActionAt(_ context.Context, identity id.Identity) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.activity[identity]; ok {
		return st.LastActionAt, nil
	}
	return time.Time{}, nil
}

// SetLastAction stamps the activity timestamp for every given identity.
func (s *InMemory) SetLastAction(_ context.Context, now time.Time, identities ...id.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, identity := range identities {
		st, ok := s.activity[identity]
		if !ok {
			st = &models.IdentityState{}
			s.activity[identity] = st
		}
		st.LastActionAt = now
	}
	return nil
}
