package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/servicehub/marketplace/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories. They mirror the uniqueness and conditional
// update rules of the Mongo repositories.
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID     map[string]*domain.User
	seq      int
	findHits int
	err      error // if set, every call returns it
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	if r.err != nil {
		return r.err
	}
	for _, existing := range r.byID {
		if existing.Email == u.Email || existing.Phone == u.Phone {
			return domain.ErrDuplicateAccount
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("u%d", r.seq)
	clone := *u
	r.byID[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.findHits++
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.findHits++
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make(map[string]*domain.User, len(ids))
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			clone := *u
			out[id] = &clone
		}
	}
	return out, nil
}

type stubProviderRepo struct {
	mu       sync.Mutex
	byID     map[string]*domain.Provider
	seq      int
	findHits int
	incErr   error
}

func newStubProviderRepo() *stubProviderRepo {
	return &stubProviderRepo{byID: make(map[string]*domain.Provider)}
}

func (r *stubProviderRepo) put(p *domain.Provider) {
	clone := *p
	r.byID[p.ID] = &clone
}

func (r *stubProviderRepo) Create(_ context.Context, p *domain.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == p.Email || existing.Phone == p.Phone {
			return domain.ErrDuplicateAccount
		}
	}
	r.seq++
	p.ID = fmt.Sprintf("p%d", r.seq)
	r.put(p)
	return nil
}

func (r *stubProviderRepo) FindByEmail(_ context.Context, email string) (*domain.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findHits++
	for _, p := range r.byID {
		if p.Email == email {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrProviderNotFound
}

func (r *stubProviderRepo) FindByID(_ context.Context, id string) (*domain.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findHits++
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProviderNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProviderRepo) UpdateProfile(_ context.Context, id string, s domain.ProfileSetup) (*domain.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProviderNotFound
	}
	if s.Experience != nil {
		p.Experience = *s.Experience
	}
	if s.PricePerVisit != nil {
		p.PricePerVisit = *s.PricePerVisit
	}
	if s.City != nil {
		p.City = *s.City
	}
	if s.Pincode != nil {
		p.Pincode = *s.Pincode
	}
	if s.Address != nil {
		p.Address = *s.Address
	}
	if s.About != nil {
		p.About = *s.About
	}
	p.IsProfileComplete = true
	clone := *p
	return &clone, nil
}

func (r *stubProviderRepo) Edit(_ context.Context, id string, e domain.ProviderEdit) (*domain.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProviderNotFound
	}
	if e.Phone != nil {
		for otherID, other := range r.byID {
			if otherID != id && other.Phone == *e.Phone {
				return nil, domain.ErrDuplicateAccount
			}
		}
		p.Phone = *e.Phone
	}
	if e.Name != nil {
		p.Name = *e.Name
	}
	if e.City != nil {
		p.City = *e.City
	}
	if e.Experience != nil {
		p.Experience = *e.Experience
	}
	if e.PricePerVisit != nil {
		p.PricePerVisit = *e.PricePerVisit
	}
	if e.About != nil {
		p.About = *e.About
	}
	if e.IsAvailable != nil {
		p.IsAvailable = *e.IsAvailable
	}
	clone := *p
	return &clone, nil
}

func (r *stubProviderRepo) ToggleAvailability(_ context.Context, id string) (*domain.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProviderNotFound
	}
	p.IsAvailable = !p.IsAvailable
	clone := *p
	return &clone, nil
}

func (r *stubProviderRepo) IncrementTotalJobs(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.incErr != nil {
		return r.incErr
	}
	p, ok := r.byID[id]
	if !ok {
		return domain.ErrProviderNotFound
	}
	p.TotalJobs++
	return nil
}

func (r *stubProviderRepo) Search(_ context.Context, f domain.ProviderFilter) ([]*domain.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Provider
	for _, p := range r.byID {
		if f.Matches(p) {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubBookingRepo struct {
	mu            sync.Mutex
	byID          map[string]*domain.Booking
	byIdempotency map[string]*domain.Booking
	seq           int
	writes        int
	createErr     error
	idemErr       error
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{
		byID:          make(map[string]*domain.Booking),
		byIdempotency: make(map[string]*domain.Booking),
	}
}

func (r *stubBookingRepo) put(b *domain.Booking) {
	clone := *b
	clone.StatusHistory = append([]domain.StatusHistoryEntry(nil), b.StatusHistory...)
	r.byID[b.ID] = &clone
}

func (r *stubBookingRepo) get(id string) *domain.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.byID[id]
	if b == nil {
		return nil
	}
	clone := *b
	return &clone
}

func (r *stubBookingRepo) Create(_ context.Context, b *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.seq++
	r.writes++
	b.ID = fmt.Sprintf("b%d", r.seq)
	r.put(b)
	if b.IdempotencyKey != "" {
		r.byIdempotency[b.IdempotencyKey] = r.byID[b.ID]
	}
	return nil
}

func (r *stubBookingRepo) FindByID(_ context.Context, id string) (*domain.Booking, error) {
	if b := r.get(id); b != nil {
		return b, nil
	}
	return nil, domain.ErrBookingNotFound
}

func (r *stubBookingRepo) FindByIdempotencyKey(_ context.Context, key string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.idemErr != nil {
		return nil, r.idemErr
	}
	b, ok := r.byIdempotency[key]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) list(match func(*domain.Booking) bool) []*domain.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Booking
	for _, b := range r.byID {
		if match(b) {
			clone := *b
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *stubBookingRepo) ListByUser(_ context.Context, userID string) ([]*domain.Booking, error) {
	return r.list(func(b *domain.Booking) bool { return b.UserID == userID }), nil
}

func (r *stubBookingRepo) ListByProvider(_ context.Context, providerID string, statuses ...domain.BookingStatus) ([]*domain.Booking, error) {
	return r.list(func(b *domain.Booking) bool {
		if b.ProviderID != providerID {
			return false
		}
		if len(statuses) == 0 {
			return true
		}
		for _, s := range statuses {
			if b.Status == s {
				return true
			}
		}
		return false
	}), nil
}

func (r *stubBookingRepo) UpdateStatus(_ context.Context, id string, from, to domain.BookingStatus, entry domain.StatusHistoryEntry) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	if b.Status != from {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, b.Status, to)
	}
	r.writes++
	b.Status = to
	b.UpdatedAt = entry.Timestamp
	b.StatusHistory = append(b.StatusHistory, entry)
	clone := *b
	return &clone, nil
}

type stubEventRepo struct {
	mu        sync.Mutex
	insertErr error
	inserted  []*domain.BookingEvent
}

func (r *stubEventRepo) InsertEvent(_ context.Context, e *domain.BookingEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, e)
	return nil
}

type stubSessionStore struct {
	sessions map[string]domain.Session
	ttl      time.Duration
	getErr   error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]domain.Session)}
}

func (s *stubSessionStore) Save(_ context.Context, sess domain.Session, ttl time.Duration) error {
	s.ttl = ttl
	s.sessions[sess.Token] = sess
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, token string) (domain.Session, error) {
	if s.getErr != nil {
		return domain.Session{}, s.getErr
	}
	sess, ok := s.sessions[token]
	if !ok {
		return domain.Session{}, domain.ErrNotFound
	}
	return sess, nil
}

func (s *stubSessionStore) Delete(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func userSession(id string) domain.Session {
	return domain.Session{Token: "tok-" + id, Principal: domain.Principal{Role: domain.RoleUser, AccountID: id}}
}

func providerSession(id string) domain.Session {
	return domain.Session{Token: "tok-" + id, Principal: domain.Principal{Role: domain.RoleProvider, AccountID: id}}
}

func completeProvider(id string) *domain.Provider {
	return &domain.Provider{
		Account:           domain.Account{ID: id, Name: "Ravi " + id, Email: id + "@example.com", Phone: "98" + id},
		ServiceType:       "Plumber",
		City:              "Pune",
		Pincode:           "411001",
		Experience:        5,
		PricePerVisit:     400,
		IsProfileComplete: true,
		IsAvailable:       true,
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
