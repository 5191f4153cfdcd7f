package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"loadtrack/internal/domain"
	"loadtrack/internal/repository"
)

// LoadService owns the authoritative load collection and enforces the
// stage-transition protocol. The collection is held in memory and written
// through to the store as a whole on every successful mutation; a failed
// write leaves the in-memory collection unchanged.
type LoadService struct {
	store    repository.LoadStore
	notifier *NotificationService

	mu    sync.RWMutex
	loads []domain.Load
}

// NewLoadService creates a new LoadService.
func NewLoadService(store repository.LoadStore, notifier *NotificationService) *LoadService {
	return &LoadService{
		store:    store,
		notifier: notifier,
	}
}

// Init reads the collection from the store. If no collection document
// exists yet, it seeds a default dataset and persists it.
func (s *LoadService) Init(ctx context.Context) error {
	loads, err := s.store.ReadAll(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		loads = SeedLoads()
		if err := s.store.WriteAll(ctx, loads); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.loads = loads
	s.mu.Unlock()

	return nil
}

// CreateLoadRequest contains the parameters for creating a load. A load
// always starts with a received odometer reading.
type CreateLoadRequest struct {
	Origin          string
	Destination     string
	PickupDate      time.Time
	DeliveryDate    time.Time
	ClaimedMiles    int
	PayAmount       float64
	DriverID        string
	DispatchID      string
	ReceivedReading int
}

// Create assigns an ID and creation timestamp, inserts the load at the
// head of the collection, and persists the collection.
func (s *LoadService) Create(ctx context.Context, req CreateLoadRequest) (*domain.Load, error) {
	if req.ReceivedReading < 0 {
		return nil, ErrNegativeReading
	}
	if req.ReceivedReading == 0 {
		return nil, ErrMissingReceivedReading
	}

	now := time.Now()
	load := domain.Load{
		ID:           uuid.New().String(),
		Status:       domain.LoadStatusPending,
		Origin:       req.Origin,
		Destination:  req.Destination,
		PickupDate:   req.PickupDate,
		DeliveryDate: req.DeliveryDate,
		ClaimedMiles: req.ClaimedMiles,
		PayAmount:    req.PayAmount,
		DriverID:     req.DriverID,
		DispatchID:   req.DispatchID,
		OdometerReadings: []domain.OdometerReading{
			{Stage: domain.StageReceived, Reading: req.ReceivedReading, Timestamp: now},
		},
		CreatedAt: now,
	}
	load.MileageAlerts = CalculateMileageAlerts(&load)

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.Load, 0, len(s.loads)+1)
	next = append(next, load)
	next = append(next, s.loads...)

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		_ = s.notifier.NotifyLoadCreated(ctx, &load)
	}

	return &load, nil
}

// Get retrieves a load by ID.
func (s *LoadService) Get(id string) (*domain.Load, error) {
	if id == "" {
		return nil, ErrInvalidLoadID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, repository.ErrNotFound
	}

	load := s.loads[idx]
	return &load, nil
}

// List returns the current load collection in order.
func (s *LoadService) List() []domain.Load {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loads := make([]domain.Load, len(s.loads))
	copy(loads, s.loads)
	return loads
}

// AppendReadingRequest contains the parameters for appending an odometer
// reading to a load.
type AppendReadingRequest struct {
	LoadID  string
	Stage   domain.ReadingStage
	Reading int
}

// AppendOdometerReading records an odometer reading for a stage, advances
// the load status, and recomputes mileage alerts. Recomputation is a
// post-condition of every reading mutation, not an incidental side effect.
// Stage-order violations are rejected before any state changes.
func (s *LoadService) AppendOdometerReading(ctx context.Context, req AppendReadingRequest) (*domain.Load, error) {
	if req.LoadID == "" {
		return nil, ErrInvalidLoadID
	}
	if req.Reading < 0 {
		return nil, ErrNegativeReading
	}

	switch req.Stage {
	case domain.StageReceived, domain.StagePickup, domain.StageDelivery:
	default:
		return nil, ErrInvalidReadingStage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(req.LoadID)
	if idx < 0 {
		return nil, repository.ErrNotFound
	}

	// Work on a copy so a rejected mutation leaves the load untouched.
	load := s.loads[idx]

	if load.Reading(req.Stage) != nil {
		return nil, ErrDuplicateReadingStage
	}

	now := time.Now()
	switch req.Stage {
	case domain.StageReceived:
		// Normally recorded at creation; no transition.
	case domain.StagePickup:
		received := load.Reading(domain.StageReceived)
		if received == nil {
			return nil, ErrMissingReceivedReading
		}
		if req.Reading < received.Reading {
			return nil, ErrPickupBeforeReceived
		}
		load.Status = domain.LoadStatusAtPickup
	case domain.StageDelivery:
		pickup := load.Reading(domain.StagePickup)
		if pickup == nil {
			return nil, ErrMissingPickupReading
		}
		if req.Reading < pickup.Reading {
			return nil, ErrDeliveryBeforePickup
		}
		load.Status = domain.LoadStatusDelivered
		load.CompletedAt = now
	}

	readings := make([]domain.OdometerReading, len(load.OdometerReadings), len(load.OdometerReadings)+1)
	copy(readings, load.OdometerReadings)
	load.OdometerReadings = append(readings, domain.OdometerReading{
		Stage:     req.Stage,
		Reading:   req.Reading,
		Timestamp: now,
	})

	// Stale alerts are discarded wholesale on every reading change.
	load.MileageAlerts = CalculateMileageAlerts(&load)

	next := s.cloneCollection()
	next[idx] = load

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		_ = s.notifier.NotifyStageRecorded(ctx, &load, req.Stage)
		if len(load.MileageAlerts) > 0 {
			_ = s.notifier.NotifyMileageAlerts(ctx, &load)
		}
	}

	return &load, nil
}

// UpdateLoadRequest contains the optional fields to merge into a load.
// Nil fields are left untouched.
type UpdateLoadRequest struct {
	Origin           *string
	Destination      *string
	PickupDate       *time.Time
	DeliveryDate     *time.Time
	ClaimedMiles     *int
	PayAmount        *float64
	DriverID         *string
	DispatchID       *string
	OdometerReadings []domain.OdometerReading
	Fuel             *domain.FuelPurchase
	DaysUsed         *int
	DailyTruckCost   *float64
	Tolls            *float64
}

// Update merges the given fields into the matching load and persists the
// collection. When the merge replaces the odometer readings, mileage
// alerts are recomputed before the write. An unknown ID is a silent no-op
// so the mobile client can retry blindly; callers that need certainty
// should Get first.
func (s *LoadService) Update(ctx context.Context, id string, req UpdateLoadRequest) (*domain.Load, error) {
	if id == "" {
		return nil, ErrInvalidLoadID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, nil
	}

	load := s.loads[idx]

	if req.Origin != nil {
		load.Origin = *req.Origin
	}
	if req.Destination != nil {
		load.Destination = *req.Destination
	}
	if req.PickupDate != nil {
		load.PickupDate = *req.PickupDate
	}
	if req.DeliveryDate != nil {
		load.DeliveryDate = *req.DeliveryDate
	}
	if req.ClaimedMiles != nil && load.ClaimedMiles == 0 {
		// Claimed miles are immutable once set.
		load.ClaimedMiles = *req.ClaimedMiles
	}
	if req.PayAmount != nil {
		load.PayAmount = *req.PayAmount
	}
	if req.DriverID != nil {
		load.DriverID = *req.DriverID
	}
	if req.DispatchID != nil {
		load.DispatchID = *req.DispatchID
	}
	if req.Fuel != nil {
		fuel := *req.Fuel
		load.Fuel = &fuel
	}
	if req.DaysUsed != nil {
		load.DaysUsed = *req.DaysUsed
	}
	if req.DailyTruckCost != nil {
		load.DailyTruckCost = *req.DailyTruckCost
	}
	if req.Tolls != nil {
		load.Tolls = *req.Tolls
	}
	if req.OdometerReadings != nil {
		readings := make([]domain.OdometerReading, len(req.OdometerReadings))
		copy(readings, req.OdometerReadings)
		load.OdometerReadings = readings
		load.MileageAlerts = CalculateMileageAlerts(&load)
	}

	next := s.cloneCollection()
	next[idx] = load

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	return &load, nil
}

// Delete removes a load unconditionally. Unknown IDs are a silent no-op.
func (s *LoadService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidLoadID
	}
	return s.BulkDelete(ctx, []string{id})
}

// BulkDelete removes all matching loads, preserving the order of the
// remaining collection.
func (s *LoadService) BulkDelete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.Load, 0, len(s.loads))
	for _, load := range s.loads {
		if !drop[load.ID] {
			next = append(next, load)
		}
	}

	if len(next) == len(s.loads) {
		return nil
	}

	return s.commit(ctx, next)
}

// BulkUpdateStatus sets the status on all matching loads without odometer
// validation. This is the administrative override and the only path that
// can put a load in_transit.
func (s *LoadService) BulkUpdateStatus(ctx context.Context, ids []string, status domain.LoadStatus) error {
	switch status {
	case domain.LoadStatusPending, domain.LoadStatusAtPickup,
		domain.LoadStatusInTransit, domain.LoadStatusDelivered:
	default:
		return ErrInvalidStatus
	}

	if len(ids) == 0 {
		return nil
	}

	match := make(map[string]bool, len(ids))
	for _, id := range ids {
		match[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cloneCollection()
	changed := false
	for i := range next {
		if match[next[i].ID] {
			next[i].Status = status
			changed = true
		}
	}

	if !changed {
		return nil
	}

	return s.commit(ctx, next)
}

// BulkAssignDriver reassigns ownership on all matching loads.
func (s *LoadService) BulkAssignDriver(ctx context.Context, ids []string, driverID string) error {
	if driverID == "" {
		return ErrInvalidDriverID
	}

	if len(ids) == 0 {
		return nil
	}

	match := make(map[string]bool, len(ids))
	for _, id := range ids {
		match[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cloneCollection()
	changed := false
	for i := range next {
		if match[next[i].ID] {
			next[i].DriverID = driverID
			changed = true
		}
	}

	if !changed {
		return nil
	}

	return s.commit(ctx, next)
}

// indexOf returns the position of a load in the collection, or -1.
// Caller must hold s.mu.
func (s *LoadService) indexOf(id string) int {
	for i := range s.loads {
		if s.loads[i].ID == id {
			return i
		}
	}
	return -1
}

// cloneCollection returns a shallow copy of the collection slice so a
// failed write never leaves a half-mutated collection visible.
// Caller must hold s.mu.
func (s *LoadService) cloneCollection() []domain.Load {
	next := make([]domain.Load, len(s.loads))
	copy(next, s.loads)
	return next
}

// commit writes the collection through to the store and, only on success,
// makes it the in-memory collection. Storage errors propagate to the
// caller untouched; there is no retry. Caller must hold s.mu.
func (s *LoadService) commit(ctx context.Context, next []domain.Load) error {
	if err := s.store.WriteAll(ctx, next); err != nil {
		return err
	}
	s.loads = next
	return nil
}
