package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"healthcare-waste-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewMemoryStore builds a Store backed by in-process maps. Semantics
// mirror the Mongo implementation; used by tests and by local runs
// without a database.
func NewMemoryStore() *Store {
	m := &memory{
		users:    make(map[primitive.ObjectID]models.User),
		requests: make(map[primitive.ObjectID]models.WasteRequest),
		counters: make(map[int]int64),
		modules:  make(map[primitive.ObjectID]models.TrainingModule),
		progress: make(map[primitive.ObjectID]models.UserProgress),
	}
	return &Store{
		Users:           (*memoryUserStore)(m),
		Requests:        (*memoryWasteRequestStore)(m),
		DisposalMethods: (*memoryDisposalMethodStore)(m),
		Training:        (*memoryTrainingStore)(m),
	}
}

type memory struct {
	mu       sync.Mutex
	users    map[primitive.ObjectID]models.User
	requests map[primitive.ObjectID]models.WasteRequest
	counters map[int]int64
	methods  []models.DisposalMethod
	modules  map[primitive.ObjectID]models.TrainingModule
	progress map[primitive.ObjectID]models.UserProgress
}

// --- Users ---

type memoryUserStore memory

func (s *memoryUserStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	s.users[user.ID] = *user
	return nil
}

func (s *memoryUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryUserStore) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u := user
	return &u, nil
}

// --- Waste requests ---

type memoryWasteRequestStore memory

func (s *memoryWasteRequestStore) CreateRequest(_ context.Context, req *models.WasteRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	year := time.Now().Year()
	s.counters[year]++

	req.ID = primitive.NewObjectID()
	req.RequestID = formatRequestID(year, s.counters[year])
	req.Status = models.StatusPending
	req.CreatedAt = time.Now()
	s.requests[req.ID] = *req
	return nil
}

func (s *memoryWasteRequestStore) GetRequestByID(_ context.Context, id primitive.ObjectID) (*models.WasteRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	r := req
	return &r, nil
}

func (s *memoryWasteRequestStore) list(match func(models.WasteRequest) bool) []models.WasteRequest {
	requests := []models.WasteRequest{}
	for _, req := range s.requests {
		if match(req) {
			requests = append(requests, req)
		}
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
	return requests
}

func (s *memoryWasteRequestStore) ListByCreator(_ context.Context, creator primitive.ObjectID) ([]models.WasteRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.list(func(r models.WasteRequest) bool { return r.CreatedBy == creator }), nil
}

func (s *memoryWasteRequestStore) ListOpen(_ context.Context) ([]models.WasteRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.list(func(r models.WasteRequest) bool {
		return r.Status == models.StatusPending || r.Status == models.StatusProcessing
	}), nil
}

func (s *memoryWasteRequestStore) Assign(_ context.Context, id, assignee primitive.ObjectID) (*models.WasteRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	if req.Status != models.StatusPending {
		return nil, ErrConflict
	}
	req.Status = models.StatusProcessing
	req.AssignedTo = &assignee
	s.requests[id] = req
	r := req
	return &r, nil
}

func (s *memoryWasteRequestStore) Complete(_ context.Context, id primitive.ObjectID, upd CompleteUpdate) (*models.WasteRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	req.Status = models.StatusCompleted
	req.DisposalMethod = upd.DisposalMethod
	req.DisposalLocation = upd.DisposalLocation
	completedAt := upd.CompletedAt
	req.CompletedAt = &completedAt
	impact := upd.EnvironmentalImpact
	req.EnvironmentalImpact = &impact
	s.requests[id] = req
	r := req
	return &r, nil
}

// --- Disposal methods ---

type memoryDisposalMethodStore memory

func (s *memoryDisposalMethodStore) ListMethods(_ context.Context) ([]models.DisposalMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	methods := []models.DisposalMethod{}
	methods = append(methods, s.methods...)
	return methods, nil
}

func (s *memoryDisposalMethodStore) ListMethodsByWasteType(_ context.Context, wasteType string) ([]models.DisposalMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	methods := []models.DisposalMethod{}
	for _, m := range s.methods {
		if m.WasteType == wasteType {
			methods = append(methods, m)
		}
	}
	return methods, nil
}

func (s *memoryDisposalMethodStore) CountMethods(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return int64(len(s.methods)), nil
}

func (s *memoryDisposalMethodStore) InsertMethods(_ context.Context, methods []models.DisposalMethod) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range methods {
		if m.ID.IsZero() {
			m.ID = primitive.NewObjectID()
		}
		s.methods = append(s.methods, m)
	}
	return nil
}

// --- Training ---

type memoryTrainingStore memory

func (s *memoryTrainingStore) ListModulesForRole(_ context.Context, userType string) ([]models.TrainingModule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	modules := []models.TrainingModule{}
	for _, m := range s.modules {
		if m.VisibleTo(userType) {
			modules = append(modules, m)
		}
	}
	sort.Slice(modules, func(i, j int) bool { return modules[i].Title < modules[j].Title })
	return modules, nil
}

func (s *memoryTrainingStore) GetModuleByID(_ context.Context, id primitive.ObjectID) (*models.TrainingModule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	module, ok := s.modules[id]
	if !ok {
		return nil, ErrNotFound
	}
	m := module
	return &m, nil
}

func (s *memoryTrainingStore) CountModules(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return int64(len(s.modules)), nil
}

func (s *memoryTrainingStore) InsertModules(_ context.Context, modules []models.TrainingModule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range modules {
		if m.ID.IsZero() {
			m.ID = primitive.NewObjectID()
		}
		s.modules[m.ID] = m
	}
	return nil
}

func (s *memoryTrainingStore) UpsertProgress(_ context.Context, progress *models.UserProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.progress {
		if existing.UserID == progress.UserID && existing.ModuleID == progress.ModuleID {
			progress.ID = id
			progress.CreatedAt = existing.CreatedAt
			s.progress[id] = *progress
			return nil
		}
	}
	progress.ID = primitive.NewObjectID()
	s.progress[progress.ID] = *progress
	return nil
}

func (s *memoryTrainingStore) ListProgressByUser(_ context.Context, userID primitive.ObjectID) ([]models.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := []models.UserProgress{}
	for _, p := range s.progress {
		if p.UserID == userID {
			records = append(records, p)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}
