// Package store holds the data access layer: one interface per
// collection, a MongoDB implementation, and an in-memory implementation
// used by tests and local development without a database.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"healthcare-waste-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// formatRequestID renders the human-readable request identifier,
// e.g. HWM-2026-007. The sequence is zero-padded to three digits and
// grows past that without truncation.
func formatRequestID(year int, seq int64) string {
	return fmt.Sprintf("HWM-%d-%03d", year, seq)
}

var (
	// ErrNotFound means no document matched the lookup.
	ErrNotFound = errors.New("store: not found")
	// ErrConflict means a conditional update matched a live document in
	// the wrong state (e.g. assigning a request that is no longer pending).
	ErrConflict = errors.New("store: conflict")
	// ErrDuplicate means a unique field (user email) already exists.
	ErrDuplicate = errors.New("store: duplicate")
)

// UserStore persists user accounts.
type UserStore interface {
	// CreateUser inserts the user, assigning ID and CreatedAt.
	// Returns ErrDuplicate if the email is taken.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// CompleteUpdate carries the fields stamped onto a request at completion.
type CompleteUpdate struct {
	DisposalMethod      string
	DisposalLocation    string
	CompletedAt         time.Time
	EnvironmentalImpact models.EnvironmentalImpact
}

// WasteRequestStore persists waste disposal requests.
type WasteRequestStore interface {
	// CreateRequest inserts the request, assigning ID, CreatedAt and a
	// sequential RequestID of the form HWM-<year>-<NNN>. The sequence is
	// taken from an atomic per-year counter.
	CreateRequest(ctx context.Context, req *models.WasteRequest) error
	GetRequestByID(ctx context.Context, id primitive.ObjectID) (*models.WasteRequest, error)
	// ListByCreator returns the creator's requests, newest first.
	ListByCreator(ctx context.Context, creator primitive.ObjectID) ([]models.WasteRequest, error)
	// ListOpen returns pending and processing requests, newest first.
	ListOpen(ctx context.Context) ([]models.WasteRequest, error)
	// Assign moves a pending request to processing and records the
	// assignee. Returns ErrNotFound for an unknown id and ErrConflict for
	// a request that exists but is no longer pending.
	Assign(ctx context.Context, id, assignee primitive.ObjectID) (*models.WasteRequest, error)
	// Complete moves the request to completed and stamps the update.
	Complete(ctx context.Context, id primitive.ObjectID, upd CompleteUpdate) (*models.WasteRequest, error)
}

// DisposalMethodStore serves the seeded disposal-method catalog.
type DisposalMethodStore interface {
	ListMethods(ctx context.Context) ([]models.DisposalMethod, error)
	ListMethodsByWasteType(ctx context.Context, wasteType string) ([]models.DisposalMethod, error)
	CountMethods(ctx context.Context) (int64, error)
	InsertMethods(ctx context.Context, methods []models.DisposalMethod) error
}

// TrainingStore serves training modules and per-user progress.
type TrainingStore interface {
	ListModulesForRole(ctx context.Context, userType string) ([]models.TrainingModule, error)
	GetModuleByID(ctx context.Context, id primitive.ObjectID) (*models.TrainingModule, error)
	CountModules(ctx context.Context) (int64, error)
	InsertModules(ctx context.Context, modules []models.TrainingModule) error
	// UpsertProgress records a module completion, replacing any earlier
	// record for the same (user, module) pair.
	UpsertProgress(ctx context.Context, progress *models.UserProgress) error
	ListProgressByUser(ctx context.Context, userID primitive.ObjectID) ([]models.UserProgress, error)
}

// Store bundles the per-collection interfaces the handlers depend on.
type Store struct {
	Users           UserStore
	Requests        WasteRequestStore
	DisposalMethods DisposalMethodStore
	Training        TrainingStore
}
