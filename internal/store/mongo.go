package store

import (
	"context"
	"fmt"
	"time"

	"healthcare-waste-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewMongoStore wires all collection stores over one database handle.
func NewMongoStore(db *mongo.Database) *Store {
	return &Store{
		Users:           &mongoUserStore{db: db},
		Requests:        &mongoWasteRequestStore{db: db},
		DisposalMethods: &mongoDisposalMethodStore{db: db},
		Training:        &mongoTrainingStore{db: db},
	}
}

// --- Users ---

type mongoUserStore struct {
	db *mongo.Database
}

func (s *mongoUserStore) CreateUser(ctx context.Context, user *models.User) error {
	collection := s.db.Collection("users")

	count, err := collection.CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		return fmt.Errorf("failed to check for existing user: %w", err)
	}
	if count > 0 {
		return ErrDuplicate
	}

	user.CreatedAt = time.Now()
	result, err := collection.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (s *mongoUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return &user, nil
}

func (s *mongoUserStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.db.Collection("users").FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return &user, nil
}

// --- Waste requests ---

type mongoWasteRequestStore struct {
	db *mongo.Database
}

// nextSequence atomically increments the per-year request counter.
// Upsert makes the first request of a year start its sequence at 1.
func (s *mongoWasteRequestStore) nextSequence(ctx context.Context, year int) (int64, error) {
	counters := s.db.Collection("counters")

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := counters.FindOneAndUpdate(ctx,
		bson.M{"_id": fmt.Sprintf("waste_requests_%d", year)},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to advance request counter: %w", err)
	}
	return counter.Seq, nil
}

func (s *mongoWasteRequestStore) CreateRequest(ctx context.Context, req *models.WasteRequest) error {
	year := time.Now().Year()
	seq, err := s.nextSequence(ctx, year)
	if err != nil {
		return err
	}

	req.RequestID = formatRequestID(year, seq)
	req.Status = models.StatusPending
	req.CreatedAt = time.Now()

	result, err := s.db.Collection("waste_requests").InsertOne(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to insert waste request: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		req.ID = oid
	}
	return nil
}

func (s *mongoWasteRequestStore) GetRequestByID(ctx context.Context, id primitive.ObjectID) (*models.WasteRequest, error) {
	var req models.WasteRequest
	err := s.db.Collection("waste_requests").FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve waste request: %w", err)
	}
	return &req, nil
}

func (s *mongoWasteRequestStore) find(ctx context.Context, filter bson.M) ([]models.WasteRequest, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := s.db.Collection("waste_requests").Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query waste requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.WasteRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode waste requests: %w", err)
	}
	if requests == nil {
		requests = []models.WasteRequest{}
	}
	return requests, nil
}

func (s *mongoWasteRequestStore) ListByCreator(ctx context.Context, creator primitive.ObjectID) ([]models.WasteRequest, error) {
	return s.find(ctx, bson.M{"createdBy": creator})
}

func (s *mongoWasteRequestStore) ListOpen(ctx context.Context) ([]models.WasteRequest, error) {
	return s.find(ctx, bson.M{"status": bson.M{"$in": []string{models.StatusPending, models.StatusProcessing}}})
}

func (s *mongoWasteRequestStore) Assign(ctx context.Context, id, assignee primitive.ObjectID) (*models.WasteRequest, error) {
	collection := s.db.Collection("waste_requests")

	// Conditional update: only a pending request may be assigned. A miss
	// is disambiguated into not-found vs already-assigned below.
	var req models.WasteRequest
	err := collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": models.StatusPending},
		bson.M{"$set": bson.M{"status": models.StatusProcessing, "assignedTo": assignee}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&req)
	if err == nil {
		return &req, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to assign waste request: %w", err)
	}

	count, err := collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to check waste request: %w", err)
	}
	if count == 0 {
		return nil, ErrNotFound
	}
	return nil, ErrConflict
}

func (s *mongoWasteRequestStore) Complete(ctx context.Context, id primitive.ObjectID, upd CompleteUpdate) (*models.WasteRequest, error) {
	var req models.WasteRequest
	err := s.db.Collection("waste_requests").FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":              models.StatusCompleted,
			"disposalMethod":      upd.DisposalMethod,
			"disposalLocation":    upd.DisposalLocation,
			"completedAt":         upd.CompletedAt,
			"environmentalImpact": upd.EnvironmentalImpact,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&req)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to complete waste request: %w", err)
	}
	return &req, nil
}

// --- Disposal methods ---

type mongoDisposalMethodStore struct {
	db *mongo.Database
}

func (s *mongoDisposalMethodStore) list(ctx context.Context, filter bson.M) ([]models.DisposalMethod, error) {
	cursor, err := s.db.Collection("disposal_methods").Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query disposal methods: %w", err)
	}
	defer cursor.Close(ctx)

	var methods []models.DisposalMethod
	if err = cursor.All(ctx, &methods); err != nil {
		return nil, fmt.Errorf("failed to decode disposal methods: %w", err)
	}
	if methods == nil {
		methods = []models.DisposalMethod{}
	}
	return methods, nil
}

func (s *mongoDisposalMethodStore) ListMethods(ctx context.Context) ([]models.DisposalMethod, error) {
	return s.list(ctx, bson.M{})
}

func (s *mongoDisposalMethodStore) ListMethodsByWasteType(ctx context.Context, wasteType string) ([]models.DisposalMethod, error) {
	return s.list(ctx, bson.M{"wasteType": wasteType})
}

func (s *mongoDisposalMethodStore) CountMethods(ctx context.Context) (int64, error) {
	return s.db.Collection("disposal_methods").CountDocuments(ctx, bson.M{})
}

func (s *mongoDisposalMethodStore) InsertMethods(ctx context.Context, methods []models.DisposalMethod) error {
	docs := make([]interface{}, len(methods))
	for i := range methods {
		docs[i] = methods[i]
	}
	_, err := s.db.Collection("disposal_methods").InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("failed to seed disposal methods: %w", err)
	}
	return nil
}

// --- Training ---

type mongoTrainingStore struct {
	db *mongo.Database
}

func (s *mongoTrainingStore) ListModulesForRole(ctx context.Context, userType string) ([]models.TrainingModule, error) {
	filter := bson.M{"userType": bson.M{"$in": []string{userType, models.AudienceBoth}}}
	opts := options.Find().SetSort(bson.M{"title": 1})
	cursor, err := s.db.Collection("training_modules").Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query training modules: %w", err)
	}
	defer cursor.Close(ctx)

	var modules []models.TrainingModule
	if err = cursor.All(ctx, &modules); err != nil {
		return nil, fmt.Errorf("failed to decode training modules: %w", err)
	}
	if modules == nil {
		modules = []models.TrainingModule{}
	}
	return modules, nil
}

func (s *mongoTrainingStore) GetModuleByID(ctx context.Context, id primitive.ObjectID) (*models.TrainingModule, error) {
	var module models.TrainingModule
	err := s.db.Collection("training_modules").FindOne(ctx, bson.M{"_id": id}).Decode(&module)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve training module: %w", err)
	}
	return &module, nil
}

func (s *mongoTrainingStore) CountModules(ctx context.Context) (int64, error) {
	return s.db.Collection("training_modules").CountDocuments(ctx, bson.M{})
}

func (s *mongoTrainingStore) InsertModules(ctx context.Context, modules []models.TrainingModule) error {
	docs := make([]interface{}, len(modules))
	for i := range modules {
		docs[i] = modules[i]
	}
	_, err := s.db.Collection("training_modules").InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("failed to seed training modules: %w", err)
	}
	return nil
}

func (s *mongoTrainingStore) UpsertProgress(ctx context.Context, progress *models.UserProgress) error {
	collection := s.db.Collection("user_progress")

	filter := bson.M{"userId": progress.UserID, "moduleId": progress.ModuleID}
	update := bson.M{
		"$set": bson.M{
			"completedAt":    progress.CompletedAt,
			"score":          progress.Score,
			"certificateUrl": progress.CertificateURL,
		},
		"$setOnInsert": bson.M{"createdAt": progress.CreatedAt},
	}
	var saved models.UserProgress
	err := collection.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&saved)
	if err != nil {
		return fmt.Errorf("failed to save training progress: %w", err)
	}
	*progress = saved
	return nil
}

func (s *mongoTrainingStore) ListProgressByUser(ctx context.Context, userID primitive.ObjectID) ([]models.UserProgress, error) {
	cursor, err := s.db.Collection("user_progress").Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to query training progress: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.UserProgress
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode training progress: %w", err)
	}
	if records == nil {
		records = []models.UserProgress{}
	}
	return records, nil
}
