package mongo

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/servicehub/marketplace/internal/core/domain"
)

const (
	collectionUsers     = "users"
	collectionProviders = "providers"
)

// accountIndexes makes email and phone unique within one account kind.
// Each kind lives in its own collection, so the namespaces never collide.
func accountIndexes(ctx context.Context, col *mongo.Collection, extra ...mongo.IndexModel) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := append([]mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true)},
	}, extra...)

	_, err := col.Indexes().CreateMany(ctx, indexes)
	return err
}

// UserRepository implements ports.UserRepository using MongoDB.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	return accountIndexes(ctx, r.col)
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	u.ID = newID()
	if _, err := r.col.InsertOne(ctx, u); err != nil {
		u.ID = ""
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateAccount
		}
		return storeErr("insert user", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u domain.User
	if err := r.col.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeErr("find user", err)
	}
	return &u, nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error) {
	out := make(map[string]*domain.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, storeErr("find users", err)
	}
	defer cursor.Close(ctx)

	var users []*domain.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, storeErr("decode users", err)
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

// ProviderRepository implements ports.ProviderRepository using MongoDB.
type ProviderRepository struct {
	col *mongo.Collection
}

func NewProviderRepository(db *mongo.Database) *ProviderRepository {
	return &ProviderRepository{col: db.Collection(collectionProviders)}
}

// EnsureIndexes adds a directory index on top of the account indexes.
func (r *ProviderRepository) EnsureIndexes(ctx context.Context) error {
	return accountIndexes(ctx, r.col, mongo.IndexModel{
		Keys: bson.D{
			{Key: "is_profile_complete", Value: 1},
			{Key: "is_available", Value: 1},
			{Key: "service_type", Value: 1},
		},
	})
}

func (r *ProviderRepository) Create(ctx context.Context, p *domain.Provider) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	p.ID = newID()
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		p.ID = ""
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateAccount
		}
		return storeErr("insert provider", err)
	}
	return nil
}

func (r *ProviderRepository) FindByEmail(ctx context.Context, email string) (*domain.Provider, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *ProviderRepository) FindByID(ctx context.Context, id string) (*domain.Provider, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ProviderRepository) findOne(ctx context.Context, filter bson.M) (*domain.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Provider
	if err := r.col.FindOne(ctx, filter).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProviderNotFound
		}
		return nil, storeErr("find provider", err)
	}
	return &p, nil
}

// UpdateProfile sets the supplied fields and is_profile_complete in one write.
func (r *ProviderRepository) UpdateProfile(ctx context.Context, id string, s domain.ProfileSetup) (*domain.Provider, error) {
	set := bson.M{"is_profile_complete": true}
	setIf(set, "experience", s.Experience)
	setIf(set, "price_per_visit", s.PricePerVisit)
	setIf(set, "city", s.City)
	setIf(set, "pincode", s.Pincode)
	setIf(set, "address", s.Address)
	setIf(set, "about", s.About)

	return r.updateOne(ctx, id, bson.M{"$set": set})
}

func (r *ProviderRepository) Edit(ctx context.Context, id string, e domain.ProviderEdit) (*domain.Provider, error) {
	set := bson.M{}
	setIf(set, "name", e.Name)
	setIf(set, "phone", e.Phone)
	setIf(set, "city", e.City)
	setIf(set, "experience", e.Experience)
	setIf(set, "price_per_visit", e.PricePerVisit)
	setIf(set, "about", e.About)
	setIf(set, "is_available", e.IsAvailable)

	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}
	return r.updateOne(ctx, id, bson.M{"$set": set})
}

// ToggleAvailability negates is_available server side with an aggregation
// pipeline update, so concurrent toggles never lose an update.
func (r *ProviderRepository) ToggleAvailability(ctx context.Context, id string) (*domain.Provider, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "is_available", Value: bson.D{{Key: "$not", Value: bson.A{"$is_available"}}}},
		}}},
	}
	return r.updateOne(ctx, id, pipeline)
}

func (r *ProviderRepository) updateOne(ctx context.Context, id string, update interface{}) (*domain.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p domain.Provider
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&p)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, domain.ErrProviderNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, domain.ErrDuplicateAccount
		}
		return nil, storeErr("update provider", err)
	}
	return &p, nil
}

func (r *ProviderRepository) IncrementTotalJobs(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"total_jobs": 1}})
	if err != nil {
		return storeErr("increment total jobs", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProviderNotFound
	}
	return nil
}

// Search translates the filter into a single query. Text inputs are escaped
// before being used as regular expressions.
func (r *ProviderRepository) Search(ctx context.Context, f domain.ProviderFilter) ([]*domain.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, searchFilter(f))
	if err != nil {
		return nil, storeErr("search providers", err)
	}
	defer cursor.Close(ctx)

	out := []*domain.Provider{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, storeErr("decode providers", err)
	}
	return out, nil
}

func searchFilter(f domain.ProviderFilter) bson.M {
	filter := bson.M{
		"is_profile_complete": true,
		"is_available":        true,
	}
	if f.ServiceType != "" {
		filter["service_type"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(f.ServiceType) + "$", Options: "i"}
	}
	if f.City != "" {
		filter["city"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.City), Options: "i"}
	}
	if f.Pincode != "" {
		filter["pincode"] = f.Pincode
	}
	if f.MinExperience != nil {
		filter["experience"] = bson.M{"$gte": *f.MinExperience}
	}
	if f.MaxPrice != nil {
		filter["price_per_visit"] = bson.M{"$lte": *f.MaxPrice}
	}
	return filter
}

// setIf adds key to set when v is non-nil.
func setIf[T any](set bson.M, key string, v *T) {
	if v != nil {
		set[key] = *v
	}
}
