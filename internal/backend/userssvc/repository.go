// Package userssvc implements the users service: profile storage over
// MongoDB, the RPC operations the gateway calls, and the consumer for the
// compensating revert event.
package userssvc

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chirper/social-system/internal/core/domain"
)

const (
	collectionUsers = "users"
	queryTimeout    = 5 * time.Second
)

// Repository is the persistence seam for user profiles. Tests swap in an
// in-memory implementation.
type Repository interface {
	Insert(ctx context.Context, u *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByIDHash(ctx context.Context, idHash string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Find(ctx context.Context, page, limit int) ([]domain.User, int64, error)
	Update(ctx context.Context, u *domain.User) error
	DeleteByUsername(ctx context.Context, username string) (int64, error)
}

// userDocument is the MongoDB projection of a profile. Soft-deleted rows
// keep their document; every read filters on deleted_at.
type userDocument struct {
	ID          string     `bson:"_id"`
	IDHash      string     `bson:"id_hash"`
	Username    string     `bson:"username"`
	FirstName   string     `bson:"first_name"`
	LastName    string     `bson:"last_name"`
	DateOfBirth string     `bson:"date_of_birth"`
	CreatedAt   time.Time  `bson:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at"`
	DeletedAt   *time.Time `bson:"deleted_at,omitempty"`
}

func toDocument(u *domain.User) userDocument {
	return userDocument{
		ID:          u.ID,
		IDHash:      u.IDHash,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		DateOfBirth: u.DateOfBirth,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
		DeletedAt:   u.DeletedAt,
	}
}

func (d userDocument) toDomain() domain.User {
	return domain.User{
		ID:          d.ID,
		IDHash:      d.IDHash,
		Username:    d.Username,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		DateOfBirth: d.DateOfBirth,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		DeletedAt:   d.DeletedAt,
	}
}

// MongoRepository stores user profiles in a MongoDB collection.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{col: db.Collection(collectionUsers)}
}

// notDeleted filters out soft-deleted documents; absent and null both match.
func notDeleted(filter bson.M) bson.M {
	filter["deleted_at"] = nil
	return filter
}

func (r *MongoRepository) Insert(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, toDocument(u))
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrUsernameExists
	}
	return err
}

func (r *MongoRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, notDeleted(bson.M{"username": username}))
}

func (r *MongoRepository) FindByIDHash(ctx context.Context, idHash string) (*domain.User, error) {
	return r.findOne(ctx, notDeleted(bson.M{"id_hash": idHash}))
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, notDeleted(bson.M{"_id": id}))
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var doc userDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	u := doc.toDomain()
	return &u, nil
}

// Find returns one page of live profiles, oldest first, plus the total
// live count.
func (r *MongoRepository) Find(ctx context.Context, page, limit int) ([]domain.User, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := notDeleted(bson.M{})

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	users := make([]domain.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toDomain())
	}
	return users, total, nil
}

func (r *MongoRepository) Update(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": u.ID}, toDocument(u))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// DeleteByUsername removes a profile outright. It backs the compensating
// revert event, so zero matches is a valid outcome, not an error.
func (r *MongoRepository) DeleteByUsername(ctx context.Context, username string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"username": username})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the username uniqueness guard and lookup indexes.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "id_hash", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
