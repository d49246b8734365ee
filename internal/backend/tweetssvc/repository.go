// Package tweetssvc implements the tweets service: tweet storage over
// MongoDB and the RPC operations the gateway calls.
package tweetssvc

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
	collectionTweets = "tweets"
	queryTimeout     = 5 * time.Second
)

// Repository is the persistence seam for tweets.
type Repository interface {
	Insert(ctx context.Context, t *domain.Tweet) error
	FindByID(ctx context.Context, id string) (*domain.Tweet, error)
	Find(ctx context.Context, page, limit int) ([]domain.Tweet, int64, error)
	Update(ctx context.Context, t *domain.Tweet) error
	SoftDeleteByAuthor(ctx context.Context, authorID string, at time.Time) (int64, error)
}

type tweetDocument struct {
	ID        string     `bson:"_id"`
	AuthorID  string     `bson:"author_id"`
	Title     string     `bson:"title"`
	Content   string     `bson:"content"`
	CreatedAt time.Time  `bson:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty"`
}

func toDocument(t *domain.Tweet) tweetDocument {
	return tweetDocument{
		ID:        t.ID,
		AuthorID:  t.AuthorID,
		Title:     t.Title,
		Content:   t.Content,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		DeletedAt: t.DeletedAt,
	}
}

func (d tweetDocument) toDomain() domain.Tweet {
	return domain.Tweet{
		ID:        d.ID,
		AuthorID:  d.AuthorID,
		Title:     d.Title,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		DeletedAt: d.DeletedAt,
	}
}

// MongoRepository stores tweets in a MongoDB collection.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{col: db.Collection(collectionTweets)}
}

func notDeleted(filter bson.M) bson.M {
	filter["deleted_at"] = nil
	return filter
}

func (r *MongoRepository) Insert(ctx context.Context, t *domain.Tweet) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, toDocument(t))
	return err
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (*domain.Tweet, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var doc tweetDocument
	if err := r.col.FindOne(ctx, notDeleted(bson.M{"_id": id})).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTweetNotFound
		}
		return nil, err
	}
	t := doc.toDomain()
	return &t, nil
}

// Find returns one page of live tweets, newest first, plus the total live
// count.
func (r *MongoRepository) Find(ctx context.Context, page, limit int) ([]domain.Tweet, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := notDeleted(bson.M{})

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var docs []tweetDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	tweets := make([]domain.Tweet, 0, len(docs))
	for _, d := range docs {
		tweets = append(tweets, d.toDomain())
	}
	return tweets, total, nil
}

func (r *MongoRepository) Update(ctx context.Context, t *domain.Tweet) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": t.ID}, toDocument(t))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrTweetNotFound
	}
	return nil
}

// SoftDeleteByAuthor marks every live tweet of one author deleted. Backs
// the cascade that follows a user deletion.
func (r *MongoRepository) SoftDeleteByAuthor(ctx context.Context, authorID string, at time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.col.UpdateMany(ctx,
		notDeleted(bson.M{"author_id": authorID}),
		bson.M{"$set": bson.M{"deleted_at": at, "updated_at": at}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// EnsureIndexes creates the listing and author-lookup indexes.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
