package popularity

import (
	"context"
	"errors"
	"fmt"

	"github.com/StormKing969/movie-review-app/internal/models"
	"github.com/StormKing969/movie-review-app/internal/structures"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	MovieID   int                `bson:"movie_id"`
	Count     int                `bson:"count"`
	PosterURL string             `bson:"poster_url"`
	MovieName string             `bson:"movie_name"`
}

func (r mongoRecord) model() models.PopularityRecord {
	return models.PopularityRecord{
		DocumentID: r.ID.Hex(),
		MovieID:    r.MovieID,
		Count:      r.Count,
		PosterURL:  r.PosterURL,
		MovieName:  r.MovieName,
	}
}

type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore wraps a collection and makes sure movie_id is uniquely indexed.
func NewMongoStore(ctx context.Context, coll *mongo.Collection) (*MongoStore, error) {
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "movie_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := coll.Indexes().CreateOne(ctx, idx); err != nil {
		return nil, fmt.Errorf("create movie_id index: %w", err)
	}
	return &MongoStore{coll: coll}, nil
}

func (s *MongoStore) Name() string {
	return structures.BackendMongo
}

func (s *MongoStore) FindByMovieID(ctx context.Context, movieID int) (*models.PopularityRecord, error) {
	var doc mongoRecord
	err := s.coll.FindOne(ctx, bson.M{"movie_id": movieID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	rec := doc.model()
	return &rec, nil
}

func (s *MongoStore) Create(ctx context.Context, record models.PopularityRecord) error {
	_, err := s.coll.InsertOne(ctx, mongoRecord{
		MovieID:   record.MovieID,
		Count:     record.Count,
		PosterURL: record.PosterURL,
		MovieName: record.MovieName,
	})
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (s *MongoStore) IncrementCount(ctx context.Context, movieID int) (int, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc mongoRecord
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"movie_id": movieID},
		bson.M{"$inc": bson.M{"count": 1}},
		opts,
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return doc.Count, nil
}

func (s *MongoStore) TopByCount(ctx context.Context, limit int) ([]models.PopularityRecord, error) {
	if limit <= 0 {
		return []models.PopularityRecord{}, nil
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "count", Value: -1}, {Key: "movie_id", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []mongoRecord
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	records := make([]models.PopularityRecord, len(docs))
	for i, d := range docs {
		records[i] = d.model()
	}
	return records, nil
}

func (s *MongoStore) Count(ctx context.Context) (int, error) {
	n, err := s.coll.CountDocuments(ctx, bson.M{})
	return int(n), err
}

func connectMongo(ctx context.Context, conf structures.MongoConfig) (*MongoStore, func(), error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	cleanup := func() {
		_ = client.Disconnect(context.Background())
	}
	if err := client.Ping(ctx, nil); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	store, err := NewMongoStore(ctx, client.Database(conf.Database).Collection(conf.Collection))
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return store, cleanup, nil
}
