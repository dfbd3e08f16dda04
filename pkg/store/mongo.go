package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inklab/inkdoc/pkg/codec"
	apperrors "github.com/inklab/inkdoc/pkg/errors"
	"github.com/inklab/inkdoc/pkg/observability"
)

// MongoStore persists documents in a MongoDB collection, one BSON
// document per snapshot keyed by the document ID.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// MongoConfig configures a MongoDB-backed store.
type MongoConfig struct {
	URI        string // e.g. "mongodb://localhost:27017"
	Database   string // defaults to "inkdoc"
	Collection string // defaults to "documents"
}

// NewMongoStore connects to MongoDB and verifies the connection with a
// ping before returning.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (Store, error) {
	if cfg.Database == "" {
		cfg.Database = "inkdoc"
	}
	if cfg.Collection == "" {
		cfg.Collection = "documents"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "connect mongo %s", cfg.URI)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "ping mongo %s", cfg.URI)
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (s *MongoStore) Save(ctx context.Context, rec codec.DocumentRecord) error {
	_, err := s.collection.ReplaceOne(ctx,
		bson.M{"id": rec.ID},
		rec,
		options.Replace().SetUpsert(true))
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStore, err, "write %s", rec.ID)
	}
	observability.Store().OnSave(ctx, rec.ID, 0)
	return nil
}

func (s *MongoStore) Load(ctx context.Context, id string) (codec.DocumentRecord, error) {
	var rec codec.DocumentRecord
	err := s.collection.FindOne(ctx, bson.M{"id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		observability.Store().OnLoad(ctx, id, false)
		return codec.DocumentRecord{}, ErrNotFound
	}
	if err != nil {
		return codec.DocumentRecord{}, apperrors.Wrap(apperrors.ErrCodeStore, err, "read %s", id)
	}
	observability.Store().OnLoad(ctx, id, true)
	return rec, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStore, err, "delete %s", id)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	observability.Store().OnDelete(ctx, id)
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	cur, err := s.collection.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"id": 1}))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "list documents")
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var doc struct {
			ID string `bson:"id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID)
	}
	return ids, cur.Err()
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
