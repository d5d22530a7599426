package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/store"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store keeps every document in one collection keyed by _id.
type Store struct {
	col *mongo.Collection
	now func() time.Time
}

func NewStore(col *mongo.Collection) *Store {
	return &Store{col: col, now: time.Now}
}

// Connect opens a client and returns the store on database.collection.
func Connect(ctx context.Context, uri, database, collection string) (*Store, *mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("unable to connect mongo: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("unable to ping mongo: %v", err)
	}
	return NewStore(client.Database(database).Collection(collection)), client, nil
}

func (v *Store) Fetch(ctx context.Context, q store.Query) ([]store.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: store.FieldCreatedAt, Value: 1}})
	if q.Newest {
		opts.SetSort(bson.D{{Key: store.FieldCreatedAt, Value: -1}})
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cursor, err := v.col.Find(ctx, BuildFilter(q), opts)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch documents: %v", err)
	}
	defer cursor.Close(ctx)

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("unable to decode documents: %v", err)
	}
	out := make([]store.Document, 0, len(raw))
	for _, item := range raw {
		doc, err := store.Normalize(item)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func (v *Store) Get(ctx context.Context, id string) (store.Document, error) {
	var raw bson.M
	if err := v.col.FindOne(ctx, bson.M{store.FieldID: id}).Decode(&raw); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
		}
		return nil, fmt.Errorf("unable to get document: %v", err)
	}
	return store.Normalize(raw)
}

func (v *Store) Create(ctx context.Context, doc store.Document) (store.Document, error) {
	out, err := store.Normalize(doc)
	if err != nil {
		return nil, err
	}
	if out.ID() == "" {
		out[store.FieldID] = uuid.NewString()
	}
	if out.Kind() == "" {
		return nil, fmt.Errorf("document %s has no _type", out.ID())
	}
	ts := store.FormatTime(v.now())
	out[store.FieldRev] = uuid.NewString()
	out[store.FieldCreatedAt] = ts
	out[store.FieldUpdatedAt] = ts

	if _, err := v.col.InsertOne(ctx, bson.M(out)); err != nil {
		return nil, fmt.Errorf("unable to create document: %v", err)
	}
	return out, nil
}

func (v *Store) Patch(ctx context.Context, id string, patch *store.Patch) (store.Document, error) {
	pipeline, err := BuildPipeline(patch, uuid.NewString(), store.FormatTime(v.now()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidPatch, err)
	}

	filter := bson.M{store.FieldID: id}
	if len(patch.IfRevision) > 0 {
		filter[store.FieldRev] = patch.IfRevision
	}

	var raw bson.M
	err = v.col.FindOneAndUpdate(ctx, filter, pipeline,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if _, err := v.Get(ctx, id); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", store.ErrRevisionMismatch, id)
	} else if err != nil {
		return nil, fmt.Errorf("unable to patch document: %v", err)
	}
	return store.Normalize(raw)
}

func (v *Store) Delete(ctx context.Context, id string) error {
	res, err := v.col.DeleteOne(ctx, bson.M{store.FieldID: id})
	if err != nil {
		return fmt.Errorf("unable to delete document: %v", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	return nil
}
