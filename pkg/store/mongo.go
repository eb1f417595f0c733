package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig configures a mongo-backed store.
type MongoConfig struct {
	// URI is the mongodb connection string.
	URI string

	// Database name. Defaults to "simpledraggable".
	Database string

	// Collection name. Defaults to "offsets".
	Collection string
}

// MongoStore persists offsets as one document per key and uses change
// streams for cross-process notifications. Change streams require the server
// to run as a replica set; Subscribe fails on standalone deployments.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection

	mu      sync.Mutex
	cancels []context.CancelFunc
	closed  bool
}

// offsetDoc is the stored document shape.
type offsetDoc struct {
	ID    string `bson:"_id"`
	Value []byte `bson:"value"`
}

// NewMongo connects to mongodb and verifies the connection.
func NewMongo(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "simpledraggable"
	}
	if cfg.Collection == "" {
		cfg.Collection = "offsets"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Get retrieves the value for key.
func (s *MongoStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc offsetDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("mongo find: %w", err)
	}
	return doc.Value, true, nil
}

// Set stores value under key. Notification happens server-side through the
// change stream.
func (s *MongoStore) Set(ctx context.Context, key string, value []byte) error {
	doc := offsetDoc{ID: key, Value: value}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo replace: %w", err)
	}
	return nil
}

// Delete removes key. Subscribers observe the deletion as an empty-value
// event.
func (s *MongoStore) Delete(ctx context.Context, key string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo delete: %w", err)
	}
	return nil
}

// changeEvent is the subset of the change stream document we consume.
type changeEvent struct {
	OperationType string `bson:"operationType"`
	DocumentKey   struct {
		ID string `bson:"_id"`
	} `bson:"documentKey"`
	FullDocument *offsetDoc `bson:"fullDocument"`
}

// Subscribe opens a change stream on the collection and forwards events to
// fn. fn runs on the stream goroutine.
func (s *MongoStore) Subscribe(ctx context.Context, fn func(Event)) (func(), error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	streamCtx, cancel := context.WithCancel(context.Background())
	s.cancels = append(s.cancels, cancel)
	s.mu.Unlock()

	stream, err := s.coll.Watch(ctx, mongo.Pipeline{},
		options.ChangeStream().SetFullDocument(options.UpdateLookup))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("mongo watch: %w", err)
	}

	go func() {
		defer stream.Close(context.Background())
		for stream.Next(streamCtx) {
			var ce changeEvent
			if err := stream.Decode(&ce); err != nil {
				continue
			}
			ev := Event{Key: ce.DocumentKey.ID}
			if ce.FullDocument != nil {
				ev.Value = ce.FullDocument.Value
			}
			fn(ev)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(cancel)
	}, nil
}

// Close terminates all subscriptions and disconnects the client.
func (s *MongoStore) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	cancels := s.cancels
	s.cancels = nil
	s.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	return s.client.Disconnect(context.Background())
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
