// Package mongostore keeps probe runs in a MongoDB collection instead of JSON
// files. It is selected when runs.mongo.uri is configured.
package mongostore

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/myspotontheweb/presentation-kubernetes/internal/domain"
	"github.com/myspotontheweb/presentation-kubernetes/internal/ports"
)

const connectTimeout = 10 * time.Second

type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var _ ports.RunRepository = (*Store)(nil)

// Connect dials cfg.MongoURI and pings the primary before returning.
func Connect(ctx context.Context, cfg domain.RunsConfig) (*Store, error) {
	if strings.TrimSpace(cfg.MongoURI) == "" {
		return nil, &domain.OpError{
			Op:   "mongostore.connect",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("runs.mongo.uri is empty"),
		}
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.MongoURI).
		SetMaxPoolSize(10),
	)
	if err != nil {
		return nil, &domain.OpError{Op: "mongostore.connect", Kind: domain.KindExecution, Err: err}
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, &domain.OpError{Op: "mongostore.ping", Kind: domain.KindExecution, Err: err}
	}

	return &Store{
		client: client,
		coll:   client.Database(cfg.MongoDB).Collection(cfg.Collection),
	}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) SaveRun(ctx context.Context, run domain.ProbeRun) (string, error) {
	doc := toDocument(run)
	doc.ID = primitive.NewObjectID().Hex()
	if doc.StartedAt.IsZero() {
		doc.StartedAt = time.Now().UTC()
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return "", &domain.OpError{Op: "mongostore.insert", Kind: domain.KindExecution, Err: err}
	}
	return doc.ID, nil
}

// ListRuns returns stored runs, newest first, without their per-request results.
func (s *Store) ListRuns(ctx context.Context) ([]domain.RunSummary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "started_at", Value: -1}}).
		SetProjection(bson.D{{Key: "routes", Value: 0}})

	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, &domain.OpError{Op: "mongostore.find", Kind: domain.KindExecution, Err: err}
	}
	defer cur.Close(ctx)

	out := []domain.RunSummary{}
	for cur.Next(ctx) {
		var doc runDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, &domain.OpError{Op: "mongostore.decode", Kind: domain.KindExecution, Err: err}
		}
		out = append(out, doc.summary())
	}
	if err := cur.Err(); err != nil {
		return nil, &domain.OpError{Op: "mongostore.cursor", Kind: domain.KindExecution, Err: err}
	}
	return out, nil
}

func (s *Store) LoadRun(ctx context.Context, id string) (domain.ProbeRun, error) {
	var doc runDocument
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ProbeRun{}, &domain.OpError{
			Op:   "mongostore.load",
			Kind: domain.KindNotFound,
			Path: id,
			Err:  domain.ErrNotFound,
		}
	}
	if err != nil {
		return domain.ProbeRun{}, &domain.OpError{Op: "mongostore.load", Kind: domain.KindExecution, Path: id, Err: err}
	}
	return doc.run(), nil
}
