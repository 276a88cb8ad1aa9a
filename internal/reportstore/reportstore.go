// Package reportstore persists completed verify.Report values for later
// audit, via go.mongodb.org/mongo-driver. Grounded on
// vocdoni-davinci-node/db/mongodb's presence as the project's mongo-backed
// storage option (its test file is the only surviving trace of the original
// source in the retrieved material; the client wiring below follows the
// official mongo-driver idiom).
package reportstore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nickboucher/electionguard-verify/internal/verify"
	"github.com/nickboucher/electionguard-verify/log"
)

// Store implements verify.ReportStore against a single MongoDB collection,
// one document per run.
type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// Open connects to uri and returns a Store writing to database.collection.
func Open(ctx context.Context, uri, database, collection string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to report store %s: %w", uri, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("pinging report store %s: %w", uri, err)
	}
	return &Store{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

// Close disconnects from the backing MongoDB deployment.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Save inserts report as a new document keyed by its RunID.
func (s *Store) Save(ctx context.Context, report *verify.Report) error {
	_, err := s.collection.InsertOne(ctx, bson.M{
		"run_id":     report.RunID,
		"valid":      report.Valid,
		"cancelled":  report.Cancelled,
		"stages":     report.Stages,
		"from_cache": report.FromCache,
	})
	if err != nil {
		return fmt.Errorf("persisting report %s: %w", report.RunID, err)
	}
	log.Debugw("persisted verification report", "run_id", report.RunID, "valid", report.Valid)
	return nil
}
