package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"social-media-agent/models"
)

// singletonID is the _id of the only document in each collection.
const singletonID = "singleton"

type MongoStore struct {
	client   *mongo.Client
	settings *mongo.Collection
	runLogs  *mongo.Collection
}

func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	db := client.Database(dbName)
	return &MongoStore{
		client:   client,
		settings: db.Collection("settings"),
		runLogs:  db.Collection("run_logs"),
	}
}

type configDocument struct {
	ID                string `bson:"_id"`
	models.UserConfig `bson:",inline"`
}

type runLogDocument struct {
	ID            string `bson:"_id"`
	models.RunLog `bson:",inline"`
}

func (s *MongoStore) SaveConfig(ctx context.Context, email string, interests []string) (models.UserConfig, error) {
	cfg := newConfig(email, interests)
	_, err := s.settings.ReplaceOne(ctx,
		bson.M{"_id": singletonID},
		configDocument{ID: singletonID, UserConfig: cfg},
		options.Replace().SetUpsert(true))
	if err != nil {
		return models.UserConfig{}, fmt.Errorf("save config: %w", err)
	}
	return cfg, nil
}

func (s *MongoStore) LoadConfig(ctx context.Context) (*models.UserConfig, error) {
	var doc configDocument
	err := s.settings.FindOne(ctx, bson.M{"_id": singletonID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &doc.UserConfig, nil
}

func (s *MongoStore) SaveRunLog(ctx context.Context, log models.RunLog) error {
	_, err := s.runLogs.ReplaceOne(ctx,
		bson.M{"_id": singletonID},
		runLogDocument{ID: singletonID, RunLog: log},
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save run log: %w", err)
	}
	return nil
}

func (s *MongoStore) LoadRunLog(ctx context.Context) (*models.RunLog, error) {
	var doc runLogDocument
	err := s.runLogs.FindOne(ctx, bson.M{"_id": singletonID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load run log: %w", err)
	}
	return &doc.RunLog, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
