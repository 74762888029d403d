// internal/database/mongodb.go
package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDB struct {
	Client    *mongo.Client
	Users     *mongo.Collection
	Questions *mongo.Collection
	Answers   *mongo.Collection
	Comments  *mongo.Collection
	Replies   *mongo.Collection
}

var _ Store = (*MongoDB)(nil)

func NewMongoDB(uri, dbName string) (*MongoDB, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	// Ping the database to verify connection
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	log.Println("Successfully connected to MongoDB!")

	db := client.Database(dbName)
	m := &MongoDB{
		Client:    client,
		Users:     db.Collection("users"),
		Questions: db.Collection("questions"),
		Answers:   db.Collection("answers"),
		Comments:  db.Collection("comments"),
		Replies:   db.Collection("replies"),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// ensureIndexes creates the indexes the query paths rely on: unique emails,
// newest-first listings and parent-id lookups.
func (m *MongoDB) ensureIndexes(ctx context.Context) error {
	_, err := m.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %v", err)
	}

	_, err = m.Questions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create question indexes: %v", err)
	}

	_, err = m.Answers.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "que", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "user", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create answer indexes: %v", err)
	}

	_, err = m.Comments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "que", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create comment indexes: %v", err)
	}

	_, err = m.Replies.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "comment", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create reply indexes: %v", err)
	}

	return nil
}
