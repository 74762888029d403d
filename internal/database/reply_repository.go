// internal/database/reply_repository.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"askstack/internal/models"
	"askstack/internal/utils"
)

// ReplyDocument represents reply data in MongoDB
type ReplyDocument struct {
	ID        string    `bson:"_id"`
	CommentID string    `bson:"comment"`
	Body      string    `bson:"reply"`
	OwnerID   string    `bson:"user"`
	CreatedAt time.Time `bson:"timestamp"`
}

func replyToDocument(r *models.Reply) *ReplyDocument {
	return &ReplyDocument{
		ID:        r.ID.String(),
		CommentID: r.CommentID.String(),
		Body:      r.Body,
		OwnerID:   r.OwnerID.String(),
		CreatedAt: r.CreatedAt,
	}
}

func replyDocumentToModel(doc *ReplyDocument) (*models.Reply, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid reply ID: %v", err)
	}

	commentID, err := uuid.Parse(doc.CommentID)
	if err != nil {
		return nil, fmt.Errorf("invalid comment ID: %v", err)
	}

	ownerID, err := uuid.Parse(doc.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner ID: %v", err)
	}

	return &models.Reply{
		ID:        id,
		CommentID: commentID,
		Body:      doc.Body,
		OwnerID:   ownerID,
		CreatedAt: doc.CreatedAt,
	}, nil
}

// SaveReply creates or updates a reply in MongoDB
func (m *MongoDB) SaveReply(ctx context.Context, reply *models.Reply) error {
	doc := replyToDocument(reply)

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": doc.ID}
	update := bson.M{"$set": doc}

	_, err := m.Replies.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to save reply: %v", err)
	}
	return nil
}

// GetReply retrieves a reply by ID
func (m *MongoDB) GetReply(ctx context.Context, id uuid.UUID) (*models.Reply, error) {
	var doc ReplyDocument

	err := m.Replies.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrNotFound, "Reply not found", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reply: %v", err)
	}

	return replyDocumentToModel(&doc)
}

// GetReplies retrieves replies, optionally filtered by comment.
func (m *MongoDB) GetReplies(ctx context.Context, commentID *uuid.UUID) ([]*models.Reply, error) {
	filter := bson.M{}
	if commentID != nil {
		filter["comment"] = commentID.String()
	}

	cursor, err := m.Replies.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get replies: %v", err)
	}
	defer cursor.Close(ctx)

	replies := make([]*models.Reply, 0)
	for cursor.Next(ctx) {
		var doc ReplyDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode reply: %v", err)
		}
		reply, err := replyDocumentToModel(&doc)
		if err != nil {
			return nil, err
		}
		replies = append(replies, reply)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return replies, nil
}

// DeleteReply removes a reply document by ID.
func (m *MongoDB) DeleteReply(ctx context.Context, id uuid.UUID) error {
	result, err := m.Replies.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return utils.NewAppError(utils.ErrNotFound, "Reply not found", nil)
	}
	return nil
}
