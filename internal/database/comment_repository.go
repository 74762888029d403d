// internal/database/comment_repository.go
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

// CommentDocument represents comment data in MongoDB
type CommentDocument struct {
	ID         string    `bson:"_id"`
	QuestionID string    `bson:"que"`
	Body       string    `bson:"comment"`
	OwnerID    string    `bson:"user"`
	Replies    []string  `bson:"replies"`
	Upvotes    []string  `bson:"upvotes"`
	Downvotes  []string  `bson:"downvotes"`
	Votes      int       `bson:"votes"`
	CreatedAt  time.Time `bson:"timestamp"`
}

func commentToDocument(c *models.Comment) *CommentDocument {
	return &CommentDocument{
		ID:         c.ID.String(),
		QuestionID: c.QuestionID.String(),
		Body:       c.Body,
		OwnerID:    c.OwnerID.String(),
		Replies:    uuidsToStrings(c.Replies),
		Upvotes:    emptyIfNil(c.Upvoters),
		Downvotes:  emptyIfNil(c.Downvoters),
		Votes:      c.Votes,
		CreatedAt:  c.CreatedAt,
	}
}

func commentDocumentToModel(doc *CommentDocument) (*models.Comment, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid comment ID: %v", err)
	}

	questionID, err := uuid.Parse(doc.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("invalid question ID: %v", err)
	}

	ownerID, err := uuid.Parse(doc.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner ID: %v", err)
	}

	replies, err := stringsToUUIDs(doc.Replies)
	if err != nil {
		return nil, fmt.Errorf("invalid reply ID: %v", err)
	}

	return &models.Comment{
		ID:         id,
		QuestionID: questionID,
		Body:       doc.Body,
		OwnerID:    ownerID,
		Replies:    replies,
		VoteSets: models.VoteSets{
			Upvoters:   emptyIfNil(doc.Upvotes),
			Downvoters: emptyIfNil(doc.Downvotes),
		},
		Votes:     doc.Votes,
		CreatedAt: doc.CreatedAt,
	}, nil
}

// SaveComment creates or updates a comment in MongoDB
func (m *MongoDB) SaveComment(ctx context.Context, comment *models.Comment) error {
	doc := commentToDocument(comment)

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": doc.ID}
	update := bson.M{"$set": doc}

	_, err := m.Comments.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to save comment: %v", err)
	}
	return nil
}

// GetComment retrieves a comment by ID
func (m *MongoDB) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var doc CommentDocument

	err := m.Comments.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrNotFound, "Comment not found", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %v", err)
	}

	return commentDocumentToModel(&doc)
}

// GetComments retrieves comments, optionally filtered by question.
func (m *MongoDB) GetComments(ctx context.Context, questionID *uuid.UUID) ([]*models.Comment, error) {
	filter := bson.M{}
	if questionID != nil {
		filter["que"] = questionID.String()
	}

	cursor, err := m.Comments.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %v", err)
	}
	defer cursor.Close(ctx)

	comments := make([]*models.Comment, 0)
	for cursor.Next(ctx) {
		var doc CommentDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode comment: %v", err)
		}
		comment, err := commentDocumentToModel(&doc)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return comments, nil
}

// DeleteComment removes a comment document by ID.
func (m *MongoDB) DeleteComment(ctx context.Context, id uuid.UUID) error {
	result, err := m.Comments.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return utils.NewAppError(utils.ErrNotFound, "Comment not found", nil)
	}
	return nil
}

// UpdateCommentVotes replaces the voter sets and the derived count in a
// single document update.
func (m *MongoDB) UpdateCommentVotes(ctx context.Context, id uuid.UUID, votes models.VoteSets) error {
	filter := bson.M{"_id": id.String()}
	update := bson.M{
		"$set": bson.M{
			"upvotes":   emptyIfNil(votes.Upvoters),
			"downvotes": emptyIfNil(votes.Downvoters),
			"votes":     votes.Count(),
		},
	}

	result, err := m.Comments.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update comment votes: %v", err)
	}
	if result.MatchedCount == 0 {
		return utils.NewAppError(utils.ErrNotFound, "Comment not found", nil)
	}
	return nil
}

// AttachReply pushes a reply id onto the comment's back-reference list,
// conditional on the comment still existing.
func (m *MongoDB) AttachReply(ctx context.Context, commentID, replyID uuid.UUID) error {
	filter := bson.M{"_id": commentID.String()}
	update := bson.M{"$push": bson.M{"replies": replyID.String()}}

	result, err := m.Comments.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return utils.NewAppError(utils.ErrNotFound, "Comment not found", nil)
	}
	return nil
}

// DetachReply pulls a reply id from the comment's back-reference list.
func (m *MongoDB) DetachReply(ctx context.Context, commentID, replyID uuid.UUID) error {
	filter := bson.M{"_id": commentID.String()}
	update := bson.M{"$pull": bson.M{"replies": replyID.String()}}

	_, err := m.Comments.UpdateOne(ctx, filter, update)
	return err
}
