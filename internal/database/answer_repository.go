// internal/database/answer_repository.go
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

// AnswerDocument represents the MongoDB schema for an answer.
type AnswerDocument struct {
	ID         string    `bson:"_id"`
	QuestionID string    `bson:"que"`
	Body       string    `bson:"answerData"`
	OwnerID    string    `bson:"user"`
	Upvotes    []string  `bson:"upvotes"`
	Downvotes  []string  `bson:"downvotes"`
	Votes      int       `bson:"votes"`
	IsAccepted bool      `bson:"isAccepted"`
	CreatedAt  time.Time `bson:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt"`
}

func answerToDocument(a *models.Answer) *AnswerDocument {
	return &AnswerDocument{
		ID:         a.ID.String(),
		QuestionID: a.QuestionID.String(),
		Body:       a.Body,
		OwnerID:    a.OwnerID.String(),
		Upvotes:    emptyIfNil(a.Upvoters),
		Downvotes:  emptyIfNil(a.Downvoters),
		Votes:      a.Votes,
		IsAccepted: a.IsAccepted,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func answerDocumentToModel(doc *AnswerDocument) (*models.Answer, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid answer ID: %v", err)
	}

	questionID, err := uuid.Parse(doc.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("invalid question ID: %v", err)
	}

	ownerID, err := uuid.Parse(doc.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner ID: %v", err)
	}

	return &models.Answer{
		ID:         id,
		QuestionID: questionID,
		Body:       doc.Body,
		OwnerID:    ownerID,
		VoteSets: models.VoteSets{
			Upvoters:   emptyIfNil(doc.Upvotes),
			Downvoters: emptyIfNil(doc.Downvotes),
		},
		Votes:      doc.Votes,
		IsAccepted: doc.IsAccepted,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}, nil
}

// SaveAnswer creates or updates an answer in MongoDB.
func (m *MongoDB) SaveAnswer(ctx context.Context, answer *models.Answer) error {
	doc := answerToDocument(answer)

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": doc.ID}
	update := bson.M{"$set": doc}

	_, err := m.Answers.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetAnswer retrieves an answer by its ID.
func (m *MongoDB) GetAnswer(ctx context.Context, id uuid.UUID) (*models.Answer, error) {
	var doc AnswerDocument

	err := m.Answers.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrNotFound, "Answer not found", err)
	}
	if err != nil {
		return nil, err
	}

	return answerDocumentToModel(&doc)
}

// GetAnswersByQuestion retrieves all answers for a question, newest first.
func (m *MongoDB) GetAnswersByQuestion(ctx context.Context, questionID uuid.UUID) ([]*models.Answer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := m.Answers.Find(ctx, bson.M{"que": questionID.String()}, opts)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %v", err)
	}
	defer cursor.Close(ctx)

	return decodeAnswers(ctx, cursor)
}

// GetAnswersByIDs retrieves the answers named by a question's back-reference
// list, preserving list order.
func (m *MongoDB) GetAnswersByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Answer, error) {
	if len(ids) == 0 {
		return []*models.Answer{}, nil
	}

	cursor, err := m.Answers.Find(ctx, bson.M{"_id": bson.M{"$in": uuidsToStrings(ids)}})
	if err != nil {
		return nil, fmt.Errorf("database query failed: %v", err)
	}
	defer cursor.Close(ctx)

	answers, err := decodeAnswers(ctx, cursor)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*models.Answer, len(answers))
	for _, a := range answers {
		byID[a.ID] = a
	}

	ordered := make([]*models.Answer, 0, len(ids))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			ordered = append(ordered, a)
		}
	}
	return ordered, nil
}

// DeleteAnswer removes an answer document by ID.
func (m *MongoDB) DeleteAnswer(ctx context.Context, id uuid.UUID) error {
	result, err := m.Answers.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return utils.NewAppError(utils.ErrNotFound, "Answer not found", nil)
	}
	return nil
}

// UpdateAnswerVotes replaces the voter sets and the derived count in a
// single document update.
func (m *MongoDB) UpdateAnswerVotes(ctx context.Context, id uuid.UUID, votes models.VoteSets) error {
	filter := bson.M{"_id": id.String()}
	update := bson.M{
		"$set": bson.M{
			"upvotes":   emptyIfNil(votes.Upvoters),
			"downvotes": emptyIfNil(votes.Downvoters),
			"votes":     votes.Count(),
			"updatedAt": time.Now(),
		},
	}

	result, err := m.Answers.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return utils.NewAppError(utils.ErrNotFound, "Answer not found", nil)
	}
	return nil
}

func decodeAnswers(ctx context.Context, cursor *mongo.Cursor) ([]*models.Answer, error) {
	answers := make([]*models.Answer, 0)
	for cursor.Next(ctx) {
		var doc AnswerDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode answer: %v", err)
		}
		answer, err := answerDocumentToModel(&doc)
		if err != nil {
			return nil, err
		}
		answers = append(answers, answer)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}
	return answers, nil
}
