// internal/database/question_repository.go
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

// QuestionDocument represents the MongoDB schema for a question.
type QuestionDocument struct {
	ID        string    `bson:"_id"`
	Title     string    `bson:"title"`
	Desc      string    `bson:"desc"`
	Tags      []string  `bson:"tags"`
	ImageURL  string    `bson:"imageurl"`
	OwnerID   string    `bson:"owner"`
	Answers   []string  `bson:"answers"`
	Upvotes   []string  `bson:"upvotes"`
	Downvotes []string  `bson:"downvotes"`
	Votes     int       `bson:"votes"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func questionToDocument(q *models.Question) *QuestionDocument {
	doc := &QuestionDocument{
		ID:        q.ID.String(),
		Title:     q.Title,
		Desc:      q.Desc,
		Tags:      q.Tags,
		ImageURL:  q.ImageURL,
		OwnerID:   q.OwnerID.String(),
		Answers:   uuidsToStrings(q.Answers),
		Upvotes:   q.Upvoters,
		Downvotes: q.Downvoters,
		Votes:     q.Votes,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}
	return doc
}

func questionDocumentToModel(doc *QuestionDocument) (*models.Question, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid question ID: %v", err)
	}

	ownerID, err := uuid.Parse(doc.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner ID: %v", err)
	}

	answers, err := stringsToUUIDs(doc.Answers)
	if err != nil {
		return nil, fmt.Errorf("invalid answer ID: %v", err)
	}

	return &models.Question{
		ID:       id,
		Title:    doc.Title,
		Desc:     doc.Desc,
		Tags:     doc.Tags,
		ImageURL: doc.ImageURL,
		OwnerID:  ownerID,
		Answers:  answers,
		VoteSets: models.VoteSets{
			Upvoters:   emptyIfNil(doc.Upvotes),
			Downvoters: emptyIfNil(doc.Downvotes),
		},
		Votes:     doc.Votes,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

// SaveQuestion creates or updates a question in MongoDB.
func (m *MongoDB) SaveQuestion(ctx context.Context, question *models.Question) error {
	doc := questionToDocument(question)

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": doc.ID}
	update := bson.M{"$set": doc}

	_, err := m.Questions.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetQuestion retrieves a question by its ID.
func (m *MongoDB) GetQuestion(ctx context.Context, id uuid.UUID) (*models.Question, error) {
	var doc QuestionDocument

	err := m.Questions.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrNotFound, "Question not found", err)
	}
	if err != nil {
		return nil, err
	}

	return questionDocumentToModel(&doc)
}

// GetRecentQuestions retrieves all questions, newest first.
func (m *MongoDB) GetRecentQuestions(ctx context.Context) ([]*models.Question, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := m.Questions.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %v", err)
	}
	defer cursor.Close(ctx)

	questions := make([]*models.Question, 0)
	for cursor.Next(ctx) {
		var doc QuestionDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode question: %v", err)
		}
		question, err := questionDocumentToModel(&doc)
		if err != nil {
			return nil, err
		}
		questions = append(questions, question)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return questions, nil
}

// DeleteQuestion removes a question document by ID.
func (m *MongoDB) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	result, err := m.Questions.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return utils.NewAppError(utils.ErrNotFound, "Question not found", nil)
	}
	return nil
}

// UpdateQuestionVotes replaces the voter sets and the derived count in a
// single document update. The count is always len(up)-len(down).
func (m *MongoDB) UpdateQuestionVotes(ctx context.Context, id uuid.UUID, votes models.VoteSets) error {
	filter := bson.M{"_id": id.String()}
	update := bson.M{
		"$set": bson.M{
			"upvotes":   emptyIfNil(votes.Upvoters),
			"downvotes": emptyIfNil(votes.Downvoters),
			"votes":     votes.Count(),
			"updatedAt": time.Now(),
		},
	}

	result, err := m.Questions.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return utils.NewAppError(utils.ErrNotFound, "Question not found", nil)
	}
	return nil
}

// AttachAnswer pushes an answer id onto the question's back-reference list.
// The push is conditional on the question still existing, so a concurrent
// question delete surfaces here as NotFound instead of silently orphaning.
func (m *MongoDB) AttachAnswer(ctx context.Context, questionID, answerID uuid.UUID) error {
	filter := bson.M{"_id": questionID.String()}
	update := bson.M{
		"$push": bson.M{"answers": answerID.String()},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	result, err := m.Questions.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return utils.NewAppError(utils.ErrNotFound, "Question not found", nil)
	}
	return nil
}

// DetachAnswer pulls an answer id from the question's back-reference list.
// A missing question is not an error: the parent may already be gone.
func (m *MongoDB) DetachAnswer(ctx context.Context, questionID, answerID uuid.UUID) error {
	filter := bson.M{"_id": questionID.String()}
	update := bson.M{
		"$pull": bson.M{"answers": answerID.String()},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	_, err := m.Questions.UpdateOne(ctx, filter, update)
	return err
}

// CountQuestions returns the total number of questions
func (m *MongoDB) CountQuestions(ctx context.Context) (int64, error) {
	return m.Questions.CountDocuments(ctx, bson.M{})
}

func uuidsToStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func stringsToUUIDs(ids []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, len(ids))
	for i, idStr := range ids {
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}

func emptyIfNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
