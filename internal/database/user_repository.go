// internal/database/user_repository.go
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

// UserDocument represents the MongoDB schema for a user
type UserDocument struct {
	ID             string    `bson:"_id"`            // MongoDB primary key
	Email          string    `bson:"email"`          // Email address, lowercased
	Name           string    `bson:"name"`           // Display name
	HashedPassword string    `bson:"hashedPassword"` // Hashed password
	Role           string    `bson:"role"`           // Guest, User or Admin
	CreatedAt      time.Time `bson:"createdAt"`      // Account creation timestamp
	UpdatedAt      time.Time `bson:"updatedAt"`      // Last modification timestamp
}

func userToDocument(user *models.User) *UserDocument {
	return &UserDocument{
		ID:             user.ID.String(),
		Email:          user.Email,
		Name:           user.Name,
		HashedPassword: user.HashedPassword,
		Role:           string(user.Role),
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

func userDocumentToModel(doc *UserDocument) (*models.User, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in database: %v", err)
	}

	return &models.User{
		ID:             id,
		Email:          doc.Email,
		Name:           doc.Name,
		HashedPassword: doc.HashedPassword,
		Role:           models.Role(doc.Role),
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}, nil
}

// SaveUser creates or updates a user in MongoDB
func (m *MongoDB) SaveUser(ctx context.Context, user *models.User) error {
	doc := userToDocument(user)

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": doc.ID}
	update := bson.M{"$set": doc}

	_, err := m.Users.UpdateOne(ctx, filter, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		return utils.NewAppError(utils.ErrUserAlreadyExists, "User already exists", err)
	}
	return err
}

// GetUser retrieves a user from MongoDB by their ID
func (m *MongoDB) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var doc UserDocument

	err := m.Users.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrUserNotFound, "User not found", err)
	}
	if err != nil {
		return nil, err
	}

	return userDocumentToModel(&doc)
}

// GetUserByEmail retrieves a user from MongoDB by their email address
func (m *MongoDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc UserDocument

	err := m.Users.FindOne(ctx, bson.M{"email": models.NormalizeEmail(email)}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrUserNotFound, "User not found", err)
	}
	if err != nil {
		return nil, err
	}

	return userDocumentToModel(&doc)
}

// GetAllUsers retrieves every user record
func (m *MongoDB) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	cursor, err := m.Users.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %v", err)
	}
	defer cursor.Close(ctx)

	users := make([]*models.User, 0)
	for cursor.Next(ctx) {
		var doc UserDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode user: %v", err)
		}
		user, err := userDocumentToModel(&doc)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return users, nil
}

// DeleteUser removes a user record by ID. Authored content is left in place;
// orphaned owner references are tolerated.
func (m *MongoDB) DeleteUser(ctx context.Context, id uuid.UUID) error {
	result, err := m.Users.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return utils.NewAppError(utils.ErrUserNotFound, "User not found", nil)
	}
	return nil
}

// CountUsers returns the total number of users
func (m *MongoDB) CountUsers(ctx context.Context) (int64, error) {
	return m.Users.CountDocuments(ctx, bson.M{})
}
