package models

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"askstack/internal/utils"
)

func TestQuestionValidate(t *testing.T) {
	q := &Question{Title: "How do I test actors?", Desc: "Full description here"}
	assert.NoError(t, q.Validate())

	q = &Question{Title: "", Desc: "desc"}
	assert.Error(t, q.Validate())

	q = &Question{Title: "Hey", Desc: "too short a title"}
	err := q.Validate()
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidInput))

	q = &Question{Title: strings.Repeat("x", 201), Desc: "desc"}
	assert.Error(t, q.Validate())

	// Boundary lengths are accepted
	q = &Question{Title: strings.Repeat("x", 5), Desc: "desc"}
	assert.NoError(t, q.Validate())
	q = &Question{Title: strings.Repeat("x", 200), Desc: "desc"}
	assert.NoError(t, q.Validate())
}

func TestAnswerValidate(t *testing.T) {
	a := &Answer{QuestionID: uuid.New(), Body: "an answer"}
	assert.NoError(t, a.Validate())

	a = &Answer{QuestionID: uuid.Nil, Body: "an answer"}
	assert.Error(t, a.Validate())

	a = &Answer{QuestionID: uuid.New(), Body: ""}
	assert.Error(t, a.Validate())
}

func TestCommentValidate(t *testing.T) {
	c := &Comment{QuestionID: uuid.New(), Body: "a comment"}
	assert.NoError(t, c.Validate())

	c = &Comment{QuestionID: uuid.New(), Body: strings.Repeat("x", 500)}
	assert.NoError(t, c.Validate())

	c = &Comment{QuestionID: uuid.New(), Body: strings.Repeat("x", 501)}
	assert.Error(t, c.Validate())

	c = &Comment{QuestionID: uuid.Nil, Body: "a comment"}
	assert.Error(t, c.Validate())
}

func TestReplyValidate(t *testing.T) {
	r := &Reply{CommentID: uuid.New(), Body: "a reply"}
	assert.NoError(t, r.Validate())

	r = &Reply{CommentID: uuid.New(), Body: strings.Repeat("x", 300)}
	assert.NoError(t, r.Validate())

	r = &Reply{CommentID: uuid.New(), Body: strings.Repeat("x", 301)}
	assert.Error(t, r.Validate())
}

func TestValidateRegistration(t *testing.T) {
	assert.NoError(t, ValidateRegistration("alice@example.com", "Alice", "secret1", ""))
	assert.NoError(t, ValidateRegistration("alice@example.com", "Alice", "secret1", RoleAdmin))

	// Missing fields
	assert.Error(t, ValidateRegistration("", "Alice", "secret1", ""))
	assert.Error(t, ValidateRegistration("alice@example.com", "", "secret1", ""))
	assert.Error(t, ValidateRegistration("alice@example.com", "Alice", "", ""))

	// Bad email shapes
	assert.Error(t, ValidateRegistration("not-an-email", "Alice", "secret1", ""))
	assert.Error(t, ValidateRegistration("alice@nodot", "Alice", "secret1", ""))

	// Name and password limits
	assert.Error(t, ValidateRegistration("alice@example.com", "A", "secret1", ""))
	assert.Error(t, ValidateRegistration("alice@example.com", strings.Repeat("n", 51), "secret1", ""))
	assert.Error(t, ValidateRegistration("alice@example.com", "Alice", "short", ""))

	// Unknown role
	assert.Error(t, ValidateRegistration("alice@example.com", "Alice", "secret1", Role("Owner")))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", NormalizeEmail("  Alice@Example.COM "))
}

func TestNormalizeTags(t *testing.T) {
	tags := NormalizeTags([]string{" Go ", "TESTING", "", "  "})
	assert.Equal(t, []string{"go", "testing"}, tags)

	assert.Empty(t, NormalizeTags(nil))
}
