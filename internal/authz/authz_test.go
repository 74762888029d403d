package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"askstack/internal/models"
	"askstack/internal/utils"
)

func TestAuthorizeDelete(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	// Owner may delete
	err := AuthorizeDelete(Identity{ID: owner, Role: models.RoleUser}, owner, "question")
	assert.NoError(t, err)

	// A different user is forbidden
	err = AuthorizeDelete(Identity{ID: stranger, Role: models.RoleUser}, owner, "question")
	assert.True(t, utils.IsErrorCode(err, utils.ErrForbidden))

	// Admin gets no override
	err = AuthorizeDelete(Identity{ID: stranger, Role: models.RoleAdmin}, owner, "answer")
	assert.True(t, utils.IsErrorCode(err, utils.ErrForbidden))

	// A zero identity is unauthenticated
	err = AuthorizeDelete(Identity{}, owner, "comment")
	assert.True(t, utils.IsErrorCode(err, utils.ErrUnauthorized))
}
