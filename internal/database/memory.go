// internal/database/memory.go
package database

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"askstack/internal/models"
	"askstack/internal/utils"
)

// MemoryStore is an in-process Store implementation. It backs the test
// suites and DB_TYPE=memory runs, where spinning up MongoDB is not worth it.
// All methods copy records on the way in and out so callers never share
// memory with the store.
type MemoryStore struct {
	mu        sync.RWMutex
	users     map[uuid.UUID]*models.User
	questions map[uuid.UUID]*models.Question
	answers   map[uuid.UUID]*models.Answer
	comments  map[uuid.UUID]*models.Comment
	replies   map[uuid.UUID]*models.Reply
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[uuid.UUID]*models.User),
		questions: make(map[uuid.UUID]*models.Question),
		answers:   make(map[uuid.UUID]*models.Answer),
		comments:  make(map[uuid.UUID]*models.Comment),
		replies:   make(map[uuid.UUID]*models.Reply),
	}
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// User methods

func (s *MemoryStore) SaveUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *user
	s.users[user.ID] = &u
	return nil
}

func (s *MemoryStore) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrUserNotFound, "User not found", nil)
	}
	u := *user
	return &u, nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	email = models.NormalizeEmail(email)
	for _, user := range s.users {
		if user.Email == email {
			u := *user
			return &u, nil
		}
	}
	return nil, utils.NewAppError(utils.ErrUserNotFound, "User not found", nil)
}

func (s *MemoryStore) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]*models.User, 0, len(s.users))
	for _, user := range s.users {
		u := *user
		users = append(users, &u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (s *MemoryStore) DeleteUser(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return utils.NewAppError(utils.ErrUserNotFound, "User not found", nil)
	}
	delete(s.users, id)
	return nil
}

func (s *MemoryStore) CountUsers(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

// Question methods

func (s *MemoryStore) SaveQuestion(ctx context.Context, question *models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions[question.ID] = copyQuestion(question)
	return nil
}

func (s *MemoryStore) GetQuestion(ctx context.Context, id uuid.UUID) (*models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	question, ok := s.questions[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrNotFound, "Question not found", nil)
	}
	return copyQuestion(question), nil
}

func (s *MemoryStore) GetRecentQuestions(ctx context.Context) ([]*models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	questions := make([]*models.Question, 0, len(s.questions))
	for _, question := range s.questions {
		questions = append(questions, copyQuestion(question))
	}
	sort.Slice(questions, func(i, j int) bool {
		return questions[i].CreatedAt.After(questions[j].CreatedAt)
	})
	return questions, nil
}

func (s *MemoryStore) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[id]; !ok {
		return utils.NewAppError(utils.ErrNotFound, "Question not found", nil)
	}
	delete(s.questions, id)
	return nil
}

func (s *MemoryStore) UpdateQuestionVotes(ctx context.Context, id uuid.UUID, votes models.VoteSets) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	question, ok := s.questions[id]
	if !ok {
		return utils.NewAppError(utils.ErrNotFound, "Question not found", nil)
	}
	question.VoteSets = copyVoteSets(votes)
	question.Votes = votes.Count()
	return nil
}

func (s *MemoryStore) AttachAnswer(ctx context.Context, questionID, answerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	question, ok := s.questions[questionID]
	if !ok {
		return utils.NewAppError(utils.ErrNotFound, "Question not found", nil)
	}
	question.Answers = append(question.Answers, answerID)
	return nil
}

func (s *MemoryStore) DetachAnswer(ctx context.Context, questionID, answerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	question, ok := s.questions[questionID]
	if !ok {
		return nil
	}
	question.Answers = removeUUID(question.Answers, answerID)
	return nil
}

func (s *MemoryStore) CountQuestions(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.questions)), nil
}

// Answer methods

func (s *MemoryStore) SaveAnswer(ctx context.Context, answer *models.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers[answer.ID] = copyAnswer(answer)
	return nil
}

func (s *MemoryStore) GetAnswer(ctx context.Context, id uuid.UUID) (*models.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	answer, ok := s.answers[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrNotFound, "Answer not found", nil)
	}
	return copyAnswer(answer), nil
}

func (s *MemoryStore) GetAnswersByQuestion(ctx context.Context, questionID uuid.UUID) ([]*models.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	answers := make([]*models.Answer, 0)
	for _, answer := range s.answers {
		if answer.QuestionID == questionID {
			answers = append(answers, copyAnswer(answer))
		}
	}
	sort.Slice(answers, func(i, j int) bool {
		return answers[i].CreatedAt.After(answers[j].CreatedAt)
	})
	return answers, nil
}

func (s *MemoryStore) GetAnswersByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	answers := make([]*models.Answer, 0, len(ids))
	for _, id := range ids {
		if answer, ok := s.answers[id]; ok {
			answers = append(answers, copyAnswer(answer))
		}
	}
	return answers, nil
}

func (s *MemoryStore) DeleteAnswer(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.answers[id]; !ok {
		return utils.NewAppError(utils.ErrNotFound, "Answer not found", nil)
	}
	delete(s.answers, id)
	return nil
}

func (s *MemoryStore) UpdateAnswerVotes(ctx context.Context, id uuid.UUID, votes models.VoteSets) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	answer, ok := s.answers[id]
	if !ok {
		return utils.NewAppError(utils.ErrNotFound, "Answer not found", nil)
	}
	answer.VoteSets = copyVoteSets(votes)
	answer.Votes = votes.Count()
	return nil
}

// Comment methods

func (s *MemoryStore) SaveComment(ctx context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[comment.ID] = copyComment(comment)
	return nil
}

func (s *MemoryStore) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	comment, ok := s.comments[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrNotFound, "Comment not found", nil)
	}
	return copyComment(comment), nil
}

func (s *MemoryStore) GetComments(ctx context.Context, questionID *uuid.UUID) ([]*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	comments := make([]*models.Comment, 0)
	for _, comment := range s.comments {
		if questionID == nil || comment.QuestionID == *questionID {
			comments = append(comments, copyComment(comment))
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (s *MemoryStore) DeleteComment(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return utils.NewAppError(utils.ErrNotFound, "Comment not found", nil)
	}
	delete(s.comments, id)
	return nil
}

func (s *MemoryStore) UpdateCommentVotes(ctx context.Context, id uuid.UUID, votes models.VoteSets) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	comment, ok := s.comments[id]
	if !ok {
		return utils.NewAppError(utils.ErrNotFound, "Comment not found", nil)
	}
	comment.VoteSets = copyVoteSets(votes)
	comment.Votes = votes.Count()
	return nil
}

func (s *MemoryStore) AttachReply(ctx context.Context, commentID, replyID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	comment, ok := s.comments[commentID]
	if !ok {
		return utils.NewAppError(utils.ErrNotFound, "Comment not found", nil)
	}
	comment.Replies = append(comment.Replies, replyID)
	return nil
}

func (s *MemoryStore) DetachReply(ctx context.Context, commentID, replyID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	comment, ok := s.comments[commentID]
	if !ok {
		return nil
	}
	comment.Replies = removeUUID(comment.Replies, replyID)
	return nil
}

// Reply methods

func (s *MemoryStore) SaveReply(ctx context.Context, reply *models.Reply) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := *reply
	s.replies[reply.ID] = &r
	return nil
}

func (s *MemoryStore) GetReply(ctx context.Context, id uuid.UUID) (*models.Reply, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reply, ok := s.replies[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrNotFound, "Reply not found", nil)
	}
	r := *reply
	return &r, nil
}

func (s *MemoryStore) GetReplies(ctx context.Context, commentID *uuid.UUID) ([]*models.Reply, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	replies := make([]*models.Reply, 0)
	for _, reply := range s.replies {
		if commentID == nil || reply.CommentID == *commentID {
			r := *reply
			replies = append(replies, &r)
		}
	}
	sort.Slice(replies, func(i, j int) bool {
		return replies[i].CreatedAt.Before(replies[j].CreatedAt)
	})
	return replies, nil
}

func (s *MemoryStore) DeleteReply(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.replies[id]; !ok {
		return utils.NewAppError(utils.ErrNotFound, "Reply not found", nil)
	}
	delete(s.replies, id)
	return nil
}

// Copy helpers

func copyVoteSets(v models.VoteSets) models.VoteSets {
	return models.VoteSets{
		Upvoters:   append([]string{}, v.Upvoters...),
		Downvoters: append([]string{}, v.Downvoters...),
	}
}

func copyQuestion(q *models.Question) *models.Question {
	out := *q
	out.Tags = append([]string{}, q.Tags...)
	out.Answers = append([]uuid.UUID{}, q.Answers...)
	out.VoteSets = copyVoteSets(q.VoteSets)
	return &out
}

func copyAnswer(a *models.Answer) *models.Answer {
	out := *a
	out.VoteSets = copyVoteSets(a.VoteSets)
	return &out
}

func copyComment(c *models.Comment) *models.Comment {
	out := *c
	out.Replies = append([]uuid.UUID{}, c.Replies...)
	out.VoteSets = copyVoteSets(c.VoteSets)
	return &out
}

func removeUUID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
