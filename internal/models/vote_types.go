package models

// VoteTargetType represents the kind of record being voted on.
type VoteTargetType string

const (
	QuestionTarget VoteTargetType = "question"
	AnswerTarget   VoteTargetType = "answer"
	CommentTarget  VoteTargetType = "comment"
)

// VoteDirection represents the direction of a vote.
type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

// ValidDirection reports whether d is a usable vote direction.
func ValidDirection(d VoteDirection) bool {
	return d == VoteUp || d == VoteDown
}

// VoteSets holds the two voter id sets of a record. Mutations go through
// Toggle so a user id can never sit in both sets at once.
type VoteSets struct {
	Upvoters   []string `json:"upvotes"`
	Downvoters []string `json:"downvotes"`
}

// Count returns the derived vote total. It is always recomputed from the
// sets rather than tracked incrementally, so the stored counter cannot drift.
func (v VoteSets) Count() int {
	return len(v.Upvoters) - len(v.Downvoters)
}

// Toggle applies an idempotent vote toggle for userID:
//   - voting the same direction twice removes the vote,
//   - voting the opposite direction moves the user across sets.
func (v *VoteSets) Toggle(userID string, direction VoteDirection) {
	inUp := contains(v.Upvoters, userID)
	inDown := contains(v.Downvoters, userID)

	v.Upvoters = remove(v.Upvoters, userID)
	v.Downvoters = remove(v.Downvoters, userID)

	switch direction {
	case VoteUp:
		if !inUp {
			v.Upvoters = append(v.Upvoters, userID)
		}
	case VoteDown:
		if !inDown {
			v.Downvoters = append(v.Downvoters, userID)
		}
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
