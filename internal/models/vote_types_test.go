package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVoteSetsToggle(t *testing.T) {
	v := VoteSets{Upvoters: []string{}, Downvoters: []string{}}

	// First upvote lands
	v.Toggle("alice", VoteUp)
	assert.Equal(t, []string{"alice"}, v.Upvoters)
	assert.Empty(t, v.Downvoters)
	assert.Equal(t, 1, v.Count())

	// Same direction again removes the vote
	v.Toggle("alice", VoteUp)
	assert.Empty(t, v.Upvoters)
	assert.Empty(t, v.Downvoters)
	assert.Equal(t, 0, v.Count())

	// Opposite direction moves the user across sets
	v.Toggle("alice", VoteUp)
	v.Toggle("alice", VoteDown)
	assert.Empty(t, v.Upvoters)
	assert.Equal(t, []string{"alice"}, v.Downvoters)
	assert.Equal(t, -1, v.Count())
}

func TestVoteSetsMutualExclusivity(t *testing.T) {
	v := VoteSets{}

	// Whatever sequence of toggles runs, a user never sits in both sets
	sequence := []VoteDirection{VoteUp, VoteDown, VoteDown, VoteUp, VoteUp, VoteDown}
	for _, d := range sequence {
		v.Toggle("bob", d)
		inUp, inDown := 0, 0
		for _, id := range v.Upvoters {
			if id == "bob" {
				inUp++
			}
		}
		for _, id := range v.Downvoters {
			if id == "bob" {
				inDown++
			}
		}
		assert.LessOrEqual(t, inUp+inDown, 1)
	}
}

func TestVoteSetsMultipleUsers(t *testing.T) {
	v := VoteSets{}

	v.Toggle("alice", VoteUp)
	v.Toggle("bob", VoteUp)
	v.Toggle("carol", VoteDown)
	assert.Equal(t, 1, v.Count())

	// Alice flipping does not disturb the other voters
	v.Toggle("alice", VoteDown)
	assert.Equal(t, []string{"bob"}, v.Upvoters)
	assert.ElementsMatch(t, []string{"carol", "alice"}, v.Downvoters)
	assert.Equal(t, -1, v.Count())
}

func TestValidDirection(t *testing.T) {
	assert.True(t, ValidDirection(VoteUp))
	assert.True(t, ValidDirection(VoteDown))
	assert.False(t, ValidDirection("sideways"))
	assert.False(t, ValidDirection(""))
}
