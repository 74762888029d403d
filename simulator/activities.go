package simulator

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SimulateActivities runs the steady-state phase: answers, comments, replies
// and votes against the seeded question pool.
func (s *Simulator) SimulateActivities(ctx context.Context) error {
	log.Printf("Starting activities simulation...")

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.simulateAnswers(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.simulateComments(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.simulateVotes(ctx)
	}()

	wg.Wait()
	return nil
}

// perTickChance converts an events-per-user-per-hour rate into a probability
// for one tick of the given interval.
func perTickChance(hourlyRate float64, tick time.Duration) float64 {
	return hourlyRate * tick.Hours()
}

func (s *Simulator) simulateAnswers(ctx context.Context) {
	tick := 500 * time.Millisecond
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, user := range s.snapshotUsers() {
				if rand.Float64() >= perTickChance(s.config.AnswerFrequency, tick) {
					continue
				}

				questionID, ok := s.pickQuestion()
				if !ok {
					continue
				}

				data := map[string]interface{}{
					"que":        questionID.String(),
					"answerData": fmt.Sprintf("In my experience the key thing is to start small. (%s)", user.Name),
				}
				if _, err := s.makeRequest("POST", "/api/answers", data, user.Token); err != nil {
					log.Printf("Failed to post answer: %v", err)
					continue
				}

				s.stats.mu.Lock()
				s.stats.TotalAnswers++
				s.stats.mu.Unlock()
			}
		}
	}
}

func (s *Simulator) simulateComments(ctx context.Context) {
	tick := 500 * time.Millisecond
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, user := range s.snapshotUsers() {
				if rand.Float64() >= perTickChance(s.config.CommentFrequency, tick) {
					continue
				}

				questionID, ok := s.pickQuestion()
				if !ok {
					continue
				}

				data := map[string]interface{}{
					"que":     questionID.String(),
					"comment": fmt.Sprintf("Could you share more details? (%s)", user.Name),
				}
				resp, err := s.makeRequest("POST", "/api/comments", data, user.Token)
				if err != nil {
					log.Printf("Failed to post comment: %v", err)
					continue
				}

				var comment struct {
					ID uuid.UUID `json:"id"`
				}
				if err := decodeData(resp, &comment); err != nil {
					log.Printf("Failed to parse comment response: %v", err)
					continue
				}

				s.mu.Lock()
				s.comments = append(s.comments, comment.ID)
				s.mu.Unlock()
				user.Comments = append(user.Comments, comment.ID)

				s.stats.mu.Lock()
				s.stats.TotalComments++
				s.stats.mu.Unlock()

				// Some comments draw a reply from another user
				if rand.Float64() < s.config.ReplyPercentage {
					s.postReply(comment.ID)
				}
			}
		}
	}
}

func (s *Simulator) postReply(commentID uuid.UUID) {
	replier := s.randomUser()
	if replier == nil {
		return
	}

	data := map[string]interface{}{
		"comment": commentID.String(),
		"reply":   fmt.Sprintf("Agreed, same here. (%s)", replier.Name),
	}
	if _, err := s.makeRequest("POST", "/api/replies", data, replier.Token); err != nil {
		log.Printf("Failed to post reply: %v", err)
		return
	}

	s.stats.mu.Lock()
	s.stats.TotalReplies++
	s.stats.mu.Unlock()
}

func (s *Simulator) simulateVotes(ctx context.Context) {
	tick := 500 * time.Millisecond
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, user := range s.snapshotUsers() {
				if rand.Float64() >= perTickChance(s.config.VoteFrequency, tick) {
					continue
				}

				questionID, ok := s.pickQuestion()
				if !ok {
					continue
				}

				direction := "up"
				if rand.Float64() < 0.25 {
					direction = "down"
				}

				// Voting twice toggles the vote off, which is a legitimate
				// behavior to exercise, so repeat votes are not filtered out.
				data := map[string]interface{}{"direction": direction}
				endpoint := fmt.Sprintf("/api/questions/%s/vote", questionID)
				if _, err := s.makeRequest("POST", endpoint, data, user.Token); err != nil {
					log.Printf("Failed to vote: %v", err)
					continue
				}
				user.Voted[questionID] = true

				s.stats.mu.Lock()
				s.stats.TotalVotes++
				s.stats.mu.Unlock()
			}
		}
	}
}

func (s *Simulator) snapshotUsers() []*SimulatedUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]*SimulatedUser, len(s.users))
	copy(users, s.users)
	return users
}

func (s *Simulator) randomUser() *SimulatedUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.users) == 0 {
		return nil
	}
	return s.users[rand.Intn(len(s.users))]
}
