package simulator

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SimConfig tunes the load shape of a simulation run.
type SimConfig struct {
	NumUsers         int
	NumQuestions     int
	SimulationTime   time.Duration
	AnswerFrequency  float64 // answers per user per hour
	CommentFrequency float64 // comments per user per hour
	VoteFrequency    float64 // votes per user per hour
	ReplyPercentage  float64 // chance a comment gets a reply
	ZipfS            float64 // question popularity skew
	ServerURL        string
}

// SimulationStats aggregates request-level outcomes across all workers.
type SimulationStats struct {
	mu               sync.RWMutex
	StartTime        time.Time
	TotalRequests    int64
	SuccessRequests  int64
	FailedRequests   int64
	AverageLatency   time.Duration
	TotalQuestions   int
	TotalAnswers     int
	TotalComments    int
	TotalReplies     int
	TotalVotes       int
	RequestLatencies []time.Duration
}

// SimulatedUser is one synthetic account with its session token and the
// content it produced.
type SimulatedUser struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Token     string
	Questions []uuid.UUID
	Comments  []uuid.UUID
	Voted     map[uuid.UUID]bool
}

// Simulator drives the REST API end to end: register, login, then a mix of
// questions, answers, comments, replies and vote toggles.
type Simulator struct {
	config    SimConfig
	stats     *SimulationStats
	users     []*SimulatedUser
	questions []uuid.UUID
	comments  []uuid.UUID
	client    *http.Client
	mu        sync.RWMutex
}

func NewSimulator(config SimConfig) *Simulator {
	return &Simulator{
		config: config,
		stats: &SimulationStats{
			StartTime:        time.Now(),
			RequestLatencies: make([]time.Duration, 0),
		},
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *Simulator) Run(ctx context.Context) error {
	log.Printf("Starting simulation...")

	if err := s.initialize(ctx); err != nil {
		return fmt.Errorf("initialization failed: %v", err)
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := s.SimulateActivities(ctx); err != nil {
			log.Printf("Activities simulation error: %v", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.collectMetrics(ctx)
	}()

	wg.Wait()
	return nil
}

func (s *Simulator) initialize(ctx context.Context) error {
	log.Printf("Starting initialization...")

	// Phase 1: register and log in the user base
	log.Printf("Phase 1: Creating %d users...", s.config.NumUsers)
	if err := s.createInitialUsers(ctx); err != nil {
		return fmt.Errorf("failed to create initial users: %v", err)
	}

	// Phase 2: seed the question pool
	log.Printf("Phase 2: Creating %d questions...", s.config.NumQuestions)
	if err := s.createInitialQuestions(ctx); err != nil {
		return fmt.Errorf("failed to create initial questions: %v", err)
	}

	log.Printf("Initialization completed successfully")
	return nil
}

func (s *Simulator) createInitialUsers(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make([]*SimulatedUser, 0, s.config.NumUsers)

	const numWorkers = 5
	userJobs := make(chan int, numWorkers)
	results := make(chan *SimulatedUser, numWorkers)

	var wg sync.WaitGroup

	// Shared rate limiter so workers do not flood the registration endpoint
	rateLimiter := time.NewTicker(100 * time.Millisecond)
	defer rateLimiter.Stop()

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			for userNum := range userJobs {
				<-rateLimiter.C

				user := &SimulatedUser{
					Name:      fmt.Sprintf("user_%d", userNum),
					Email:     fmt.Sprintf("user_%d@test.com", userNum),
					Voted:     make(map[uuid.UUID]bool),
					Questions: make([]uuid.UUID, 0),
					Comments:  make([]uuid.UUID, 0),
				}

				if err := s.registerAndLogin(ctx, user); err != nil {
					log.Printf("Worker %d: failed to set up user %s: %v", workerID, user.Name, err)
					continue
				}
				results <- user
			}
		}(i)
	}

	go func() {
		for i := 0; i < s.config.NumUsers; i++ {
			userJobs <- i
		}
		close(userJobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for user := range results {
		s.users = append(s.users, user)
	}

	log.Printf("Successfully created %d users", len(s.users))
	return nil
}

func (s *Simulator) registerAndLogin(ctx context.Context, user *SimulatedUser) error {
	registerData := map[string]interface{}{
		"email":    user.Email,
		"name":     user.Name,
		"password": "testpass123",
	}
	if _, err := s.makeRequest("POST", "/api/users/register", registerData, ""); err != nil {
		return fmt.Errorf("failed to register: %v", err)
	}

	loginData := map[string]interface{}{
		"email":    user.Email,
		"password": "testpass123",
	}
	resp, err := s.makeRequest("POST", "/api/users/login", loginData, "")
	if err != nil {
		return fmt.Errorf("failed to log in: %v", err)
	}

	var token string
	if err := decodeData(resp, &token); err != nil {
		return fmt.Errorf("failed to parse login response: %v", err)
	}
	user.Token = token

	// Recover the user id from the token claims payload the server embeds
	if id, err := userIDFromToken(token); err == nil {
		user.ID = id
	}
	return nil
}

func (s *Simulator) createInitialQuestions(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = make([]uuid.UUID, 0, s.config.NumQuestions)

	for i := 0; i < s.config.NumQuestions; i++ {
		author := s.users[rand.Intn(len(s.users))]
		topic := getRandomTopic()

		data := map[string]interface{}{
			"title": fmt.Sprintf("How do I get started with %s? (%d)", topic, i),
			"desc":  fmt.Sprintf("Looking for practical advice on %s from people who have done it.", topic),
			"tags":  []string{topic},
		}

		resp, err := s.makeRequest("POST", "/api/questions", data, author.Token)
		if err != nil {
			log.Printf("Failed to create question %d: %v", i, err)
			continue
		}

		var question struct {
			ID uuid.UUID `json:"id"`
		}
		if err := decodeData(resp, &question); err != nil {
			log.Printf("Failed to parse question response: %v", err)
			continue
		}

		s.questions = append(s.questions, question.ID)
		author.Questions = append(author.Questions, question.ID)

		s.stats.mu.Lock()
		s.stats.TotalQuestions++
		s.stats.mu.Unlock()

		time.Sleep(50 * time.Millisecond)
	}

	return nil
}

func getRandomTopic() string {
	topics := []string{
		"golang", "databases", "testing", "networking", "security",
		"kubernetes", "compilers", "linux", "distributed-systems", "frontend",
	}
	return topics[rand.Intn(len(topics))]
}

// pickQuestion favors early questions via a Zipf draw so load skews toward a
// hot set, like real traffic does.
func (s *Simulator) pickQuestion() (uuid.UUID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.questions) == 0 {
		return uuid.Nil, false
	}
	zipf := rand.NewZipf(rand.New(rand.NewSource(time.Now().UnixNano())),
		s.config.ZipfS, 1, uint64(len(s.questions)-1))
	return s.questions[int(zipf.Uint64())], true
}

func (s *Simulator) pickComment() (uuid.UUID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.comments) == 0 {
		return uuid.Nil, false
	}
	return s.comments[rand.Intn(len(s.comments))], true
}

// makeRequest performs one HTTP call, recording latency and outcome. A
// non-empty token is sent as a Bearer header.
func (s *Simulator) makeRequest(method, endpoint string, data interface{}, token string) ([]byte, error) {
	var body []byte
	var err error

	if data != nil {
		body, err = json.Marshal(data)
		if err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequest(method, s.config.ServerURL+endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	s.recordRequestMetrics(start, err)

	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(payload))
	}

	return payload, nil
}

// decodeData unwraps the {status, message: {msg, data}} envelope into dst.
func decodeData(resp []byte, dst interface{}) error {
	var env struct {
		Status  bool `json:"status"`
		Message struct {
			Msg  string          `json:"msg"`
			Data json.RawMessage `json:"data"`
		} `json:"message"`
	}
	if err := json.Unmarshal(resp, &env); err != nil {
		return err
	}
	return json.Unmarshal(env.Message.Data, dst)
}

// userIDFromToken decodes the unverified claims section of a JWT to read the
// id claim. The simulator never validates signatures; it only needs the id.
func userIDFromToken(token string) (uuid.UUID, error) {
	parts := bytes.Split([]byte(token), []byte("."))
	if len(parts) != 3 {
		return uuid.Nil, fmt.Errorf("malformed token")
	}
	claimsJSON, err := base64.RawURLEncoding.DecodeString(string(parts[1]))
	if err != nil {
		return uuid.Nil, err
	}
	var claims struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.Unmarshal(claimsJSON, &claims); err != nil {
		return uuid.Nil, err
	}
	return claims.ID, nil
}

func (s *Simulator) recordRequestMetrics(start time.Time, err error) {
	s.stats.mu.Lock()
	defer s.stats.mu.Unlock()

	latency := time.Since(start)
	s.stats.TotalRequests++
	s.stats.RequestLatencies = append(s.stats.RequestLatencies, latency)

	if err != nil {
		s.stats.FailedRequests++
	} else {
		s.stats.SuccessRequests++
	}

	totalLatency := s.stats.AverageLatency * time.Duration(s.stats.TotalRequests-1)
	s.stats.AverageLatency = (totalLatency + latency) / time.Duration(s.stats.TotalRequests)
}

func (s *Simulator) collectMetrics(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.stats.mu.RLock()
			log.Printf("Stats: requests=%d ok=%d failed=%d avgLatency=%v questions=%d answers=%d comments=%d replies=%d votes=%d",
				s.stats.TotalRequests, s.stats.SuccessRequests, s.stats.FailedRequests,
				s.stats.AverageLatency, s.stats.TotalQuestions, s.stats.TotalAnswers,
				s.stats.TotalComments, s.stats.TotalReplies, s.stats.TotalVotes)
			s.stats.mu.RUnlock()
		}
	}
}

// Metrics is the read-only summary returned after a run.
type Metrics struct {
	TotalUsers      int
	TotalRequests   int64
	SuccessRequests int64
	FailedRequests  int64
	AverageLatency  time.Duration
	TotalQuestions  int
	TotalAnswers    int
	TotalComments   int
	TotalReplies    int
	TotalVotes      int
}

func (s *Simulator) GetMetrics() Metrics {
	s.stats.mu.RLock()
	defer s.stats.mu.RUnlock()
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Metrics{
		TotalUsers:      len(s.users),
		TotalRequests:   s.stats.TotalRequests,
		SuccessRequests: s.stats.SuccessRequests,
		FailedRequests:  s.stats.FailedRequests,
		AverageLatency:  s.stats.AverageLatency,
		TotalQuestions:  s.stats.TotalQuestions,
		TotalAnswers:    s.stats.TotalAnswers,
		TotalComments:   s.stats.TotalComments,
		TotalReplies:    s.stats.TotalReplies,
		TotalVotes:      s.stats.TotalVotes,
	}
}
