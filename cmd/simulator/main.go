package main

import (
	"context"
	"log"
	"time"

	"askstack/simulator"
)

func main() {
	config := simulator.SimConfig{
		NumUsers:         10,
		NumQuestions:     20,
		SimulationTime:   5 * time.Minute,
		AnswerFrequency:  60.0,
		CommentFrequency: 90.0,
		VoteFrequency:    120.0,
		ReplyPercentage:  0.3,
		ZipfS:            1.07,
		ServerURL:        "http://localhost:8080",
	}

	sim := simulator.NewSimulator(config)
	ctx, cancel := context.WithTimeout(context.Background(), config.SimulationTime)
	defer cancel()

	log.Printf("Starting simulation with configuration:")
	log.Printf("- Server URL: %s", config.ServerURL)
	log.Printf("- Number of users: %d", config.NumUsers)
	log.Printf("- Number of seed questions: %d", config.NumQuestions)
	log.Printf("- Simulation time: %v", config.SimulationTime)
	log.Printf("- Answer frequency: %.2f answers/user/hour", config.AnswerFrequency)
	log.Printf("- Comment frequency: %.2f comments/user/hour", config.CommentFrequency)
	log.Printf("- Vote frequency: %.2f votes/user/hour", config.VoteFrequency)
	log.Printf("- Reply percentage: %.1f%%", config.ReplyPercentage*100)
	log.Printf("- Zipf parameter: %.2f", config.ZipfS)

	if err := sim.Run(ctx); err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	metrics := sim.GetMetrics()
	log.Printf("\nSimulation completed. Final metrics:")
	log.Printf("- Total users: %d", metrics.TotalUsers)
	log.Printf("- Total requests: %d (ok %d, failed %d)", metrics.TotalRequests, metrics.SuccessRequests, metrics.FailedRequests)
	log.Printf("- Average latency: %v", metrics.AverageLatency)
	log.Printf("- Questions: %d", metrics.TotalQuestions)
	log.Printf("- Answers: %d", metrics.TotalAnswers)
	log.Printf("- Comments: %d", metrics.TotalComments)
	log.Printf("- Replies: %d", metrics.TotalReplies)
	log.Printf("- Votes: %d", metrics.TotalVotes)
}
