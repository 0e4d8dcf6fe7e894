package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"intervox/internal/model"
	"intervox/internal/repository"
)

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	roles := repository.NewRoleRepo(client.Database("intervox"))

	profiles := []*model.RoleProfile{
		{
			Slug:           "backend-go",
			Role:           "Backend Engineer (Go)",
			JobDescription: "Design, build and operate the Go services behind our billing and ingestion platform. On-call rotation, strong emphasis on observability and graceful degradation.",
			Skills:         []string{"Go", "Distributed Systems", "PostgreSQL", "Observability"},
		},
		{
			Slug:           "frontend-react",
			Role:           "Frontend Engineer (React)",
			JobDescription: "Own the candidate-facing interview UI: realtime audio controls, transcripts, accessibility. Ship weekly with strong test discipline.",
			Skills:         []string{"React", "TypeScript", "Testing", "WebRTC"},
		},
		{
			Slug:           "data-engineer",
			Role:           "Data Engineer",
			JobDescription: "Build and maintain the pipelines that turn interview evaluations into hiring analytics. Batch and streaming, warehouse modelling, data quality.",
			Skills:         []string{"SQL", "Airflow", "Spark", "Data Modelling"},
		},
	}

	for _, p := range profiles {
		if err := roles.Upsert(ctx, p); err != nil {
			log.Fatalf("Failed to seed role %s: %v", p.Slug, err)
		}
		fmt.Printf("Seeded role: %s (%s)\n", p.Role, p.Slug)
	}

	fmt.Println("Done.")
}
