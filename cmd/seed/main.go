// Command main fills the database with demo users, posts and likes.
package main

import (
	"context"
	"flag"
	"log"

	"forum/internal/bootstrap"
	"forum/internal/config"
	"forum/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numPosts := flag.Int("posts", 100, "Number of posts to create")
	numLikes := flag.Int("likes", 300, "Number of like attempts")
	seedValue := flag.Int64("seed", 0, "Random seed (0 picks one)")
	flag.Parse()

	log.Printf("Target: %d users, %d posts, %d likes", *numUsers, *numPosts, *numLikes)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	db, rdb, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{SeedDefaultUser: true})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	svc := bootstrap.NewServices(cfg, db, rdb)
	f := seed.NewFactory(svc.Users, svc.Posts, *seedValue)

	sum, err := f.Run(ctx, seed.Options{
		NumUsers: *numUsers,
		NumPosts: *numPosts,
		NumLikes: *numLikes,
	})
	if err != nil {
		log.Fatalf("Seeding failed after %d users, %d posts, %d likes: %v", sum.Users, sum.Posts, sum.Likes, err)
	}

	log.Printf("Created %d users, %d posts, %d likes (%d repeated likes ignored)",
		sum.Users, sum.Posts, sum.Likes, sum.Duplicates)
	log.Printf("Default account: %s / %s", seed.DefaultEmail, seed.DefaultPassword)
}
