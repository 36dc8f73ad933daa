// Command seed resets the database and loads the demo dataset: four
// users, four snack items, two reviews and a comment.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"reviewhub/internal/auth"
	"reviewhub/internal/comments"
	"reviewhub/internal/items"
	"reviewhub/internal/reviews"
	"reviewhub/pkg/database"
	"reviewhub/pkg/models"
)

func main() {
	reset := flag.Bool("reset", true, "drop existing tables before seeding")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if *reset {
		if err := dropTables(db); err != nil {
			log.Fatalf("drop tables failed: %v", err)
		}
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	authRepo := auth.NewRepo(db)
	itemsRepo := items.NewRepo(db)
	reviewsRepo := reviews.NewRepo(db)
	commentsRepo := comments.NewRepo(db)

	kate := mustUser(ctx, authRepo, "kate", "kate_rocks")
	kai := mustUser(ctx, authRepo, "kai", "kai_rocks!")
	kelsey := mustUser(ctx, authRepo, "kelsey", "go_dogs!")
	mustUser(ctx, authRepo, "frank", "I'm_a_man")

	mustItem(ctx, itemsRepo, "pretzel")
	hotdog := mustItem(ctx, itemsRepo, "hotdog")
	nachos := mustItem(ctx, itemsRepo, "nachos")
	mustItem(ctx, itemsRepo, "icecream")

	if _, err := reviewsRepo.Create(ctx, kate.ID, hotdog.ID, "love this hotdog", 4); err != nil {
		log.Fatalf("seed review failed: %v", err)
	}
	review2, err := reviewsRepo.Create(ctx, kai.ID, nachos.ID, "these nachos are gross", 2)
	if err != nil {
		log.Fatalf("seed review failed: %v", err)
	}

	if _, err := commentsRepo.Create(ctx, kelsey.ID, review2.ID, "love this review"); err != nil {
		log.Fatalf("seed comment failed: %v", err)
	}

	log.Println("seeded users, items, reviews and comments")
}

func dropTables(db *sql.DB) error {
	for _, table := range []string{"comments", "reviews", "items", "users"} {
		if _, err := db.Exec("DROP TABLE IF EXISTS " + table); err != nil {
			return err
		}
	}
	return nil
}

func mustUser(ctx context.Context, repo *auth.Repo, username, password string) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password for %s: %v", username, err)
	}
	u := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := repo.CreateUser(ctx, u); err != nil {
		log.Fatalf("seed user %s: %v", username, err)
	}
	return &u
}

func mustItem(ctx context.Context, repo *items.Repo, name string) *models.Item {
	item, err := repo.Create(ctx, name)
	if err != nil {
		log.Fatalf("seed item %s: %v", name, err)
	}
	return item
}
