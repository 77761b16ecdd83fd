package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/d60-Lab/osuda/config"
	"github.com/d60-Lab/osuda/internal/model"
	"github.com/d60-Lab/osuda/internal/storage"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

var keywordPool = []string{
	"work", "family", "travel", "food", "health",
	"books", "music", "weather", "ideas", "todo",
}

// Seeds the configured storage backend with N posts spread over DAYS days,
// so the weekly and monthly calendar views have something to render.
//
//	N=200 DAYS=90 go run ./cmd/seed
func main() {
	cfg := must(config.Load())
	store := must(storage.Open(cfg))
	ctx := context.Background()

	n := envInt("N", 100)
	days := envInt("DAYS", 60)

	posts := must(store.LoadAll(ctx))
	nextID := int64(1)
	for _, p := range posts {
		if p.ID >= nextID {
			nextID = p.ID + 1
		}
	}

	now := time.Now().UTC()
	for i := 0; i < n; i++ {
		created := now.Add(-time.Duration(rand.Intn(days*24)) * time.Hour)
		post := model.Post{
			ID:        nextID,
			Content:   fmt.Sprintf("seed post %d", nextID),
			Keywords:  keywordPool[rand.Intn(len(keywordPool))] + ", " + keywordPool[rand.Intn(len(keywordPool))],
			CreatedAt: created.Format(time.RFC3339),
		}
		// a third of the posts get a manual date on a different day
		if i%3 == 0 {
			manual := created.AddDate(0, 0, -rand.Intn(7)-1).Format("2006-01-02")
			post.ManualDate = &manual
		}
		posts = append(posts, post)
		nextID++
	}

	if err := store.SaveAll(ctx, posts); err != nil {
		fmt.Fprintln(os.Stderr, "save:", err)
		os.Exit(1)
	}
	fmt.Printf("seeded %d posts (total %d) into %s storage\n", n, len(posts), cfg.Storage.Backend)
}

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}
