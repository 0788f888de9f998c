package services

import (
	"context"
	"math/rand"
	"testing"

	"spiritualgifts/models"
)

func TestSeedIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	mr, client := newTestRedis(t)
	cache := NewDescriptionCache(db, client, 0)
	seeder := NewSeeder(db, cache)
	ctx := context.Background()

	mr.HSet(descriptionsKey, "Teaching", "stale")

	for i := 0; i < 2; i++ {
		if err := seeder.SeedGiftDescriptions(ctx); err != nil {
			t.Fatalf("SeedGiftDescriptions returned error: %v", err)
		}
		if err := seeder.SeedDefaultAdmin(ctx, "Admin User", "admin@spiritualgifts.com"); err != nil {
			t.Fatalf("SeedDefaultAdmin returned error: %v", err)
		}
	}
	if n := countRows(t, db, &models.GiftDescription{}); n != 6 {
		t.Fatalf("expected 6 descriptions, got %d", n)
	}
	if n := countRows(t, db, &models.User{}); n != 1 {
		t.Fatalf("expected 1 admin, got %d", n)
	}
	if mr.Exists(descriptionsKey) {
		t.Fatalf("seeding should invalidate the cache")
	}
}

func TestSeedQuestionsShuffled(t *testing.T) {
	db := newTestDB(t)
	seeder := NewSeeder(db, nil)
	ctx := context.Background()

	n, err := seeder.SeedQuestions(ctx, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("SeedQuestions returned error: %v", err)
	}
	if n != 30 {
		t.Fatalf("expected 30 questions, got %d", n)
	}

	var questions []models.Question
	if err := db.Order("question_order").Find(&questions).Error; err != nil {
		t.Fatalf("load questions: %v", err)
	}
	perCategory := map[string]int{}
	for i, q := range questions {
		if q.QuestionOrder != i+1 {
			t.Fatalf("expected contiguous order, got %d at %d", q.QuestionOrder, i)
		}
		perCategory[q.GiftCategory]++
	}
	if len(perCategory) != 6 {
		t.Fatalf("expected 6 categories, got %v", perCategory)
	}
	for category, count := range perCategory {
		if count != 5 {
			t.Fatalf("%s has %d questions", category, count)
		}
	}

	again, err := seeder.SeedQuestions(ctx, rand.New(rand.NewSource(2)))
	if err != nil || again != 0 {
		t.Fatalf("expected second seed to be a no-op, got %d, %v", again, err)
	}
}
