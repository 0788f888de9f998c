package services

import (
	"context"
	"testing"

	"spiritualgifts/internal/testdb"
	"spiritualgifts/models"

	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testdb.Open(t)
}

func createUserWithRole(t *testing.T, db *gorm.DB, fullname, email, role string) models.User {
	t.Helper()
	user := models.User{Fullname: fullname, Email: email, Role: role}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

// createQuestions inserts one question per category, in the given order.
func createQuestions(t *testing.T, db *gorm.DB, categories ...string) []models.Question {
	t.Helper()
	questions := make([]models.Question, len(categories))
	for i, category := range categories {
		questions[i] = models.Question{
			GiftCategory:  category,
			QuestionText:  "Question about " + category,
			QuestionOrder: i + 1,
		}
	}
	if err := db.Create(&questions).Error; err != nil {
		t.Fatalf("create questions: %v", err)
	}
	return questions
}

func seedDescriptions(t *testing.T, db *gorm.DB) {
	t.Helper()
	if err := NewSeeder(db, nil).SeedGiftDescriptions(context.Background()); err != nil {
		t.Fatalf("seed descriptions: %v", err)
	}
}

func answersFor(questions []models.Question, values ...int) []SubmittedAnswer {
	answers := make([]SubmittedAnswer, len(values))
	for i, v := range values {
		answers[i] = SubmittedAnswer{QuestionID: questions[i].ID, AnswerValue: v}
	}
	return answers
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", model, err)
	}
	return n
}
