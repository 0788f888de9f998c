package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"spiritualgifts/models"

	"gorm.io/gorm"
)

type Seeder struct {
	db           *gorm.DB
	descriptions *DescriptionCache
}

func NewSeeder(db *gorm.DB, descriptions *DescriptionCache) *Seeder {
	return &Seeder{db: db, descriptions: descriptions}
}

// SeedGiftDescriptions inserts the default descriptions when the table is empty.
func (s *Seeder) SeedGiftDescriptions(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.GiftDescription{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count gift descriptions: %w", err)
	}
	if count > 0 {
		log.Printf("gift descriptions already seeded")
		return nil
	}

	rows := make([]models.GiftDescription, len(defaultGiftDescriptions))
	copy(rows, defaultGiftDescriptions)
	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("seed gift descriptions: %w", err)
	}
	if s.descriptions != nil {
		s.descriptions.Invalidate(ctx)
	}
	log.Printf("seeded %d gift descriptions", len(rows))
	return nil
}

// SeedDefaultAdmin creates an admin account when none exists.
func (s *Seeder) SeedDefaultAdmin(ctx context.Context, fullname, email string) error {
	var admins int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&admins).Error; err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if admins > 0 {
		log.Printf("admin user already exists")
		return nil
	}
	if _, err := createUser(ctx, s.db, fullname, email, models.RoleAdmin); err != nil {
		return fmt.Errorf("seed default admin: %w", err)
	}
	log.Printf("default admin user created: %s", email)
	return nil
}

// SeedQuestions loads the default question bank in shuffled order so that
// categories are not grouped together. It does nothing if questions exist.
func (s *Seeder) SeedQuestions(ctx context.Context, rnd *rand.Rand) (int, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Question{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	if count > 0 {
		log.Printf("questions already seeded")
		return 0, nil
	}

	shuffled := make([]models.Question, len(defaultQuestions))
	copy(shuffled, defaultQuestions)
	rnd.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	for i := range shuffled {
		shuffled[i].QuestionOrder = i + 1
	}

	if err := s.db.WithContext(ctx).Create(&shuffled).Error; err != nil {
		return 0, fmt.Errorf("seed questions: %w", err)
	}
	log.Printf("seeded %d questions", len(shuffled))
	return len(shuffled), nil
}
