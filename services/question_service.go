package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"spiritualgifts/models"

	"gorm.io/gorm"
)

// DeleteAllConfirmation must be sent verbatim to wipe the question bank.
const DeleteAllConfirmation = "DELETE_ALL_QUESTIONS"

type QuestionService struct {
	db *gorm.DB
}

func NewQuestionService(db *gorm.DB) *QuestionService {
	return &QuestionService{db: db}
}

type QuestionInput struct {
	GiftCategory  string `json:"gift_category" binding:"required,notblank"`
	QuestionText  string `json:"question_text" binding:"required,notblank"`
	QuestionOrder *int   `json:"question_order"`
}

func (in QuestionInput) normalized() QuestionInput {
	in.GiftCategory = strings.TrimSpace(in.GiftCategory)
	in.QuestionText = strings.TrimSpace(in.QuestionText)
	return in
}

// UpdateQuestionRequest replaces every field, so the order is required too.
type UpdateQuestionRequest struct {
	GiftCategory  string `json:"gift_category" binding:"required,notblank"`
	QuestionText  string `json:"question_text" binding:"required,notblank"`
	QuestionOrder *int   `json:"question_order" binding:"required"`
}

type BulkCreateRequest struct {
	Questions []QuestionInput `json:"questions" binding:"required,min=1,dive"`
}

type DeleteAllRequest struct {
	Confirm string `json:"confirm"`
}

func (s *QuestionService) List(ctx context.Context, category, search string) ([]models.Question, error) {
	questions := make([]models.Question, 0)
	query := s.db.WithContext(ctx).Model(&models.Question{})
	if category = strings.TrimSpace(category); category != "" {
		query = query.Where("gift_category = ?", category)
	}
	if strings.TrimSpace(search) != "" {
		query = query.Where("LOWER(question_text) LIKE ?", likePattern(search))
	}
	if err := query.Order("question_order, id").Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}

func (s *QuestionService) Get(ctx context.Context, id uint) (*models.Question, error) {
	return findQuestion(s.db.WithContext(ctx), id)
}

func findQuestion(db *gorm.DB, id uint) (*models.Question, error) {
	var question models.Question
	err := db.First(&question, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFoundError("Question not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load question %d: %w", id, err)
	}
	return &question, nil
}

func nextQuestionOrder(tx *gorm.DB) (int, error) {
	var maxOrder int
	if err := tx.Model(&models.Question{}).Select("COALESCE(MAX(question_order), 0)").Row().Scan(&maxOrder); err != nil {
		return 0, fmt.Errorf("read max question order: %w", err)
	}
	return maxOrder + 1, nil
}

// Create inserts one question. A missing order is assigned max+1.
func (s *QuestionService) Create(ctx context.Context, in QuestionInput) (*models.Question, error) {
	in = in.normalized()

	var question models.Question
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order := 0
		if in.QuestionOrder != nil {
			order = *in.QuestionOrder
		} else {
			next, err := nextQuestionOrder(tx)
			if err != nil {
				return err
			}
			order = next
		}
		question = models.Question{
			GiftCategory:  in.GiftCategory,
			QuestionText:  in.QuestionText,
			QuestionOrder: order,
		}
		if err := tx.Create(&question).Error; err != nil {
			return fmt.Errorf("create question: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// Update replaces every field of a question.
func (s *QuestionService) Update(ctx context.Context, id uint, req UpdateQuestionRequest) (*models.Question, error) {
	question, err := findQuestion(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	question.GiftCategory = strings.TrimSpace(req.GiftCategory)
	question.QuestionText = strings.TrimSpace(req.QuestionText)
	if req.QuestionOrder != nil {
		question.QuestionOrder = *req.QuestionOrder
	}
	if err := s.db.WithContext(ctx).Save(question).Error; err != nil {
		return nil, fmt.Errorf("update question %d: %w", id, err)
	}
	return question, nil
}

// Delete removes a question that no stored answer references. When answers
// exist the conflict error carries the blocking count as "usageCount".
func (s *QuestionService) Delete(ctx context.Context, id uint) (*models.Question, error) {
	var deleted *models.Question
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		question, err := findQuestion(tx, id)
		if err != nil {
			return err
		}

		var usage int64
		if err := tx.Model(&models.ResponseDetail{}).Where("question_id = ?", id).Count(&usage).Error; err != nil {
			return fmt.Errorf("count usage of question %d: %w", id, err)
		}
		if usage > 0 {
			return NewConflictError(fmt.Sprintf("Cannot delete question: it has been answered in %d response(s)", usage)).
				With("usageCount", usage)
		}

		if err := tx.Delete(question).Error; err != nil {
			return fmt.Errorf("delete question %d: %w", id, err)
		}
		deleted = question
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// BulkCreate inserts every entry in one transaction. Entries without an
// order get consecutive values after the current maximum.
func (s *QuestionService) BulkCreate(ctx context.Context, inputs []QuestionInput) ([]models.Question, error) {
	if len(inputs) == 0 {
		return []models.Question{}, nil
	}
	normalized := make([]QuestionInput, len(inputs))
	for i, in := range inputs {
		normalized[i] = in.normalized()
	}

	questions := make([]models.Question, 0, len(normalized))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		next, err := nextQuestionOrder(tx)
		if err != nil {
			return err
		}
		for _, in := range normalized {
			order := next
			if in.QuestionOrder != nil {
				order = *in.QuestionOrder
			} else {
				next++
			}
			questions = append(questions, models.Question{
				GiftCategory:  in.GiftCategory,
				QuestionText:  in.QuestionText,
				QuestionOrder: order,
			})
		}
		if err := tx.Create(&questions).Error; err != nil {
			return fmt.Errorf("bulk create questions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// DeleteAll wipes the question bank. It needs the confirmation token and is
// refused while any answer exists anywhere.
func (s *QuestionService) DeleteAll(ctx context.Context, confirm string) (int64, error) {
	if confirm != DeleteAllConfirmation {
		return 0, NewInvalidError(fmt.Sprintf("Confirmation required: send {\"confirm\": %q}", DeleteAllConfirmation))
	}

	var removed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var answers int64
		if err := tx.Model(&models.ResponseDetail{}).Count(&answers).Error; err != nil {
			return fmt.Errorf("count response details: %w", err)
		}
		if answers > 0 {
			return NewConflictError(fmt.Sprintf("Cannot delete questions: %d answer(s) have been recorded", answers)).
				With("usageCount", answers)
		}

		result := tx.Where("1 = 1").Delete(&models.Question{})
		if result.Error != nil {
			return fmt.Errorf("delete all questions: %w", result.Error)
		}
		removed = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
