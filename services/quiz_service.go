package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"spiritualgifts/models"

	"gorm.io/gorm"
)

type ScaleLabel struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

type Instructions struct {
	Scale []ScaleLabel `json:"scale"`
	Tip   string       `json:"tip"`
}

// QuizInstructions is shown alongside the question list.
var QuizInstructions = Instructions{
	Scale: []ScaleLabel{
		{Value: 5, Label: "Very true of me"},
		{Value: 4, Label: "Mostly true of me"},
		{Value: 3, Label: "Sometimes true of me"},
		{Value: 2, Label: "Rarely true of me"},
		{Value: 1, Label: "Not true of me"},
	},
	Tip: `Avoid choosing "3" unless it truly happens only once in a while. Try to lean toward either side that best fits you.`,
}

type QuizService struct {
	db           *gorm.DB
	descriptions DescriptionLookup
}

func NewQuizService(db *gorm.DB, descriptions DescriptionLookup) *QuizService {
	return &QuizService{db: db, descriptions: descriptions}
}

type SubmittedAnswer struct {
	QuestionID  uint `json:"question_id" binding:"required"`
	AnswerValue int  `json:"answer_value" binding:"required,min=1,max=5"`
}

type SubmitQuizRequest struct {
	Responses []SubmittedAnswer `json:"responses" binding:"required,min=1,dive"`
	Comments  string            `json:"comments"`
}

type SubmitResult struct {
	ResponseID uint        `json:"responseId"`
	Gifts      []GiftScore `json:"gifts"`
}

type HistoryEntry struct {
	ID             uint      `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Comments       *string   `json:"comments"`
	TotalQuestions int       `json:"total_questions"`
}

type ResultView struct {
	ResponseID uint           `json:"responseId"`
	UserID     uint           `json:"userId"`
	CreatedAt  time.Time      `json:"createdAt"`
	Comments   *string        `json:"comments"`
	Gifts      []GiftScore    `json:"gifts"`
	Responses  []AnswerDetail `json:"responses"`
}

func (s *QuizService) ListQuestions(ctx context.Context) ([]models.Question, error) {
	questions := make([]models.Question, 0)
	if err := s.db.WithContext(ctx).Order("question_order, id").Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}

// distinctQuestionIDs rejects a question answered twice. Presence and the
// Likert range are checked by the binding tags on SubmittedAnswer.
func distinctQuestionIDs(answers []SubmittedAnswer) ([]uint, error) {
	seen := make(map[uint]struct{}, len(answers))
	ids := make([]uint, 0, len(answers))
	for _, a := range answers {
		if _, dup := seen[a.QuestionID]; dup {
			return nil, NewInvalidError(fmt.Sprintf("Question %d answered more than once", a.QuestionID))
		}
		seen[a.QuestionID] = struct{}{}
		ids = append(ids, a.QuestionID)
	}
	return ids, nil
}

// Submit stores a full answer set for userID in one transaction and returns
// the new response id with its ranked gifts. Nothing is written unless every
// answer is valid.
func (s *QuizService) Submit(ctx context.Context, userID uint, req SubmitQuizRequest) (*SubmitResult, error) {
	questionIDs, err := distinctQuestionIDs(req.Responses)
	if err != nil {
		return nil, err
	}

	var comments *string
	if trimmed := strings.TrimSpace(req.Comments); trimmed != "" {
		comments = &trimmed
	}

	// Start transaction
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin submit transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	var owners int64
	if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&owners).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("check quiz owner: %w", err)
	}
	if owners == 0 {
		tx.Rollback()
		return nil, NewNotFoundError("User not found")
	}

	var known int64
	if err := tx.Model(&models.Question{}).Where("id IN ?", questionIDs).Count(&known).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("check submitted questions: %w", err)
	}
	if int(known) != len(questionIDs) {
		tx.Rollback()
		return nil, NewInvalidError("Responses reference unknown questions")
	}

	response := models.QuizResponse{UserID: userID, Comments: comments}
	if err := tx.Create(&response).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("save quiz response: %w", err)
	}

	details := make([]models.ResponseDetail, 0, len(req.Responses))
	for _, a := range req.Responses {
		details = append(details, models.ResponseDetail{
			ResponseID:  response.ID,
			QuestionID:  a.QuestionID,
			AnswerValue: a.AnswerValue,
		})
	}
	if err := tx.Create(&details).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("save response details: %w", err)
	}

	// Commit transaction
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("commit quiz submission: %w", err)
	}

	gifts, _, err := s.score(ctx, response.ID)
	if err != nil {
		return nil, err
	}
	return &SubmitResult{ResponseID: response.ID, Gifts: gifts}, nil
}

// History lists the caller's attempts, newest first.
func (s *QuizService) History(ctx context.Context, userID uint) ([]HistoryEntry, error) {
	history := make([]HistoryEntry, 0)
	err := s.db.WithContext(ctx).
		Table("quiz_responses AS qr").
		Select("qr.id, qr.created_at, qr.comments, COUNT(rd.id) AS total_questions").
		Joins("LEFT JOIN response_details rd ON qr.id = rd.response_id").
		Where("qr.user_id = ?", userID).
		Group("qr.id, qr.created_at, qr.comments").
		Order("qr.created_at DESC, qr.id DESC").
		Scan(&history).Error
	if err != nil {
		return nil, fmt.Errorf("load quiz history: %w", err)
	}
	return history, nil
}

// Result returns one attempt. Non-admin callers only see their own attempts;
// anyone else's attempt is reported as not found.
func (s *QuizService) Result(ctx context.Context, caller Identity, responseID uint) (*ResultView, error) {
	query := s.db.WithContext(ctx).Where("id = ?", responseID)
	if !caller.IsAdmin() {
		query = query.Where("user_id = ?", caller.ID)
	}

	var response models.QuizResponse
	err := query.First(&response).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFoundError("Quiz result not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load quiz response %d: %w", responseID, err)
	}

	gifts, details, err := s.score(ctx, response.ID)
	if err != nil {
		return nil, err
	}
	return &ResultView{
		ResponseID: response.ID,
		UserID:     response.UserID,
		CreatedAt:  response.CreatedAt,
		Comments:   response.Comments,
		Gifts:      gifts,
		Responses:  details,
	}, nil
}

func (s *QuizService) score(ctx context.Context, responseID uint) ([]GiftScore, []AnswerDetail, error) {
	return scoreResponse(ctx, s.db, s.descriptions, responseID)
}

// scoreResponse recomputes gifts from the stored answers of one response.
func scoreResponse(ctx context.Context, db *gorm.DB, descriptions DescriptionLookup, responseID uint) ([]GiftScore, []AnswerDetail, error) {
	details, err := loadAnswerDetails(ctx, db, responseID)
	if err != nil {
		return nil, nil, err
	}
	lookup, err := descriptions.Lookup(ctx)
	if err != nil {
		return nil, nil, err
	}
	return CalculateGifts(toAnswerRows(details), lookup), details, nil
}
