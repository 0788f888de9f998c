package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"spiritualgifts/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AdminService struct {
	db           *gorm.DB
	descriptions *DescriptionCache
}

func NewAdminService(db *gorm.DB, descriptions *DescriptionCache) *AdminService {
	return &AdminService{db: db, descriptions: descriptions}
}

type ResultsQuery struct {
	Search     string
	GiftFilter string
	// Page and Limit are optional; Limit <= 0 returns every match.
	Page  int
	Limit int
}

type ResultSummary struct {
	UserID     uint        `json:"user_id"`
	Fullname   string      `json:"fullname"`
	Email      string      `json:"email"`
	ResponseID uint        `json:"response_id"`
	CreatedAt  time.Time   `json:"created_at"`
	TopGifts   []GiftScore `json:"topGifts" gorm:"-"`
}

type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
}

type ResultsPage struct {
	Results    []ResultSummary `json:"results"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}

type UserResponseView struct {
	User      UserSummary    `json:"user"`
	Quiz      QuizInfo       `json:"quiz"`
	Gifts     []GiftScore    `json:"gifts"`
	Responses []AnswerDetail `json:"responses"`
}

type QuizInfo struct {
	ResponseID uint      `json:"responseId"`
	CreatedAt  time.Time `json:"createdAt"`
	Comments   *string   `json:"comments"`
}

type UserWithCount struct {
	ID        uint      `json:"id"`
	Fullname  string    `json:"fullname"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	QuizCount int64     `json:"quiz_count" gorm:"-"`
}

func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}

// Results lists every (user, response) pair, newest first, each with its top
// three gifts. Gifts are always recomputed from stored answers.
func (s *AdminService) Results(ctx context.Context, q ResultsQuery) (*ResultsPage, error) {
	results := make([]ResultSummary, 0)
	query := s.db.WithContext(ctx).
		Table("users AS u").
		Select("u.id AS user_id, u.fullname, u.email, qr.id AS response_id, qr.created_at").
		Joins("JOIN quiz_responses qr ON u.id = qr.user_id")
	if strings.TrimSpace(q.Search) != "" {
		pattern := likePattern(q.Search)
		query = query.Where("(LOWER(u.fullname) LIKE ? OR LOWER(u.email) LIKE ?)", pattern, pattern)
	}
	if err := query.Order("qr.created_at DESC, qr.id DESC").Scan(&results).Error; err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}

	ids := make([]uint, len(results))
	for i, r := range results {
		ids[i] = r.ResponseID
	}
	answers, err := loadAnswerRows(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}
	descriptions, err := s.descriptions.Lookup(ctx)
	if err != nil {
		return nil, err
	}

	giftFilter := strings.TrimSpace(q.GiftFilter)
	filtered := results[:0]
	for _, r := range results {
		gifts := CalculateGifts(answers[r.ResponseID], descriptions)
		if giftFilter != "" && !HasGift(gifts, giftFilter) {
			continue
		}
		r.TopGifts = TopGifts(gifts, topGiftsCount)
		filtered = append(filtered, r)
	}

	if q.Limit <= 0 {
		return &ResultsPage{Results: filtered}, nil
	}
	return paginate(filtered, q.Page, q.Limit), nil
}

// paginate slices one page out of all. Page and limit may be arbitrarily
// large; offsets are bounded by total before any multiplication.
func paginate(all []ResultSummary, page, limit int) *ResultsPage {
	if page < 1 {
		page = 1
	}
	total := len(all)
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	start := total
	if page-1 < totalPages {
		start = (page - 1) * limit
	}
	end := total
	if limit < total-start {
		end = start + limit
	}
	return &ResultsPage{
		Results: all[start:end],
		Pagination: &Pagination{
			Page:        page,
			Limit:       limit,
			Total:       total,
			TotalPages:  totalPages,
			HasNextPage: page < totalPages,
		},
	}
}

// UserResponse returns one response of one user with full detail.
func (s *AdminService) UserResponse(ctx context.Context, userID, responseID uint) (*UserResponseView, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFoundError("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load user %d: %w", userID, err)
	}

	var response models.QuizResponse
	err = s.db.WithContext(ctx).Where("id = ? AND user_id = ?", responseID, userID).First(&response).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFoundError("Quiz response not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load quiz response %d: %w", responseID, err)
	}

	gifts, details, err := scoreResponse(ctx, s.db, s.descriptions, response.ID)
	if err != nil {
		return nil, err
	}
	return &UserResponseView{
		User:      UserSummary{ID: user.ID, Fullname: user.Fullname, Email: user.Email},
		Quiz:      QuizInfo{ResponseID: response.ID, CreatedAt: response.CreatedAt, Comments: response.Comments},
		Gifts:     gifts,
		Responses: details,
	}, nil
}

func (s *AdminService) GiftCategories(ctx context.Context) ([]string, error) {
	categories := make([]string, 0)
	err := s.db.WithContext(ctx).Model(&models.Question{}).
		Distinct().
		Order("gift_category").
		Pluck("gift_category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("list gift categories: %w", err)
	}
	return categories, nil
}

func (s *AdminService) GiftDescriptions(ctx context.Context) ([]models.GiftDescription, error) {
	return s.descriptions.List(ctx)
}

func (s *AdminService) CreateAdmin(ctx context.Context, req SignupRequest) (*UserSummary, error) {
	user, err := createUser(ctx, s.db, req.Fullname, req.Email, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	summary := summarize(user)
	return &summary, nil
}

// ListUsers filters by exact role and by name/email substring, newest first,
// with each user's number of submissions.
func (s *AdminService) ListUsers(ctx context.Context, role, search string) ([]UserWithCount, error) {
	users := make([]UserWithCount, 0)
	counts := make(map[uint]int64)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		query := s.db.WithContext(gctx).Model(&models.User{}).
			Select("id, fullname, email, role, created_at")
		if role = strings.TrimSpace(role); role != "" {
			query = query.Where("role = ?", role)
		}
		if strings.TrimSpace(search) != "" {
			pattern := likePattern(search)
			query = query.Where("(LOWER(fullname) LIKE ? OR LOWER(email) LIKE ?)", pattern, pattern)
		}
		if err := query.Order("created_at DESC, id DESC").Scan(&users).Error; err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var rows []struct {
			UserID    uint
			QuizCount int64
		}
		err := s.db.WithContext(gctx).Model(&models.QuizResponse{}).
			Select("user_id, COUNT(*) AS quiz_count").
			Group("user_id").
			Scan(&rows).Error
		if err != nil {
			return fmt.Errorf("count quiz responses: %w", err)
		}
		for _, row := range rows {
			counts[row.UserID] = row.QuizCount
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range users {
		users[i].QuizCount = counts[users[i].ID]
	}
	return users, nil
}

// DeleteUser removes a non-admin user together with all of their responses
// and response details, atomically.
func (s *AdminService) DeleteUser(ctx context.Context, userID uint) (*UserSummary, error) {
	var deleted UserSummary
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The row lock holds off submissions that would reference the user.
		var user models.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("User not found")
		}
		if err != nil {
			return fmt.Errorf("load user %d: %w", userID, err)
		}
		if user.IsAdmin() {
			return NewForbiddenError("Cannot delete admin users")
		}

		owned := tx.Model(&models.QuizResponse{}).Select("id").Where("user_id = ?", userID)
		if err := tx.Where("response_id IN (?)", owned).Delete(&models.ResponseDetail{}).Error; err != nil {
			return fmt.Errorf("delete response details: %w", err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.QuizResponse{}).Error; err != nil {
			return fmt.Errorf("delete quiz responses: %w", err)
		}
		if err := tx.Delete(&user).Error; err != nil {
			return fmt.Errorf("delete user %d: %w", userID, err)
		}

		deleted = UserSummary{ID: user.ID, Fullname: user.Fullname, Email: user.Email}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}
