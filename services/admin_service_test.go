package services

import (
	"context"
	"fmt"
	"math"
	"testing"

	"spiritualgifts/models"

	"gorm.io/gorm"
)

type adminFixture struct {
	db        *gorm.DB
	admin     *AdminService
	quiz      *QuizService
	questions []models.Question
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	db := newTestDB(t)
	seedDescriptions(t, db)
	cache := NewDescriptionCache(db, nil, 0)
	return &adminFixture{
		db:        db,
		admin:     NewAdminService(db, cache),
		quiz:      NewQuizService(db, cache),
		questions: createQuestions(t, db, "Teaching", "Teaching", "Evangelism", "Evangelism"),
	}
}

func (f *adminFixture) submit(t *testing.T, userID uint, values ...int) uint {
	t.Helper()
	result, err := f.quiz.Submit(context.Background(), userID, SubmitQuizRequest{Responses: answersFor(f.questions, values...)})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	return result.ResponseID
}

func TestDeleteUserRefusesAdmins(t *testing.T) {
	f := newAdminFixture(t)
	admin := createUserWithRole(t, f.db, "Admin", "admin@example.com", models.RoleAdmin)

	_, err := f.admin.DeleteUser(context.Background(), admin.ID)
	if !IsKind(err, KindForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if n := countRows(t, f.db, &models.User{}); n != 1 {
		t.Fatalf("admin should still exist")
	}
}

func TestDeleteUserRemovesDependents(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()
	victim := createUserWithRole(t, f.db, "Victim", "victim@example.com", models.RoleUser)
	keeper := createUserWithRole(t, f.db, "Keeper", "keeper@example.com", models.RoleUser)
	f.submit(t, victim.ID, 5, 5, 1, 1)
	f.submit(t, victim.ID, 4, 4)
	kept := f.submit(t, keeper.ID, 3, 3, 3)

	deleted, err := f.admin.DeleteUser(ctx, victim.ID)
	if err != nil {
		t.Fatalf("DeleteUser returned error: %v", err)
	}
	if deleted.ID != victim.ID || deleted.Email != "victim@example.com" {
		t.Fatalf("unexpected deleted user: %+v", deleted)
	}

	if n := countRows(t, f.db, &models.QuizResponse{}); n != 1 {
		t.Fatalf("expected 1 remaining response, got %d", n)
	}
	if n := countRows(t, f.db, &models.ResponseDetail{}); n != 3 {
		t.Fatalf("expected 3 remaining details, got %d", n)
	}
	var orphans int64
	f.db.Model(&models.ResponseDetail{}).Where("response_id <> ?", kept).Count(&orphans)
	if orphans != 0 {
		t.Fatalf("found %d orphaned details", orphans)
	}

	if _, err := f.admin.DeleteUser(ctx, victim.ID); !IsKind(err, KindNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestResultsSearchAndGiftFilter(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()
	tina := createUserWithRole(t, f.db, "Tina Teacher", "tina@example.com", models.RoleUser)
	evangelist := createUserWithRole(t, f.db, "Evan Gelist", "evan@example.com", models.RoleUser)
	f.submit(t, tina.ID, 5, 5, 1, 1)
	f.submit(t, evangelist.ID, 1, 1, 5, 4)

	all, err := f.admin.Results(ctx, ResultsQuery{})
	if err != nil {
		t.Fatalf("Results returned error: %v", err)
	}
	if len(all.Results) != 2 || all.Pagination != nil {
		t.Fatalf("expected 2 unpaginated results, got %+v", all)
	}
	if all.Results[0].UserID != evangelist.ID {
		t.Fatalf("expected newest submission first")
	}
	if len(all.Results[0].TopGifts) != 2 || all.Results[0].TopGifts[0].Category != "Evangelism" {
		t.Fatalf("unexpected top gifts: %+v", all.Results[0].TopGifts)
	}

	searched, err := f.admin.Results(ctx, ResultsQuery{Search: "TINA"})
	if err != nil {
		t.Fatalf("Results returned error: %v", err)
	}
	if len(searched.Results) != 1 || searched.Results[0].UserID != tina.ID {
		t.Fatalf("expected only Tina, got %+v", searched.Results)
	}

	filtered, err := f.admin.Results(ctx, ResultsQuery{GiftFilter: "evangelism"})
	if err != nil {
		t.Fatalf("Results returned error: %v", err)
	}
	if len(filtered.Results) != 1 || filtered.Results[0].UserID != evangelist.ID {
		t.Fatalf("expected only Evan, got %+v", filtered.Results)
	}
}

func TestResultsPagination(t *testing.T) {
	f := newAdminFixture(t)
	for i := 0; i < 5; i++ {
		u := createUserWithRole(t, f.db, fmt.Sprintf("User %d", i), fmt.Sprintf("u%d@example.com", i), models.RoleUser)
		f.submit(t, u.ID, 3, 3)
	}

	page, err := f.admin.Results(context.Background(), ResultsQuery{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("Results returned error: %v", err)
	}
	if len(page.Results) != 2 {
		t.Fatalf("expected 2 results on page 2, got %d", len(page.Results))
	}
	p := page.Pagination
	if p == nil || p.Total != 5 || p.TotalPages != 3 || !p.HasNextPage || p.Page != 2 {
		t.Fatalf("unexpected pagination: %+v", p)
	}

	last, err := f.admin.Results(context.Background(), ResultsQuery{Page: 9, Limit: 2})
	if err != nil {
		t.Fatalf("Results returned error: %v", err)
	}
	if len(last.Results) != 0 || last.Pagination.HasNextPage {
		t.Fatalf("expected empty final page, got %+v", last)
	}
}

func TestResultsPaginationHugeValues(t *testing.T) {
	f := newAdminFixture(t)
	for i := 0; i < 3; i++ {
		u := createUserWithRole(t, f.db, fmt.Sprintf("User %d", i), fmt.Sprintf("u%d@example.com", i), models.RoleUser)
		f.submit(t, u.ID, 3, 3)
	}
	ctx := context.Background()

	far, err := f.admin.Results(ctx, ResultsQuery{Page: math.MaxInt, Limit: 10})
	if err != nil {
		t.Fatalf("Results returned error: %v", err)
	}
	if len(far.Results) != 0 || far.Pagination.TotalPages != 1 || far.Pagination.HasNextPage {
		t.Fatalf("expected empty page past the end, got %+v", far.Pagination)
	}

	wide, err := f.admin.Results(ctx, ResultsQuery{Page: 1, Limit: math.MaxInt})
	if err != nil {
		t.Fatalf("Results returned error: %v", err)
	}
	if len(wide.Results) != 3 || wide.Pagination.TotalPages != 1 {
		t.Fatalf("expected all 3 results on one page, got %d %+v", len(wide.Results), wide.Pagination)
	}

	both, err := f.admin.Results(ctx, ResultsQuery{Page: math.MaxInt, Limit: math.MaxInt})
	if err != nil {
		t.Fatalf("Results returned error: %v", err)
	}
	if len(both.Results) != 0 {
		t.Fatalf("expected no results, got %d", len(both.Results))
	}

	empty := paginate(nil, math.MaxInt, 5)
	if len(empty.Results) != 0 || empty.Pagination.TotalPages != 0 {
		t.Fatalf("expected empty page for no results, got %+v", empty.Pagination)
	}
}

func TestUserResponse(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()
	user := createUserWithRole(t, f.db, "Jane", "jane@example.com", models.RoleUser)
	other := createUserWithRole(t, f.db, "Other", "other@example.com", models.RoleUser)
	responseID := f.submit(t, user.ID, 5, 4, 3, 2)

	view, err := f.admin.UserResponse(ctx, user.ID, responseID)
	if err != nil {
		t.Fatalf("UserResponse returned error: %v", err)
	}
	if view.User.Email != "jane@example.com" || view.Quiz.ResponseID != responseID || len(view.Responses) != 4 {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.Gifts[0].Category != "Teaching" || view.Gifts[0].Percentage != 90 {
		t.Fatalf("unexpected gifts: %+v", view.Gifts)
	}

	if _, err := f.admin.UserResponse(ctx, 9999, responseID); !IsKind(err, KindNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
	if _, err := f.admin.UserResponse(ctx, other.ID, responseID); !IsKind(err, KindNotFound) {
		t.Fatalf("expected response not found for another user, got %v", err)
	}
}

func TestListUsersWithCounts(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()
	admin := createUserWithRole(t, f.db, "Admin", "admin@example.com", models.RoleAdmin)
	busy := createUserWithRole(t, f.db, "Busy Bee", "busy@example.com", models.RoleUser)
	idle := createUserWithRole(t, f.db, "Idle", "idle@example.com", models.RoleUser)
	f.submit(t, busy.ID, 1)
	f.submit(t, busy.ID, 2)

	users, err := f.admin.ListUsers(ctx, "", "")
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if len(users) != 3 || users[0].ID != idle.ID || users[2].ID != admin.ID {
		t.Fatalf("expected newest first, got %+v", users)
	}
	counts := map[uint]int64{}
	for _, u := range users {
		counts[u.ID] = u.QuizCount
	}
	if counts[busy.ID] != 2 || counts[idle.ID] != 0 {
		t.Fatalf("unexpected counts: %v", counts)
	}

	admins, err := f.admin.ListUsers(ctx, models.RoleAdmin, "")
	if err != nil || len(admins) != 1 || admins[0].ID != admin.ID {
		t.Fatalf("expected only the admin, got %+v, %v", admins, err)
	}
	searched, err := f.admin.ListUsers(ctx, "", "bee")
	if err != nil || len(searched) != 1 || searched[0].ID != busy.ID {
		t.Fatalf("expected only Busy Bee, got %+v, %v", searched, err)
	}
}

func TestCreateAdminAndCategories(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	created, err := f.admin.CreateAdmin(ctx, SignupRequest{Fullname: "New Admin", Email: "new@example.com"})
	if err != nil {
		t.Fatalf("CreateAdmin returned error: %v", err)
	}
	if created.Role != models.RoleAdmin {
		t.Fatalf("expected admin role, got %q", created.Role)
	}
	if _, err := f.admin.CreateAdmin(ctx, SignupRequest{Fullname: "Dup", Email: "new@example.com"}); !IsKind(err, KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	categories, err := f.admin.GiftCategories(ctx)
	if err != nil {
		t.Fatalf("GiftCategories returned error: %v", err)
	}
	if len(categories) != 2 || categories[0] != "Evangelism" || categories[1] != "Teaching" {
		t.Fatalf("unexpected categories: %v", categories)
	}

	descriptions, err := f.admin.GiftDescriptions(ctx)
	if err != nil || len(descriptions) != 6 {
		t.Fatalf("expected 6 descriptions, got %d, %v", len(descriptions), err)
	}
}
