package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// responseIDChunk bounds the IN list of a single batched detail query.
const responseIDChunk = 500

// AnswerDetail is one answered question of a stored response, joined with the
// question it answers.
type AnswerDetail struct {
	QuestionID    uint   `json:"question_id"`
	QuestionText  string `json:"question_text"`
	GiftCategory  string `json:"gift_category"`
	QuestionOrder int    `json:"question_order"`
	AnswerValue   int    `json:"answer_value"`
}

func toAnswerRows(details []AnswerDetail) []AnswerRow {
	rows := make([]AnswerRow, len(details))
	for i, d := range details {
		rows[i] = AnswerRow{GiftCategory: d.GiftCategory, AnswerValue: d.AnswerValue}
	}
	return rows
}

// loadAnswerDetails reads the full answer set of one response in question order.
func loadAnswerDetails(ctx context.Context, db *gorm.DB, responseID uint) ([]AnswerDetail, error) {
	details := make([]AnswerDetail, 0)
	err := db.WithContext(ctx).
		Table("response_details AS rd").
		Select("q.id AS question_id, q.question_text, q.gift_category, q.question_order, rd.answer_value").
		Joins("JOIN questions q ON rd.question_id = q.id").
		Where("rd.response_id = ?", responseID).
		Order("q.question_order, q.id").
		Scan(&details).Error
	if err != nil {
		return nil, fmt.Errorf("load answers for response %d: %w", responseID, err)
	}
	return details, nil
}

// loadAnswerRows reads answer rows for many responses at once. Chunks are
// fetched concurrently; the result maps response id to its rows.
func loadAnswerRows(ctx context.Context, db *gorm.DB, responseIDs []uint) (map[uint][]AnswerRow, error) {
	type scoredRow struct {
		ResponseID   uint
		GiftCategory string
		AnswerValue  int
	}

	chunks := make([][]scoredRow, (len(responseIDs)+responseIDChunk-1)/responseIDChunk)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := range chunks {
		i := i
		start := i * responseIDChunk
		end := start + responseIDChunk
		if end > len(responseIDs) {
			end = len(responseIDs)
		}
		ids := responseIDs[start:end]
		g.Go(func() error {
			var rows []scoredRow
			err := db.WithContext(gctx).
				Table("response_details AS rd").
				Select("rd.response_id, q.gift_category, rd.answer_value").
				Joins("JOIN questions q ON rd.question_id = q.id").
				Where("rd.response_id IN ?", ids).
				Order("rd.response_id, q.question_order, q.id").
				Scan(&rows).Error
			if err != nil {
				return fmt.Errorf("load answers for %d responses: %w", len(ids), err)
			}
			chunks[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byResponse := make(map[uint][]AnswerRow, len(responseIDs))
	for _, chunk := range chunks {
		for _, row := range chunk {
			byResponse[row.ResponseID] = append(byResponse[row.ResponseID], AnswerRow{
				GiftCategory: row.GiftCategory,
				AnswerValue:  row.AnswerValue,
			})
		}
	}
	return byResponse, nil
}
