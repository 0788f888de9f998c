package handlers

import (
	"errors"
	"io"
	"net/http"

	"spiritualgifts/services"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionService *services.QuestionService
}

func NewQuestionHandler(questionService *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
	}
}

func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	questions, err := h.questionService.List(c.Request.Context(), c.Query("category"), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"questions": questions,
		"total":     len(questions),
	})
}

func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, ok := paramID(c, "id", "question ID")
	if !ok {
		return
	}

	question, err := h.questionService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"question": question})
}

func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req services.QuestionInput
	if !bindJSON(c, &req) {
		return
	}

	question, err := h.questionService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Question created successfully",
		"question": question,
	})
}

func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	id, ok := paramID(c, "id", "question ID")
	if !ok {
		return
	}

	var req services.UpdateQuestionRequest
	if !bindJSON(c, &req) {
		return
	}

	question, err := h.questionService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Question updated successfully",
		"question": question,
	})
}

func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id, ok := paramID(c, "id", "question ID")
	if !ok {
		return
	}

	question, err := h.questionService.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Question deleted successfully",
		"question": question,
	})
}

func (h *QuestionHandler) BulkCreateQuestions(c *gin.Context) {
	var req services.BulkCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	questions, err := h.questionService.BulkCreate(c.Request.Context(), req.Questions)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Questions created successfully",
		"questions": questions,
		"count":     len(questions),
	})
}

func (h *QuestionHandler) DeleteAllQuestions(c *gin.Context) {
	// An empty body falls through to the confirmation check.
	var req services.DeleteAllRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	removed, err := h.questionService.DeleteAll(c.Request.Context(), req.Confirm)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "All questions deleted successfully",
		"deletedCount": removed,
	})
}
