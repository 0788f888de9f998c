package handlers

import (
	"net/http"

	"spiritualgifts/services"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizService *services.QuizService
}

func NewQuizHandler(quizService *services.QuizService) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
	}
}

func (h *QuizHandler) GetQuestions(c *gin.Context) {
	questions, err := h.quizService.ListQuestions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"questions":    questions,
		"instructions": services.QuizInstructions,
	})
}

func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.SubmitQuizRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.quizService.Submit(c.Request.Context(), user.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Quiz submitted successfully",
		"responseId": result.ResponseID,
		"gifts":      result.Gifts,
	})
}

func (h *QuizHandler) GetHistory(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	history, err := h.quizService.History(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

func (h *QuizHandler) GetResult(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	responseID, ok := paramID(c, "responseId", "response ID")
	if !ok {
		return
	}

	result, err := h.quizService.Result(c.Request.Context(), user, responseID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
