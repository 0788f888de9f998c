package handlers

import (
	"net/http"
	"strconv"

	"spiritualgifts/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// queryInt reads an optional non-negative integer query parameter.
func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return n, true
}

func (h *AdminHandler) GetResults(c *gin.Context) {
	page, ok := queryInt(c, "page")
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}

	results, err := h.adminService.Results(c.Request.Context(), services.ResultsQuery{
		Search:     c.Query("search"),
		GiftFilter: c.Query("giftFilter"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *AdminHandler) GetUserResponse(c *gin.Context) {
	userID, ok := paramID(c, "userId", "user ID")
	if !ok {
		return
	}
	responseID, ok := paramID(c, "responseId", "response ID")
	if !ok {
		return
	}

	view, err := h.adminService.UserResponse(c.Request.Context(), userID, responseID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, ok := paramID(c, "userId", "user ID")
	if !ok {
		return
	}

	deleted, err := h.adminService.DeleteUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "User deleted successfully",
		"deletedUser": deleted,
	})
}

func (h *AdminHandler) GetGiftCategories(c *gin.Context) {
	categories, err := h.adminService.GiftCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *AdminHandler) GetGiftDescriptions(c *gin.Context) {
	descriptions, err := h.adminService.GiftDescriptions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"descriptions": descriptions})
}

func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	var req services.SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.adminService.CreateAdmin(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Admin user created successfully",
		"user":    user,
	})
}

func (h *AdminHandler) GetUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers(c.Request.Context(), c.Query("role"), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": len(users),
	})
}
