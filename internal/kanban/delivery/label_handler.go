package delivery

import (
	"net/http"

	"taskdeck/internal/kanban/dto"
	"taskdeck/internal/kanban/usecase"

	"github.com/gin-gonic/gin"
)

// LabelHandler handles label-related HTTP requests
type LabelHandler struct {
	labelUsecase usecase.LabelUsecase
}

// NewLabelHandler creates a new LabelHandler
func NewLabelHandler(labelUsecase usecase.LabelUsecase) *LabelHandler {
	return &LabelHandler{labelUsecase: labelUsecase}
}

// ListLabels returns the board's labels ordered by name
// GET /api/boards/:board_id/labels
func (h *LabelHandler) ListLabels(c *gin.Context) {
	labels, err := h.labelUsecase.ListLabels(c.Request.Context(), c.Param("board_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, labels)
}

// CreateLabel creates a label
// POST /api/boards/:board_id/labels
func (h *LabelHandler) CreateLabel(c *gin.Context) {
	var req dto.CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	label, err := h.labelUsecase.CreateLabel(c.Request.Context(), c.Param("board_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, label)
}

// UpdateLabel patches a label
// PATCH /api/boards/:board_id/labels/:label_id
func (h *LabelHandler) UpdateLabel(c *gin.Context) {
	var req dto.UpdateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	label, err := h.labelUsecase.UpdateLabel(c.Request.Context(), c.Param("board_id"), c.Param("label_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, label)
}

// DeleteLabel deletes a label and detaches it from its cards
// DELETE /api/boards/:board_id/labels/:label_id
func (h *LabelHandler) DeleteLabel(c *gin.Context) {
	if err := h.labelUsecase.DeleteLabel(c.Request.Context(), c.Param("board_id"), c.Param("label_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
