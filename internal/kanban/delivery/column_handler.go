package delivery

import (
	"net/http"

	"taskdeck/internal/kanban/dto"
	"taskdeck/internal/kanban/usecase"

	"github.com/gin-gonic/gin"
)

// ColumnHandler handles column-related HTTP requests
type ColumnHandler struct {
	columnUsecase usecase.ColumnUsecase
}

// NewColumnHandler creates a new ColumnHandler
func NewColumnHandler(columnUsecase usecase.ColumnUsecase) *ColumnHandler {
	return &ColumnHandler{columnUsecase: columnUsecase}
}

// ListColumns returns the board's columns in position order
// GET /api/boards/:board_id/columns
func (h *ColumnHandler) ListColumns(c *gin.Context) {
	columns, err := h.columnUsecase.ListColumns(c.Request.Context(), c.Param("board_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewColumnResponses(columns))
}

// CreateColumn appends a column, or places it at an explicit free position
// POST /api/boards/:board_id/columns
func (h *ColumnHandler) CreateColumn(c *gin.Context) {
	var req dto.CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	column, err := h.columnUsecase.CreateColumn(c.Request.Context(), c.Param("board_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewColumnResponse(column))
}

// UpdateColumn patches a column
// PATCH /api/boards/:board_id/columns/:column_id
func (h *ColumnHandler) UpdateColumn(c *gin.Context) {
	var req dto.UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	column, err := h.columnUsecase.UpdateColumn(c.Request.Context(), c.Param("board_id"), c.Param("column_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewColumnResponse(column))
}

// ReorderColumns sets the order of every column of the board
// POST /api/boards/:board_id/columns/reorder
func (h *ColumnHandler) ReorderColumns(c *gin.Context) {
	var req dto.ReorderColumnsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	columns, err := h.columnUsecase.ReorderColumns(c.Request.Context(), c.Param("board_id"), req.ColumnIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewColumnResponses(columns))
}

// DeleteColumn deletes an empty column
// DELETE /api/boards/:board_id/columns/:column_id
func (h *ColumnHandler) DeleteColumn(c *gin.Context) {
	if err := h.columnUsecase.DeleteColumn(c.Request.Context(), c.Param("board_id"), c.Param("column_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
