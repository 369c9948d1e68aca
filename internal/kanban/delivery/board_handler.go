package delivery

import (
	"net/http"

	"taskdeck/internal/kanban/dto"
	"taskdeck/internal/kanban/usecase"

	"github.com/gin-gonic/gin"
)

// BoardHandler handles board-related HTTP requests
type BoardHandler struct {
	boardUsecase usecase.BoardUsecase
}

// NewBoardHandler creates a new BoardHandler
func NewBoardHandler(boardUsecase usecase.BoardUsecase) *BoardHandler {
	return &BoardHandler{boardUsecase: boardUsecase}
}

// ListBoards returns the boards matching the query, newest first
// GET /api/boards?search=roadmap&include_archived=true
func (h *BoardHandler) ListBoards(c *gin.Context) {
	var query dto.ListBoardsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	boards, err := h.boardUsecase.ListBoards(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, boards)
}

// GetBoard returns a board with its columns and their card counts
// GET /api/boards/:board_id
func (h *BoardHandler) GetBoard(c *gin.Context) {
	board, err := h.boardUsecase.GetBoard(c.Request.Context(), c.Param("board_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBoardDetailResponse(board))
}

// CreateBoard creates a board
// POST /api/boards
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	var req dto.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	board, err := h.boardUsecase.CreateBoard(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, board)
}

// UpdateBoard renames, describes, archives or unarchives a board
// PUT /api/boards/:board_id
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	var req dto.UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	board, err := h.boardUsecase.UpdateBoard(c.Request.Context(), c.Param("board_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// DeleteBoard archives a board
// DELETE /api/boards/:board_id
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	if err := h.boardUsecase.DeleteBoard(c.Request.Context(), c.Param("board_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
