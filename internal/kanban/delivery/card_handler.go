package delivery

import (
	"net/http"

	"taskdeck/internal/kanban/dto"
	"taskdeck/internal/kanban/usecase"

	"github.com/gin-gonic/gin"
)

// CardHandler handles card-related HTTP requests
type CardHandler struct {
	cardUsecase usecase.CardUsecase
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(cardUsecase usecase.CardUsecase) *CardHandler {
	return &CardHandler{cardUsecase: cardUsecase}
}

// SearchCards returns the board's cards matching the query
// GET /api/boards/:board_id/cards?q=deploy&label_id=...&column_id=...&fuzzy=true
func (h *CardHandler) SearchCards(c *gin.Context) {
	var query dto.SearchCardsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	cards, err := h.cardUsecase.SearchCards(c.Request.Context(), c.Param("board_id"), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

// CreateCard appends a card to a column
// POST /api/boards/:board_id/cards
func (h *CardHandler) CreateCard(c *gin.Context) {
	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	card, err := h.cardUsecase.CreateCard(c.Request.Context(), c.Param("board_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, card)
}

// UpdateCard patches a card
// PATCH /api/boards/:board_id/cards/:card_id
func (h *CardHandler) UpdateCard(c *gin.Context) {
	var req dto.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	card, err := h.cardUsecase.UpdateCard(c.Request.Context(), c.Param("board_id"), c.Param("card_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// MoveCard moves a card to a position in a column
// POST /api/boards/:board_id/cards/:card_id/move
func (h *CardHandler) MoveCard(c *gin.Context) {
	var req dto.MoveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	card, err := h.cardUsecase.MoveCard(c.Request.Context(), c.Param("board_id"), c.Param("card_id"), req.TargetColumnID, *req.TargetPosition)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// DeleteCard deletes a card
// DELETE /api/boards/:board_id/cards/:card_id
func (h *CardHandler) DeleteCard(c *gin.Context) {
	if err := h.cardUsecase.DeleteCard(c.Request.Context(), c.Param("board_id"), c.Param("card_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
