package api

import (
	"net/http"

	"taskdeck/internal/kanban/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, boardHandler *delivery.BoardHandler, columnHandler *delivery.ColumnHandler, cardHandler *delivery.CardHandler, labelHandler *delivery.LabelHandler) {
	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Board routes
		boards := api.Group("/boards")
		{
			boards.GET("", boardHandler.ListBoards)
			boards.POST("", boardHandler.CreateBoard)
			boards.GET("/:board_id", boardHandler.GetBoard)
			boards.PUT("/:board_id", boardHandler.UpdateBoard)
			boards.DELETE("/:board_id", boardHandler.DeleteBoard)
		}

		board := boards.Group("/:board_id")

		// Column routes
		columns := board.Group("/columns")
		{
			columns.GET("", columnHandler.ListColumns)
			columns.POST("", columnHandler.CreateColumn)
			columns.POST("/reorder", columnHandler.ReorderColumns)
			columns.PATCH("/:column_id", columnHandler.UpdateColumn)
			columns.DELETE("/:column_id", columnHandler.DeleteColumn)
		}

		// Card routes
		cards := board.Group("/cards")
		{
			cards.GET("", cardHandler.SearchCards)
			cards.POST("", cardHandler.CreateCard)
			cards.PATCH("/:card_id", cardHandler.UpdateCard)
			cards.POST("/:card_id/move", cardHandler.MoveCard)
			cards.DELETE("/:card_id", cardHandler.DeleteCard)
		}

		// Label routes
		labels := board.Group("/labels")
		{
			labels.GET("", labelHandler.ListLabels)
			labels.POST("", labelHandler.CreateLabel)
			labels.PATCH("/:label_id", labelHandler.UpdateLabel)
			labels.DELETE("/:label_id", labelHandler.DeleteLabel)
		}
	}
}
