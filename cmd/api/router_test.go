package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskdeck/internal/kanban/dto"
	"taskdeck/internal/kanban/repository"
	"taskdeck/internal/kanban/usecase"
	"taskdeck/pkg/config"
	"taskdeck/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	log := zap.NewNop()
	db, err := database.OpenSQLite(database.MemoryDSN(uuid.NewString()), log)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, database.Close(db)) })
	require.NoError(t, repository.AutoMigrate(db))

	cfg := &config.Config{GinMode: gin.TestMode, ShutdownTimeout: time.Second}
	uow := repository.NewUnitOfWork(db)
	return NewHandler(
		usecase.NewBoardUsecase(uow, log),
		usecase.NewColumnUsecase(uow, cfg, log),
		usecase.NewCardUsecase(uow, log),
		usecase.NewLabelUsecase(uow, log),
		cfg,
		log,
	)
}

type client struct {
	t      *testing.T
	router *gin.Engine
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w
}

func (c *client) decode(w *httptest.ResponseRecorder, wantStatus int, out any) {
	c.t.Helper()
	require.Equal(c.t, wantStatus, w.Code, "body: %s", w.Body.String())
	if out != nil {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), out))
	}
}

func (c *client) expectError(w *httptest.ResponseRecorder, wantStatus int, wantCode string) {
	c.t.Helper()
	var body dto.ErrorResponse
	c.decode(w, wantStatus, &body)
	assert.Equal(c.t, wantCode, body.ErrorCode)
	assert.NotEmpty(c.t, body.Message)
}

type idResponse struct {
	ID       string `json:"id"`
	ColumnID string `json:"column_id"`
	Position int    `json:"position"`
}

func TestHealth(t *testing.T) {
	c := &client{t: t, router: newTestHandler(t).Router()}
	c.decode(c.do(http.MethodGet, "/api/health", nil), http.StatusOK, nil)
}

func TestBoardWorkflow(t *testing.T) {
	c := &client{t: t, router: newTestHandler(t).Router()}

	var board idResponse
	c.decode(c.do(http.MethodPost, "/api/boards", map[string]any{"name": "Team"}), http.StatusCreated, &board)
	base := "/api/boards/" + board.ID

	ids := map[string]string{}
	for _, name := range []string{"To Do", "Doing", "Done"} {
		var col idResponse
		c.decode(c.do(http.MethodPost, base+"/columns", map[string]any{"name": name}), http.StatusCreated, &col)
		ids[name] = col.ID
	}
	c.decode(c.do(http.MethodPatch, base+"/columns/"+ids["Doing"], map[string]any{"wip_limit": 1}), http.StatusOK, nil)

	var bug idResponse
	c.decode(c.do(http.MethodPost, base+"/labels", map[string]any{"name": "bug", "color_hex": "#ff0000"}), http.StatusCreated, &bug)
	c.expectError(c.do(http.MethodPost, base+"/labels", map[string]any{"name": "bad", "color_hex": "red"}), http.StatusBadRequest, "ValidationError")

	var a, b idResponse
	c.decode(c.do(http.MethodPost, base+"/cards", map[string]any{"column_id": ids["To Do"], "title": "A", "label_ids": []string{bug.ID}}), http.StatusCreated, &a)
	c.decode(c.do(http.MethodPost, base+"/cards", map[string]any{"column_id": ids["To Do"], "title": "B"}), http.StatusCreated, &b)
	assert.Equal(t, 1, b.Position)

	// Move A into Doing, then B is refused by the WIP limit.
	var moved idResponse
	c.decode(c.do(http.MethodPost, base+"/cards/"+a.ID+"/move", map[string]any{"target_column_id": ids["Doing"], "target_position": 0}), http.StatusOK, &moved)
	assert.Equal(t, ids["Doing"], moved.ColumnID)
	c.expectError(c.do(http.MethodPost, base+"/cards/"+b.ID+"/move", map[string]any{"target_column_id": ids["Doing"], "target_position": 0}), http.StatusBadRequest, "WipLimitExceeded")
	c.expectError(c.do(http.MethodPost, base+"/cards/"+b.ID+"/move", map[string]any{"target_column_id": ids["To Do"]}), http.StatusBadRequest, "ValidationError")

	// B was compacted to position 0 when A left.
	var todoCards []idResponse
	c.decode(c.do(http.MethodGet, base+"/cards?column_id="+ids["To Do"], nil), http.StatusOK, &todoCards)
	require.Len(t, todoCards, 1)
	assert.Equal(t, 0, todoCards[0].Position)

	var labelled []idResponse
	c.decode(c.do(http.MethodGet, base+"/cards?label_id="+bug.ID, nil), http.StatusOK, &labelled)
	require.Len(t, labelled, 1)
	assert.Equal(t, a.ID, labelled[0].ID)

	// Reorder to [Done, To Do, Doing].
	var reordered []struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Position  int    `json:"position"`
		CardCount int    `json:"card_count"`
	}
	c.decode(c.do(http.MethodPost, base+"/columns/reorder", map[string]any{"column_ids": []string{ids["Done"], ids["To Do"], ids["Doing"]}}), http.StatusOK, &reordered)
	require.Len(t, reordered, 3)
	assert.Equal(t, "Done", reordered[0].Name)
	assert.Equal(t, "Doing", reordered[2].Name)
	assert.Equal(t, 2, reordered[2].Position)
	assert.Equal(t, 1, reordered[2].CardCount)
	c.expectError(c.do(http.MethodPost, base+"/columns/reorder", map[string]any{"column_ids": []string{ids["Done"]}}), http.StatusBadRequest, "ValidationError")

	c.expectError(c.do(http.MethodDelete, base+"/columns/"+ids["Doing"], nil), http.StatusConflict, "Conflict")
	c.decode(c.do(http.MethodDelete, base+"/columns/"+ids["Done"], nil), http.StatusNoContent, nil)

	var detail struct {
		Name    string `json:"name"`
		Columns []struct {
			Name      string `json:"name"`
			Position  int    `json:"position"`
			CardCount int    `json:"card_count"`
		} `json:"columns"`
	}
	c.decode(c.do(http.MethodGet, base, nil), http.StatusOK, &detail)
	assert.Equal(t, "Team", detail.Name)
	require.Len(t, detail.Columns, 2)
	assert.Equal(t, "To Do", detail.Columns[0].Name)
	assert.Equal(t, 0, detail.Columns[0].Position)
	assert.Equal(t, 1, detail.Columns[1].CardCount)

	c.decode(c.do(http.MethodDelete, base, nil), http.StatusNoContent, nil)
	var boards []idResponse
	c.decode(c.do(http.MethodGet, "/api/boards", nil), http.StatusOK, &boards)
	assert.Empty(t, boards)
	c.decode(c.do(http.MethodGet, "/api/boards?include_archived=true", nil), http.StatusOK, &boards)
	assert.Len(t, boards, 1)
}

func TestUpdateCardPatchSemantics(t *testing.T) {
	c := &client{t: t, router: newTestHandler(t).Router()}

	var board, column idResponse
	c.decode(c.do(http.MethodPost, "/api/boards", map[string]any{"name": "Team"}), http.StatusCreated, &board)
	base := "/api/boards/" + board.ID
	c.decode(c.do(http.MethodPost, base+"/columns", map[string]any{"name": "To Do"}), http.StatusCreated, &column)

	var card idResponse
	c.decode(c.do(http.MethodPost, base+"/cards", map[string]any{
		"column_id":   column.ID,
		"title":       "Ship",
		"description": "release notes",
		"due_date":    "2026-03-01T12:00:00Z",
	}), http.StatusCreated, &card)

	type cardBody struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		DueDate     *time.Time `json:"due_date"`
	}
	var got cardBody
	c.decode(c.do(http.MethodPatch, base+"/cards/"+card.ID, map[string]any{"title": "Ship it"}), http.StatusOK, &got)
	assert.Equal(t, "Ship it", got.Title)
	assert.Equal(t, "release notes", got.Description)
	require.NotNil(t, got.DueDate)

	c.decode(c.do(http.MethodPatch, base+"/cards/"+card.ID, map[string]any{"due_date": nil, "description": ""}), http.StatusOK, &got)
	assert.Nil(t, got.DueDate)
	assert.Equal(t, "", got.Description)
	assert.Equal(t, "Ship it", got.Title)

	c.decode(c.do(http.MethodPatch, base+"/cards/"+card.ID, map[string]any{"title": nil}), http.StatusOK, &got)
	assert.Equal(t, "Ship it", got.Title)
	c.expectError(c.do(http.MethodPatch, base+"/cards/"+card.ID, map[string]any{"title": ""}), http.StatusBadRequest, "ValidationError")
	c.expectError(c.do(http.MethodPatch, base+"/cards/missing", map[string]any{}), http.StatusNotFound, "NotFound")
	c.expectError(c.do(http.MethodPost, "/api/boards/missing/cards", map[string]any{"column_id": column.ID, "title": "x"}), http.StatusNotFound, "NotFound")
	c.expectError(c.do(http.MethodPost, base+"/cards", map[string]any{"title": "x"}), http.StatusBadRequest, "ValidationError")
}

func TestNullLeavesValueFieldsUnchanged(t *testing.T) {
	c := &client{t: t, router: newTestHandler(t).Router()}

	var board, a, b idResponse
	c.decode(c.do(http.MethodPost, "/api/boards", map[string]any{"name": "Team"}), http.StatusCreated, &board)
	base := "/api/boards/" + board.ID
	c.decode(c.do(http.MethodPost, base+"/columns", map[string]any{"name": "A"}), http.StatusCreated, &a)
	c.decode(c.do(http.MethodPost, base+"/columns", map[string]any{"name": "B"}), http.StatusCreated, &b)

	var column struct {
		Name     string `json:"name"`
		Position int    `json:"position"`
	}
	c.decode(c.do(http.MethodPatch, base+"/columns/"+b.ID, map[string]any{"name": "B2", "position": nil}), http.StatusOK, &column)
	assert.Equal(t, "B2", column.Name)
	assert.Equal(t, 1, column.Position)

	var card idResponse
	c.decode(c.do(http.MethodPost, base+"/cards", map[string]any{"column_id": a.ID, "title": "x"}), http.StatusCreated, &card)

	type cardBody struct {
		Title       string  `json:"title"`
		IsBlocked   bool    `json:"is_blocked"`
		BlockReason *string `json:"block_reason"`
	}
	var got cardBody
	c.decode(c.do(http.MethodPatch, base+"/cards/"+card.ID, map[string]any{"is_blocked": true, "block_reason": "vendor"}), http.StatusOK, &got)
	require.True(t, got.IsBlocked)
	c.decode(c.do(http.MethodPatch, base+"/cards/"+card.ID, map[string]any{"title": "y", "is_blocked": nil}), http.StatusOK, &got)
	assert.Equal(t, "y", got.Title)
	assert.True(t, got.IsBlocked)
	require.NotNil(t, got.BlockReason)
	assert.Equal(t, "vendor", *got.BlockReason)

	var boardBody struct {
		Name       string `json:"name"`
		IsArchived bool   `json:"is_archived"`
	}
	c.decode(c.do(http.MethodPut, base, map[string]any{"is_archived": true}), http.StatusOK, &boardBody)
	require.True(t, boardBody.IsArchived)
	c.decode(c.do(http.MethodPut, base, map[string]any{"name": "Team 2", "is_archived": nil}), http.StatusOK, &boardBody)
	assert.Equal(t, "Team 2", boardBody.Name)
	assert.True(t, boardBody.IsArchived)
}

func TestCORSPreflight(t *testing.T) {
	c := &client{t: t, router: newTestHandler(t).Router()}

	req := httptest.NewRequest(http.MethodOptions, "/api/boards", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestStartStopsOnCancel(t *testing.T) {
	h := newTestHandler(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- h.Start(ctx, "127.0.0.1:0") }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
