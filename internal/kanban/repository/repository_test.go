package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskdeck/internal/kanban/domain"
	"taskdeck/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(database.MemoryDSN(uuid.NewString()), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, database.Close(db)) })
	require.NoError(t, AutoMigrate(db))
	return db
}

type fixture struct {
	uow    UnitOfWork
	board  *domain.Board
	todo   *domain.Column
	doing  *domain.Column
	bug    *domain.Label
	urgent *domain.Label
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	uow := NewUnitOfWork(newTestDB(t))

	board, err := domain.NewBoard("Platform", nil)
	require.NoError(t, err)
	require.NoError(t, uow.Boards().Create(ctx, board))

	todo, err := domain.NewColumn(board.ID, "To Do", 0, nil)
	require.NoError(t, err)
	require.NoError(t, uow.Columns().Create(ctx, todo))
	doing, err := domain.NewColumn(board.ID, "Doing", 1, nil)
	require.NoError(t, err)
	require.NoError(t, uow.Columns().Create(ctx, doing))

	bug, err := domain.NewLabel(board.ID, "bug", "#ff0000")
	require.NoError(t, err)
	require.NoError(t, uow.Labels().Create(ctx, bug))
	urgent, err := domain.NewLabel(board.ID, "Urgent", "#00ff00")
	require.NoError(t, err)
	require.NoError(t, uow.Labels().Create(ctx, urgent))

	return &fixture{uow: uow, board: board, todo: todo, doing: doing, bug: bug, urgent: urgent}
}

func (f *fixture) addCard(t *testing.T, column *domain.Column, title, description string, position int) *domain.Card {
	t.Helper()
	card, err := domain.NewCard(f.board.ID, column.ID, title, &description, nil, position)
	require.NoError(t, err)
	require.NoError(t, f.uow.Cards().Create(context.Background(), card))
	return card
}

func TestGetByIDReturnsNilWhenMissing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	board, err := f.uow.Boards().GetByID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, board)

	column, err := f.uow.Columns().GetByIDWithCards(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, column)

	card, err := f.uow.Cards().GetByIDWithLabels(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, card)

	label, err := f.uow.Labels().GetByID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, label)
}

func TestColumnPositionIsUniquePerBoard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	clash, err := domain.NewColumn(f.board.ID, "Clash", 1, nil)
	require.NoError(t, err)
	err = f.uow.Columns().Create(ctx, clash)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "got %v", err)

	other, err := domain.NewBoard("Other", nil)
	require.NoError(t, err)
	require.NoError(t, f.uow.Boards().Create(ctx, other))
	elsewhere, err := domain.NewColumn(other.ID, "Elsewhere", 1, nil)
	require.NoError(t, err)
	require.NoError(t, f.uow.Columns().Create(ctx, elsewhere))
}

func TestColumnsListedInPositionOrderWithCards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addCard(t, f.doing, "second", "", 1)
	f.addCard(t, f.doing, "first", "", 0)

	columns, err := f.uow.Columns().ListByBoard(ctx, f.board.ID)
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, f.todo.ID, columns[0].ID)
	assert.Equal(t, 0, columns[0].CardCount())
	require.Equal(t, 2, columns[1].CardCount())
	assert.Equal(t, "first", columns[1].Cards[0].Title)
	assert.Equal(t, "second", columns[1].Cards[1].Title)

	board, err := f.uow.Boards().GetByIDWithColumns(ctx, f.board.ID)
	require.NoError(t, err)
	require.Len(t, board.Columns, 2)
	assert.Equal(t, "Doing", board.Columns[1].Name)
	assert.Len(t, board.Columns[1].Cards, 2)
}

func TestColumnUpdatePersistsWipLimitRemoval(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.todo.SetWipLimit(intPtr(3)))
	require.NoError(t, f.uow.Columns().Update(ctx, f.todo))
	require.NoError(t, f.todo.SetWipLimit(nil))
	require.NoError(t, f.uow.Columns().Update(ctx, f.todo))

	got, err := f.uow.Columns().GetByID(ctx, f.todo.ID)
	require.NoError(t, err)
	assert.Nil(t, got.WipLimit)
}

func TestCardLabelsReplaceAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	card := f.addCard(t, f.todo, "Fix login", "", 0)

	require.NoError(t, f.uow.Cards().ReplaceLabels(ctx, card.ID, []string{f.urgent.ID, f.bug.ID}))
	got, err := f.uow.Cards().GetByIDWithLabels(ctx, card.ID)
	require.NoError(t, err)
	require.Len(t, got.Labels, 2)
	assert.Equal(t, "Urgent", got.Labels[0].Name, "labels are ordered by name")

	require.NoError(t, f.uow.Cards().ReplaceLabels(ctx, card.ID, nil))
	got, err = f.uow.Cards().GetByIDWithLabels(ctx, card.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Labels)

	require.NoError(t, f.uow.Cards().ReplaceLabels(ctx, card.ID, []string{f.bug.ID}))
	require.NoError(t, f.uow.Labels().Delete(ctx, f.bug))
	got, err = f.uow.Cards().GetByIDWithLabels(ctx, card.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Labels)

	require.NoError(t, f.uow.Cards().ReplaceLabels(ctx, card.ID, []string{f.urgent.ID}))
	require.NoError(t, f.uow.Cards().Delete(ctx, card))
	var links int64
	require.NoError(t, f.uow.(*unitOfWork).db.Model(&domain.CardLabel{}).Count(&links).Error)
	assert.Zero(t, links)
}

func TestCardUpdateKeepsLabels(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	card := f.addCard(t, f.todo, "Fix login", "", 0)
	require.NoError(t, f.uow.Cards().ReplaceLabels(ctx, card.ID, []string{f.bug.ID}))

	loaded, err := f.uow.Cards().GetByIDWithLabels(ctx, card.ID)
	require.NoError(t, err)
	require.NoError(t, loaded.MoveToColumn(f.doing.ID, 0))
	require.NoError(t, f.uow.Cards().Update(ctx, loaded))

	got, err := f.uow.Cards().GetByIDWithLabels(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, f.doing.ID, got.ColumnID)
	assert.Len(t, got.Labels, 1)
}

func TestCardSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	// Doing cards are created first so insertion order differs from column order.
	deploy := f.addCard(t, f.doing, "Deploy API", "roll out to prod", 0)
	login := f.addCard(t, f.todo, "Fix LOGIN", "", 1)
	docs := f.addCard(t, f.todo, "Write docs", "api reference", 0)
	require.NoError(t, f.uow.Cards().ReplaceLabels(ctx, login.ID, []string{f.bug.ID}))
	require.NoError(t, f.uow.Cards().ReplaceLabels(ctx, deploy.ID, []string{f.bug.ID, f.urgent.ID}))

	ids := func(cards []*domain.Card) []string {
		out := make([]string, len(cards))
		for i, c := range cards {
			out[i] = c.ID
		}
		return out
	}

	all, err := f.uow.Cards().Search(ctx, f.board.ID, CardFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{docs.ID, login.ID, deploy.ID}, ids(all))

	byText, err := f.uow.Cards().Search(ctx, f.board.ID, CardFilter{Text: "api"})
	require.NoError(t, err)
	assert.Equal(t, []string{docs.ID, deploy.ID}, ids(byText))

	byLabel, err := f.uow.Cards().Search(ctx, f.board.ID, CardFilter{LabelID: f.bug.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{login.ID, deploy.ID}, ids(byLabel))
	assert.Len(t, byLabel[1].Labels, 2)

	byColumn, err := f.uow.Cards().Search(ctx, f.board.ID, CardFilter{ColumnID: f.todo.ID, Text: "login"})
	require.NoError(t, err)
	assert.Equal(t, []string{login.ID}, ids(byColumn))
}

func TestCardSearchTreatsWildcardsLiterally(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addCard(t, f.todo, "Deploy", "", 0)
	f.addCard(t, f.todo, "Write docs", "", 1)
	snake := f.addCard(t, f.todo, "Rename snake_case keys", "100% done", 2)

	for _, text := range []string{"_", "%", `\`} {
		cards, err := f.uow.Cards().Search(ctx, f.board.ID, CardFilter{Text: text})
		require.NoError(t, err)
		if text == `\` {
			assert.Empty(t, cards)
			continue
		}
		require.Len(t, cards, 1, "text %q", text)
		assert.Equal(t, snake.ID, cards[0].ID)
	}
}

func TestBoardSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	restore := domain.Now
	t.Cleanup(func() { domain.Now = restore })
	domain.Now = func() time.Time { return time.Now().UTC().Add(time.Hour) }

	archived, err := domain.NewBoard("Old platform", nil)
	require.NoError(t, err)
	archived.Archive()
	require.NoError(t, f.uow.Boards().Create(ctx, archived))

	desc := "hiring pipeline"
	hiring, err := domain.NewBoard("People", &desc)
	require.NoError(t, err)
	require.NoError(t, f.uow.Boards().Create(ctx, hiring))

	boards, err := f.uow.Boards().Search(ctx, "", false)
	require.NoError(t, err)
	require.Len(t, boards, 2)

	boards, err = f.uow.Boards().Search(ctx, "PLATFORM", true)
	require.NoError(t, err)
	require.Len(t, boards, 2)

	boards, err = f.uow.Boards().Search(ctx, "pipeline", false)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, hiring.ID, boards[0].ID)

	boards, err = f.uow.Boards().Search(ctx, "_", true)
	require.NoError(t, err)
	assert.Empty(t, boards)

	boards, err = f.uow.Boards().Search(ctx, "%", true)
	require.NoError(t, err)
	assert.Empty(t, boards)
}

func TestTransactionRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := f.uow.Transaction(ctx, func(tx Repositories) error {
		card, err := domain.NewCard(f.board.ID, f.todo.ID, "ghost", nil, nil, 0)
		require.NoError(t, err)
		require.NoError(t, tx.Cards().Create(ctx, card))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	cards, err := f.uow.Cards().ListByColumn(ctx, f.todo.ID)
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestTransientColumnPositionsAvoidUniqueClash(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.uow.Transaction(ctx, func(tx Repositories) error {
		if err := f.doing.SetTransientPosition(-1); err != nil {
			return err
		}
		if err := tx.Columns().Update(ctx, f.doing); err != nil {
			return err
		}
		if err := f.todo.SetTransientPosition(-2); err != nil {
			return err
		}
		return tx.Columns().Update(ctx, f.todo)
	})
	require.NoError(t, err)

	err = f.uow.Transaction(ctx, func(tx Repositories) error {
		if err := f.doing.SetPosition(0); err != nil {
			return err
		}
		if err := tx.Columns().Update(ctx, f.doing); err != nil {
			return err
		}
		if err := f.todo.SetPosition(1); err != nil {
			return err
		}
		return tx.Columns().Update(ctx, f.todo)
	})
	require.NoError(t, err)

	columns, err := f.uow.Columns().ListByBoard(ctx, f.board.ID)
	require.NoError(t, err)
	assert.Equal(t, "Doing", columns[0].Name)
	assert.Equal(t, "To Do", columns[1].Name)
}

func intPtr(v int) *int { return &v }
