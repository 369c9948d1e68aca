package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskdeck/internal/kanban/repository"
	"taskdeck/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const platformTemplate = `
name: Platform
description: Infra work
columns:
  - name: To Do
  - name: Doing
    wip_limit: 1
  - name: Done
labels:
  - name: bug
    color: "#ef4444"
cards:
  - title: Rotate certificates
    column: To Do
    labels: [bug]
  - title: Upgrade postgres
    column: To Do
    blocked: waiting on maintenance window
  - title: Ship dashboards
    column: Doing
`

// runCLI executes the command tree against the SQLite file at dbPath and returns
// what it printed.
func runCLI(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", dbPath)
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func openRepos(t *testing.T, dbPath string) repository.UnitOfWork {
	t.Helper()
	db, err := database.OpenSQLite(database.SQLiteDSN(dbPath), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, database.Close(db)) })
	return repository.NewUnitOfWork(db)
}

func TestMigrateCreatesSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "taskdeck.db")
	_, err := runCLI(t, dbPath, "migrate")
	require.NoError(t, err)

	boards, err := openRepos(t, dbPath).Boards().Search(context.Background(), "", true)
	require.NoError(t, err)
	assert.Empty(t, boards)
}

func TestSeedCreatesBoard(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "taskdeck.db")
	out, err := runCLI(t, dbPath, "seed", "--file", writeFile(t, "board.yaml", platformTemplate))
	require.NoError(t, err)
	boardID := strings.TrimSpace(out)
	require.NotEmpty(t, boardID)

	ctx := context.Background()
	repos := openRepos(t, dbPath)

	board, err := repos.Boards().GetByIDWithColumns(ctx, boardID)
	require.NoError(t, err)
	require.NotNil(t, board)
	assert.Equal(t, "Platform", board.Name)
	require.Len(t, board.Columns, 3)

	names := make([]string, len(board.Columns))
	for i, c := range board.Columns {
		names[i] = c.Name
		assert.Equal(t, i, c.Position)
	}
	assert.Equal(t, []string{"To Do", "Doing", "Done"}, names)
	require.NotNil(t, board.Columns[1].WipLimit)
	assert.Equal(t, 1, *board.Columns[1].WipLimit)

	todo := board.Columns[0].Cards
	require.Len(t, todo, 2)
	assert.Equal(t, "Rotate certificates", todo[0].Title)
	assert.Equal(t, 1, todo[1].Position)

	blocked, err := repos.Cards().GetByIDWithLabels(ctx, todo[1].ID)
	require.NoError(t, err)
	assert.True(t, blocked.IsBlocked)
	require.NotNil(t, blocked.BlockReason)
	assert.Equal(t, "waiting on maintenance window", *blocked.BlockReason)

	labelled, err := repos.Cards().GetByIDWithLabels(ctx, todo[0].ID)
	require.NoError(t, err)
	require.Len(t, labelled.Labels, 1)
	assert.Equal(t, "#EF4444", labelled.Labels[0].ColorHex)
}

func TestSeedEnforcesWipLimit(t *testing.T) {
	tmpl := `
name: Crowded
columns:
  - name: Doing
    wip_limit: 1
cards:
  - title: first
    column: Doing
  - title: second
    column: Doing
`
	_, err := runCLI(t, filepath.Join(t.TempDir(), "taskdeck.db"), "seed", "--file", writeFile(t, "board.yaml", tmpl))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `card "second"`)
	assert.Contains(t, err.Error(), "WIP limit of 1")
}

func TestSeedRequiresFile(t *testing.T) {
	_, err := runCLI(t, filepath.Join(t.TempDir(), "taskdeck.db"), "seed")
	require.Error(t, err)
}

func TestParseTemplate(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{name: "valid", doc: platformTemplate},
		{name: "empty", doc: "", wantErr: "template is empty"},
		{name: "unknown key", doc: "name: x\ncolour: red\n", wantErr: "field colour not found"},
		{name: "unknown column", doc: "name: x\ncards:\n  - title: a\n    column: Nowhere\n", wantErr: `unknown column "Nowhere"`},
		{name: "unknown label", doc: "name: x\ncolumns:\n  - name: A\ncards:\n  - title: a\n    column: A\n    labels: [ghost]\n", wantErr: `unknown label "ghost"`},
		{name: "duplicate column", doc: "name: x\ncolumns:\n  - name: A\n  - name: A\n", wantErr: "defined twice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := parseTemplate(strings.NewReader(tt.doc))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Platform", tmpl.Name)
			assert.Len(t, tmpl.Cards, 3)
		})
	}
}
