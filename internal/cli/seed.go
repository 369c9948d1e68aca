package cli

import (
	"context"
	"fmt"

	"taskdeck/internal/kanban/domain"
	"taskdeck/internal/kanban/dto"
	"taskdeck/pkg/optional"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSeedCommand(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a board from a YAML template",
		Long: `Creates a board with its columns, labels and cards from a YAML template.

Every item goes through the same rules as the HTTP API, so WIP limits and
label colours are enforced. Prints the new board ID.

Example:
  taskdeck seed --file board.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, err := loadTemplate(file)
			if err != nil {
				return err
			}

			db, closeDB, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeDB()

			board, err := seedBoard(cmd.Context(), a.newUsecases(db), tmpl)
			if err != nil {
				return err
			}

			a.log.Info("board seeded",
				zap.String("board_id", board.ID),
				zap.Int("columns", len(tmpl.Columns)),
				zap.Int("cards", len(tmpl.Cards)))
			fmt.Fprintln(cmd.OutOrStdout(), board.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Board template (YAML)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// seedBoard creates the template in order: board, columns, labels, then cards.
// A failure leaves what was already created in place.
func seedBoard(ctx context.Context, uc usecases, tmpl *boardTemplate) (*domain.Board, error) {
	board, err := uc.boards.CreateBoard(ctx, dto.CreateBoardRequest{Name: tmpl.Name, Description: tmpl.Description})
	if err != nil {
		return nil, fmt.Errorf("board: %w", err)
	}

	columnIDs := make(map[string]string, len(tmpl.Columns))
	for _, c := range tmpl.Columns {
		column, err := uc.columns.CreateColumn(ctx, board.ID, dto.CreateColumnRequest{Name: c.Name, WipLimit: c.WipLimit})
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Name, err)
		}
		columnIDs[c.Name] = column.ID
	}

	labelIDs := make(map[string]string, len(tmpl.Labels))
	for _, l := range tmpl.Labels {
		label, err := uc.labels.CreateLabel(ctx, board.ID, dto.CreateLabelRequest{Name: l.Name, ColorHex: l.Color})
		if err != nil {
			return nil, fmt.Errorf("label %q: %w", l.Name, err)
		}
		labelIDs[l.Name] = label.ID
	}

	for _, c := range tmpl.Cards {
		ids := make([]string, 0, len(c.Labels))
		for _, name := range c.Labels {
			ids = append(ids, labelIDs[name])
		}

		card, err := uc.cards.CreateCard(ctx, board.ID, dto.CreateCardRequest{
			ColumnID:    columnIDs[c.Column],
			Title:       c.Title,
			Description: c.Description,
			DueDate:     c.Due,
			LabelIDs:    ids,
		})
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", c.Title, err)
		}

		if c.Blocked != "" {
			_, err = uc.cards.UpdateCard(ctx, board.ID, card.ID, dto.UpdateCardRequest{
				IsBlocked:   optional.Some(true),
				BlockReason: optional.Some(c.Blocked),
			})
			if err != nil {
				return nil, fmt.Errorf("card %q: %w", c.Title, err)
			}
		}
	}
	return board, nil
}
