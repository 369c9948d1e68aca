package cli

import (
	"fmt"

	"taskdeck/internal/kanban/repository"
	"taskdeck/internal/kanban/usecase"
	"taskdeck/pkg/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// openStore connects to the configured database and brings the schema up to date.
// The returned func closes the connection.
func (a *app) openStore() (*gorm.DB, func(), error) {
	db, err := database.Open(a.cfg, a.log)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if err := database.Close(db); err != nil {
			a.log.Warn("failed to close database", zap.Error(err))
		}
	}

	if err := repository.AutoMigrate(db); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, closeDB, nil
}

type usecases struct {
	boards  usecase.BoardUsecase
	columns usecase.ColumnUsecase
	cards   usecase.CardUsecase
	labels  usecase.LabelUsecase
}

// newUsecases wires repositories and usecases over db (dependency injection).
func (a *app) newUsecases(db *gorm.DB) usecases {
	uow := repository.NewUnitOfWork(db)
	return usecases{
		boards:  usecase.NewBoardUsecase(uow, a.log.Named("boards")),
		columns: usecase.NewColumnUsecase(uow, a.cfg, a.log.Named("columns")),
		cards:   usecase.NewCardUsecase(uow, a.log.Named("cards")),
		labels:  usecase.NewLabelUsecase(uow, a.log.Named("labels")),
	}
}
