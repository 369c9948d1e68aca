package repository

import (
	"context"

	"gorm.io/gorm"
)

// unitOfWork implements UnitOfWork on a gorm connection
type unitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a new instance of unitOfWork
func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &unitOfWork{db: db}
}

func (u *unitOfWork) Boards() BoardRepository   { return NewBoardRepository(u.db) }
func (u *unitOfWork) Columns() ColumnRepository { return NewColumnRepository(u.db) }
func (u *unitOfWork) Cards() CardRepository     { return NewCardRepository(u.db) }
func (u *unitOfWork) Labels() LabelRepository   { return NewLabelRepository(u.db) }

func (u *unitOfWork) Transaction(ctx context.Context, fn func(tx Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&unitOfWork{db: tx})
	})
}
