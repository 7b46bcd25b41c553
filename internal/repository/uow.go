package repository

import "gorm.io/gorm"

// UnitOfWork runs a function against item and movement repositories bound
// to a single database transaction. Read-then-write sequences on an item
// (purchase merge, kitchen transfer, manager adjust) go through here so
// concurrent requests cannot lose updates.
type UnitOfWork interface {
	WithTx(fn func(items ItemRepository, movements MovementRepository) error) error
}

type gormUnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) WithTx(fn func(items ItemRepository, movements MovementRepository) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewItemRepo(tx), NewMovementRepo(tx))
	})
}
