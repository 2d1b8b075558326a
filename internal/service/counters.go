package service

import (
	"spotlight/internal/models"

	"gorm.io/gorm"
)

// adjustCounter applies a relative update to a denormalized counter
// column inside the caller's transaction. The arithmetic runs in the
// database so concurrent mutations cannot lose increments.
func adjustCounter(tx *gorm.DB, model any, id uint, column string, delta int) error {
	err := tx.Model(model).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// decrementFloored decrements a counter but never below zero. Historic
// rows can carry a counter that drifted under concurrent deletes, so
// the floor is applied in SQL rather than trusted from a read.
func decrementFloored(tx *gorm.DB, model any, id uint, column string) error {
	expr := "CASE WHEN " + column + " > 0 THEN " + column + " - 1 ELSE 0 END"
	err := tx.Model(model).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(expr)).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
