// Package rowlock adds SELECT ... FOR UPDATE to gorm queries on databases that
// support row locks. SQLite serialises writers itself and gets no clause.
package rowlock

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ForUpdate locks the selected rows until the surrounding transaction ends.
func ForUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector == nil || db.Dialector.Name() != "postgres" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
