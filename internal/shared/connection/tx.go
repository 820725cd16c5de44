package connection

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// BindTx returns a gorm handle that issues every statement on tx. Services
// open the transaction on *sql.DB and repositories join it through WithTx.
func BindTx(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db
	}
	// a non-nil Context forces gorm to clone the statement so the pool
	// swap does not leak into db.
	scoped := db.Session(&gorm.Session{
		Context:                context.Background(),
		SkipDefaultTransaction: true,
		NewDB:                  true,
	})
	scoped.Statement.ConnPool = tx
	return scoped
}
