package routes

import (
	"context"

	"gorm.io/gorm"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/handlers"
)

func pingDB(db *gorm.DB) handlers.PingFunc {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
