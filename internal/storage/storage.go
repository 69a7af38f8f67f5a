package storage

import (
	"sync"

	"hittags/internal/config"
	"hittags/internal/util/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

var (
	once sync.Once
	db   *gorm.DB
)

func GetDb() *gorm.DB {
	once.Do(func() {
		env := config.GetEnv()

		database, err := gorm.Open(postgres.Open(env.DatabaseDsn), &gorm.Config{
			Logger: gorm_logger.Default.LogMode(gorm_logger.Silent),
		})
		if err != nil {
			logger.GetLogger().Error("Failed to connect to database", "error", err)
			panic(err)
		}

		db = database
	})

	return db
}
