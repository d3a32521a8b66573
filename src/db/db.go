package db

import (
	"log"
	"venuebook/src/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the database handle. main owns it and passes it down to every
// route registrar; there is no package-level instance.
func Connect() (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(config.GetDSN()))
	if err != nil {
		log.Printf("Error connecting to database: %s\n", err.Error())
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error establishing connection to database: %s\n", err.Error())
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	return db, nil
}
