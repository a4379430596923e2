package db

import (
	"log"
	"sync"
	"tbs/src/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	db   *gorm.DB
	once sync.Once
)

// GetDb returns the process-wide database handle, opening it on first
// use. Initialization is single-flight so two concurrent first calls
// cannot open two connections.
func GetDb() *gorm.DB {
	once.Do(func() {
		if db != nil {
			return
		}
		_db, err := gorm.Open(postgres.Open(config.GetDSN()))
		if err != nil {
			log.Printf("Error connecting to database: %s\n", err.Error())
			panic(err)
		}
		sqlDB, err := _db.DB()
		if err != nil {
			log.Fatalf("Error establishing connection to database: %s\n", err.Error())
		}
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		db = _db
	})
	return db
}

// NewDB replaces the cached handle. Used by tests.
func NewDB(newdb *gorm.DB) {
	once.Do(func() {})
	db = newdb
}
