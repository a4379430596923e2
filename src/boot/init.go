package boot

import (
	"errors"
	"log"
	"tbs/src/db"
	"tbs/src/models"
	"tbs/src/types"
	"tbs/src/utils"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Merchant{},
		&models.Booking{},
		&models.Order{},
		&models.Transaction{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

var ErrAlreadySeeded = errors.New("a super admin account already exists")

// SeedSuperAdmin creates the founding SUPER_ADMIN account. One-time:
// refuses once any super admin exists.
func SeedSuperAdmin(name, email, password string) (*models.User, error) {
	d := db.GetDb()
	var count int64
	if err := d.
		Model(&models.User{}).
		Where("role = ?", types.ROLE_SUPER_ADMIN).
		Count(&count).
		Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAlreadySeeded
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         types.ROLE_SUPER_ADMIN,
		Founder:      true,
	}
	if err := d.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return nil
	}); err != nil {
		return nil, err
	}
	log.Printf("Seeded super admin account [%s]\n", email)
	return &user, nil
}
