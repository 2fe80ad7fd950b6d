package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mbliznikova/check-in-backend/config"
	"github.com/mbliznikova/check-in-backend/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	if err := DB.AutoMigrate(
		&models.School{},
		&models.SchoolMembership{},
		&models.User{},
		&models.Student{},
		&models.ClassModel{},
		&models.Day{},
		&models.Schedule{},
		&models.ClassOccurrence{},
		&models.Attendance{},
		&models.Price{},
		&models.Payment{},
	); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}

	seedWeekdays()
}

// seedWeekdays pre-populates the Day lookup table. The schedule endpoints
// assume all seven rows exist.
func seedWeekdays() {
	names := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	for _, name := range names {
		var day models.Day
		if err := DB.FirstOrCreate(&day, models.Day{Name: name}).Error; err != nil {
			log.Printf("[migrate] warn: seeding weekday %s failed: %v", name, err)
		}
	}
}
