// Package jobs holds the background work that used to live in a scheduled
// task runner: the weekly materialization of ClassOccurrence rows from the
// Schedule templates.
package jobs

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/mbliznikova/check-in-backend/models"
)

// NextMonday returns the Monday of the upcoming week; on a Monday that is
// the same day.
func NextMonday(from time.Time) time.Time {
	isoWeekday := int(from.Weekday())
	if isoWeekday == 0 {
		isoWeekday = 7 // Go says Sunday=0, scheduling counts Monday=1..Sunday=7
	}
	daysUntil := (8 - isoWeekday) % 7
	next := from.AddDate(0, 0, daysUntil)
	return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, from.Location())
}

// GenerateWeeklyOccurrences creates one ClassOccurrence per Schedule slot of
// the school for the week starting at monday, skipping any (class, date,
// time) that already exists. Returns how many rows were created.
func GenerateWeeklyOccurrences(db *gorm.DB, schoolID uint, monday time.Time) (int, error) {
	var schedules []models.Schedule
	err := db.
		Preload("Class").
		Preload("Day").
		Where("school_id = ?", schoolID).
		Find(&schedules).Error
	if err != nil {
		return 0, err
	}

	var toCreate []models.ClassOccurrence
	for i := range schedules {
		s := &schedules[i]
		if s.Class == nil || s.Day == nil {
			continue
		}
		weekday := s.Day.WeekdayNumber()
		if weekday == 0 {
			continue
		}
		date := monday.AddDate(0, 0, weekday-1).Format("2006-01-02")

		var count int64
		err := db.Model(&models.ClassOccurrence{}).
			Where("school_id = ? AND fallback_class_name = ? AND actual_date = ? AND actual_start_time = ?",
				schoolID, s.Class.Name, date, s.StartTime).
			Count(&count).Error
		if err != nil {
			return 0, err
		}
		if count > 0 {
			log.Printf("[jobs] skipping %s on %s %s, occurrence already exists", s.Class.Name, date, s.StartTime)
			continue
		}

		toCreate = append(toCreate, models.ClassOccurrence{
			SchoolID:               schoolID,
			ClassID:                &s.ClassID,
			FallbackClassName:      s.Class.Name,
			ScheduleID:             &s.ID,
			PlannedDate:            date,
			ActualDate:             date,
			PlannedStartTime:       s.StartTime,
			ActualStartTime:        s.StartTime,
			PlannedDurationMinutes: s.Class.DurationMinutes,
			ActualDurationMinutes:  s.Class.DurationMinutes,
		})
	}

	if len(toCreate) == 0 {
		return 0, nil
	}
	if err := db.Create(&toCreate).Error; err != nil {
		return 0, err
	}
	return len(toCreate), nil
}

// GenerateForAllSchools runs the weekly generator for every school.
func GenerateForAllSchools(db *gorm.DB, monday time.Time) {
	var schools []models.School
	if err := db.Find(&schools).Error; err != nil {
		log.Printf("[jobs] listing schools failed: %v", err)
		return
	}
	for _, school := range schools {
		created, err := GenerateWeeklyOccurrences(db, school.ID, monday)
		if err != nil {
			log.Printf("[jobs] generating occurrences for school %d failed: %v", school.ID, err)
			continue
		}
		if created > 0 {
			log.Printf("[jobs] created %d occurrences for school %d (week of %s)", created, school.ID, monday.Format("2006-01-02"))
		}
	}
}

// Start runs the generator every Sunday at 18:00 server time.
func Start(db *gorm.DB) {
	go func() {
		log.Println("occurrence scheduler started")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()
			if now.Weekday() == time.Sunday && now.Hour() == 18 && now.Minute() == 0 {
				GenerateForAllSchools(db, NextMonday(now))
			}
		}
	}()
}
