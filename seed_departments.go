package main

import (
	"log"
	"os"
	"strings"

	_ "github.com/lib/pq"

	"hospital-feedback-server/database"
	"hospital-feedback-server/models"
)

// seedDepartments loads the department reference data for the hospitals named
// in SEED_HOSPITAL_IDS (comma separated). Hospitals that already have
// departments are left alone.
func seedDepartments() error {
	db := database.GetDB()

	hospitalIDs := []string{"H1"}
	if raw := os.Getenv("SEED_HOSPITAL_IDS"); raw != "" {
		hospitalIDs = hospitalIDs[:0]
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				hospitalIDs = append(hospitalIDs, id)
			}
		}
	}

	departments := []models.Department{
		{Code: "general", Name: "General Medicine", SortOrder: 1, IsActive: true},
		{Code: "cardiology", Name: "Cardiology", SortOrder: 2, IsActive: true},
		{Code: "orthopedics", Name: "Orthopedics", SortOrder: 3, IsActive: true},
		{Code: "pediatrics", Name: "Pediatrics", SortOrder: 4, IsActive: true},
		{Code: "emergency", Name: "Emergency", SortOrder: 5, IsActive: true},
		{Code: "radiology", Name: "Radiology", SortOrder: 6, IsActive: true},
		{Code: "oncology", Name: "Oncology", SortOrder: 7, IsActive: true},
		{Code: "maternity", Name: "Maternity", SortOrder: 8, IsActive: true},
	}

	for _, hospitalID := range hospitalIDs {
		var count int64
		if err := db.Model(&models.Department{}).Where("hospital_id = ?", hospitalID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		for _, dept := range departments {
			dept.HospitalID = hospitalID
			if err := db.Create(&dept).Error; err != nil {
				return err
			}
		}
		log.Printf("✅ Seeded %d departments for hospital %s", len(departments), hospitalID)
	}

	return nil
}
