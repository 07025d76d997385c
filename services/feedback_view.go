package services

import (
	"strings"

	"hospital-feedback-server/models"
	"hospital-feedback-server/store"
)

// DepartmentFilterAll is the sentinel meaning "no department narrowing"
const DepartmentFilterAll = "all"

// ResolveView narrows the feedback collection to what an administrator's
// dashboard request may see: always the admin's hospital first, then the
// optional department filter. The result is a snapshot; callers re-query for
// freshness.
func ResolveView(feedbackStore *store.FeedbackStore, hospitalID, departmentFilter string) ([]models.Feedback, error) {
	records, err := feedbackStore.ListByHospital(hospitalID)
	if err != nil {
		return nil, err
	}
	return FilterByDepartment(records, departmentFilter), nil
}

// FilterByDepartment keeps records matching the department filter. Department
// ids are compared case-insensitively after trimming surrounding whitespace
// because they are entered with inconsistent casing. The "all" sentinel and an
// empty filter keep everything; an unknown department yields an empty slice.
func FilterByDepartment(records []models.Feedback, departmentFilter string) []models.Feedback {
	filter := strings.ToLower(strings.TrimSpace(departmentFilter))
	if filter == "" || filter == DepartmentFilterAll {
		return records
	}

	filtered := make([]models.Feedback, 0, len(records))
	for _, record := range records {
		if strings.ToLower(strings.TrimSpace(record.DepartmentID)) == filter {
			filtered = append(filtered, record)
		}
	}
	return filtered
}
