package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospital-feedback-server/models"
)

func TestFilterByDepartmentAllSentinel(t *testing.T) {
	records := []models.Feedback{
		{HospitalID: "H1", DepartmentID: "cardiology"},
		{HospitalID: "H1", DepartmentID: "emergency"},
	}

	assert.Equal(t, records, FilterByDepartment(records, DepartmentFilterAll))
	assert.Equal(t, records, FilterByDepartment(records, ""))
}

func TestFilterByDepartmentCaseAndWhitespaceInsensitive(t *testing.T) {
	records := []models.Feedback{
		{HospitalID: "H1", DepartmentID: "Cardiology"},
		{HospitalID: "H1", DepartmentID: " cardiology "},
		{HospitalID: "H1", DepartmentID: "emergency"},
	}

	filteredSpaced := FilterByDepartment(records, " Cardiology ")
	filteredLower := FilterByDepartment(records, "cardiology")

	require.Len(t, filteredSpaced, 2)
	assert.Equal(t, filteredSpaced, filteredLower)
}

func TestFilterByDepartmentUnknownYieldsEmpty(t *testing.T) {
	records := []models.Feedback{
		{HospitalID: "H1", DepartmentID: "cardiology"},
	}

	filtered := FilterByDepartment(records, "dermatology")

	assert.NotNil(t, filtered)
	assert.Empty(t, filtered)
}

func TestFilterByDepartmentDoesNotMutateInput(t *testing.T) {
	records := []models.Feedback{
		{HospitalID: "H1", DepartmentID: "cardiology"},
		{HospitalID: "H1", DepartmentID: "emergency"},
	}

	_ = FilterByDepartment(records, "cardiology")

	assert.Equal(t, "cardiology", records[0].DepartmentID)
	assert.Equal(t, "emergency", records[1].DepartmentID)
}
