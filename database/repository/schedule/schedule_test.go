package scheduleRepo

import (
	"testing"

	"localpro/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateWeeklySchedule(t *testing.T) {
	valid := []models.WeeklyScheduleEntry{
		{DayOfWeek: 0, IsActive: true},
		{DayOfWeek: 6, IsActive: false},
	}
	assert.NoError(t, validateWeeklySchedule(valid))
	assert.NoError(t, validateWeeklySchedule(nil))

	outOfRange := []models.WeeklyScheduleEntry{{DayOfWeek: 7}}
	assert.Error(t, validateWeeklySchedule(outOfRange))

	negative := []models.WeeklyScheduleEntry{{DayOfWeek: -1}}
	assert.Error(t, validateWeeklySchedule(negative))

	duplicates := []models.WeeklyScheduleEntry{
		{DayOfWeek: 1, IsActive: true},
		{DayOfWeek: 1, IsActive: false},
	}
	assert.Error(t, validateWeeklySchedule(duplicates))
}
