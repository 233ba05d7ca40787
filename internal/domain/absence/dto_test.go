package absence

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

func newTypeID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func TestRequestAbsenceRequest_IntervalNewYorkSummer(t *testing.T) {
	req := RequestAbsenceRequest{
		EmployeeID:    "emp-1",
		AbsenceTypeID: newTypeID(),
		Start:         "2024-06-01 09:00",
		End:           "2024-06-01 10:00",
		Timezone:      "America/New_York",
	}
	require.NoError(t, req.Validate())

	start, end, loc, err := req.Interval()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())
	assert.Equal(t, time.Date(2024, 6, 1, 13, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC), end)
}

func TestRequestAbsenceRequest_Validate(t *testing.T) {
	req := RequestAbsenceRequest{
		EmployeeID:    "emp-1",
		AbsenceTypeID: "not-a-uuid",
		Start:         "2024-06-01 10:00",
		End:           "2024-06-01 09:00",
		Timezone:      "Mars/Olympus",
	}

	err := req.Validate()
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	fields := verrs.ToMap()
	assert.Contains(t, fields, "absence_type_id")
	assert.Contains(t, fields, "timezone")
	assert.Contains(t, fields, "end")
}

func TestReviewRequest_Validate(t *testing.T) {
	ok := ReviewRequest{AbsenceID: newTypeID(), ReviewerID: newTypeID()}
	assert.NoError(t, ok.Validate())

	badReviewer := ok
	badReviewer.ReviewerID = "manager-1"
	err := badReviewer.Validate()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "reviewer_id must be a valid UUID", verrs.ToMap()["reviewer_id"])

	noReviewer := ok
	noReviewer.ReviewerID = ""
	assert.Error(t, noReviewer.Validate())
}

func TestLunchBreakRequest_Validate(t *testing.T) {
	ok := LunchBreakRequest{EmployeeID: "emp-1", DurationMinutes: 30, Latitude: -6.2, Longitude: 106.8}
	assert.NoError(t, ok.Validate())

	tooLong := ok
	tooLong.DurationMinutes = MaxLunchMinutes + 1
	assert.Error(t, tooLong.Validate())

	zero := ok
	zero.DurationMinutes = 0
	assert.Error(t, zero.Validate())
}

func TestDailyLimitError_Is(t *testing.T) {
	var err error = &DailyLimitError{Date: "2024-06-03", Limit: 2}
	assert.True(t, errors.Is(err, ErrDailyLimitReached))
	assert.Contains(t, err.Error(), "2024-06-03")

	var limitErr *DailyLimitError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, 2, limitErr.Limit)
}

func TestAbsence_Overlaps(t *testing.T) {
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	a := Absence{StartTime: base, EndTime: base.Add(time.Hour)}

	assert.True(t, a.Overlaps(base.Add(30*time.Minute), base.Add(2*time.Hour)))
	assert.False(t, a.Overlaps(base.Add(time.Hour), base.Add(2*time.Hour)))
	assert.False(t, a.Overlaps(base.Add(-time.Hour), base))
}
