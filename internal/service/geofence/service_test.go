package geofence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/memory"
)

const (
	storeLat = -6.175392
	storeLon = 106.827153
)

func newValidator(t *testing.T) (*Validator, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	v := NewValidator(store.Employees(), 0)
	v.now = func() time.Time { return time.Date(2024, 6, 1, 3, 0, 0, 0, time.UTC) }
	return v, store
}

func TestIsWithinRadius(t *testing.T) {
	assert.True(t, IsWithinRadius(storeLat, storeLon, storeLat, storeLon, 0.5))
	assert.True(t, IsWithinRadius(offsetNorth(storeLat, 200), storeLon, storeLat, storeLon, 0.5))
	assert.False(t, IsWithinRadius(offsetNorth(storeLat, 600), storeLon, storeLat, storeLon, 0.5))
	assert.True(t, IsWithinRadius(offsetNorth(storeLat, 600), storeLon, storeLat, storeLon, 1))
}

func TestValidateEmployeeLocation_StoreFallback(t *testing.T) {
	v, store := newValidator(t)
	st := store.AddStore(employee.Store{Name: "Thamrin", Latitude: storeLat, Longitude: storeLon, Timezone: "Asia/Jakarta"})
	emp := store.AddEmployee(employee.Employee{CompanyID: "c1", StoreID: &st.ID, FullName: "Sari"})

	ok, err := v.ValidateEmployeeLocation(context.Background(), emp, offsetNorth(storeLat, 200), storeLon, 0)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = v.ValidateEmployeeLocation(context.Background(), emp, offsetNorth(storeLat, 600), storeLon, 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidateEmployeeLocation_NoStoreNoLocations(t *testing.T) {
	v, store := newValidator(t)
	emp := store.AddEmployee(employee.Employee{CompanyID: "c1", FullName: "Budi"})

	ok, err := v.ValidateEmployeeLocation(context.Background(), emp, storeLat, storeLon, 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidateEmployeeLocation_AllowedLocationWindow(t *testing.T) {
	v, store := newValidator(t)
	emp := store.AddEmployee(employee.Employee{CompanyID: "c1", FullName: "Dewi"})

	remoteLat, remoteLon := -6.914744, 107.609810
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	store.AddAllowedLocation(employee.AllowedLocation{
		EmployeeID: emp.ID,
		Name:       "Bandung site (May)",
		Latitude:   remoteLat,
		Longitude:  remoteLon,
		ValidFrom:  &from,
		ValidUntil: &until,
	})

	ok, err := v.ValidateEmployeeLocation(context.Background(), emp, remoteLat, remoteLon, 0)
	require.NoError(t, err)
	assert.False(t, ok, "window ended the day before")

	store.AddAllowedLocation(employee.AllowedLocation{
		EmployeeID: emp.ID,
		Name:       "Bandung site",
		Latitude:   remoteLat,
		Longitude:  remoteLon,
	})
	ok, err = v.ValidateEmployeeLocation(context.Background(), emp, remoteLat, remoteLon, 0)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestValidateEmployeeLocation_MissingStore(t *testing.T) {
	v, store := newValidator(t)
	missing := "does-not-exist"
	emp := store.AddEmployee(employee.Employee{CompanyID: "c1", StoreID: &missing, FullName: "Eko"})

	ok, err := v.ValidateEmployeeLocation(context.Background(), emp, storeLat, storeLon, 0)
	require.NoError(t, err)
	assert.False(t, ok)
}
