package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFindDepartment(t *testing.T) {
	d, ok := FindDepartment(" pb-a ")
	require.True(t, ok)
	require.Equal(t, "PB-A", d.Code)
	require.False(t, d.IsSource())

	src, ok := FindDepartment("general")
	require.True(t, ok)
	require.True(t, src.IsSource())

	_, ok = FindDepartment("7-C")
	require.False(t, ok)
}

func TestDepartmentsReturnsCopy(t *testing.T) {
	ds := Departments()
	require.Len(t, ds, 15)
	ds[0].Code = "X"
	require.Equal(t, "PB-A", Departments()[0].Code)
}

func TestMonthKey(t *testing.T) {
	require.Equal(t, "2025-03", MonthKey(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, ObligationID("2025-03", "1-A"), "2025-03:1-A")
}

func TestBillingCycleReadings(t *testing.T) {
	c := BillingCycle{Readings: []CycleReading{
		{ConsumerID: SourceDepartmentCode, Source: true, ShareRounded: 999},
		{ConsumerID: "1-A", ShareRounded: 120},
		{ConsumerID: "2-A", ShareRounded: 80},
	}}

	billed := c.BilledReadings()
	require.Len(t, billed, 2)
	require.Equal(t, "1-A", billed[0].ConsumerID)
	require.Equal(t, int64(200), c.RoundedTotal())

	r, ok := c.ReadingFor("2-A")
	require.True(t, ok)
	require.Equal(t, int64(80), r.ShareRounded)
	_, ok = c.ReadingFor("3-A")
	require.False(t, ok)
}

func TestPaymentStatusValid(t *testing.T) {
	require.True(t, PaymentStatusPending.Valid())
	require.True(t, PaymentStatusPaid.Valid())
	require.False(t, PaymentStatus("refunded").Valid())
}
