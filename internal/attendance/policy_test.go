package attendance_test

import (
	"testing"
	"time"

	"go-attend/internal/attendance"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func TestPolicy_ClassifyCheckIn(t *testing.T) {
	policy := attendance.DefaultPolicy()

	cases := []struct {
		name string
		now  time.Time
		want string
	}{
		{"before office start", at(8, 30), attendance.StatusPresent},
		{"exactly office start", at(9, 0), attendance.StatusPresent},
		{"inside grace window", at(9, 10), attendance.StatusPresent},
		{"exactly grace boundary", at(9, 15), attendance.StatusPresent},
		{"one minute past grace", at(9, 16), attendance.StatusLate},
		{"late morning", at(11, 30), attendance.StatusLate},
		{"exactly half day hour", at(14, 0), attendance.StatusLate},
		{"one minute past half day hour", at(14, 1), attendance.StatusHalfDay},
		{"late afternoon", at(16, 45), attendance.StatusHalfDay},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, policy.ClassifyCheckIn(tc.now))
		})
	}
}

func TestPolicy_ClassifyCheckIn_CustomConfig(t *testing.T) {
	policy := attendance.Policy{
		OfficeStartHour:  10,
		LateThresholdMin: 60,
		HalfDayHour:      15,
		Location:         time.UTC,
	}

	assert.Equal(t, attendance.StatusPresent, policy.ClassifyCheckIn(at(11, 0)))
	assert.Equal(t, attendance.StatusLate, policy.ClassifyCheckIn(at(11, 1)))
	assert.Equal(t, attendance.StatusHalfDay, policy.ClassifyCheckIn(at(15, 30)))
}

func TestPolicy_ClassifyCheckIn_Timezone(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	assert.NoError(t, err)

	policy := attendance.DefaultPolicy()
	policy.Location = jakarta

	// 02:30 UTC = 09:30 WIB, setelah grace 15 menit
	assert.Equal(t, attendance.StatusLate, policy.ClassifyCheckIn(at(2, 30)))
	// 02:10 UTC = 09:10 WIB, masih dalam grace
	assert.Equal(t, attendance.StatusPresent, policy.ClassifyCheckIn(at(2, 10)))
}

func TestPolicy_ClassifyCheckOut(t *testing.T) {
	policy := attendance.DefaultPolicy()

	t.Run("early checkout becomes half day", func(t *testing.T) {
		assert.Equal(t, attendance.StatusHalfDay, policy.ClassifyCheckOut(at(13, 0), attendance.StatusPresent))
		assert.Equal(t, attendance.StatusHalfDay, policy.ClassifyCheckOut(at(13, 59), attendance.StatusLate))
	})

	t.Run("checkout at half day hour keeps status", func(t *testing.T) {
		assert.Equal(t, attendance.StatusPresent, policy.ClassifyCheckOut(at(14, 0), attendance.StatusPresent))
	})

	t.Run("late checkout never clears half day", func(t *testing.T) {
		assert.Equal(t, attendance.StatusHalfDay, policy.ClassifyCheckOut(at(18, 0), attendance.StatusHalfDay))
	})

	t.Run("normal checkout keeps late status", func(t *testing.T) {
		assert.Equal(t, attendance.StatusLate, policy.ClassifyCheckOut(at(17, 0), attendance.StatusLate))
	})
}
