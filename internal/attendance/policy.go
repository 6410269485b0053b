package attendance

import (
	"os"
	"strconv"
	"time"
)

const (
	StatusPresent = "PRESENT"
	StatusLate    = "LATE"
	StatusHalfDay = "HALF_DAY"
)

// Policy adalah konfigurasi klasifikasi waktu, dibaca sekali saat startup
// dan tidak pernah dimutasi setelahnya.
//
// Klasifikasi memakai jam dinding pada timezone kantor (ATTENDANCE_TZ,
// default UTC). Kunci record harian tetap selalu UTC midnight; hanya
// penentuan PRESENT/LATE/HALF_DAY yang mengikuti timezone ini.
type Policy struct {
	OfficeStartHour  int
	LateThresholdMin int
	HalfDayHour      int
	SkipGeofence     bool
	Location         *time.Location
}

func DefaultPolicy() Policy {
	return Policy{
		OfficeStartHour:  9,
		LateThresholdMin: 15,
		HalfDayHour:      14,
		Location:         time.UTC,
	}
}

func PolicyFromEnv() Policy {
	p := DefaultPolicy()
	if v, err := strconv.Atoi(os.Getenv("OFFICE_START_HOUR")); err == nil {
		p.OfficeStartHour = v
	}
	if v, err := strconv.Atoi(os.Getenv("LATE_THRESHOLD_MINUTES")); err == nil {
		p.LateThresholdMin = v
	}
	if v, err := strconv.Atoi(os.Getenv("HALF_DAY_HOUR")); err == nil {
		p.HalfDayHour = v
	}
	if os.Getenv("SKIP_GEOFENCE") == "true" {
		p.SkipGeofence = true
	}
	if tz := os.Getenv("ATTENDANCE_TZ"); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			p.Location = loc
		}
	}
	return p
}

func (p Policy) loc() *time.Location {
	if p.Location != nil {
		return p.Location
	}
	return time.UTC
}

// ClassifyCheckIn memetakan jam check-in ke status awal hari itu.
// Setelah half_day_hour:00 (strict) → HALF_DAY; setelah jam masuk + grace
// (strict) → LATE; selain itu PRESENT.
func (p Policy) ClassifyCheckIn(now time.Time) string {
	local := now.In(p.loc())
	h, m := local.Hour(), local.Minute()

	if h > p.HalfDayHour || (h == p.HalfDayHour && m > 0) {
		return StatusHalfDay
	}

	lateAfterHour := p.OfficeStartHour + p.LateThresholdMin/60
	lateAfterMin := p.LateThresholdMin % 60
	if h > lateAfterHour || (h == lateAfterHour && m > lateAfterMin) {
		return StatusLate
	}
	return StatusPresent
}

// ClassifyCheckOut meng-upgrade status ke HALF_DAY untuk checkout sebelum
// half_day_hour. Satu arah: hari yang sudah HALF_DAY tidak pernah
// "diperbaiki" oleh checkout larut.
func (p Policy) ClassifyCheckOut(now time.Time, current string) string {
	if now.In(p.loc()).Hour() < p.HalfDayHour {
		return StatusHalfDay
	}
	return current
}
