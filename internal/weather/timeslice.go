package weather

import "time"

// DefaultBaseTime is the forecast batch requested from upstream.
const DefaultBaseTime = "0500"

// publishMinute is when an hourly short-term forecast becomes available.
const publishMinute = 30

// TimeSlice identifies the forecast batch and the single hour of it that is
// currently applicable.
type TimeSlice struct {
	BaseDate string `json:"baseDate"` // YYYYMMDD
	BaseTime string `json:"baseTime"` // HHMM
	FcstTime string `json:"fcstTime"` // HH00
}

// SliceAt computes the applicable slice for t in t's location. Before the
// half-hour the previous hour is used. When that steps back past midnight,
// BaseDate moves to the previous day too, so the hour and the batch agree.
func SliceAt(t time.Time, baseTime string) TimeSlice {
	if baseTime == "" {
		baseTime = DefaultBaseTime
	}
	hour := t
	if t.Minute() < publishMinute {
		hour = t.Add(-time.Hour)
	}
	return TimeSlice{
		BaseDate: hour.Format("20060102"),
		BaseTime: baseTime,
		FcstTime: hour.Format("15") + "00",
	}
}
