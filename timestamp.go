package uview

import "time"

const (
	ticksPerSecond = 10000000 // 100 ns ticks.
	nsPerTick      = 100

	// Seconds between 1601-01-01 and 1970-01-01.
	epochDelta = 11644473600
)

// DecodeTimestamp converts a count of 100-nanosecond ticks since
// 1601-01-01T00:00:00 UTC into a time. Full tick precision is kept.
func DecodeTimestamp(ticks uint64) time.Time {
	sec := int64(ticks/ticksPerSecond) - epochDelta
	nsec := int64(ticks%ticksPerSecond) * nsPerTick
	return time.Unix(sec, nsec).UTC()
}
