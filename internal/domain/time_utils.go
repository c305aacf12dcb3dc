package domain

import "time"

// OnlyDateTimeLayout is the layout of timestamps shown to operators
const OnlyDateTimeLayout = "2006-01-02 15:04:05"

// EpochMillisToTime converts a LINE epoch millisecond timestamp to UTC time.
// Zero stays the zero time.
func EpochMillisToTime(millis int64) time.Time {
	if millis == 0 {
		return time.Time{}
	}
	return time.UnixMilli(millis).UTC()
}

// FormatEpochMillis formats a LINE epoch millisecond timestamp with OnlyDateTimeLayout
// in the given location, or UTC when loc is nil. Zero formats as "-".
func FormatEpochMillis(millis int64, loc *time.Location) string {
	if millis == 0 {
		return "-"
	}
	if loc == nil {
		loc = time.UTC
	}
	return EpochMillisToTime(millis).In(loc).Format(OnlyDateTimeLayout)
}
