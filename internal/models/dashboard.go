package models

// WeeklyBucketCount is the fixed number of weekly spending buckets on the
// dashboard. Expenses are assigned by floor((dayOfMonth-1)/7) clamped to the
// last bucket, so days 29-31 fold into bucket 3. Not calendar-week aligned;
// an accepted approximation for the monthly chart.
const WeeklyBucketCount = 4

// WeeklyBucketIndex maps a day of month (1-31) to its dashboard bucket
func WeeklyBucketIndex(dayOfMonth int) int {
	idx := (dayOfMonth - 1) / 7
	if idx < 0 {
		return 0
	}
	if idx >= WeeklyBucketCount {
		return WeeklyBucketCount - 1
	}
	return idx
}
