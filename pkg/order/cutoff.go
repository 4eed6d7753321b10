package order

import "time"

// CutoffFor returns the last instant orders for orderDate are accepted:
// hour:00 in loc on the previous calendar day.
func CutoffFor(orderDate time.Time, loc *time.Location, hour int) time.Time {
	return time.Date(orderDate.Year(), orderDate.Month(), orderDate.Day()-1, hour, 0, 0, 0, loc)
}

func IsOrderingOpen(now time.Time, orderDate time.Time, loc *time.Location, hour int) bool {
	return now.Before(CutoffFor(orderDate, loc, hour))
}
