// ABOUTME: Monday-to-Sunday week windows and session bucketing.
// ABOUTME: Weeks always start on Monday regardless of locale.
package progress

import (
	"fmt"
	"time"

	"github.com/harperreed/trainerlog/internal/models"
)

// WeekWindow is an inclusive Monday..Sunday date range.
type WeekWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// mondayOffset is the number of days since the most recent Monday.
// time.Weekday counts from Sunday=0, so it is shifted to Monday=0.
func mondayOffset(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}

// CurrentWeekWindow returns the week containing today.
func CurrentWeekWindow(today time.Time) WeekWindow {
	today = models.DateOf(today)
	start := today.AddDate(0, 0, -mondayOffset(today))
	return WeekWindow{Start: start, End: start.AddDate(0, 0, 6)}
}

// PreviousWeekWindow returns the week immediately before the one containing today.
func PreviousWeekWindow(today time.Time) WeekWindow {
	current := CurrentWeekWindow(today)
	return WeekWindow{
		Start: current.Start.AddDate(0, 0, -7),
		End:   current.Start.AddDate(0, 0, -1),
	}
}

// Contains reports whether date falls within the window, inclusive.
func (w WeekWindow) Contains(date time.Time) bool {
	d := models.DateOf(date)
	return !d.Before(w.Start) && !d.After(w.End)
}

func (w WeekWindow) String() string {
	return fmt.Sprintf("%s to %s", models.FormatDate(w.Start), models.FormatDate(w.End))
}

// MarshalJSON renders both ends as YYYY-MM-DD.
func (w WeekWindow) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"start":%q,"end":%q}`, models.FormatDate(w.Start), models.FormatDate(w.End))), nil
}

// BucketSessions returns the sessions dated within the window, in input order.
// The input is not modified.
func BucketSessions(sessions []models.Session, window WeekWindow) []models.Session {
	bucket := make([]models.Session, 0, len(sessions))
	for _, s := range sessions {
		if window.Contains(s.Date) {
			bucket = append(bucket, s)
		}
	}
	return bucket
}
