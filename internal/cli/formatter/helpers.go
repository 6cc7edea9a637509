package formatter

import (
	"fmt"
	"time"

	"github.com/Noahwuhrmann/Zeiterfassung/internal/billing"
)

// displayTimeLayout is how timestamps appear in tables and status output.
const displayTimeLayout = "2006-01-02 15:04:05"

// HumanTimestamp renders t in the display timezone.
func HumanTimestamp(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(displayTimeLayout)
}

// MinutesHMS renders a whole-minute duration as HH:MM:SS.
func MinutesHMS(minutes int) string {
	neg := minutes < 0
	if neg {
		minutes = -minutes
	}
	s := billing.FormatHMS(minutes * 60)
	if neg {
		return "-" + s
	}
	return s
}

// SignedMinutes renders a minute delta with an explicit sign, e.g. "+30" or
// "-15".
func SignedMinutes(minutes int) string {
	if minutes > 0 {
		return fmt.Sprintf("+%d", minutes)
	}
	return fmt.Sprintf("%d", minutes)
}

// TruncID shortens a uuid for table display.
func TruncID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
