package voting

import (
	"math"

	"github.com/mrcliffo/nfl-market-pulse/storage"
)

// Results is the percentage view of a counter triplet. It is derived on every
// read and never stored.
type Results struct {
	Yes        int64 `json:"yes"`
	No         int64 `json:"no"`
	Total      int64 `json:"total"`
	YesPercent int64 `json:"yesPercent"`
	NoPercent  int64 `json:"noPercent"`
}

// Derive turns counters into percentages rounded half away from zero.
// Both percentages are 0 when there are no votes; they are rounded
// independently, so their sum may be 99 or 101.
func Derive(c storage.Counters) Results {
	return Results{
		Yes:        c.Yes,
		No:         c.No,
		Total:      c.Total,
		YesPercent: percent(c.Yes, c.Total),
		NoPercent:  percent(c.No, c.Total),
	}
}

func percent(count, total int64) int64 {
	if total <= 0 {
		return 0
	}
	return int64(math.Round(float64(count) * 100 / float64(total)))
}
