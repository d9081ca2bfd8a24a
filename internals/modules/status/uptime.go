package status

import (
	"math"
	"strconv"
)

// ComputeUptime renders the share of up-like minutes as a percentage string.
// Whole tens and 100 are printed without decimals, every other value with
// exactly four. "-" means there was nothing to compute from.
func ComputeUptime(upLike, total int) string {
	if total == 0 {
		return "-"
	}
	if upLike == 0 {
		return "0"
	}

	pct := (float64(upLike) / float64(total)) * 100

	if upLike == total {
		return strconv.FormatFloat(pct, 'f', 0, 64)
	}
	if math.Mod(pct, 10) == 0 {
		return strconv.FormatFloat(pct, 'f', 0, 64)
	}
	return strconv.FormatFloat(pct, 'f', 4, 64)
}

// Summary counts statuses over a set of minutes.
type Summary struct {
	Up       int    `json:"up"`
	Degraded int    `json:"degraded"`
	Down     int    `json:"down"`
	NoData   int    `json:"no_data"`
	Uptime   string `json:"uptime"`
}

// Summarize tallies statuses. NO_DATA minutes are counted but excluded from
// the uptime denominator.
func Summarize(statuses []Status) Summary {
	var s Summary
	for _, st := range statuses {
		switch st {
		case Up:
			s.Up++
		case Degraded:
			s.Degraded++
		case Down:
			s.Down++
		case NoData:
			s.NoData++
		}
	}
	s.Uptime = ComputeUptime(s.Up+s.Degraded, s.Up+s.Degraded+s.Down)
	return s
}
