package attendance

import (
	"math"

	"Backend-Student-Tracker/src/models"
)

// ComputeStats builds overall totals and a per-month breakdown. Months appear
// in the order they are first met while scanning records in stored order.
func ComputeStats(records []models.AttendanceEntry) *models.AttendanceStats {
	total := len(records)
	present := 0

	breakdown := models.MonthlyBreakdown{}
	position := map[int]int{}
	for _, r := range records {
		if r.Status {
			present++
		}
		i, seen := position[r.Month]
		if !seen {
			i = len(breakdown)
			position[r.Month] = i
			breakdown = append(breakdown, models.MonthBucket{Month: r.Month})
		}
		b := &breakdown[i]
		b.Total++
		if r.Status {
			b.Present++
		} else {
			b.Absent++
		}
	}
	for i := range breakdown {
		breakdown[i].Percentage = percentage(breakdown[i].Present, breakdown[i].Total)
	}

	return &models.AttendanceStats{
		Overall: models.OverallStats{
			TotalRecords:         total,
			PresentRecords:       present,
			AbsentRecords:        total - present,
			AttendancePercentage: percentage(present, total),
		},
		MonthlyBreakdown: breakdown,
	}
}

// percentage is part/total*100 rounded to two decimals, 0 when total is 0.
func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*100*100) / 100
}
