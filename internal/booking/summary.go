package booking

import "pitchplease/internal/models"

// Summary is the priced view of the current selection.
type Summary struct {
	Visible       bool
	FacilityName  string
	Date          string
	FormattedDate string
	HourlyRate    float64
	Hours         int
	Total         float64
	Ranges        []string
}

// Summarize prices the grid's selection at the facility's hourly rate.
// The total is not rounded.
func Summarize(g *Grid, f *models.Facility) Summary {
	selected := g.Selected()
	if len(selected) == 0 {
		return Summary{}
	}

	ranges := make([]string, len(selected))
	for i, s := range selected {
		ranges[i] = FormatRange(s.StartHour, s.EndHour)
	}
	hours := len(selected)
	return Summary{
		Visible:       true,
		FacilityName:  f.Name,
		Date:          g.Date,
		FormattedDate: FormatDate(g.Date),
		HourlyRate:    f.HourlyRate,
		Hours:         hours,
		Total:         float64(hours) * f.HourlyRate,
		Ranges:        ranges,
	}
}
