package calendar

// Granularity selects the window size for Range.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// GridDay is one cell of a month grid.
type GridDay struct {
	Date    Date `json:"date"`
	InMonth bool `json:"in_month"`
	IsToday bool `json:"is_today"`
}

// WeekDays returns the 7 dates (Sunday through Saturday) of the week
// containing ref, ascending.
// Parameters:
//   - ref: any date inside the target week.
// Returns:
//   - []Date: the 7 days of the week.
func WeekDays(ref Date) []Date {
	start := ref.AddDays(-int(ref.Weekday()))
	days := make([]Date, 7)
	for i := range days {
		days[i] = start.AddDays(i)
	}
	return days
}

// MonthGrid returns the fixed 42-cell (6 full Sunday-starting weeks) grid
// spanning the month containing ref. A fixed cell count keeps the rendering
// surface uniform across months.
// Parameters:
//   - ref: any date inside the target month.
// Returns:
//   - []GridDay: 42 cells, ascending, tagged with in-month and today flags.
func MonthGrid(ref Date) []GridDay {
	return monthGrid(ref, Today())
}

func monthGrid(ref, today Date) []GridDay {
	first := New(ref.Year, ref.Month, 1)
	start := first.AddDays(-int(first.Weekday()))

	cells := make([]GridDay, 42)
	for i := range cells {
		d := start.AddDays(i)
		cells[i] = GridDay{
			Date:    d,
			InMonth: d.Year == ref.Year && d.Month == ref.Month,
			IsToday: d.Equal(today),
		}
	}
	return cells
}

// Range returns the inclusive (start, end) window for the granularity
// containing ref: the surrounding week for week, the first and last day of
// the month for month, and (ref, ref) for day.
// Parameters:
//   - ref: reference date.
//   - g: window granularity.
// Returns:
//   - Date: first day of the window.
//   - Date: last day of the window.
func Range(ref Date, g Granularity) (Date, Date) {
	switch g {
	case GranularityWeek:
		start := ref.AddDays(-int(ref.Weekday()))
		return start, start.AddDays(6)
	case GranularityMonth:
		first := New(ref.Year, ref.Month, 1)
		return first, first.AddMonths(1).AddDays(-1)
	default:
		return ref, ref
	}
}
