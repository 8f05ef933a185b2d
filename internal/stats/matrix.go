package stats

import "github.com/julianstephens/nicolog/internal/models"

// DoseBucket is a half-open mg interval [Min, Max). Max of 0 means unbounded.
type DoseBucket struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max,omitempty"`
}

// Contains reports whether mg falls inside the bucket
func (b DoseBucket) Contains(mg float64) bool {
	if mg < b.Min {
		return false
	}
	return b.Max == 0 || mg < b.Max
}

// DoseBuckets are the matrix rows, lowest dose first
var DoseBuckets = []DoseBucket{
	{Label: "0-5", Min: 0, Max: 5},
	{Label: "5-10", Min: 5, Max: 10},
	{Label: "10-15", Min: 10, Max: 15},
	{Label: "15-20", Min: 15, Max: 20},
	{Label: "20+", Min: 20},
}

// Cell is one dose × time-of-day combination of the sweet-spot matrix
type Cell struct {
	Dose       string           `json:"dose"`
	TimeOfDay  models.TimeOfDay `json:"timeOfDay"`
	Count      int              `json:"count"`
	AvgFocus   float64          `json:"avgFocus"`
	AvgAnxiety float64          `json:"avgAnxiety"`
	// Metric maps focus minus anxiety onto 0-100; higher means more focus
	// relative to anxiety. Zero and meaningless when Count is 0.
	Metric float64 `json:"metric"`
}

// Populated reports whether any record landed in the cell
func (c Cell) Populated() bool {
	return c.Count > 0
}

// Matrix is the sweet-spot grid. Cells[i][j] pairs DoseBuckets[i] with
// models.TimesOfDay[j].
type Matrix struct {
	Doses []DoseBucket       `json:"doses"`
	Times []models.TimeOfDay `json:"times"`
	Cells [][]Cell           `json:"cells"`
}

// Cell looks up a cell by dose label and time of day
func (m Matrix) Cell(dose string, tod models.TimeOfDay) (Cell, bool) {
	for i, b := range m.Doses {
		if b.Label != dose {
			continue
		}
		for j, t := range m.Times {
			if t == tod {
				return m.Cells[i][j], true
			}
		}
	}
	return Cell{}, false
}

// Best returns the populated cell with the highest metric. Earlier cells win
// ties.
func (m Matrix) Best() (Cell, bool) {
	var best Cell
	found := false
	for _, row := range m.Cells {
		for _, cell := range row {
			if !cell.Populated() {
				continue
			}
			if !found || cell.Metric > best.Metric {
				best = cell
				found = true
			}
		}
	}
	return best, found
}

// SweetSpot builds the dose × time-of-day matrix.
//
// A record contributes only when it has a positive EstimatedMg, a known
// TimeOfDay, and both focus and anxiety levels. Records with exactly 0 mg are
// left out.
func SweetSpot(records []models.LogRecord) Matrix {
	m := Matrix{
		Doses: DoseBuckets,
		Times: models.TimesOfDay,
		Cells: make([][]Cell, len(DoseBuckets)),
	}

	type acc struct {
		focus, anxiety float64
		n              int
	}
	accs := make([][]acc, len(DoseBuckets))
	for i, b := range DoseBuckets {
		m.Cells[i] = make([]Cell, len(models.TimesOfDay))
		accs[i] = make([]acc, len(models.TimesOfDay))
		for j, tod := range models.TimesOfDay {
			m.Cells[i][j] = Cell{Dose: b.Label, TimeOfDay: tod}
		}
	}

	for _, r := range records {
		if r.EstimatedMg <= 0 || r.FocusLevel == nil || r.AnxietyLevel == nil {
			continue
		}
		row := doseIndex(r.EstimatedMg)
		col := timeIndex(r.TimeOfDay)
		if row < 0 || col < 0 {
			continue
		}
		a := &accs[row][col]
		a.focus += float64(*r.FocusLevel)
		a.anxiety += float64(*r.AnxietyLevel)
		a.n++
	}

	for i := range accs {
		for j, a := range accs[i] {
			if a.n == 0 {
				continue
			}
			c := &m.Cells[i][j]
			c.Count = a.n
			c.AvgFocus = a.focus / float64(a.n)
			c.AvgAnxiety = a.anxiety / float64(a.n)
			c.Metric = SweetSpotMetric(c.AvgFocus, c.AvgAnxiety)
		}
	}

	return m
}

// SweetSpotMetric maps focus minus anxiety from [-9, 9] onto [0, 100].
func SweetSpotMetric(avgFocus, avgAnxiety float64) float64 {
	score := ((avgFocus - avgAnxiety) + 9) / 18 * 100
	return min(max(score, 0), 100)
}

func doseIndex(mg float64) int {
	for i, b := range DoseBuckets {
		if b.Contains(mg) {
			return i
		}
	}
	return -1
}

func timeIndex(tod models.TimeOfDay) int {
	for i, t := range models.TimesOfDay {
		if t == tod {
			return i
		}
	}
	return -1
}
