// Package stats derives aggregate views over a collection of log records.
//
// Every function here is pure: it reads the records it is given, keeps no
// state between calls, and returns fresh values.
package stats

// average accumulates a mean over optional levels, skipping absent ones.
type average struct {
	sum float64
	n   int
}

func (a *average) add(level *int) {
	if level == nil {
		return
	}
	a.sum += float64(*level)
	a.n++
}

// value returns nil when nothing was added so callers can tell "no data"
// apart from a zero mean.
func (a average) value() *float64 {
	if a.n == 0 {
		return nil
	}
	v := a.sum / float64(a.n)
	return &v
}
