package policies

// qTable holds one row of action values per bucketed observation.
type qTable struct {
	values  map[string][]float64
	actions int
}

func newQTable(actions int) *qTable {
	return &qTable{
		values:  make(map[string][]float64),
		actions: actions,
	}
}

// Row returns the action values for the state, creating a zero row on
// first access.
func (q *qTable) Row(state string) []float64 {
	row, ok := q.values[state]
	if !ok {
		row = make([]float64, q.actions)
		q.values[state] = row
	}
	return row
}

// Peek returns the row without creating it.
func (q *qTable) Peek(state string) ([]float64, bool) {
	row, ok := q.values[state]
	return row, ok
}

// ArgMax returns the index of the highest-valued action in the row,
// preferring the lowest index on ties.
func argMax(row []float64) int {
	best := 0
	for i := 1; i < len(row); i++ {
		if row[i] > row[best] {
			best = i
		}
	}
	return best
}
