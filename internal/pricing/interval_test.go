package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func rng(startDay, endDay int) DateRange {
	return DateRange{Start: day(startDay), End: day(endDay)}
}

func TestDateRange_Validate(t *testing.T) {
	t.Run("Valid range", func(t *testing.T) {
		assert.NoError(t, rng(1, 5).Validate())
	})

	t.Run("Zero-length range", func(t *testing.T) {
		err := rng(5, 5).Validate()
		assert.Error(t, err)
		var ire *InvalidRangeError
		assert.ErrorAs(t, err, &ire)
	})

	t.Run("Inverted range", func(t *testing.T) {
		err := rng(10, 5).Validate()
		var ire *InvalidRangeError
		assert.ErrorAs(t, err, &ire)
	})
}

func TestDateRange_Overlaps(t *testing.T) {
	cases := []struct {
		name     string
		a, b     DateRange
		overlaps bool
	}{
		{"Disjoint", rng(1, 3), rng(5, 8), false},
		{"Partial overlap", rng(1, 5), rng(3, 8), true},
		{"A contains B", rng(1, 10), rng(3, 5), true},
		{"B contains A", rng(3, 5), rng(1, 10), true},
		{"Identical", rng(2, 6), rng(2, 6), true},
		{"Adjacent is not overlap", rng(1, 2), rng(2, 3), false},
		{"One instant shared", rng(1, 3), rng(2, 3), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlaps, tc.a.Overlaps(tc.b))
			// Overlap is symmetric
			assert.Equal(t, tc.a.Overlaps(tc.b), tc.b.Overlaps(tc.a))
		})
	}
}

func TestDateRange_Days(t *testing.T) {
	t.Run("Whole days", func(t *testing.T) {
		assert.Equal(t, 1, rng(1, 2).Days())
		assert.Equal(t, 5, rng(1, 6).Days())
	})

	t.Run("Partial day rounds up", func(t *testing.T) {
		// 25 hours bills 2 days
		r := DateRange{Start: day(1), End: day(2).Add(time.Hour)}
		assert.Equal(t, 2, r.Days())
	})

	t.Run("One hour bills one day", func(t *testing.T) {
		r := DateRange{Start: day(1), End: day(1).Add(time.Hour)}
		assert.Equal(t, 1, r.Days())
	})

	t.Run("Monotonic in end time", func(t *testing.T) {
		start := day(1)
		prev := 0
		for h := 1; h <= 24*10; h += 5 {
			d := DateRange{Start: start, End: start.Add(time.Duration(h) * time.Hour)}.Days()
			assert.GreaterOrEqual(t, d, prev, "duration must not decrease as end increases")
			prev = d
		}
	})
}
