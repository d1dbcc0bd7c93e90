package limits

import "fmt"

// DefaultMaxDepth bounds expression and block nesting when no manifest
// overrides it.
const DefaultMaxDepth = 256

// Depth tracks how deeply a recursive-descent parse has nested. A zero limit
// disables the check.
type Depth struct {
	limit int
	cur   int
}

func NewDepth(limit int) *Depth {
	if limit < 0 {
		limit = 0
	}
	return &Depth{limit: limit}
}

func MaxDepthMessage(limit int) string {
	return fmt.Sprintf("maximum nesting depth exceeded (%d)", limit)
}

type MaxDepthError struct {
	Limit int
}

func (e MaxDepthError) Error() string {
	return MaxDepthMessage(e.Limit)
}

// Enter charges one level. Callers that get a nil error must call Leave.
func (d *Depth) Enter() error {
	if d == nil {
		return nil
	}
	if d.limit > 0 && d.cur+1 > d.limit {
		return MaxDepthError{Limit: d.limit}
	}
	d.cur++
	return nil
}

func (d *Depth) Leave() {
	if d == nil || d.cur == 0 {
		return
	}
	d.cur--
}
