package budget

import (
	"errors"
	"time"
)

var (
	ErrInvalidTarget   = errors.New("target percentage must be between 0 and 100")
	ErrProjectNotFound = errors.New("project not found")
)

// Period is one entry of a project's budget history: the target share of
// total logged time, valid over the half-open interval [ValidFrom, ValidTo).
// A nil ValidTo marks the current target; a project has at most one such
// period at any instant.
type Period struct {
	ID               int
	ProjectID        string
	TargetPercentage int
	ValidFrom        time.Time
	ValidTo          *time.Time
}

// Current reports whether this period is the open one.
func (p Period) Current() bool {
	return p.ValidTo == nil
}
