package analysis

// VarianceStatus classifies how a project's actual share of time compares
// to its budget target.
type VarianceStatus string

const (
	StatusBalanced      VarianceStatus = "Balanced"
	StatusOverInvested  VarianceStatus = "Over-invested"
	StatusUnderInvested VarianceStatus = "Under-invested"
)

// VarianceResult is one project's slice of the variance report.
type VarianceResult struct {
	ProjectID        string
	ProjectName      string
	TargetPercentage int
	ActualPercentage float64
	Variance         float64
	Status           VarianceStatus
}
