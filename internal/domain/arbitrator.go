package domain

import "time"

type ArbitratorRecord struct {
	UserID                string
	Active                bool
	CasesAssigned         uint32
	CasesResolved         uint32
	AvgResolutionTime     time.Duration
	FeesEarned            uint64
	RegisteredAt          time.Time
	LastCaseResolvedAt    time.Time
}

// MaxConcurrentCases caps open assignments per arbitrator.
const MaxConcurrentCases = 20

func (a *ArbitratorRecord) OpenCases() uint32 {
	return a.CasesAssigned - a.CasesResolved
}

func (a *ArbitratorRecord) CanTakeCase() bool {
	return a.Active && a.OpenCases() < MaxConcurrentCases
}

// RecordResolution folds one resolved case into the running average
// resolution time and credits the earned fee.
func (a *ArbitratorRecord) RecordResolution(took time.Duration, fee uint64, now time.Time) {
	resolved := a.CasesResolved
	a.AvgResolutionTime = time.Duration(
		(int64(a.AvgResolutionTime)*int64(resolved) + int64(took)) / int64(resolved+1),
	)
	a.CasesResolved++
	a.FeesEarned += fee
	a.LastCaseResolvedAt = now
}

type ArbitratorRepository interface {
	GetArbitrator(userID string) (*ArbitratorRecord, error)
	GetOrCreateArbitrator(userID string, now time.Time) (*ArbitratorRecord, error)
	SaveArbitrator(record *ArbitratorRecord) error
	ListActiveArbitrators() ([]*ArbitratorRecord, error)
}
