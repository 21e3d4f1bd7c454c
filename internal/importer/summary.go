package importer

import "fmt"

// Summary tracks per-dataset statistics for one import run. It is transient
// operator-report state, never persisted.
type Summary struct {
	Dataset       string
	Path          string
	Processed     int
	Created       int
	Updated       int
	Skipped       int
	MissingUsers  int
	Errors        int
	ExpectedTotal int
	// FinalTotal is the table row count after the dataset ran; nil when the
	// dataset has no single backing table.
	FinalTotal *int64
}

// Message renders the human-readable summary line shown to the operator.
func (s *Summary) Message() string {
	finalCount := "n/a"
	if s.FinalTotal != nil {
		finalCount = fmt.Sprintf("%d", *s.FinalTotal)
	}
	return fmt.Sprintf(
		"[%s] %d/%d processed, %d created, %d updated, %d skipped, %d missing-user, %d errors. DB total: %s",
		s.Dataset, s.Processed, s.ExpectedTotal, s.Created, s.Updated,
		s.Skipped, s.MissingUsers, s.Errors, finalCount,
	)
}

func newSummary(dataset, path string, expected int) *Summary {
	return &Summary{Dataset: dataset, Path: path, ExpectedTotal: expected}
}
