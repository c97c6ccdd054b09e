package testing

import "time"

// Status is the outcome of a single test.
type Status int

const (
	StatusPassed Status = iota
	StatusFailed
	StatusSkipped
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "PASS"
	case StatusFailed:
		return "FAIL"
	case StatusSkipped:
		return "SKIP"
	case StatusError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// AssertionError describes one failed assertion or explicit fail() call.
type AssertionError struct {
	Message string
	File    string
}

// TestResult is the result of one test function.
type TestResult struct {
	Name       string
	Status     Status
	Duration   time.Duration
	Error      error
	Failures   []AssertionError
	Logs       []string
	SkipReason string
}

// FileResult holds the results of every test in one file. CompileErr is set
// when the file could not be decoded, transpiled or loaded, in which case
// Tests is empty.
type FileResult struct {
	Filename   string
	CompileErr error
	Tests      []*TestResult
}

// Summary aggregates the results of a run.
type Summary struct {
	Files    []*FileResult
	Duration time.Duration

	Passed  int
	Failed  int
	Skipped int
	Errors  int
}

// ComputeTotals recounts the per-status totals from Files.
func (s *Summary) ComputeTotals() {
	s.Passed, s.Failed, s.Skipped, s.Errors = 0, 0, 0, 0
	for _, f := range s.Files {
		if f.CompileErr != nil {
			s.Errors++
		}
		for _, t := range f.Tests {
			switch t.Status {
			case StatusPassed:
				s.Passed++
			case StatusFailed:
				s.Failed++
			case StatusSkipped:
				s.Skipped++
			case StatusError:
				s.Errors++
			}
		}
	}
}

// Success reports whether nothing failed or errored.
func (s *Summary) Success() bool {
	return s.Failed == 0 && s.Errors == 0
}
