package op

import (
	"fmt"
	"time"
)

// Status describes the result of an op run
type Status string

const (
	// Success means the external tool ran and exited 0.
	Success Status = "success"
	// Fail means the external tool ran to completion and reported a non-zero exit code.
	Fail Status = "fail"
	// Unknown means the tool could not be run to completion (e.g. the asset could not be written or the
	//   process could not be started), so we cannot say whether the system was changed.
	Unknown Status = "unknown"
	// Timeout means the tool was stopped because it ran longer than its configured timeout.
	Timeout Status = "timeout"
)

// Op is the result of a single installer run.
type Op struct {
	Identifier string    `json:"-"`
	Result     any       `json:"result"`
	ExitCode   int       `json:"exit_code"`
	ErrString  string    `json:"error"` // this simplifies json marshaling
	Error      error     `json:"-"`
	Status     Status    `json:"status"`
	Params     any       `json:"params,omitempty"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
}

// New takes a runner's results, returning an Op.
func New(id string, result any, exitCode int, status Status, err error, params any, start, end time.Time) Op {
	errString := ""
	if err != nil {
		errString = err.Error()
	}
	return Op{
		Identifier: id,
		Result:     result,
		ExitCode:   exitCode,
		Error:      err,
		ErrString:  errString,
		Status:     status,
		Params:     params,
		Start:      start,
		End:        end,
	}
}

// Succeeded reports whether the op ran and its tool exited 0.
func (o Op) Succeeded() bool {
	return o.Status == Success
}

// Duration is the wall time between the op's start and end.
func (o Op) Duration() time.Duration {
	return o.End.Sub(o.Start)
}

// StatusCounts takes a slice of ops and returns a map containing sums of each Status
func StatusCounts(ops []Op) (map[Status]int, error) {
	statuses := make(map[Status]int)
	for _, o := range ops {
		if o.Status == "" {
			return nil, fmt.Errorf("unable to build Statuses map, op not run: op=%s", o.Identifier)
		}
		statuses[o.Status]++
	}
	return statuses, nil
}
