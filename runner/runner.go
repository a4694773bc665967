package runner

import (
	"encoding/json"

	"github.com/hashicorp/go-hclog"

	"github.com/campusnet/eduroam-installer/op"
)

// Runner runs one installation step.
type Runner interface {
	ID() string
	Run() op.Op
}

// Params takes a Runner and returns a map of its public fields
func Params(r Runner) map[string]interface{} {
	var inInterface map[string]interface{}
	inrec, err := json.Marshal(&r)
	if err != nil {
		hclog.L().Error("runner.Params failed to serialize params", "runner", r.ID(), "error", err)
	}
	_ = json.Unmarshal(inrec, &inInterface)
	return inInterface
}
