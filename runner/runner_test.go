package runner

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusnet/eduroam-installer/assets"
	"github.com/campusnet/eduroam-installer/op"
)

var (
	errFake        = errors.New("uh oh a fake error")
	_       Runner = MockRunner{}
)

type MockRunner struct {
	id    string
	Param bool `json:"param"`
}

func (r MockRunner) ID() string {
	return r.id
}

func (r MockRunner) Run() op.Op {
	return op.New(r.id, "mock output", 1, op.Fail, errFake, Params(r), time.Time{}, time.Time{})
}

func TestParams(t *testing.T) {
	r := MockRunner{id: "mock", Param: true}
	o := r.Run()

	assert.Equal(t, map[string]interface{}{"param": true}, o.Params)
	assert.Equal(t, errFake.Error(), o.ErrString)
}

func TestParams_Installer(t *testing.T) {
	i, err := NewInstaller(InstallerConfig{
		ID:      ProfileID,
		Asset:   assets.Profile(),
		Command: NetshCommand,
		Timeout: 90 * time.Second,
	})
	require.NoError(t, err)

	params := Params(i)

	// asset bytes never end up in the params
	assert.Equal(t, map[string]interface{}{
		"id":      ProfileID,
		"command": NetshCommand,
		"timeout": "1m30s",
	}, params)
}
