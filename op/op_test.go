package op

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFake = errors.New("uh oh a fake error")

func TestNew(t *testing.T) {
	start := time.Now()
	end := start.Add(2 * time.Second)

	o := New("certificate", "CertUtil: -addstore command FAILED", 5, Fail, errFake, map[string]string{"tool": "certutil"}, start, end)

	assert.Equal(t, "certificate", o.Identifier)
	assert.Equal(t, "CertUtil: -addstore command FAILED", o.Result)
	assert.Equal(t, 5, o.ExitCode)
	assert.Equal(t, Fail, o.Status)
	assert.Equal(t, errFake, o.Error)
	assert.Equal(t, errFake.Error(), o.ErrString)
	assert.Equal(t, 2*time.Second, o.Duration())
	assert.False(t, o.Succeeded())
}

func TestNew_NilError(t *testing.T) {
	o := New("profile", nil, 0, Success, nil, nil, time.Time{}, time.Time{})
	assert.Empty(t, o.ErrString)
	assert.True(t, o.Succeeded())
}

func TestStatusCounts(t *testing.T) {
	testCases := []struct {
		name      string
		ops       []Op
		expect    map[Status]int
		expectErr bool
	}{
		{
			name:   "Test No Ops",
			ops:    nil,
			expect: map[Status]int{},
		},
		{
			name: "Test Mixed Statuses",
			ops: []Op{
				{Identifier: "certificate", Status: Success},
				{Identifier: "profile", Status: Fail},
				{Identifier: "other", Status: Fail},
			},
			expect: map[Status]int{Success: 1, Fail: 2},
		},
		{
			name:      "Test Op Not Run",
			ops:       []Op{{Identifier: "profile"}},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			counts, err := StatusCounts(tc.ops)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expect, counts)
		})
	}
}
