package hcl

import (
	"errors"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name   string
		path   string
		expect HCL
	}{
		{
			name:   "Empty config is valid",
			path:   "testdata/empty.hcl",
			expect: HCL{},
		},
		{
			name: "Config with every block is valid",
			path: "testdata/full.hcl",
			expect: HCL{
				Certificate: &Tool{
					File:    "~/campus-ca.pem",
					Command: `certutil -f -addstore Root "{file}"`,
					Timeout: "2m",
				},
				Profile: &Tool{
					File:    "campus.xml",
					Command: `netsh wlan add profile filename="{file}" user=current`,
				},
				Platform: &Platform{
					MinMajorVersion: 11,
				},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, err := Parse(tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.expect, h)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name      string
		path      string
		expectLen int
	}{
		{
			name:      "Every validation problem is reported",
			path:      "testdata/invalid.hcl",
			expectLen: 4,
		},
		{
			name: "Syntax errors are reported",
			path: "testdata/syntax.hcl",
		},
		{
			name: "Missing file is reported",
			path: "testdata/missing.hcl",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.path)
			require.Error(t, err)
			assert.ErrorAs(t, err, &ConfigError{})

			if tc.expectLen > 0 {
				var merr *multierror.Error
				require.True(t, errors.As(err, &merr))
				assert.Len(t, merr.Errors, tc.expectLen)
			}
		})
	}
}

func TestTool_TimeoutDuration(t *testing.T) {
	var nilTool *Tool
	d, err := nilTool.TimeoutDuration()
	assert.NoError(t, err)
	assert.Zero(t, d)

	d, err = (&Tool{Timeout: "90s"}).TimeoutDuration()
	assert.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)

	_, err = (&Tool{Timeout: "-1s"}).TimeoutDuration()
	assert.Error(t, err)
}
