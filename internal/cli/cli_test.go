package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/dagseq/internal/app"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name           string
		args           []string
		expectExit     bool
		expectErr      bool
		expectedConfig *app.Config
	}{
		{
			name: "happy path with all flags",
			args: []string{
				"-file", "/test/seq",
				"--log-level=debug",
				"--log-format=text",
				"--max-concurrency=5",
				"--verbose",
				"--healthcheck-port=8080",
			},
			expectedConfig: &app.Config{
				SequencePaths:   []string{"/test/seq"},
				MaxConcurrency:  5,
				Verbose:         true,
				LogLevel:        "debug",
				LogFormat:       "text",
				HealthcheckPort: 8080,
			},
		},
		{
			name: "shorthand flag and defaults",
			args: []string{"-f", "/short/path"},
			expectedConfig: &app.Config{
				SequencePaths: []string{"/short/path"},
				LogLevel:      "info",
				LogFormat:     "json",
			},
		},
		{
			name: "positional argument for path",
			args: []string{"/positional/path"},
			expectedConfig: &app.Config{
				SequencePaths: []string{"/positional/path"},
				LogLevel:      "info",
				LogFormat:     "json",
			},
		},
		{
			name:       "no path prints usage and exits cleanly",
			args:       []string{},
			expectExit: true,
		},
		{
			name:      "invalid log-format",
			args:      []string{"-file", "/x", "--log-format=xml"},
			expectErr: true,
		},
		{
			name:      "invalid log-level",
			args:      []string{"-file", "/x", "--log-level=verbose"},
			expectErr: true,
		},
		{
			name:       "help flag exits cleanly",
			args:       []string{"-help"},
			expectExit: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			cfg, shouldExit, err := Parse(tc.args, &out)

			if tc.expectErr {
				require.Error(t, err)
				var exitErr *ExitError
				require.ErrorAs(t, err, &exitErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expectExit, shouldExit)
			if tc.expectExit {
				require.Nil(t, cfg)
				return
			}
			require.Equal(t, tc.expectedConfig, cfg)
		})
	}
}
