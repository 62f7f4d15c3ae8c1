package browser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommand(t *testing.T) {
	const url = "https://example.com/jobs/1"

	cases := []struct {
		goos string
		want []string
	}{
		{goos: "darwin", want: []string{"open", url}},
		{goos: "linux", want: []string{"xdg-open", url}},
		{goos: "windows", want: []string{"cmd", "/c", "start", "", url}},
	}

	for _, tc := range cases {
		t.Run(tc.goos, func(t *testing.T) {
			cmd, err := command(tc.goos, url)
			require.NoError(t, err)
			require.Equal(t, tc.want, cmd.Args)
		})
	}
}

func TestCommand_Unsupported(t *testing.T) {
	_, err := command("plan9", "https://example.com")
	require.Error(t, err)
}
