package config

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"github.com/user/jobboard/internal/listing"
)

func TestLoad_Defaults(t *testing.T) {
	defer viper.Reset()

	dataDir := t.TempDir()
	t.Setenv("JOBBOARD_DATA_DIR", dataDir)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, dataDir, cfg.DataDir)
	require.Equal(t, DefaultEndpoint, cfg.Source.Endpoint)
	require.Equal(t, DefaultSubmitURL, cfg.SubmitURL)
	require.Equal(t, time.Duration(0), cfg.Source.Timeout)
	require.Equal(t, listing.OthersIncludePromoted, cfg.Policy())
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, filepath.Join(dataDir, "jobboard.log"), cfg.Log.File)
}

func TestLoad_EnvOverrides(t *testing.T) {
	defer viper.Reset()

	t.Setenv("JOBBOARD_DATA_DIR", t.TempDir())
	t.Setenv("JOBBOARD_ENDPOINT", "https://records.example.com/v0/jobs")
	t.Setenv("JOBBOARD_TOKEN", "keyTest123")
	t.Setenv("JOBBOARD_TIMEOUT", "5s")
	t.Setenv("JOBBOARD_LISTING_OTHERS", "exclude")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "https://records.example.com/v0/jobs", cfg.Source.Endpoint)
	require.Equal(t, "keyTest123", cfg.Source.Token.Reveal())
	require.Equal(t, 5*time.Second, cfg.Source.Timeout)
	require.Equal(t, listing.OthersExcludePromoted, cfg.Policy())
}

func TestLoad_RejectsBadPolicy(t *testing.T) {
	defer viper.Reset()

	t.Setenv("JOBBOARD_DATA_DIR", t.TempDir())
	t.Setenv("JOBBOARD_LISTING_OTHERS", "sometimes")

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name     string
		endpoint string
		others   string
		wantErr  bool
	}{
		{name: "valid", endpoint: DefaultEndpoint, others: "include"},
		{name: "relative endpoint", endpoint: "/v0/jobs", others: "include", wantErr: true},
		{name: "empty endpoint", endpoint: "", others: "include", wantErr: true},
		{name: "exclude policy", endpoint: DefaultEndpoint, others: "EXCLUDE"},
		{name: "unknown policy", endpoint: DefaultEndpoint, others: "both", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{
				Source:  SourceConfig{Endpoint: tc.endpoint},
				Listing: ListingConfig{Others: tc.others},
			}
			err := cfg.Validate()
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSecret_Redacts(t *testing.T) {
	s := Secret("keyXhVoImZrZIEGKy")

	require.Equal(t, "[redacted]", s.String())
	require.Equal(t, "[redacted]", fmt.Sprintf("%v", s))
	require.NotContains(t, fmt.Sprintf("%#v", s), "keyX")

	text, err := s.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "[redacted]", string(text))

	require.Equal(t, "", Secret("").String())
}
