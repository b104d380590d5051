package build

import (
	"testing"

	"github.com/btcsuite/btclog"
	"github.com/stretchr/testify/require"
)

func newTestWriter() *RotatingLogWriter {
	w := NewRotatingLogWriter()
	for _, tag := range []string{"NETP", "DISC", "GLXD"} {
		w.RegisterSubLogger(tag, w.GenSubLogger(tag, nil))
	}

	return w
}

// TestParseAndSetDebugLevels checks the global and per-subsystem forms of the
// debug level string.
func TestParseAndSetDebugLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		level   string
		want    map[string]btclog.Level
		wantErr bool
	}{
		{
			name:  "global",
			level: "debug",
			want: map[string]btclog.Level{
				"NETP": btclog.LevelDebug,
				"DISC": btclog.LevelDebug,
				"GLXD": btclog.LevelDebug,
			},
		},
		{
			name:  "global and subsystem",
			level: "warn,NETP=trace",
			want: map[string]btclog.Level{
				"NETP": btclog.LevelTrace,
				"DISC": btclog.LevelWarn,
				"GLXD": btclog.LevelWarn,
			},
		},
		{
			name:    "unknown level",
			level:   "loud",
			wantErr: true,
		},
		{
			name:    "unknown subsystem",
			level:   "info,XXXX=debug",
			wantErr: true,
		},
		{
			name:    "malformed pair",
			level:   "info,NETP=debug=trace",
			wantErr: true,
		},
		{
			name:    "missing separator",
			level:   "info,NETP",
			wantErr: true,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			w := newTestWriter()
			err := ParseAndSetDebugLevels(test.level, w)
			if test.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			for tag, level := range test.want {
				require.Equal(t, level, w.SubLoggers()[tag].Level(),
					tag)
			}
		})
	}
}

// TestSupportedSubsystems asserts that subsystems are listed sorted.
func TestSupportedSubsystems(t *testing.T) {
	t.Parallel()

	w := newTestWriter()
	require.Equal(t, []string{"DISC", "GLXD", "NETP"},
		w.SupportedSubsystems())
}

// TestShutdownLogger asserts that critical messages request a shutdown
// exactly once.
func TestShutdownLogger(t *testing.T) {
	t.Parallel()

	var called int
	w := NewRotatingLogWriter()
	logger := w.GenSubLogger("TEST", func() { called++ })
	logger.SetLevel(btclog.LevelOff)

	logger.Infof("not critical")
	require.Zero(t, called)

	logger.Criticalf("boom %d", 1)
	require.Equal(t, 1, called)

	logger.Critical("boom")
	require.Equal(t, 1, called)
}

// TestDeployment checks the build flavor names and the dev build check.
func TestDeployment(t *testing.T) {
	t.Parallel()

	require.Equal(t, "development", Development.String())
	require.Equal(t, "production", Production.String())
	require.Equal(t, "unknown", DeploymentType(9).String())
	require.Equal(t, Deployment == Development, IsDevBuild())
}

// TestInitLogRotatorCompressor rejects unknown compressors and accepts the
// supported ones.
func TestInitLogRotatorCompressor(t *testing.T) {
	t.Parallel()

	require.True(t, SupportedLogCompressor(Gzip))
	require.True(t, SupportedLogCompressor(Zstd))
	require.False(t, SupportedLogCompressor("lz4"))

	cfg := DefaultFileLoggerConfig()
	cfg.Compressor = "lz4"

	w := NewRotatingLogWriter()
	err := w.InitLogRotator(cfg, t.TempDir()+"/galaxyd.log")
	require.ErrorContains(t, err, "unknown log compressor")
	require.NoError(t, w.Close())

	cfg.Compressor = Zstd
	w = NewRotatingLogWriter()
	require.NoError(t, w.InitLogRotator(cfg, t.TempDir()+"/galaxyd.log"))
	require.NoError(t, w.Close())
}
