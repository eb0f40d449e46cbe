package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-stretch/dsp/stretch"
	"github.com/cwbudde/algo-stretch/dsp/window"
	"github.com/cwbudde/algo-stretch/internal/testutil"
	"github.com/cwbudde/algo-stretch/internal/wavio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI in an empty working directory so no stray .env file
// is picked up.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var stdout, stderr bytes.Buffer

	root := NewRootCommand(&stdout, &stderr)
	root.SetArgs(args)

	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

func writeTone(t *testing.T, dir string, channels, frames, sampleRate int) string {
	t.Helper()

	chans := make([][]float64, channels)
	for c := range chans {
		chans[c] = testutil.Sine(440*float64(c+1), float64(sampleRate), 0.5, frames)
	}

	path := filepath.Join(dir, "in.wav")
	require.NoError(t, wavio.WriteFile(path, chans, sampleRate, 16))

	return path
}

func TestInfoPrintsLatencies(t *testing.T) {
	stdout, _, err := run(t, "info", "--sample-rate", "44100", "--channels", "2")
	require.NoError(t, err)

	assert.Contains(t, stdout, "block           5292")
	assert.Contains(t, stdout, "input latency   2646")
	assert.Contains(t, stdout, "output latency  2646")
	assert.Contains(t, stdout, "result length   49392")
}

func TestInfoCheaperExact(t *testing.T) {
	stdout, _, err := run(t, "info", "--cheaper", "--exact", "-t", "2", "--frames", "1000")
	require.NoError(t, err)

	assert.Contains(t, stdout, "block           4410")
	assert.Contains(t, stdout, "result length   2000")
}

func TestInfoRejectsThreeChannels(t *testing.T) {
	_, _, err := run(t, "info", "--channels", "3")
	require.ErrorIs(t, err, stretch.ErrUnsupportedChannelLayout)
}

func TestProcessExactLength(t *testing.T) {
	dir := t.TempDir()
	in := writeTone(t, dir, 2, 11025, 22050)
	out := filepath.Join(dir, "out.wav")

	stdout, _, err := run(t, "process", "-i", in, "-o", out, "-t", "2", "--exact")
	require.NoError(t, err)
	assert.Contains(t, stdout, "22050 frames")

	got, err := wavio.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, 22050, got.SampleRate)
	require.Len(t, got.Channels, 2)
	assert.Equal(t, 22050, got.Frames())
}

func TestProcessKeepsTail(t *testing.T) {
	dir := t.TempDir()
	in := writeTone(t, dir, 1, 11025, 22050)
	out := filepath.Join(dir, "out.wav")

	_, _, err := run(t, "process", "-i", in, "-o", out, "--semitones", "-3", "--bit-depth", "24")
	require.NoError(t, err)

	got, err := wavio.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, 24, got.BitDepth)
	// round(0.12*22050) = 2646 samples of block: 1323 output + 1323 input latency.
	assert.Equal(t, 11025+2646, got.Frames())
}

func TestProcessRejectsThreeChannels(t *testing.T) {
	dir := t.TempDir()
	in := writeTone(t, dir, 3, 1000, 8000)

	_, _, err := run(t, "process", "-i", in, "-o", filepath.Join(dir, "out.wav"))
	require.ErrorIs(t, err, stretch.ErrUnsupportedChannelLayout)
}

func TestProcessRejectsConflictingPitchFlags(t *testing.T) {
	dir := t.TempDir()
	in := writeTone(t, dir, 1, 1000, 8000)

	_, _, err := run(t, "process", "-i", in, "-o", filepath.Join(dir, "out.wav"),
		"--semitones", "2", "--transpose", "1.5")
	require.Error(t, err)
}

func TestProcessRejectsBadTimeFactor(t *testing.T) {
	dir := t.TempDir()
	in := writeTone(t, dir, 1, 1000, 8000)

	_, _, err := run(t, "process", "-i", in, "-o", filepath.Join(dir, "out.wav"), "-t", "0")
	require.ErrorIs(t, err, stretch.ErrInvalidTimeFactor)
}

func TestProcessLogsLatencyAtDebug(t *testing.T) {
	dir := t.TempDir()
	in := writeTone(t, dir, 1, 2000, 8000)

	_, stderr, err := run(t, "--log-level", "debug", "--log-format", "json",
		"process", "-i", in, "-o", filepath.Join(dir, "out.wav"), "--block", "256")
	require.NoError(t, err)

	assert.Contains(t, stderr, `"msg":"stretch: processing"`)
	assert.Contains(t, stderr, `"input_latency":128`)
	assert.Contains(t, stderr, `"msg":"stretched"`)
}

func TestBenchReportsRuns(t *testing.T) {
	dir := t.TempDir()
	in := writeTone(t, dir, 1, 4000, 8000)

	stdout, _, err := run(t, "bench", "-i", in, "-n", "2", "--block", "512")
	require.NoError(t, err)
	assert.Contains(t, stdout, "runs 2")
}

func TestEnvFileSetsDefaults(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "stretch.env")
	require.NoError(t, os.WriteFile(envFile, []byte("STRETCH_CHEAPER=true\n"), 0o600))

	// Registers a restore of the original state; the file then sets it.
	t.Setenv("STRETCH_CHEAPER", "")
	require.NoError(t, os.Unsetenv("STRETCH_CHEAPER"))

	stdout, _, err := run(t, "--env-file", envFile, "info")
	require.NoError(t, err)
	assert.Contains(t, stdout, "block           4410")
}

func TestProcessWindowFlag(t *testing.T) {
	dir := t.TempDir()
	in := writeTone(t, dir, 1, 2000, 8000)
	out := filepath.Join(dir, "out.wav")

	_, _, err := run(t, "process", "-i", in, "-o", out, "--window", "blackman", "--exact")
	require.NoError(t, err)

	_, _, err = run(t, "process", "-i", in, "-o", out, "--window", "triangle")
	require.ErrorIs(t, err, window.ErrUnknownType)
}
