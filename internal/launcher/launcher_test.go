package launcher

import (
	"bytes"
	"context"
	"net"
	"os/exec"
	"testing"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shell(t *testing.T) string {
	t.Helper()
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	return sh
}

func testLogger(buf *bytes.Buffer) *clog.Logger {
	return clog.NewWithOptions(buf, clog.Options{Level: clog.DebugLevel})
}

func TestStartForwardsOutput(t *testing.T) {
	var buf bytes.Buffer
	p, err := Start(Spec{
		Name:   "echoer",
		Binary: shell(t),
		Args:   []string{"-c", "echo ready on port; echo disk low 1>&2; exit 3"},
	}, testLogger(&buf))
	require.NoError(t, err)

	err = p.Wait()
	require.Error(t, err)
	assert.Equal(t, 3, ExitCode(err))

	out := buf.String()
	assert.Contains(t, out, "ready on port")
	assert.Contains(t, out, "disk low")
	assert.Contains(t, out, "process=echoer")
}

func TestStopInterruptsChild(t *testing.T) {
	var buf bytes.Buffer
	p, err := Start(Spec{
		Binary:      shell(t),
		Args:        []string{"-c", "sleep 30"},
		StopTimeout: 2 * time.Second,
	}, testLogger(&buf))
	require.NoError(t, err)
	assert.Positive(t, p.Pid())

	stopped := make(chan error, 1)
	go func() { stopped <- p.Stop() }()

	select {
	case err := <-stopped:
		assert.Error(t, err)
		assert.NotEqual(t, 0, ExitCode(err))
	case <-time.After(5 * time.Second):
		t.Fatal("process did not stop")
	}

	// a second Stop is a no-op
	assert.Error(t, p.Stop())
}

func TestStopReachesGrandchildren(t *testing.T) {
	var buf bytes.Buffer
	p, err := Start(Spec{
		Binary:      shell(t),
		Args:        []string{"-c", "sleep 30 & sleep 30; wait"},
		StopTimeout: 2 * time.Second,
	}, testLogger(&buf))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kill(p.cmd.Process) })

	stopped := make(chan error, 1)
	go func() { stopped <- p.Stop() }()

	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("process group did not stop")
	}
}

func TestDoneDoesNotWaitForLeftoverOutput(t *testing.T) {
	var buf bytes.Buffer
	p, err := Start(Spec{
		Binary: shell(t),
		Args:   []string{"-c", "echo parent done; sleep 30 & exit 0"},
	}, testLogger(&buf))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kill(p.cmd.Process) })

	select {
	case <-p.Done():
		assert.NoError(t, p.Wait())
	case <-time.After(drainTimeout + 3*time.Second):
		t.Fatal("Done waited for the background sleep")
	}
	assert.Contains(t, buf.String(), "parent done")
}

func TestStdinIsWritten(t *testing.T) {
	var buf bytes.Buffer
	p, err := Start(Spec{
		Name:   "shell",
		Binary: shell(t),
		Args:   []string{"-c", `read line; echo "got $line"`},
		Stdin:  "use admin\n",
	}, testLogger(&buf))
	require.NoError(t, err)

	require.NoError(t, p.Wait())
	assert.Contains(t, buf.String(), "got use admin")
}

func TestWaitForPort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, WaitForPort(ctx, addr))

	require.NoError(t, ln.Close())
	ctx, cancel = context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	assert.Error(t, WaitForPort(ctx, addr))
}

func TestStartMissingBinary(t *testing.T) {
	var buf bytes.Buffer
	_, err := Start(Spec{Binary: "definitely-not-a-real-binary-xyz"}, testLogger(&buf))
	assert.Error(t, err)

	_, err = Start(Spec{}, testLogger(&buf))
	assert.Error(t, err)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, -1, ExitCode(assert.AnError))
}

func TestMongodArgs(t *testing.T) {
	assert.Equal(t, []string{"--port", "27019", "--dbpath", "/data/db"}, MongodArgs(27019, "/data/db"))
	assert.Equal(t, []string{"--port", "27019"}, MongoClientArgs(27019))
}
