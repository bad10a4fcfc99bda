// Package launcher runs a supervised child process and forwards its output
// to the application logger line by line.
package launcher

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"
)

const (
	// DefaultStopTimeout is how long Stop waits after an interrupt before killing.
	DefaultStopTimeout = 10 * time.Second

	// drainTimeout bounds how long output is read after the child exits.
	// Descendants that inherited the pipes cannot hold Done open past it.
	drainTimeout = 2 * time.Second
)

// Spec describes the child to start.
type Spec struct {
	Name        string
	Binary      string
	Args        []string
	Env         []string
	Stdin       string // written to the child's standard input, then closed
	StopTimeout time.Duration
}

// Process is a running child.
type Process struct {
	spec   Spec
	cmd    *exec.Cmd
	logger *clog.Logger

	done     chan struct{}
	err      error
	stopOnce sync.Once
}

// MongodArgs builds the mongod command line for a port and data directory.
func MongodArgs(port int, dbPath string) []string {
	return []string{"--port", strconv.Itoa(port), "--dbpath", dbPath}
}

// MongoClientArgs builds the shell command line for a local mongod port.
func MongoClientArgs(port int) []string {
	return []string{"--port", strconv.Itoa(port)}
}

// Start launches the child in its own process group. Stdout lines are logged
// at info level and stderr lines at warn level, both tagged with the process
// name.
func Start(spec Spec, logger *clog.Logger) (*Process, error) {
	if spec.Binary == "" {
		return nil, fmt.Errorf("binary is required")
	}
	if spec.Name == "" {
		spec.Name = spec.Binary
	}
	if spec.StopTimeout <= 0 {
		spec.StopTimeout = DefaultStopTimeout
	}

	cmd := exec.Command(spec.Binary, spec.Args...)
	if len(spec.Env) > 0 {
		cmd.Env = append(os.Environ(), spec.Env...)
	}
	if spec.Stdin != "" {
		cmd.Stdin = strings.NewReader(spec.Stdin)
	}
	setProcessGroup(cmd)

	// os.Pipe rather than StdoutPipe: Wait must not depend on the pipes
	// being closed by every descendant.
	outR, outW, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("failed to attach stdout: %w", err)
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		closeAll(outR, outW)
		return nil, fmt.Errorf("failed to attach stderr: %w", err)
	}
	cmd.Stdout = outW
	cmd.Stderr = errW

	err = cmd.Start()
	// the child holds its own copies of the write ends
	closeAll(outW, errW)
	if err != nil {
		closeAll(outR, errR)
		return nil, fmt.Errorf("failed to start %s: %w", spec.Name, err)
	}

	p := &Process{
		spec:   spec,
		cmd:    cmd,
		logger: logger.With("process", spec.Name, "pid", cmd.Process.Pid),
		done:   make(chan struct{}),
	}
	p.logger.Info("started", "args", spec.Args)

	var streams sync.WaitGroup
	streams.Add(2)
	go p.forward(&streams, outR, clog.InfoLevel)
	go p.forward(&streams, errR, clog.WarnLevel)

	go func() {
		p.err = cmd.Wait()

		drained := make(chan struct{})
		go func() {
			streams.Wait()
			close(drained)
		}()
		select {
		case <-drained:
		case <-time.After(drainTimeout):
			p.logger.Warn("output still open after exit, closing")
			closeAll(outR, errR)
			<-drained
		}
		closeAll(outR, errR)

		p.logger.Info("exited", "code", ExitCode(p.err))
		close(p.done)
	}()

	return p, nil
}

func closeAll(files ...*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}

func (p *Process) forward(wg *sync.WaitGroup, r io.Reader, level clog.Level) {
	defer wg.Done()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		p.logger.Log(level, scanner.Text())
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, os.ErrClosed) {
		p.logger.Warn("output stream failed", "err", err)
	}
}

// Pid returns the child's process id.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Done is closed once the child has exited and its output is flushed.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the child exits and returns its exit error.
func (p *Process) Wait() error {
	<-p.done
	return p.err
}

// Stop interrupts the child's process group and kills the group if the child
// has not exited within the stop timeout. It returns the child's exit error.
func (p *Process) Stop() error {
	p.stopOnce.Do(func() {
		select {
		case <-p.done:
			return
		default:
		}

		p.logger.Info("stopping")
		if err := interrupt(p.cmd.Process); err != nil {
			// Force kill if interrupt fails
			_ = kill(p.cmd.Process)
		}

		select {
		case <-p.done:
		case <-time.After(p.spec.StopTimeout):
			p.logger.Warn("did not stop in time, killing", "timeout", p.spec.StopTimeout)
			_ = kill(p.cmd.Process)
		}
	})
	return p.Wait()
}

// WaitForPort polls addr until it accepts a TCP connection or ctx ends.
func WaitForPort(ctx context.Context, addr string) error {
	var d net.Dialer
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err == nil {
			return conn.Close()
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%s not reachable: %w", addr, ctx.Err())
		case <-ticker.C:
		}
	}
}

// ExitCode maps a Wait error to a process exit status: 0 for success, the
// child's code when it exited, and -1 when it was killed by a signal or
// could not be waited for.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
