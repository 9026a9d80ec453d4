package debugger

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/trebuchet-org/scide/internal/domain"
	"github.com/trebuchet-org/scide/internal/metrics"
)

// killTimeout is how long a stopped server may take before it is killed
const killTimeout = 5 * time.Second

type serverSpec struct {
	binary string
	args   []string
	dir    string
}

type serverProcess struct {
	cmd  *exec.Cmd
	done chan struct{}
}

// StartServer launches the debugger process. Its stdout and stderr lines are
// published on the debugger topics, and its exit code on debugger:close.
func (c *Client) StartServer(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.process != nil {
		return domain.ErrDebuggerRunning
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// The process outlives the request that started it, so ctx is not bound to it
	cmd := exec.Command(c.server.binary, c.server.args...)
	cmd.Dir = c.server.dir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return &domain.DebuggerError{Op: "start", Reason: err.Error()}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return &domain.DebuggerError{Op: "start", Reason: err.Error()}
	}

	if err := cmd.Start(); err != nil {
		return &domain.DebuggerError{Op: "start", Reason: err.Error()}
	}

	proc := &serverProcess{cmd: cmd, done: make(chan struct{})}
	c.process = proc
	metrics.DebuggerRunning.Set(1)

	c.log.Info("debugger server started", "binary", c.server.binary, "args", c.server.args, "pid", cmd.Process.Pid)

	var pumps sync.WaitGroup
	pumps.Add(2)
	go c.pump(&pumps, stdout, domain.TopicDebuggerOutput)
	go c.pump(&pumps, stderr, domain.TopicDebuggerError)

	go func() {
		// Pipes must be drained before Wait closes them
		pumps.Wait()
		waitErr := cmd.Wait()

		code := cmd.ProcessState.ExitCode()
		c.log.Info("debugger server exited", "code", code, "error", waitErr)

		c.mu.Lock()
		if c.process == proc {
			c.process = nil
		}
		c.mu.Unlock()
		metrics.DebuggerRunning.Set(0)

		c.emit(domain.TopicDebuggerClose, code)
		close(proc.done)
	}()

	return nil
}

func (c *Client) pump(wg *sync.WaitGroup, r io.Reader, topic domain.Topic) {
	defer wg.Done()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		c.emit(topic, scanner.Text())
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, os.ErrClosed) {
		c.log.Warn("debugger stream read failed", "topic", topic, "error", err)
	}
}

// StopServer signals the debugger process and waits for it to exit. A nil
// signal sends SIGTERM; a process still alive after killTimeout is killed.
// Stopping a server that is not running does nothing.
func (c *Client) StopServer(ctx context.Context, sig os.Signal) error {
	c.mu.Lock()
	proc := c.process
	c.mu.Unlock()

	if proc == nil {
		return nil
	}
	if sig == nil {
		sig = syscall.SIGTERM
	}

	c.log.Info("stopping debugger server", "pid", proc.cmd.Process.Pid, "signal", sig)

	if err := proc.cmd.Process.Signal(sig); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			<-proc.done
			return nil
		}
		if err := proc.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			return &domain.DebuggerError{Op: "stop", Reason: fmt.Sprintf("failed to kill process: %v", err)}
		}
	}

	timer := time.NewTimer(killTimeout)
	defer timer.Stop()

	select {
	case <-proc.done:
		return nil
	case <-timer.C:
		// Force kill if the signal didn't work in time
		_ = proc.cmd.Process.Kill()
		<-proc.done
		return nil
	case <-ctx.Done():
		_ = proc.cmd.Process.Kill()
		<-proc.done
		return ctx.Err()
	}
}

// Running reports whether the server process is alive
func (c *Client) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.process != nil
}
