//go:build !windows

// Package stderr captures writes that C audio libraries (ALSA, minimp3)
// make directly to file descriptor 2. Left alone they bypass os.Stderr
// and corrupt the terminal layout while the TUI is running.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"syscall"

	zlog "github.com/rs/zerolog/log"
)

var (
	origStderr int
	pipeRead   *os.File
	pipeWrite  *os.File
	started    bool
)

// Start redirects fd 2 into a pipe whose lines are forwarded to the
// application log. Must run before any C audio library initializes.
func Start() error {
	if started {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	origStderr, err = syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(origStderr)
		r.Close()
		w.Close()
		return err
	}

	pipeRead = r
	pipeWrite = w
	started = true

	go func() {
		scanner := bufio.NewScanner(pipeRead)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				zlog.Warn().Str("source", "native").Msg(line)
			}
		}
	}()

	return nil
}

// WriteOriginal writes directly to the original stderr, bypassing
// capture. Used for fatal errors that must reach the terminal.
func WriteOriginal(msg string) {
	if origStderr > 0 {
		_, _ = syscall.Write(origStderr, []byte(msg))
	}
}

// Stop restores the original stderr on program exit.
func Stop() {
	if !started {
		return
	}
	_ = syscall.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = syscall.Close(origStderr)
	pipeWrite.Close()
	pipeRead.Close()
	started = false
}
