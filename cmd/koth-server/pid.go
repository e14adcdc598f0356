package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// pidFile is a PID file owned by this process, optionally flock'ed so a
// second server instance refuses to start
type pidFile struct {
	path   string
	file   *os.File
	locked bool
}

// acquirePIDFile writes the current PID to path. An existing file is only
// reused when no live process is named in it. With lock set, the file is also
// flock'ed for the lifetime of the server.
func acquirePIDFile(path string, lock bool) (*pidFile, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if errors.Is(err, os.ErrExist) {
		if err := checkStalePID(path); err != nil {
			return nil, err
		}
		file, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open PID file: %w", err)
	}

	p := &pidFile{path: path, file: file}

	if lock {
		if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
			file.Close()
			if errors.Is(err, syscall.EWOULDBLOCK) {
				return nil, fmt.Errorf("cannot acquire lock: another instance is running")
			}
			return nil, fmt.Errorf("lock failed: %w", err)
		}
		p.locked = true
	}

	if _, err := fmt.Fprintf(file, "%d\n", os.Getpid()); err != nil {
		p.Release()
		return nil, fmt.Errorf("cannot write PID: %w", err)
	}
	if err := file.Sync(); err != nil {
		p.Release()
		return nil, fmt.Errorf("cannot sync PID file: %w", err)
	}

	return p, nil
}

// Release unlocks the PID file and removes it if it still names this process
func (p *pidFile) Release() {
	if p.locked {
		syscall.Flock(int(p.file.Fd()), syscall.LOCK_UN)
	}
	p.file.Close()

	if pid, err := readPID(p.path); err == nil && pid == os.Getpid() {
		os.Remove(p.path)
	}
}

func readPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("corrupted PID file (contains: %q)", data)
	}
	return pid, nil
}

// checkStalePID fails unless the PID file names a process that no longer exists
func checkStalePID(path string) error {
	pid, err := readPID(path)
	if err != nil {
		return fmt.Errorf("cannot use existing PID file: %w", err)
	}

	// FindProcess never fails on Unix; signal 0 probes for existence
	proc, _ := os.FindProcess(pid)
	err = proc.Signal(syscall.Signal(0))
	switch {
	case err == nil:
		return fmt.Errorf("PID file names running process %d", pid)
	case errors.Is(err, os.ErrProcessDone), errors.Is(err, syscall.ESRCH):
		return nil
	default:
		return fmt.Errorf("process %d exists but cannot verify ownership: %v", pid, err)
	}
}
