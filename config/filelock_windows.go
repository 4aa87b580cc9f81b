//go:build windows

package config

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

// Lock takes an exclusive lock, blocking until no other process holds one.
// Used around state writes so concurrent boards serialize their card state.
func (l *FileLock) Lock() error {
	return l.lockFileEx(windows.LOCKFILE_EXCLUSIVE_LOCK, os.O_RDWR)
}

// RLock takes a shared lock. Any number of processes may hold one at a
// time; blocks only while a writer holds the exclusive lock.
func (l *FileLock) RLock() error {
	// No flags means a shared lock.
	return l.lockFileEx(0, os.O_RDONLY)
}

func (l *FileLock) lockFileEx(flags uint32, mode int) error {
	if l.file != nil {
		return fmt.Errorf("lock already held")
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|mode, 0644)
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}

	// Lock a single byte; the lock file carries no data of its own.
	ol := new(windows.Overlapped)
	err = windows.LockFileEx(
		windows.Handle(f.Fd()),
		flags,
		0,
		1,
		0,
		ol,
	)
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	l.file = f
	return nil
}

// Unlock releases whichever lock is held. Unlocking an unheld lock is a noop.
func (l *FileLock) Unlock() error {
	if l.file == nil {
		return nil
	}

	ol := new(windows.Overlapped)
	err := windows.UnlockFileEx(
		windows.Handle(l.file.Fd()),
		0,
		1,
		0,
		ol,
	)
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}

	if err := l.file.Close(); err != nil {
		return fmt.Errorf("failed to close lock file: %w", err)
	}

	l.file = nil
	return nil
}
