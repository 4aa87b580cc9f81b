package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

var logFileName = filepath.Join(os.TempDir(), "gridboard.log")

var (
	// InfoLog logs informational messages.
	InfoLog *log.Logger = log.New(io.Discard, "", 0)
	// WarningLog logs recoverable problems (malformed card sizes, stale state).
	WarningLog *log.Logger = log.New(io.Discard, "", 0)
	// ErrorLog logs errors.
	ErrorLog *log.Logger = log.New(io.Discard, "", 0)

	globalLogFile *os.File
	enabled       bool
)

// Initialize sets up file logging. Everything is logged to a file in the
// temp dir since stdout belongs to the TUI. Call Close on shutdown.
func Initialize() {
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		// Loggers stay as no-ops; the UI must keep working without a log file.
		return
	}

	flags := log.Ldate | log.Ltime | log.Lshortfile
	InfoLog = log.New(f, "INFO: ", flags)
	WarningLog = log.New(f, "WARNING: ", flags)
	ErrorLog = log.New(f, "ERROR: ", flags)
	globalLogFile = f
	enabled = true

	InitDebug()
}

// Close flushes and closes the log file. If nothing was written the file is
// removed so /tmp does not accumulate empty logs.
func Close() {
	CloseDebug()

	if globalLogFile == nil {
		return
	}
	info, err := globalLogFile.Stat()
	_ = globalLogFile.Close()
	if err == nil && info.Size() == 0 {
		_ = os.Remove(logFileName)
	} else if err == nil {
		fmt.Println("wrote logs to " + logFileName)
	}
	globalLogFile = nil
	enabled = false
}

// Path returns the log file location.
func Path() string {
	return logFileName
}
