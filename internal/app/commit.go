package app

import (
	"fmt"
	"time"

	histerrors "github.com/chazuruo/histclean/internal/errors"
)

// BackupLayout is the time layout of the backup file suffix, followed by
// the zero-padded milliseconds and "ms".
const BackupLayout = "2006-01-02-15h04m05s"

// BackupPath returns the backup file name for path taken at now, e.g.
// "/home/me/.zsh_history.2024-03-01-14h05m09s042ms".
func BackupPath(path string, now time.Time) string {
	ms := now.Nanosecond() / int(time.Millisecond)
	return fmt.Sprintf("%s.%s%03dms", path, now.Format(BackupLayout), ms)
}

// Commit writes data to path. When backupPath is not empty the original is
// first copied there; if the copy fails path is left untouched.
func Commit(fs FileSystem, path string, data []byte, backupPath string) error {
	if backupPath != "" {
		if err := fs.CopyFile(path, backupPath); err != nil {
			return &histerrors.IOError{Op: "backup", Path: backupPath, Err: err}
		}
	}

	if err := fs.WriteFile(path, data); err != nil {
		return &histerrors.IOError{Op: "write", Path: path, Err: err}
	}

	return nil
}
