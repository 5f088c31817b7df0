package preflight

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"
)

// statfs returns the bytes available to an unprivileged user on the volume
// holding path. Tests replace it.
var statfs = realStatfs

func realStatfs(path string) (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	return checkDir(name, path, unix.R_OK|unix.W_OK|unix.X_OK, "read/write ok")
}

// CheckReadableDir verifies that the directory exists and can be listed.
func CheckReadableDir(name, path string) Result {
	return checkDir(name, path, unix.R_OK|unix.X_OK, "read ok")
}

func checkDir(name, path string, mode uint32, okDetail string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, okDetail)}
}

// CheckFreeSpace compares need against the space available on the volume
// holding path. A failed statfs is reported as passed with a note, since the
// copy itself will surface any real problem.
func CheckFreeSpace(name, path string, need int64) Result {
	if need <= 0 {
		return Result{Name: name, Passed: true, Detail: "nothing to copy"}
	}
	free, err := statfs(path)
	if err != nil {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (free space unknown: %v)", path, err)}
	}
	want := uint64(need)
	if free < want {
		return Result{Name: name, Detail: fmt.Sprintf("%s needs %s but only %s is free",
			path, humanize.Bytes(want), humanize.Bytes(free))}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s free, %s needed)",
		path, humanize.Bytes(free), humanize.Bytes(want))}
}
