package driver

import (
	"errors"
	"os"
	"path/filepath"
)

const defaultPerm os.FileMode = 0o644

// checkDestination validates output before anything is written and returns
// the permission bits the new file should get.
func checkDestination(input, output string, overwrite bool) (os.FileMode, error) {
	if samePath(input, output) && !overwrite {
		return 0, &DestinationConflictError{Path: output}
	}

	parent := filepath.Dir(output)
	pst, err := os.Stat(parent)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return 0, &PathError{Path: output, Reason: "destination directory does not exist"}
	case err != nil:
		return 0, &PathError{Path: output, Reason: "cannot access destination directory", Err: err}
	case !pst.IsDir():
		return 0, &PathError{Path: output, Reason: "destination parent is not a directory"}
	}

	perm := defaultPerm
	if ist, err := os.Stat(input); err == nil {
		perm = ist.Mode().Perm()
	}
	ost, err := os.Stat(output)
	switch {
	case err == nil && ost.IsDir():
		return 0, &PathError{Path: output, Reason: "destination is a directory"}
	case err == nil:
		// режим существующего файла сохраняется
		perm = ost.Mode().Perm()
	case !errors.Is(err, os.ErrNotExist):
		return 0, &PathError{Path: output, Reason: "cannot access destination", Err: err}
	}
	return perm, nil
}

// writeAtomic writes data to a temp file next to path and renames it over
// path. On failure the temp file is removed and path is left as it was.
func writeAtomic(path string, data []byte, perm os.FileMode) error {
	if perm == 0 {
		perm = defaultPerm
	}
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".docweave-*")
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	tmp := f.Name()
	fail := func(op string, err error) error {
		_ = f.Close()
		_ = os.Remove(tmp)
		return &IOError{Op: op, Path: path, Err: err}
	}

	if _, err := f.Write(data); err != nil {
		return fail("write", err)
	}
	if err := f.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := f.Chmod(perm); err != nil {
		return fail("chmod", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return &IOError{Op: "close", Path: path, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &IOError{Op: "rename", Path: path, Err: err}
	}
	return nil
}
