package wrapper

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// makeWorkDir creates an isolated, empty directory for one run under root
// (the system temp dir when root is empty).
func makeWorkDir(root string) (string, error) {
	dir, err := os.MkdirTemp(root, "testwrap-")
	if err != nil {
		return "", err
	}
	// macOS hands out /var/... paths that are symlinks to /private/var/...
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}
	return dir, nil
}

// CopyTree copies the contents of src into dest, creating dest if needed.
// Directories are copied recursively; files keep their mode and modification time.
// Symlinks are followed.
func CopyTree(src, dest string) error {
	if err := os.MkdirAll(dest, 0755); err != nil {
		return err
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		s := filepath.Join(src, entry.Name())
		d := filepath.Join(dest, entry.Name())

		info, err := os.Stat(s)
		if err != nil {
			return err
		}
		if info.IsDir() {
			if err := copyDir(s, d, info); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(s, d, info); err != nil {
			return err
		}
	}
	return nil
}

func copyDir(src, dest string, info os.FileInfo) error {
	if _, err := os.Lstat(dest); err == nil {
		return fmt.Errorf("destination %s already exists", dest)
	}
	if err := os.Mkdir(dest, info.Mode().Perm()|0700); err != nil {
		return err
	}
	if err := CopyTree(src, dest); err != nil {
		return err
	}
	if err := os.Chmod(dest, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dest, info.ModTime(), info.ModTime())
}

func copyFile(src, dest string, info os.FileInfo) error {
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	// Mode is set explicitly because OpenFile is subject to the umask.
	if err := os.Chmod(dest, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dest, info.ModTime(), info.ModTime())
}
