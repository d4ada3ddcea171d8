package process

import (
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// lookPath resolves a bare command name against the PATH the child will see.
// It returns "" when name has a directory part, env sets no PATH, or no
// absolute PATH entry holds an executable named name.
func lookPath(name string, env []string) string {
	if name == "" || strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		return ""
	}
	path, ok := envValue(env, "PATH")
	if !ok {
		return ""
	}
	for _, dir := range filepath.SplitList(path) {
		if !filepath.IsAbs(dir) {
			continue
		}
		if p, err := exec.LookPath(filepath.Join(dir, name)); err == nil {
			return p
		}
	}
	return ""
}

// envValue returns the last value of key in env, matching the entry exec uses.
func envValue(env []string, key string) (string, bool) {
	for i := len(env) - 1; i >= 0; i-- {
		k, v, ok := strings.Cut(env[i], "=")
		if !ok {
			continue
		}
		if k == key || (runtime.GOOS == "windows" && strings.EqualFold(k, key)) {
			return v, true
		}
	}
	return "", false
}
