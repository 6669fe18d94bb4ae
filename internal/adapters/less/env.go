package less

import (
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
)

// allowListedEnvVars are the variables passed through to the compiler process.
// Node needs its module path settings in addition to the basics.
var allowListedEnvVars = map[string]struct{}{
	"HOME":         {},
	"PATH":         {},
	"USER":         {},
	"TMPDIR":       {},
	"NODE_PATH":    {},
	"NODE_OPTIONS": {},
}

// resolveEnvironment filters sysEnv down to the allow-listed variables, in sorted order.
func resolveEnvironment(sysEnv []string) []string {
	var env []string
	for _, entry := range sysEnv {
		k, _, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, allowed := allowListedEnvVars[k]; allowed {
			env = append(env, entry)
		}
	}
	slices.Sort(env)
	return env
}

// lookPath resolves file against the PATH entry of env. Paths containing a
// separator are checked directly.
func lookPath(file string, env []string) (string, error) {
	if strings.ContainsRune(file, filepath.Separator) || strings.ContainsRune(file, '/') {
		if err := findExecutable(file); err != nil {
			return "", &exec.Error{Name: file, Err: err}
		}
		return file, nil
	}

	var path string
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, "PATH="); ok {
			path = v
			break
		}
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", &exec.Error{Name: file, Err: exec.ErrNotFound}
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
