package wrapper

import (
	"sort"
	"strings"

	"github.com/aretw0/testwrap/pkg/domain"
)

// buildEnv layers overlays onto base (KEY=VALUE form) and forces the JIT-debugger switch last.
// Later overlays win over earlier ones and over inherited values.
func buildEnv(base []string, overlays []EnvVar) []string {
	env := make(map[string]string, len(base)+len(overlays)+1)
	for _, kv := range base {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[k] = v
	}
	for _, o := range overlays {
		env[o.Key] = o.Value
	}
	env[domain.AvoidJITKey] = "1"

	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+env[k])
	}
	return out
}
