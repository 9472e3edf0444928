// Package stacktrace trims raw panic stacks down to the frames that matter.
package stacktrace

import "strings"

// InternalPaths extracts internal package frames ("internal/...file.go:line")
// from a raw stack trace, dropping runtime and third-party noise. An empty
// result means the panic originated entirely outside this module.
func InternalPaths(stack []byte) []string {
	lines := strings.Split(string(stack), "\n")
	paths := make([]string, 0, 8)

	for _, line := range lines {
		line = strings.TrimSpace(line)

		// File frames look like "/path/internal/foo/bar.go:42 +0x1b".
		idx := strings.Index(line, ".go:")
		if idx == -1 || !strings.Contains(line, "/internal/") {
			continue
		}

		end := strings.IndexByte(line[idx:], ' ')
		if end == -1 {
			end = len(line)
		} else {
			end += idx
		}

		frame := line[:end]
		if j := strings.Index(frame, "/internal/"); j != -1 {
			paths = append(paths, frame[j+1:])
		}
	}

	return paths
}
