package browser

import (
	"os"
	"strings"
)

var execCandidates = []string{
	"/opt/google/chrome/chrome",
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/usr/bin/chromium",
	"/usr/bin/chromium-browser",
	"/snap/bin/chromium",
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	"/Applications/Chromium.app/Contents/MacOS/Chromium",
}

// ResolveExecPath picks the browser binary: explicit wins, then CHROME_BIN,
// then the first well-known install location that exists. It returns "" when
// nothing is found, leaving the backend to its own lookup.
func ResolveExecPath(explicit string) string {
	if p := strings.TrimSpace(explicit); p != "" {
		return p
	}
	if envPath := strings.TrimSpace(os.Getenv("CHROME_BIN")); envPath != "" && fileExists(envPath) {
		return envPath
	}
	for _, path := range execCandidates {
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
