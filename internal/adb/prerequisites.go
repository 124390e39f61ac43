package adb

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/muurk/adb-autoconnect/internal/urls"
)

// versionMarker is the banner printed by every adb release
const versionMarker = "Android Debug Bridge"

// installHint is shown when adb cannot be found
const installHint = "Install on macOS: brew install --cask android-platform-tools\n" +
	"Install on Linux: sudo apt-get install adb\n" +
	"Or download Platform-Tools: " + urls.PlatformTools + "\n" +
	"Or point to an existing binary with --adb /path/to/adb"

// ValidateADBPath checks that adbPath resolves to a working adb binary and
// returns the resolved path.
func ValidateADBPath(ctx context.Context, adbPath string) (string, error) {
	if adbPath == "" {
		return "", &PrerequisiteError{
			Prerequisite: "adb",
			Details:      "adb path is empty",
		}
	}

	resolved, err := exec.LookPath(adbPath)
	if err != nil {
		return "", &PrerequisiteError{
			Prerequisite: "adb",
			Details:      fmt.Sprintf("%s not found\n%s", adbPath, installHint),
			Err:          err,
		}
	}

	versionCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	output, err := exec.CommandContext(versionCtx, resolved, "version").Output()
	if err != nil {
		return "", &PrerequisiteError{
			Prerequisite: "adb",
			Details:      fmt.Sprintf("Failed to execute %s version", resolved),
			Err:          err,
		}
	}

	if !strings.Contains(string(output), versionMarker) {
		return "", &PrerequisiteError{
			Prerequisite: "adb",
			Details:      fmt.Sprintf("%s does not appear to be the Android Debug Bridge", resolved),
		}
	}

	return resolved, nil
}
