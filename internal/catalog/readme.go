package catalog

import "strings"

// installWindow is how many lines after an installation heading are
// scanned for a recognizable command.
const installWindow = 20

// InstallCommand is a best-guess install command extracted from a
// README, plus the tool used to run it.
type InstallCommand struct {
	Command string
	Tool    string
}

// ExtractInstallCommand scans README text for an installation section
// and returns the first recognizable command in the lines that follow
// it. This is a heuristic, not a parser: it can mis-extract, and
// nothing downstream validates that the result actually runs.
func ExtractInstallCommand(readme string) (InstallCommand, bool) {
	lines := strings.Split(readme, "\n")

	for i := 0; i < len(lines); i++ {
		line := strings.ToLower(lines[i])

		if !strings.Contains(line, "install") &&
			!strings.Contains(line, "quick start") &&
			!strings.Contains(line, "getting started") {
			continue
		}

		for j := i + 1; j < i+installWindow && j < len(lines); j++ {
			cmd := strings.TrimSpace(lines[j])

			switch {
			case strings.HasPrefix(cmd, "npx "):
				return InstallCommand{Command: cmd, Tool: "npx"}, true
			case strings.HasPrefix(cmd, "curl "):
				return InstallCommand{Command: cmd, Tool: "bash"}, true
			case strings.HasPrefix(cmd, "git clone"):
				return InstallCommand{Command: cmd, Tool: "bash"}, true
			case strings.HasPrefix(cmd, "bun "):
				return InstallCommand{Command: cmd, Tool: "bun"}, true
			case strings.HasPrefix(cmd, "npm "):
				return InstallCommand{Command: cmd, Tool: "npm"}, true
			}
		}
	}

	return InstallCommand{}, false
}
