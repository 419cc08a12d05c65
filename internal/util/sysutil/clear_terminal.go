package sysutil

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
)

// clearSequence moves the cursor home and clears the screen on ANSI
// terminals.
const clearSequence = "\033[H\033[2J"

// ClearTerminal clears the terminal screen that w is attached to. It runs
// the system command when w is os.Stdout and writes the ANSI clear sequence
// otherwise, or when the command is not available.
func ClearTerminal(w io.Writer) {
	if w == os.Stdout {
		if cmd := clearCommand(runtime.GOOS); cmd != nil {
			cmd.Stdout = os.Stdout
			if err := cmd.Run(); err == nil {
				return
			}
		}
	}

	fmt.Fprint(w, clearSequence)
}

func clearCommand(goos string) *exec.Cmd {
	switch goos {
	case "windows":
		return exec.Command("cmd", "/c", "cls")
	case "linux", "darwin", "freebsd", "openbsd", "netbsd":
		return exec.Command("clear")
	default:
		return nil
	}
}
