//go:build !unix

package launcher

import (
	"os"
	"os/exec"
)

func setProcessGroup(*exec.Cmd) {}

func interrupt(p *os.Process) error {
	return p.Signal(os.Interrupt)
}

func kill(p *os.Process) error {
	return p.Kill()
}
