// Package osexec hands receipt files to the operating system: open in the
// default viewer, or send to the default printer. Both are best-effort
// external-process launches; callers treat failures as warnings once the
// bill is saved.
package osexec

import (
	"os/exec"
	"runtime"

	"frontdesk/internal/adapters/observability"
)

type Delivery struct{}

func New() Delivery { return Delivery{} }

func (Delivery) OpenViewer(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/C", "start", "", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	err := cmd.Start()
	observability.ObserveReceipt("open", err)
	return err
}

func (Delivery) SendToPrinter(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("lpr", path)
	case "windows":
		cmd = exec.Command("powershell", "-NoProfile", "Start-Process", "-FilePath", path, "-Verb", "Print")
	default:
		if _, err := exec.LookPath("lp"); err == nil {
			cmd = exec.Command("lp", path)
		} else {
			cmd = exec.Command("lpr", path)
		}
	}
	err := cmd.Start()
	observability.ObserveReceipt("print", err)
	return err
}
