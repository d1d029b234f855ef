package osfacade

import (
	"os/exec"
	"runtime"

	"github.com/doeshing/aimy-go/internal/ports"
)

// Browser opens URLs in the platform default browser.
type Browser struct {
	goos string
}

var _ ports.BrowserOpener = (*Browser)(nil)

// NewBrowser returns the platform browser opener.
func NewBrowser() *Browser {
	return &Browser{goos: runtime.GOOS}
}

// OpenURL opens the URL without waiting for the browser to exit.
func (b *Browser) OpenURL(url string) error {
	var cmd *exec.Cmd
	switch b.goos {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
