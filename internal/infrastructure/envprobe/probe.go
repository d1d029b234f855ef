// Package envprobe reports deployment-environment facts: operating system,
// home directory, and whether the restricted policy applies.
package envprobe

import (
	"os"
	"runtime"
	"strconv"

	"github.com/doeshing/aimy-go/internal/pkg/filesystem"
	"github.com/doeshing/aimy-go/internal/ports"
)

// RestrictedEnvVar switches the assistant into restricted mode. Any truthy
// value ("1", "true", "yes") counts; hosted deployments set it in the
// service unit.
const RestrictedEnvVar = "AIMY_RESTRICTED"

// Probe reads its facts once at construction; the environment of a running
// process does not change underneath it.
type Probe struct {
	restricted bool
	os         string
	home       string
}

var _ ports.EnvironmentProbe = (*Probe)(nil)

// New captures the current environment.
func New() *Probe {
	return &Probe{
		restricted: truthy(os.Getenv(RestrictedEnvVar)),
		os:         runtime.GOOS,
		home:       filesystem.UserHomeDir(),
	}
}

func (p *Probe) Restricted() bool { return p.restricted }
func (p *Probe) OS() string       { return p.os }
func (p *Probe) Home() string     { return p.home }

func truthy(value string) bool {
	if value == "" {
		return false
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return value == "yes" || value == "on"
}
