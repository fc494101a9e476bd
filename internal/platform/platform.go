// Package platform describes the target of one native build: operating
// system, architecture and toolchain identity.
package platform

import (
	"fmt"
	"runtime"
)

// Toolchain identifies the compiler and archiver used to produce the
// native artifact.
type Toolchain struct {
	CC string // C compiler binary
	AR string // static archiver binary
}

// Descriptor identifies the platform a build targets. Resolution and
// planning never consult the process environment; everything
// platform-specific flows through this value.
type Descriptor struct {
	OS        string // "linux", "windows", "darwin", ...
	Arch      string // "amd64", "arm64", ...
	Toolchain Toolchain
}

// Host returns a descriptor for the machine the process runs on, with
// the conventional system toolchain.
func Host() Descriptor {
	return Descriptor{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		Toolchain: Toolchain{CC: "cc", AR: "ar"},
	}
}

// String renders the descriptor for logs and artifact stamps.
func (d Descriptor) String() string {
	return fmt.Sprintf("%s/%s (%s)", d.OS, d.Arch, d.Toolchain.CC)
}
