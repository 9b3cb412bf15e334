//go:build !rp2040

package commands

import "picocli-go/cli"

// Hardware pass-through commands only exist on the target.
func registerPlatform(*cli.Registry, Deps) {}
