// Package afero provides the filesystem abstraction shared by provisioning
// stages, so tests can run against an in-memory fs.
package afero

import (
	"github.com/spf13/afero"
	"go.uber.org/fx"
)

// Fs is re-exported so stage packages only import this wrapper.
type Fs = afero.Fs

// NewOsFs returns the real filesystem.
func NewOsFs() Fs { return afero.NewOsFs() }

// NewMemMapFs returns an in-memory filesystem for tests.
func NewMemMapFs() Fs { return afero.NewMemMapFs() }

// Module provides the OS filesystem.
var Module = fx.Provide(NewOsFs)
