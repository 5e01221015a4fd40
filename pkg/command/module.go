package command

import "go.uber.org/fx"

// Module provides the os/exec backed Runner.
var Module = fx.Provide(NewRunner)
