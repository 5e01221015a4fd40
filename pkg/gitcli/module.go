package gitcli

import "go.uber.org/fx"

// Module provides the git client.
var Module = fx.Provide(NewClient)
