package debugs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/tapec/cmds"
)

type Module struct {
	dscope.Module
}

var tapFlag = cmds.Switch("-tap", "open a starlark REPL over the machine state when execution fails")

// TapOnFailure enables the REPL after a failed execution.
type TapOnFailure bool

func (Module) TapOnFailure() TapOnFailure {
	return TapOnFailure(*tapFlag)
}
