package procedures

import (
	"fmt"

	"multicomp/domain/core"
	"multicomp/domain/study"
	"multicomp/ports"
)

// Resolve maps a procedure name to its implementation
func Resolve(name study.ProcedureName) (ports.ProcedurePort, error) {
	switch name {
	case study.ProcedureAllPairs:
		return NewAllPairs(), nil
	case study.ProcedureANOVA:
		return NewANOVA(), nil
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrProcedureNotFound, name)
	}
}
