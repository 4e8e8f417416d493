package compile

import (
	"errors"
	"fmt"
	"strings"

	"record-mapper/internal/common"
)

// ErrUnknownStrategy is returned for a strategy value or name that is not
// defined.
var ErrUnknownStrategy = errors.New("unknown compile strategy")

// Strategy selects how a mapping is turned into a routine.
type Strategy int

const (
	// StrategyCompiled binds every field once to a setter writing at the
	// field offset.
	StrategyCompiled Strategy = iota
	// StrategyInterpreted walks the fields with reflection on every call.
	StrategyInterpreted
)

func (s Strategy) String() string {
	switch s {
	case StrategyCompiled:
		return "compiled"
	case StrategyInterpreted:
		return "interpreted"
	default:
		return common.UnknownStr
	}
}

// ParseStrategy parses a strategy name as printed by String.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "compiled":
		return StrategyCompiled, nil
	case "interpreted":
		return StrategyInterpreted, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}
