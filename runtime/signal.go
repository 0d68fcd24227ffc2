package runtime

// Signal is how break, continue and return travel up through statement
// execution.  They are not errors so wea_eman never sees them.
type Signal int

const (
	SignalNone Signal = iota
	SignalBreak
	SignalContinue
	SignalReturn
)

func (s Signal) String() string {
	switch s {
	case SignalBreak:
		return "break"
	case SignalContinue:
		return "continue"
	case SignalReturn:
		return "wea_return"
	}
	return "none"
}
