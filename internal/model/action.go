package model

// ActionKind is the closed set of monetary action categories. Each
// kind carries the ledger label used when the action zeroes the
// account ("full result") and the label used when it leaves a
// remainder ("partial result").
type ActionKind int

const (
	ActionPay ActionKind = iota
	ActionWaive
	ActionTransfer
)

type actionLabels struct {
	full    string
	partial string
}

var actionLabelTable = map[ActionKind]actionLabels{
	ActionPay:      {full: "Paid fully", partial: "Paid partially"},
	ActionWaive:    {full: "Waived fully", partial: "Waived partially"},
	ActionTransfer: {full: "Transferred fully", partial: "Transferred partially"},
}

func (k ActionKind) String() string {
	switch k {
	case ActionPay:
		return "pay"
	case ActionWaive:
		return "waive"
	case ActionTransfer:
		return "transfer"
	}
	return "unknown"
}

// FullResult is the ledger label for an action that closes the account.
func (k ActionKind) FullResult() string {
	return actionLabelTable[k].full
}

// PartialResult is the ledger label for an action that leaves a balance.
func (k ActionKind) PartialResult() string {
	return actionLabelTable[k].partial
}

// IsResult reports whether label is one of this kind's ledger labels.
func (k ActionKind) IsResult(label string) bool {
	l := actionLabelTable[k]
	return label == l.full || label == l.partial
}

// IsActionResult reports whether label belongs to any action kind.
func IsActionResult(label string) bool {
	for kind := range actionLabelTable {
		if kind.IsResult(label) {
			return true
		}
	}
	return false
}

// IsAction reports whether a stored feefineaction records a monetary
// action, as opposed to the original charge.
func IsAction(a Feefineaction) bool {
	return IsActionResult(a.TypeAction)
}

// IsCharge reports whether a stored feefineaction is the original
// charge rather than an applied action.
func IsCharge(a Feefineaction) bool {
	return !IsAction(a) && a.PaymentMethod == ""
}

// IsActionOfType reports whether the feefineaction was produced by one
// of the given kinds.
func IsActionOfType(a Feefineaction, kinds ...ActionKind) bool {
	for _, kind := range kinds {
		if kind.IsResult(a.TypeAction) {
			return true
		}
	}
	return false
}
