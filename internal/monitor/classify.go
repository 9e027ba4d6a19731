package monitor

// ChangeType labels what a balance move most likely was.
type ChangeType string

const (
	ChangePurchase     ChangeType = "Token Purchase"
	ChangeTransfer     ChangeType = "Token Transfer"
	ChangeSale         ChangeType = "Token Sale"
	ChangeUnclassified ChangeType = "Unclassified"
)

// classifyChange partitions a balance delta around the network fee: spending
// more than the fee looks like a buy, spending exactly the fee looks like a
// plain transfer, anything above that is a sell. feeDelta is configurable,
// so the fallthrough stays as a defensive default (it is also what a NaN
// delta lands on).
func classifyChange(delta, feeDelta float64) ChangeType {
	switch {
	case delta < -feeDelta:
		return ChangePurchase
	case delta == -feeDelta:
		return ChangeTransfer
	case delta > -feeDelta:
		return ChangeSale
	}
	return ChangeUnclassified
}
