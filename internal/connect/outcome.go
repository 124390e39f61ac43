package connect

import (
	"fmt"

	"github.com/muurk/adb-autoconnect/internal/address"
)

// UnverifiedMessage is the diagnostic for a connect that adb accepted but
// the session listing does not confirm.
const UnverifiedMessage = "Connection reported success but device is not responsive"

// Kind classifies the outcome of one target.
type Kind int

const (
	// KindConnected means connect succeeded and the session was verified
	KindConnected Kind = iota
	// KindAlreadyConnected means a healthy session existed; connect was skipped
	KindAlreadyConnected
	// KindConnectFailed means adb connect exited non-zero
	KindConnectFailed
	// KindUnverified means adb connect exited zero but the session is not connected
	KindUnverified
)

// String returns a short name for the kind
func (k Kind) String() string {
	switch k {
	case KindConnected:
		return "connected"
	case KindAlreadyConnected:
		return "already-connected"
	case KindConnectFailed:
		return "connect-failed"
	case KindUnverified:
		return "unverified"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Outcome is the result for one target.
type Outcome struct {
	Target  address.Address
	Kind    Kind
	Message string
}

// Succeeded reports whether the target ended up connected.
func (o Outcome) Succeeded() bool {
	return o.Kind == KindConnected || o.Kind == KindAlreadyConnected
}

// String implements fmt.Stringer
func (o Outcome) String() string {
	if o.Message == "" {
		return fmt.Sprintf("%s: %s", o.Target, o.Kind)
	}
	return fmt.Sprintf("%s: %s (%s)", o.Target, o.Kind, o.Message)
}
