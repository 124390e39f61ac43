package discovery

import (
	"fmt"

	"github.com/muurk/adb-autoconnect/internal/address"
)

// Candidate is one decoded service line. It only lives inside a decode call;
// callers outside the package see the ranked addresses.
type Candidate struct {
	// Address is the advertised endpoint
	Address address.Address

	// ServiceName is the instance name (e.g., "adb-R58M12ABCDE-x1y2z3"), may be empty
	ServiceName string

	// InstanceCount is the "(N)" suffix adb prints for repeated
	// registrations, 0 when absent
	InstanceCount int

	// SourceOrder is the line index in the raw text
	SourceOrder int
}

// String returns a human-readable representation of the candidate
func (c Candidate) String() string {
	if c.ServiceName == "" {
		return fmt.Sprintf("%s (count %d)", c.Address, c.InstanceCount)
	}
	return fmt.Sprintf("%s at %s (count %d)", c.ServiceName, c.Address, c.InstanceCount)
}

// outranks reports whether c should be preferred over other.
func (c Candidate) outranks(other Candidate) bool {
	if c.InstanceCount != other.InstanceCount {
		return c.InstanceCount > other.InstanceCount
	}
	return c.SourceOrder < other.SourceOrder
}
