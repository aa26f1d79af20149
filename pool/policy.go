// File: pool/policy.go
// Author: momentics <momentics@gmail.com>
//
// Pool behavior policies.

package pool

// Policy selects an optional pool behavior.
type Policy uint8

const (
	// PolicyZeroOnCreate guarantees a buffer's storage is zeroed when it is
	// first allocated. Reused buffers are never re-zeroed: zeroing the reuse
	// hot path costs orders of magnitude in throughput, so stale content from
	// a prior use may remain.
	PolicyZeroOnCreate Policy = iota

	// PolicyDropOld enables age-based reclamation of idle buffers during
	// allocation misses.
	PolicyDropOld

	totalPolicies
)

func (p Policy) String() string {
	switch p {
	case PolicyZeroOnCreate:
		return "zero-on-create"
	case PolicyDropOld:
		return "drop-old"
	}
	return "unknown"
}

// policySet is a bitmask over the known policies.
type policySet uint8

func (s *policySet) set(p Policy)   { *s |= 1 << p }
func (s *policySet) clear(p Policy) { *s &^= 1 << p }
func (s *policySet) resetAll()      { *s = 0 }

func (s policySet) active(p Policy) bool { return s&(1<<p) != 0 }

func (s policySet) list() []Policy {
	out := make([]Policy, 0, totalPolicies)
	for p := Policy(0); p < totalPolicies; p++ {
		if s.active(p) {
			out = append(out, p)
		}
	}
	return out
}
