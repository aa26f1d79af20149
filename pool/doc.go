// Package pool
// Author: momentics <momentics@gmail.com>
//
// Persistent recyclable buffer pool.
// Buffers are allocated on the heap and recycled through a capacity-sorted
// index: Acquire runs a lower-bound search for the smallest free buffer that
// satisfies the request, Release returns the buffer to the free set, and an
// optional age-based sweep drops long-idle buffers so their storage goes back
// to the runtime. All pool state is guarded by a single mutex; buffer payloads
// are not, exclusive logical ownership of an in-use handle is the contract.
// See persistent.go for the engine, policy.go for behavior flags.
package pool
