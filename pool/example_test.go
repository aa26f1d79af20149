package pool_test

import (
	"fmt"

	"github.com/momentics/persistbuf/pool"
)

// Example shows the reuse contract: a released buffer satisfies a later,
// smaller request with the same storage.
func Example() {
	p := pool.New()

	a := p.Acquire(10)
	p.Release(a)

	b := p.Acquire(5)
	fmt.Println(b.Cap(), b.Len(), p.BuffersAllocated())
	// Output: 10 5 1
}
