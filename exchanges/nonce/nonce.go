package nonce

import (
	"strconv"
	"sync"
	"time"
)

// Nonce issues strictly increasing values for a single set of credentials.
// Values are derived from a microsecond clock; if the clock has not advanced
// since the last issue the previous value is incremented instead.
type Nonce struct {
	n   int64
	m   sync.Mutex
	now func() time.Time
}

// GetInc returns the next nonce value, strictly greater than any value
// previously returned or set
func (n *Nonce) GetInc() Value {
	n.m.Lock()
	defer n.m.Unlock()
	clock := n.now
	if clock == nil {
		clock = time.Now
	}
	next := clock().UnixMicro()
	if next <= n.n {
		next = n.n + 1
	}
	n.n = next
	return Value(n.n)
}

// Get retrieves the last issued nonce value
func (n *Nonce) Get() Value {
	n.m.Lock()
	defer n.m.Unlock()
	return Value(n.n)
}

// Set sets the nonce value, subsequent values will be greater than val
func (n *Nonce) Set(val int64) {
	n.m.Lock()
	n.n = val
	n.m.Unlock()
}

// String returns a string version of the nonce
func (n *Nonce) String() string {
	return n.Get().String()
}

// Value is a return type for GetInc
type Value int64

// String is a Value method that changes format to a string
func (v Value) String() string {
	return strconv.FormatInt(int64(v), 10)
}
