// Package nativetest provides an in-memory native.Invoker for tests.
package nativetest

import (
	"sync"

	"github.com/interactiv/extension/pkg/native"
)

// Call is a recorded invocation.
type Call struct {
	Hash native.Hash
	Args []native.Arg
}

// Responder computes the result of a native. It may write to Out args.
type Responder func(args []native.Arg) native.Result

// Stub records calls and answers them from registered responders. Natives
// without a responder return a zero Result.
type Stub struct {
	mu         sync.Mutex
	responders map[native.Hash]Responder
	strings    map[uint64]string
	calls      []Call
}

// New returns an empty Stub.
func New() *Stub {
	return &Stub{
		responders: make(map[native.Hash]Responder),
		strings:    make(map[uint64]string),
	}
}

// On registers the responder for h.
func (s *Stub) On(h native.Hash, r Responder) *Stub {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responders[h] = r
	return s
}

// Return makes h always return res.
func (s *Stub) Return(h native.Hash, res native.Result) *Stub {
	return s.On(h, func([]native.Arg) native.Result { return res })
}

// SetString maps a fake char* to a Go string for ReadString.
func (s *Stub) SetString(ptr uint64, str string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strings[ptr] = str
}

// Invoke implements native.Invoker.
func (s *Stub) Invoke(h native.Hash, args ...native.Arg) native.Result {
	s.mu.Lock()
	s.calls = append(s.calls, Call{Hash: h, Args: args})
	r, ok := s.responders[h]
	s.mu.Unlock()

	if !ok {
		return native.Result{}
	}
	return r(args)
}

// ReadString implements native.Invoker.
func (s *Stub) ReadString(ptr uint64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.strings[ptr]
}

// Calls returns every call made so far.
func (s *Stub) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallsTo returns the calls made to h.
func (s *Stub) CallsTo(h native.Hash) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Hash == h {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets recorded calls but keeps responders.
func (s *Stub) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}
