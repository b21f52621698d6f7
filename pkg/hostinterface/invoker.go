package hostinterface

/*
#include <stdint.h>
#include <stdlib.h>

typedef void (*native_init_fn)(uint64_t);
typedef void (*native_push_fn)(uint64_t);
typedef uint64_t* (*native_call_fn)(void);

static void nativeInit(void* fn, uint64_t hash) { ((native_init_fn)fn)(hash); }
static void nativePush(void* fn, uint64_t value) { ((native_push_fn)fn)(value); }
static uint64_t* nativeCall(void* fn) { return ((native_call_fn)fn)(); }
*/
import "C"
import (
	"sync"
	"unsafe"

	"github.com/interactiv/extension/pkg/native"
)

// cgoInvoker calls natives through the host's init/push/call table. Strings
// and out-pointers live in C memory for the duration of one call.
type cgoInvoker struct {
	mu             sync.Mutex
	initFn, pushFn unsafe.Pointer
	callFn         unsafe.Pointer
}

var _ native.Invoker = (*cgoInvoker)(nil)

func (c *cgoInvoker) register(initFn, pushFn, callFn unsafe.Pointer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initFn, c.pushFn, c.callFn = initFn, pushFn, callFn
}

func (c *cgoInvoker) ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initFn != nil && c.pushFn != nil && c.callFn != nil
}

type outArg struct {
	dst *uint64
	buf *C.uint64_t
}

// Invoke implements native.Invoker.
func (c *cgoInvoker) Invoke(h native.Hash, args ...native.Arg) native.Result {
	var r native.Result

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initFn == nil {
		return r
	}

	var allocs []unsafe.Pointer
	defer func() {
		for _, p := range allocs {
			C.free(p)
		}
	}()
	var outs []outArg

	C.nativeInit(c.initFn, C.uint64_t(h))
	for _, a := range args {
		switch a.Kind {
		case native.KindString:
			s := C.CString(a.Str)
			allocs = append(allocs, unsafe.Pointer(s))
			C.nativePush(c.pushFn, C.uint64_t(uintptr(unsafe.Pointer(s))))
		case native.KindOut:
			// three words so vector outputs fit
			buf := (*C.uint64_t)(C.calloc(3, C.size_t(unsafe.Sizeof(C.uint64_t(0)))))
			allocs = append(allocs, unsafe.Pointer(buf))
			if a.Out != nil {
				*buf = C.uint64_t(*a.Out)
			}
			outs = append(outs, outArg{dst: a.Out, buf: buf})
			C.nativePush(c.pushFn, C.uint64_t(uintptr(unsafe.Pointer(buf))))
		default:
			C.nativePush(c.pushFn, C.uint64_t(a.Word))
		}
	}

	ret := C.nativeCall(c.callFn)
	if ret != nil {
		words := unsafe.Slice((*C.uint64_t)(ret), len(r))
		for i, w := range words {
			r[i] = uint64(w)
		}
	}

	for _, o := range outs {
		if o.dst != nil {
			*o.dst = uint64(*o.buf)
		}
	}
	return r
}

// ReadString implements native.Invoker.
func (c *cgoInvoker) ReadString(ptr uint64) string {
	if ptr == 0 {
		return ""
	}
	return C.GoString((*C.char)(unsafe.Pointer(uintptr(ptr))))
}
