package hostinterface

/*
#include <stdlib.h>
#include <stdio.h>
#include <string.h>
*/
import "C"
import (
	"fmt"
	"strconv"
	"time"
	"unsafe"

	"github.com/interactiv/extension/internal/dispatcher"
)

// called by the host to get the version of the plugin
//
//export InteractiVVersion
func InteractiVVersion(output *C.char, outputsize C.size_t) {
	replyToSyncCall(Config.version, output, outputsize)
}

// called by the host script as "command|arg|arg"
//
//export InteractiVCommand
func InteractiVCommand(output *C.char, outputsize C.size_t, input *C.char) {
	command, args := splitCommand(C.GoString(input))

	if command == ":TIMESTAMP:" {
		replyToSyncCall(getTimestamp(), output, outputsize)
		return
	}

	if Config.dispatcher == nil || !Config.dispatcher.HasHandler(command) {
		replyToSyncCall(unknownCommand(command), output, outputsize)
		return
	}

	result, err := Config.dispatcher.Dispatch(dispatcher.Event{
		Command:   command,
		Args:      args,
		Timestamp: time.Now(),
	})
	replyToSyncCall(formatDispatchResponse(result, err), output, outputsize)
}

// called once by the host with its native function table
//
//export InteractiVRegisterNatives
func InteractiVRegisterNatives(initFn, pushFn, callFn unsafe.Pointer) {
	Config.natives.register(initFn, pushFn, callFn)
}

// called by the host on its script thread once per frame
//
//export InteractiVTick
func InteractiVTick() {
	if !Config.natives.ready() {
		return
	}
	fireAndForget(":TICK:")
}

//export InteractiVKeyDown
func InteractiVKeyDown(key C.uint) {
	fireAndForget(":KEYDOWN:", strconv.FormatUint(uint64(key), 10))
}

//export InteractiVKeyUp
func InteractiVKeyUp(key C.uint) {
	fireAndForget(":KEYUP:", strconv.FormatUint(uint64(key), 10))
}

// called by the host before the plugin is unloaded
//
//export InteractiVShutdown
func InteractiVShutdown() {
	fireAndForget(":SHUTDOWN:")
}

func fireAndForget(command string, args ...string) {
	if Config.dispatcher == nil {
		return
	}
	_, err := Config.dispatcher.Dispatch(dispatcher.Event{
		Command:   command,
		Args:      args,
		Timestamp: time.Now(),
	})
	if err != nil && Config.onError != nil {
		Config.onError(command, err)
	}
}

// replyToSyncCall will respond to a synchronous call from the host
func replyToSyncCall(response string, output *C.char, outputsize C.size_t) {
	result := C.CString(response)
	defer C.free(unsafe.Pointer(result))
	var size = C.strlen(result) + 1
	if size > outputsize {
		size = outputsize
	}
	C.memmove(unsafe.Pointer(output), unsafe.Pointer(result), size)
}

func getTimestamp() string {
	return fmt.Sprintf("%d", time.Now().UTC().UnixNano())
}
