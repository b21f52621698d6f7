package hostinterface

import (
	"github.com/interactiv/extension/internal/dispatcher"
	"github.com/interactiv/extension/pkg/native"
)

// Config is the central configuration used by this library
var Config configStruct = configStruct{}

func init() {
	Config.Init()
}

type configStruct struct {
	// version is returned by InteractiVVersion
	version string

	// dispatcher handles event routing
	dispatcher *dispatcher.Dispatcher

	// onError is told about failed frame and key events, which have no reply
	onError func(command string, err error)

	natives cgoInvoker
}

// Init method initializes the config struct
func (c *configStruct) Init() {
	c.version = "No version set"
}

// SetVersion sets the version string returned by InteractiVVersion.
func SetVersion(version string) {
	Config.version = version
}

// SetDispatcher sets the event dispatcher for handling commands
func SetDispatcher(d *dispatcher.Dispatcher) {
	Config.dispatcher = d
}

// GetDispatcher returns the configured dispatcher, or nil if not set
func GetDispatcher() *dispatcher.Dispatcher {
	return Config.dispatcher
}

// SetErrorHandler sets the callback for errors raised by events the host does
// not wait on.
func SetErrorHandler(fn func(command string, err error)) {
	Config.onError = fn
}

// Natives returns the invoker backed by the function table the host hands
// over in InteractiVRegisterNatives. Calls made before that return zero.
func Natives() native.Invoker {
	return &Config.natives
}

// NativesReady reports whether the host registered its function table.
func NativesReady() bool {
	return Config.natives.ready()
}
