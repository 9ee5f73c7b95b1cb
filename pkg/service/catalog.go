package service

// Canonical SDK service ports. These match the ports the real service
// deploys with, so running the harness conflicts with installed software
// on purpose: a client pointed at its usual endpoint lands here.
const (
	PortConsole      = 32075
	PortConfigurable = 32076
	PortRaw          = 32077
	PortSensor       = 32078
	PortPreview      = 32079

	// PortDiagnostic hosts the error-injection service. Any port outside
	// the known set resolves to the same behavior, so tests can bind a
	// scratch port and still reach the diagnostic paths.
	PortDiagnostic = 32000
)

// Descriptor identifies one service: its port, its protocol identity,
// whether the handshake requires an inbound channel-list frame, and the
// canned sample it streams. Descriptors are immutable after startup.
type Descriptor struct {
	Port int

	// Name is the identity announced in the handshake XML.
	Name string

	// Configurable services block on one channel-list frame from the
	// client before sending the device list.
	Configurable bool

	// Sample returns the binary record streamed each iteration. Nil for
	// the diagnostic service, whose reply is chosen from the inbound
	// channel-list content instead.
	Sample func() []byte

	// Diagnostic marks the error-injection service.
	Diagnostic bool
}

// DiagnosticDescriptor returns the error-injection descriptor bound to
// the given port.
func DiagnosticDescriptor(port int) Descriptor {
	return Descriptor{
		Port:         port,
		Name:         "test",
		Configurable: true,
		Diagnostic:   true,
	}
}

// Lookup resolves a listening port to its service descriptor. Ports
// outside the five production services fall back to the diagnostic
// descriptor so the harness can be pointed at an arbitrary port and
// still exercise error paths.
func Lookup(port int) Descriptor {
	switch port {
	case PortPreview:
		return Descriptor{Port: port, Name: "preview", Sample: PreviewSample}
	case PortSensor:
		return Descriptor{Port: port, Name: "sensor", Sample: SensorSample}
	case PortRaw:
		return Descriptor{Port: port, Name: "raw", Sample: RawSample}
	case PortConfigurable:
		return Descriptor{Port: port, Name: "configurable", Configurable: true, Sample: ConfigurableSample}
	case PortConsole:
		return Descriptor{Port: port, Name: "console", Sample: ConsoleSample}
	default:
		return DiagnosticDescriptor(port)
	}
}

// Ports returns the full canonical port set: the five production
// services plus the diagnostic port.
func Ports() []int {
	return []int{
		PortConsole,
		PortConfigurable,
		PortRaw,
		PortSensor,
		PortPreview,
		PortDiagnostic,
	}
}
