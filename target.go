package visioncore

// TargetKind identifies where a buffer lives at runtime. It is only used for
// reporting; dispatch and allocation go through the Target type parameter.
type TargetKind int

const (
	TargetHost TargetKind = iota
	TargetDevice
)

// String returns the target name
func (k TargetKind) String() string {
	switch k {
	case TargetHost:
		return "host"
	case TargetDevice:
		return "device"
	default:
		return "unknown"
	}
}

// Host marks memory in ordinary Go heap memory, processed by a sequential
// loop on the calling goroutine.
type Host struct{}

// Device marks memory owned by the device context's pool, processed by a
// barrier-synchronized fan-out over the context's workers.
type Device struct{}

// Target is the compile-time discriminator carried by every view, buffer,
// pyramid and kernel. Operations taking two views with different targets do
// not compile.
type Target interface {
	Host | Device

	Kind() TargetKind
	executor() executor
	space() memorySpace
}

// Kind returns TargetHost
func (Host) Kind() TargetKind { return TargetHost }

// Kind returns TargetDevice
func (Device) Kind() TargetKind { return TargetDevice }

func (Host) executor() executor { return hostExecutor{} }

func (Device) executor() executor { return DefaultContext().workers }

func (Host) space() memorySpace { return hostSpace{} }

func (Device) space() memorySpace { return DefaultContext().memory }

// KindOf returns the runtime kind of target TG.
func KindOf[TG Target]() TargetKind {
	var tg TG
	return tg.Kind()
}
