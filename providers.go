package vtcore

import "io"

// ResponseProvider writes terminal responses (DSR/DA replies, title
// reports, Kitty graphics responses) back to whatever feeds the
// Parser — normally the PTY master.
type ResponseProvider = io.Writer

// NoopResponse discards all response data.
type NoopResponse struct{}

func (NoopResponse) Write(p []byte) (int, error) { return len(p), nil }

var _ ResponseProvider = NoopResponse{}

// BellProvider handles BEL (0x07).
type BellProvider interface {
	Ring()
}

// NoopBell ignores bell events.
type NoopBell struct{}

func (NoopBell) Ring() {}

// TitleProvider handles window/icon title changes (OSC 0, 1, 2) and the
// xterm title stack (CSI 22/23 t).
type TitleProvider interface {
	SetTitle(title string)
	SetIcon(icon string)
	PushTitle()
	PopTitle()
}

// NoopTitle ignores all title operations.
type NoopTitle struct{}

func (NoopTitle) SetTitle(string) {}
func (NoopTitle) SetIcon(string)  {}
func (NoopTitle) PushTitle()      {}
func (NoopTitle) PopTitle()       {}

// APCProvider handles Application Program Command payloads.
type APCProvider interface {
	Receive(data []byte)
}

// NoopAPC ignores APC sequences.
type NoopAPC struct{}

func (NoopAPC) Receive([]byte) {}

// PMProvider handles Privacy Message payloads.
type PMProvider interface {
	Receive(data []byte)
}

// NoopPM ignores PM sequences.
type NoopPM struct{}

func (NoopPM) Receive([]byte) {}

// SOSProvider handles Start-of-String payloads.
type SOSProvider interface {
	Receive(data []byte)
}

// NoopSOS ignores SOS sequences.
type NoopSOS struct{}

func (NoopSOS) Receive([]byte) {}

// ClipboardProvider handles OSC 52 clipboard read/write. Write receives
// the already base64-decoded payload; callers that want to enforce a
// read/write policy (e.g. refuse reads, as many terminals do by
// default) should do so in their Read implementation.
type ClipboardProvider interface {
	Read(selection byte) string
	Write(selection byte, data []byte)
}

// NoopClipboard ignores all clipboard operations and never discloses
// clipboard contents.
type NoopClipboard struct{}

func (NoopClipboard) Read(byte) string     { return "" }
func (NoopClipboard) Write(byte, []byte) {}

// RecordingProvider captures raw input bytes before parsing, for replay
// or debugging.
type RecordingProvider interface {
	Record(data []byte)
	Data() []byte
	Clear()
}

// NoopRecording discards all input.
type NoopRecording struct{}

func (NoopRecording) Record([]byte) {}
func (NoopRecording) Data() []byte  { return nil }
func (NoopRecording) Clear()        {}

var (
	_ BellProvider       = NoopBell{}
	_ TitleProvider      = NoopTitle{}
	_ APCProvider        = NoopAPC{}
	_ PMProvider         = NoopPM{}
	_ SOSProvider        = NoopSOS{}
	_ ClipboardProvider  = NoopClipboard{}
	_ RecordingProvider  = NoopRecording{}
)
