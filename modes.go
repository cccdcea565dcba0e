package vtcore

// ModeFlag is a bitmask of DEC private and ANSI terminal modes.
type ModeFlag uint32

const (
	ModeAutowrap ModeFlag = 1 << iota
	ModeOrigin
	ModeInsert
	ModeLineFeedNewline
	ModeCursorKeysApplication
	ModeKeypadApplication
	ModeBracketedPaste
	ModeFocusEvents
	ModeAlternateScreen
	ModeCursorVisible
	ModeReverseVideo
	ModeColumnMode
	ModeSynchronizedOutput
)

// MouseMode selects which mouse events are reported.
type MouseMode int

const (
	MouseModeNone MouseMode = iota
	MouseModeX10
	MouseModeNormal // VT200 (button press/release)
	MouseModeButtonMotion
	MouseModeAnyMotion
)

// MouseEncoding selects how mouse coordinates are encoded in reports.
type MouseEncoding int

const (
	MouseEncodingX10 MouseEncoding = iota
	MouseEncodingUTF8
	MouseEncodingSGR
	MouseEncodingURXVT
)

// Modes is the full set of terminal behavior flags, including the two
// enums that don't fit a single bit (mouse mode/encoding).
type Modes struct {
	flags         ModeFlag
	MouseMode     MouseMode
	MouseEncoding MouseEncoding
}

// NewModes returns the power-on default mode set: autowrap and cursor
// visible, matching real VT/xterm defaults.
func NewModes() Modes {
	return Modes{flags: ModeAutowrap | ModeCursorVisible}
}

// Has reports whether flag is set.
func (m Modes) Has(flag ModeFlag) bool {
	return m.flags&flag != 0
}

// Set enables or disables flag.
func (m *Modes) Set(flag ModeFlag, on bool) {
	if on {
		m.flags |= flag
	} else {
		m.flags &^= flag
	}
}

// DEC private mode numbers for DECSET/DECRST (CSI ? Pm h / l).
// Executor.setDecMode matches on the same literal values.
const (
	decModeCursorKeys         = 1
	decModeColumn132          = 3
	decModeReverseVideo       = 5
	decModeOrigin             = 6
	decModeAutowrap           = 7
	decModeCursorVisible      = 25
	decModeAltScreen47        = 47
	decModeMouseX10           = 9
	decModeMouseNormal        = 1000
	decModeMouseButtonMotion  = 1002
	decModeMouseAnyMotion     = 1003
	decModeFocusEvents        = 1004
	decModeMouseUTF8          = 1005
	decModeMouseSGR           = 1006
	decModeMouseURXVT         = 1015
	decModeAltScreenSave      = 1047
	decModeSaveCursor         = 1048
	decModeAltScreenSaveClear = 1049
	decModeBracketedPaste     = 2004
	decModeSynchronizedOutput = 2026
)
