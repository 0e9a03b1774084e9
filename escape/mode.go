package escape

// NamedMode identifies an ANSI (non-private) mode recognized by number.
// Grounded on otty-escape/src/mode.rs's NamedMode enum.
type NamedMode int

const (
	ModeInsert           NamedMode = 4
	ModeLineFeedNewLine  NamedMode = 20
)

// NamedPrivateMode identifies a DEC-private mode (CSI ? ... h/l)
// recognized by number. Grounded on otty-escape/src/mode.rs's
// NamedPrivateMode enum; SyncUpdate (2026) is handled specially by
// Interpreter rather than surfaced as a generic SetMode (see SyncUpdate
// Action).
type NamedPrivateMode int

const (
	PrivateModeCursorKeys                    NamedPrivateMode = 1
	PrivateModeColumn132                     NamedPrivateMode = 3
	PrivateModeOrigin                        NamedPrivateMode = 6
	PrivateModeLineWrap                      NamedPrivateMode = 7
	PrivateModeBlinkingCursor                NamedPrivateMode = 12
	PrivateModeShowCursor                    NamedPrivateMode = 25
	PrivateModeReportMouseClicks             NamedPrivateMode = 1000
	PrivateModeReportCellMouseMotion         NamedPrivateMode = 1002
	PrivateModeReportAllMouseMotion          NamedPrivateMode = 1003
	PrivateModeReportFocusInOut              NamedPrivateMode = 1004
	PrivateModeUtf8Mouse                     NamedPrivateMode = 1005
	PrivateModeSgrMouse                      NamedPrivateMode = 1006
	PrivateModeAlternateScroll               NamedPrivateMode = 1007
	PrivateModeUrgencyHints                  NamedPrivateMode = 1042
	PrivateModeSwapScreenAndRestoreCursor    NamedPrivateMode = 1049
	PrivateModeBracketedPaste                NamedPrivateMode = 2004
	PrivateModeSyncUpdate                    NamedPrivateMode = 2026
)
