package escape

// KeyboardMode is a bitset of kitty keyboard protocol flags. Grounded on
// otty-escape/src/keyboard.rs's bitflags! KeyboardMode; Go has no
// bitflags macro so the flags are plain typed constants ORed together,
// which is how the teacher's own terminal_caps.go expresses similar
// capability bitsets.
type KeyboardMode uint8

const (
	KeyboardNoMode              KeyboardMode = 0
	KeyboardDisambiguateEscCodes KeyboardMode = 1 << 0
	KeyboardReportEventTypes    KeyboardMode = 1 << 1
	KeyboardReportAlternateKeys KeyboardMode = 1 << 2
	KeyboardReportAllKeysAsEsc  KeyboardMode = 1 << 3
	KeyboardReportAssociatedText KeyboardMode = 1 << 4
)

// KittyApplyBehavior selects how a CSI = flags ; behavior u (set)
// sequence combines new flags with the currently active ones; a push
// (CSI > flags u) stores its flags as given. The third variant is named Subtract here (set
// difference, implemented as AND-NOT) where otty-escape's
// KeyboardModeApplyBehavior calls it Difference - same operation, name
// chosen to match spec.md's replace/union/subtract vocabulary.
type KittyApplyBehavior int

const (
	KittyApplyReplace KittyApplyBehavior = iota
	KittyApplyUnion
	KittyApplySubtract
)

// Apply combines new into current according to behavior.
func (b KittyApplyBehavior) Apply(current, new KeyboardMode) KeyboardMode {
	switch b {
	case KittyApplyUnion:
		return current | new
	case KittyApplySubtract:
		return current &^ new
	default:
		return new
	}
}

// ModifyOtherKeysState is XTMODKEYS' modifyOtherKeys setting (CSI > 4 ;
// n m), grounded on otty-escape/src/mode.rs's ModifyOtherKeys enum.
type ModifyOtherKeysState int

const (
	ModifyOtherKeysReset ModifyOtherKeysState = iota
	ModifyOtherKeysEnableExceptWellDefined
	ModifyOtherKeysEnableAll
)
