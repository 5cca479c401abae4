package sonic

import (
	"fmt"

	"ultrasonic.dev/sonic/fe"
	"ultrasonic.dev/sonic/ids"
	"ultrasonic.dev/sonic/state"
)

// CallErrorKind enumerates every way Codex.verify can fail, per ยง7's taxonomy.
type CallErrorKind string

const (
	ErrWrongContract     CallErrorKind = "WrongContract"
	ErrNotFound          CallErrorKind = "NotFound"
	ErrNoReadOnceInput   CallErrorKind = "NoReadOnceInput"
	ErrNoImmutableInput  CallErrorKind = "NoImmutableInput"
	ErrLock              CallErrorKind = "Lock"
	ErrScript            CallErrorKind = "Script"
	ErrScriptUnspecified CallErrorKind = "ScriptUnspecified"
)

// CallError is the single error type Codex.verify returns. Which fields are
// meaningful depends on Kind; see the constructors below, each of which only
// populates what its kind uses.
type CallError struct {
	Kind CallErrorKind

	Expected, Found ids.ContractId // WrongContract
	CallId          ids.CallId     // NotFound
	Addr            state.CellAddr // NoReadOnceInput, NoImmutableInput
	Code            *fe.Elem       // Lock, Script (nil means "no code set")
}

func (e *CallError) Error() string {
	switch e.Kind {
	case ErrWrongContract:
		return fmt.Sprintf("%s: expected %s, found %s", e.Kind, e.Expected, e.Found)
	case ErrNotFound:
		return fmt.Sprintf("%s: call_id %s", e.Kind, e.CallId)
	case ErrNoReadOnceInput, ErrNoImmutableInput:
		return fmt.Sprintf("%s: %s:%d", e.Kind, e.Addr.Opid, e.Addr.Pos)
	case ErrLock, ErrScript:
		if e.Code == nil {
			return fmt.Sprintf("%s: <no code>", e.Kind)
		}
		return fmt.Sprintf("%s: %s", e.Kind, e.Code)
	default:
		return string(e.Kind)
	}
}

func errWrongContract(expected, found ids.ContractId) error {
	return &CallError{Kind: ErrWrongContract, Expected: expected, Found: found}
}

func errNotFound(callId ids.CallId) error {
	return &CallError{Kind: ErrNotFound, CallId: callId}
}

func errNoReadOnceInput(addr state.CellAddr) error {
	return &CallError{Kind: ErrNoReadOnceInput, Addr: addr}
}

func errNoImmutableInput(addr state.CellAddr) error {
	return &CallError{Kind: ErrNoImmutableInput, Addr: addr}
}

func errLock(code *fe.Elem) error {
	return &CallError{Kind: ErrLock, Code: code}
}

func errScript(code *fe.Elem) error {
	if code == nil {
		return &CallError{Kind: ErrScriptUnspecified}
	}
	return &CallError{Kind: ErrScript, Code: code}
}
