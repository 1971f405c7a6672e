package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors_Wrapping verifies wrapped sentinel errors can still be detected
func TestSentinelErrors_Wrapping(t *testing.T) {
	sentinels := []error{
		ErrInvalidFEN, ErrMissingKing, ErrInvalidMove, ErrIllegalMove,
		ErrUnknownCommand, ErrInvalidConfig, ErrSessionNotFound, ErrSessionLimit, ErrPositionChanged, ErrStopped,
	}
	for _, sentinel := range sentinels {
		wrapped := fmt.Errorf("outer: %w", sentinel)
		if !errors.Is(wrapped, sentinel) {
			t.Errorf("errors.Is(wrapped, %v) = false, want true", sentinel)
		}
	}
}

func TestFieldError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *FieldError
		contains []string
	}{
		{
			name:     "full context",
			err:      &FieldError{Err: ErrInvalidFEN, Field: "castling", Value: "KX"},
			contains: []string{"castling", `"KX"`, "invalid FEN"},
		},
		{
			name:     "no value",
			err:      &FieldError{Err: ErrMissingKing, Field: "placement"},
			contains: []string{"placement", "king"},
		},
		{
			name:     "no context",
			err:      &FieldError{Err: ErrInvalidFEN},
			contains: []string{"invalid FEN"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("FieldError.Error() = %q, should contain %q", msg, s)
				}
			}
		})
	}
}

func TestFieldError_Unwrap(t *testing.T) {
	err := Wrap(&FieldError{Err: ErrInvalidFEN, Field: "side"}, "position")

	if !errors.Is(err, ErrInvalidFEN) {
		t.Error("errors.Is(err, ErrInvalidFEN) = false, want true")
	}
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatal("errors.As(err, *FieldError) = false, want true")
	}
	if fe.Field != "side" {
		t.Errorf("Field = %q, want side", fe.Field)
	}
}

func TestMoveError(t *testing.T) {
	err := &MoveError{Err: ErrIllegalMove, Move: "e2e5", FEN: "8/8/8/8/8/8/8/8 w - - 0 1"}
	msg := err.Error()
	for _, s := range []string{`"e2e5"`, "illegal move", "8/8/8"} {
		if !strings.Contains(msg, s) {
			t.Errorf("MoveError.Error() = %q, should contain %q", msg, s)
		}
	}
	if !errors.Is(err, ErrIllegalMove) {
		t.Error("errors.Is(MoveError, ErrIllegalMove) = false, want true")
	}
}

func TestCommandError(t *testing.T) {
	err := &CommandError{Err: ErrUnknownCommand, Command: "frobnicate"}
	if got := err.Error(); got != "frobnicate: unknown command" {
		t.Errorf("CommandError.Error() = %q", got)
	}
	if !errors.Is(err, ErrUnknownCommand) {
		t.Error("errors.Is(CommandError, ErrUnknownCommand) = false, want true")
	}
}

func TestWrap_Nil(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}
}

func TestWrapf_Message(t *testing.T) {
	err := Wrapf(ErrInvalidMove, "ply %d", 7)
	if err.Error() != "ply 7: invalid move notation" {
		t.Errorf("Wrapf() = %q", err.Error())
	}
}

func TestIsAs(t *testing.T) {
	err := Wrap(&MoveError{Err: ErrIllegalMove, Move: "e2e5"}, "position")
	if !Is(err, ErrIllegalMove) {
		t.Errorf("Is(%v, ErrIllegalMove) = false", err)
	}
	var moveErr *MoveError
	if !As(err, &moveErr) || moveErr.Move != "e2e5" {
		t.Errorf("As did not find the MoveError in %v", err)
	}
}
