package engine

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// ErrorCode is the numeric tag on a GameErrorEvent. Codes are stable so
// clients can localize per rule.
type ErrorCode int

const (
	CodeActionNotPermitted    ErrorCode = 100
	CodeInvalidTurnToken      ErrorCode = 101
	CodeIncorrectDiscardCount ErrorCode = 102
	CodeMalformedResources    ErrorCode = 103

	CodeNotEnoughResources   ErrorCode = 200
	CodeNoPiecesRemaining    ErrorCode = 201
	CodeLocationOutOfRange   ErrorCode = 202
	CodeLocationOccupied     ErrorCode = 203
	CodeTooCloseToSettlement ErrorCode = 204
	CodeRoadNotConnected     ErrorCode = 205
	CodeNotOwnedSettlement   ErrorCode = 206
	CodeRobberHexUnchanged   ErrorCode = 207
	CodeRobberHexOutOfRange  ErrorCode = 208
	CodeNoDevelopmentCards   ErrorCode = 209
	CodeCardNotPlayable      ErrorCode = 210
	CodeInvalidTradeAnswer   ErrorCode = 211
	CodeInvalidRobbingChoice ErrorCode = 212
	CodeBankTradeInvalid     ErrorCode = 213
)

// NewGameError builds a GameErrorEvent addressed to one player.
func NewGameError(player uuid.UUID, code ErrorCode, format string, args ...any) GameErrorEvent {
	return GameErrorEvent{PlayerID: player, Code: code, Message: fmt.Sprintf(format, args...)}
}

// NotPermittedError names the offending type and lists the expected types,
// sorted so the message is reproducible.
func NotPermittedError(player uuid.UUID, got ActionType, expected []ActionType) GameErrorEvent {
	names := make([]string, 0, len(expected))
	for _, t := range expected {
		names = append(names, string(t))
	}
	sort.Strings(names)
	return NewGameError(player, CodeActionNotPermitted,
		"action %q is not permitted now, expected one of %v", string(got), names)
}

// OutOfRangeError is the shared message for off-board locations.
func OutOfRangeError(player uuid.UUID, loc Location) GameErrorEvent {
	return NewGameError(player, CodeLocationOutOfRange,
		"location %d is outside of board range (0 - %d)", loc, LastLocation)
}
