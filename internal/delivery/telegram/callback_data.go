package telegram

import (
	"errors"
	"strconv"
	"strings"
)

// Callback actions.
const (
	actionGroup  = "group" // group:<name>
	actionAnswer = "quiz"  // quiz:<session>:<question>:<option>
	actionSpeak  = "speak" // speak:<session>:<question>
	actionRetry  = "retry" // retry:<session>
	actionMenu   = "menu"  // menu[:<session>]
	actionNoop   = "noop"  // frozen buttons
)

// Telegram rejects callback data longer than 64 bytes.
const maxCallbackDataLen = 64

var errMalformedCallback = errors.New("malformed callback data")

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// intParam returns the i-th parameter as an int.
func (cd callbackData) intParam(i int) (int, error) {
	if i >= len(cd.Params) {
		return 0, errMalformedCallback
	}
	n, err := strconv.Atoi(cd.Params[i])
	if err != nil {
		return 0, errMalformedCallback
	}
	return n, nil
}

// param returns the i-th parameter, empty when absent.
func (cd callbackData) param(i int) string {
	if i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

func buildGroupCallback(group string) string {
	return callbackData{Action: actionGroup, Params: []string{group}}.encode()
}

// buildAnswerCallback builds callback data for answering a quiz question.
func buildAnswerCallback(sessionID string, questionNum, optionIndex int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{
			sessionID,
			strconv.Itoa(questionNum),
			strconv.Itoa(optionIndex),
		},
	}.encode()
}

func buildSpeakCallback(sessionID string, questionNum int) string {
	return callbackData{
		Action: actionSpeak,
		Params: []string{sessionID, strconv.Itoa(questionNum)},
	}.encode()
}

func buildRetryCallback(sessionID string) string {
	return callbackData{Action: actionRetry, Params: []string{sessionID}}.encode()
}

func buildMenuCallback(sessionID string) string {
	if sessionID == "" {
		return actionMenu
	}
	return callbackData{Action: actionMenu, Params: []string{sessionID}}.encode()
}

func buildNoopCallback() string {
	return actionNoop
}
