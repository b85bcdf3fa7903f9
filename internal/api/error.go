package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// CodeAccountNotLinked is the structured error code the backend returns
// when an action needs an external account the user has not connected yet.
const CodeAccountNotLinked = "account_not_linked"

// Error is a non-success backend response. Detail carries the server's
// human-readable text verbatim; Code is the structured error kind when the
// backend provides one.
type Error struct {
	StatusCode int
	Code       string
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return http.StatusText(e.StatusCode)
}

// AccountNotLinked reports whether the error means a missing external
// account link. The structured code is authoritative; the substring match
// only covers older backends that return bare text.
func (e *Error) AccountNotLinked() bool {
	if e.Code != "" {
		return e.Code == CodeAccountNotLinked
	}
	detail := strings.ToLower(e.Detail)
	return strings.Contains(e.Detail, "연동") ||
		strings.Contains(detail, "not linked") ||
		strings.Contains(detail, "not connected")
}

// IsAccountNotLinked reports whether err is a backend error asking the
// user to link an account first
func IsAccountNotLinked(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.AccountNotLinked()
}

// errorBody covers the backend's error envelope variants: FastAPI-style
// {"detail": ...} and the generic {"message": ...}.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func decodeError(status int, data []byte) *Error {
	var body errorBody
	_ = json.Unmarshal(data, &body)

	detail := body.Detail
	if detail == "" {
		detail = body.Message
	}
	return &Error{
		StatusCode: status,
		Code:       body.Code,
		Detail:     detail,
	}
}
