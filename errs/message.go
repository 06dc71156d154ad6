////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package errs

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/thedevsaddam/gojsonq"
)

// Paths tried, in order, when looking for a server supplied message in a
// response body.
var messagePaths = []string{"error", "error.message", "message"}

// MessageFromBody extracts a server supplied error message from a JSON
// response body. It returns an empty string when the body is not JSON or
// carries no message.
func MessageFromBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || (trimmed[0] != '{' && trimmed[0] != '[') {
		return ""
	}

	for _, path := range messagePaths {
		jq := gojsonq.New().FromString(trimmed)
		if msg, ok := jq.Find(path).(string); ok && msg != "" {
			return msg
		}
	}
	return ""
}

// FromResponse builds the error for a non-2xx response. The message is, in
// order of preference, the one in the body, the transport's own message for
// the status, or fallback.
func FromResponse(status int, body []byte, fallback string) *Error {
	kind := ServerError
	if status == http.StatusUnauthorized {
		kind = Unauthorized
	}

	msg := MessageFromBody(body)
	if msg == "" && status != 0 {
		msg = fmt.Sprintf("request failed with status code %d", status)
	}
	if msg == "" {
		msg = fallback
	}

	return &Error{Kind: kind, Status: status, Message: msg}
}
