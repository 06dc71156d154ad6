////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package errs

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// Tests that Is finds the kind through pkg/errors wrapping.
func TestIs_Wrapped(t *testing.T) {
	base := New(InvalidInvocation, "call LoginUser first")
	wrapped := errors.Wrap(errors.WithMessage(base, "listing channels"), "cli")

	require.True(t, Is(wrapped, InvalidInvocation))
	require.False(t, Is(wrapped, Unauthorized))
	require.Equal(t, InvalidInvocation, KindOf(wrapped))
	require.Equal(t, base, errors.Cause(wrapped))
}

// Tests that KindOf returns Unknown for foreign errors and nil.
func TestKindOf_Foreign(t *testing.T) {
	require.Equal(t, Unknown, KindOf(errors.New("boom")))
	require.Equal(t, Unknown, KindOf(nil))
	require.False(t, Is(nil, Unknown))
}

// Tests that the error string carries kind, message, status and cause.
func TestError_Error(t *testing.T) {
	e := Wrap(NetworkError, errors.New("connection refused"), "GET /users")
	e.Status = 0
	expected := "NetworkError: GET /users: connection refused"
	if e.Error() != expected {
		t.Errorf("Unexpected error string.\nexpected: %q\nreceived: %q",
			expected, e.Error())
	}

	e = FromResponse(http.StatusBadGateway, nil, "fallback")
	expected = "ServerError: request failed with status code 502 (status 502)"
	if e.Error() != expected {
		t.Errorf("Unexpected error string.\nexpected: %q\nreceived: %q",
			expected, e.Error())
	}
}

// Tests the message preference order of FromResponse.
func TestFromResponse(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		kind     Kind
		expected string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":"bad token"}`,
			Unauthorized, "bad token"},
		{"nested", http.StatusBadRequest, `{"error":{"message":"no members"}}`,
			ServerError, "no members"},
		{"message field", http.StatusNotFound, `{"message":"channel not found"}`,
			ServerError, "channel not found"},
		{"plain text body", http.StatusInternalServerError, `oops`,
			ServerError, "request failed with status code 500"},
		{"empty object", http.StatusConflict, `{}`,
			ServerError, "request failed with status code 409"},
		{"no status", 0, ``, ServerError, "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := FromResponse(tt.status, []byte(tt.body), "fallback")
			require.Equal(t, tt.kind, e.Kind)
			require.Equal(t, tt.expected, e.Message)
			require.Equal(t, tt.status, e.Status)
		})
	}
}

// Tests that non-string error values are skipped.
func TestMessageFromBody_NonString(t *testing.T) {
	require.Equal(t, "", MessageFromBody([]byte(`{"error":42}`)))
	require.Equal(t, "x", MessageFromBody([]byte(`{"error":42,"message":"x"}`)))
}

// Tests Kind.String for known and unknown kinds.
func TestKind_String(t *testing.T) {
	require.Equal(t, "Unauthorized", Unauthorized.String())
	require.Equal(t, "INVALID KIND 99", Kind(99).String())
}
