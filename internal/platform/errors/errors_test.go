package errors

import (
	stderrors "errors"
	"net/http"
	"testing"
)

func TestCodeOfAndHTTPStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   ErrorCode
		status int
	}{
		{"not found", NotFoundf("missing row"), ErrorCodeNotFound, http.StatusNotFound},
		{"invalid arg", InvalidArgf("bad input"), ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{"unauthorized", Unauthorizedf("no key"), ErrorCodeUnauthorized, http.StatusUnauthorized},
		{"conflict", Conflictf("dupe"), ErrorCodeConflict, http.StatusConflict},
		{"db", DBf("boom"), ErrorCodeDB, http.StatusInternalServerError},
		{"plain error", stderrors.New("plain"), ErrorCodeUnknown, http.StatusInternalServerError},
		{"nil-safe unknown", Internalf("x"), ErrorCodeUnknown, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := CodeOf(tc.err); got != tc.code {
				t.Fatalf("CodeOf = %v, want %v", got, tc.code)
			}
			if got := HTTPStatus(tc.err); got != tc.status {
				t.Fatalf("HTTPStatus = %d, want %d", got, tc.status)
			}
		})
	}
}

func TestWrapPreservesRoot(t *testing.T) {
	root := stderrors.New("connection refused")
	wrapped := Wrapf(root, ErrorCodeUnavailable, "opening store")

	if !stderrors.Is(wrapped, root) {
		t.Fatal("wrapped error lost its cause")
	}
	if got := Root(wrapped); got != root {
		t.Fatalf("Root = %v, want original cause", got)
	}
	if !IsCode(wrapped, ErrorCodeUnavailable) {
		t.Fatalf("code = %v, want unavailable", CodeOf(wrapped))
	}
}

func TestWithFieldAndWire(t *testing.T) {
	err := WithField(InvalidArgf("candidate is required"), "candidate")
	w := WireFrom(err)
	if w.Field != "candidate" {
		t.Fatalf("wire field = %q, want candidate", w.Field)
	}
	if w.Code != ErrorCodeInvalidArgument {
		t.Fatalf("wire code = %v", w.Code)
	}

	status, wire := HTTP(err)
	if status != http.StatusUnprocessableEntity || wire.Message == "" {
		t.Fatalf("HTTP = %d %+v", status, wire)
	}
}
