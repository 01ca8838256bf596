package errors

import (
	stderrs "errors"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeEmptyInput, http.StatusUnprocessableEntity},
		{ErrorCodeNothingSelected, http.StatusUnprocessableEntity},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeRecordingStart, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnauthorized, http.StatusUnauthorized},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeExtraction, http.StatusBadGateway},
		{ErrorCodeTranscription, http.StatusBadGateway},
		{ErrorCodeNoProvider, http.StatusNotImplemented},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodeCommit, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError}, // default branch
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorTypeAndMethods(t *testing.T) {
	// nil *Error should render "<nil>"
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q, want <nil>", e.Error())
	}

	e1 := New(ErrorCodeValidation, "bad stuff")
	if CodeOf(e1) != ErrorCodeValidation {
		t.Fatalf("CodeOf(New) = %v", CodeOf(e1))
	}
	e2 := Newf(ErrorCodeJSON, "bad json %d", 12)
	if got := e2.Error(); got != "bad json 12" {
		t.Fatalf("Newf().Error = %q", got)
	}

	src := stderrs.New("root")
	e3 := Wrap(src, ErrorCodeDB, "db failed")
	if u := stderrs.Unwrap(e3); u == nil || u.Error() != "root" {
		t.Fatalf("Wrap did not keep orig")
	}
	if CodeOf(e3) != ErrorCodeDB {
		t.Fatalf("CodeOf(Wrap) = %v", CodeOf(e3))
	}
	if Root(e3) != src {
		t.Fatalf("Root did not reach the cause")
	}
}

func TestWorkflowSugar(t *testing.T) {
	cases := []struct {
		err  error
		code ErrorCode
	}{
		{NoProviderf("x"), ErrorCodeNoProvider},
		{RecordingStartf("x"), ErrorCodeRecordingStart},
		{Transcriptionf("x"), ErrorCodeTranscription},
		{EmptyInputf("x"), ErrorCodeEmptyInput},
		{Extractionf("x"), ErrorCodeExtraction},
		{NothingSelectedf("x"), ErrorCodeNothingSelected},
		{Commitf("x"), ErrorCodeCommit},
	}
	for _, c := range cases {
		if !IsCode(c.err, c.code) {
			t.Fatalf("IsCode(%v, %v) = false", c.err, c.code)
		}
	}
}

func TestWireFrom(t *testing.T) {
	w := WireFrom(EmptyInputf("nothing to extract"))
	if w.Code != ErrorCodeEmptyInput || w.Message != "nothing to extract" {
		t.Fatalf("WireFrom = %+v", w)
	}

	// plain errors fold to unknown
	w = WireFrom(stderrs.New("boom"))
	if w.Code != ErrorCodeUnknown || w.Message != "boom" {
		t.Fatalf("WireFrom(plain) = %+v", w)
	}

	if got := WireFrom(nil); got != (Wire{}) {
		t.Fatalf("WireFrom(nil) = %+v", got)
	}
}

func TestWithField(t *testing.T) {
	err := WithField(Validationf("must be a 24h time"), "work_start_time")
	e, ok := As(err)
	if !ok || e.Field() != "work_start_time" {
		t.Fatalf("WithField lost the field: %+v", err)
	}
	if w := WireFrom(err); w.Field != "work_start_time" {
		t.Fatalf("Wire dropped the field: %+v", w)
	}
}
