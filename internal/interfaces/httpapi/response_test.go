package httpapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/courtside/hooprun/internal/usecase"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantReason string
	}{
		{usecase.ErrInvalidInput, http.StatusBadRequest, "invalidInput"},
		{usecase.ErrInvalidStatus, http.StatusBadRequest, "invalidInput"},
		{usecase.ErrDuplicateInvite, http.StatusConflict, "duplicateInvite"},
		{usecase.ErrRunFull, http.StatusConflict, "runFull"},
		{usecase.ErrNotFound, http.StatusNotFound, "notFound"},
		{usecase.ErrInviteNotFound, http.StatusNotFound, "notFound"},
		{usecase.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable, "dependencyUnavailable"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "internalError"},
	}

	for _, tc := range cases {
		mapped := mapError(fmt.Errorf("wrap: %w", tc.err))
		if mapped.HTTPStatus != tc.wantStatus {
			t.Fatalf("%v: expected status %d, got %d", tc.err, tc.wantStatus, mapped.HTTPStatus)
		}
		if mapped.Reason != tc.wantReason {
			t.Fatalf("%v: expected reason %s, got %s", tc.err, tc.wantReason, mapped.Reason)
		}
	}
}

func TestWriteError_EnvelopeShape(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(t.Context(), rec, fmt.Errorf("%w: profile already on roster", usecase.ErrDuplicateInvite))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	var envelope googleResponseEnvelope
	if err := sonic.ConfigDefault.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.APIVersion != googleAPIVersion {
		t.Fatalf("expected apiVersion %s, got %s", googleAPIVersion, envelope.APIVersion)
	}
	if envelope.Error == nil || envelope.Error.Status != "ALREADY_EXISTS" {
		t.Fatalf("unexpected error body: %+v", envelope.Error)
	}
	if len(envelope.Error.Errors) != 1 || envelope.Error.Errors[0].Domain != errorDomain {
		t.Fatalf("unexpected error items: %+v", envelope.Error.Errors)
	}
	if !strings.Contains(envelope.Error.Message, "profile already on roster") {
		t.Fatalf("expected original message, got %s", envelope.Error.Message)
	}
}

func TestWriteSuccess_EnvelopeShape(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(t.Context(), rec, http.StatusCreated, map[string]string{"id": "jr-1"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var envelope googleResponseEnvelope
	if err := sonic.ConfigDefault.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Error != nil {
		t.Fatalf("expected no error body, got %+v", envelope.Error)
	}
	data, ok := envelope.Data.(map[string]any)
	if !ok || data["id"] != "jr-1" {
		t.Fatalf("unexpected data: %+v", envelope.Data)
	}
}
