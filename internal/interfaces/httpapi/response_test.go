package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/booze-baton/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestWriteError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, errors.New("pq: password authentication failed"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	var body googleResponseEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if body.Error == nil || body.Error.Message != "internal server error" {
		t.Fatalf("unexpected error body: %+v", body.Error)
	}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{fmt.Errorf("%w: x", usecase.ErrInvalidInput), http.StatusBadRequest, "INVALID_ARGUMENT"},
		{fmt.Errorf("%w: x", usecase.ErrForbidden), http.StatusForbidden, "PERMISSION_DENIED"},
		{fmt.Errorf("%w: x", usecase.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("%w: x", usecase.ErrConflict), http.StatusConflict, "ABORTED"},
		{fmt.Errorf("%w: x", usecase.ErrDependencyUnavailable), http.StatusServiceUnavailable, "UNAVAILABLE"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tt := range tests {
		got := mapError(tt.err)
		if got.HTTPStatus != tt.wantStatus || got.Status != tt.wantCode {
			t.Fatalf("mapError(%v)=%+v want status=%d code=%s", tt.err, got, tt.wantStatus, tt.wantCode)
		}
	}
}
