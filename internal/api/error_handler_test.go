package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/driveway/rental-system/internal/core/domain"
)

func render(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp errorResponse
	if jerr := json.Unmarshal(rec.Body.Bytes(), &resp); jerr != nil {
		t.Fatalf("invalid json: %v", jerr)
	}
	return rec.Code, resp.Error
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: name is required", domain.ErrValidation), http.StatusBadRequest},
		{domain.ErrCarNotFound, http.StatusNotFound},
		{domain.ErrBookingNotFound, http.StatusNotFound},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrNotAuthenticated, http.StatusUnauthorized},
		{fmt.Errorf("%w to cancel this booking", domain.ErrUnauthorized), http.StatusForbidden},
		{domain.ErrAccountDeactivated, http.StatusForbidden},
		{domain.ErrDuplicateEmail, http.StatusConflict},
		{fmt.Errorf("%w: cannot move from rejected to approved", domain.ErrInvalidState), http.StatusConflict},
		{domain.ErrCarUnavailable, http.StatusUnprocessableEntity},
		{domain.ErrInvalidDateRange, http.StatusUnprocessableEntity},
	}

	for _, tc := range cases {
		code, msg := render(t, tc.err)
		if code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, code)
		}
		if msg != tc.err.Error() {
			t.Errorf("%v: expected message %q, got %q", tc.err, tc.err.Error(), msg)
		}
	}
}

func TestErrorHandler_EchoError(t *testing.T) {
	code, msg := render(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if code != http.StatusBadRequest || msg != "invalid payload" {
		t.Fatalf("unexpected %d %q", code, msg)
	}
}

func TestErrorHandler_HidesUnknownErrors(t *testing.T) {
	code, msg := render(t, errors.New("dial tcp 10.0.0.1:6379: connection refused"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("leaked message %q", msg)
	}
}
