package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		messageOK bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", messageOK: true, detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required", messageOK: true},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found", messageOK: true},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected", messageOK: true},
		{code: CodeRateLimit, status: http.StatusTooManyRequests, publicMsg: "rate limit exceeded", messageOK: true},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error"},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.MessageAllowed != tt.messageOK {
			t.Fatalf("code %s expected message allowed %v got %v", tt.code, tt.messageOK, meta.MessageAllowed)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "title is required")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "title is required" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	base.WithDetails(map[string]any{"field": "title"})
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeConflict, cause, "ctx")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeConflict {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
}

func TestPublicMessageHidesInternalDetail(t *testing.T) {
	internal := Wrap(CodeInternal, stdErrors.New("dial tcp: refused"), "list products")
	if got := internal.PublicMessage(); got != "internal server error" {
		t.Fatalf("expected generic message, got %q", got)
	}

	conflict := New(CodeConflict, "category already exists")
	if got := conflict.PublicMessage(); got != "category already exists" {
		t.Fatalf("expected conflict message to be exposed, got %q", got)
	}
}

func TestAsReturnsTypedError(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeNotFound, "product not found"))
	if got := As(err); got == nil || got.Code() != CodeNotFound {
		t.Fatalf("As failed to return typed error")
	}
	if !IsCode(err, CodeNotFound) {
		t.Fatalf("IsCode should match wrapped code")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
}

func TestLogFieldsExtractsPostgresFields(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "categories_slug_key", TableName: "categories", Message: "duplicate key value"}
	fields := LogFields(Wrap(CodeConflict, pgErr, "create category"))

	if fields["error_code"] != string(CodeConflict) {
		t.Fatalf("expected conflict code, got %v", fields["error_code"])
	}
	if fields["pg_code"] != "23505" || fields["pg_constraint"] != "categories_slug_key" || fields["pg_table"] != "categories" {
		t.Fatalf("unexpected pg fields %+v", fields)
	}
	if _, ok := fields["pg_column"]; ok {
		t.Fatalf("empty pg fields should be omitted, got %+v", fields)
	}
	if chain, _ := fields["error_chain"].([]string); len(chain) != 2 {
		t.Fatalf("expected two entries in chain, got %v", fields["error_chain"])
	}
}

func TestLogFieldsForPlainErrors(t *testing.T) {
	fields := LogFields(stdErrors.New("disk full"))
	if fields["error_code"] != string(CodeInternal) {
		t.Fatalf("plain errors should log as internal, got %v", fields["error_code"])
	}
	if len(LogFields(nil)) != 0 {
		t.Fatal("expected no fields for nil error")
	}
}

func TestFieldErrorsKeepsFirstMessage(t *testing.T) {
	var fields FieldErrors
	if fields.Err() != nil {
		t.Fatal("expected nil error when nothing recorded")
	}

	fields.Required("title")
	fields.Add("price", "price must be non-negative")
	fields.Add("title", "ignored")

	err := As(fields.Err())
	if err == nil {
		t.Fatal("expected typed error")
	}
	if err.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", err.Code())
	}
	if err.Message() != "title is required" {
		t.Fatalf("unexpected message %q", err.Message())
	}
	details, ok := err.Details().(map[string]string)
	if !ok || len(details) != 2 || details["title"] != "title is required" {
		t.Fatalf("unexpected details %#v", err.Details())
	}
}
