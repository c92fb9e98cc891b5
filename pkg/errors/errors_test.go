package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
	}{
		{CodeValidation, http.StatusBadRequest, "validation failed", false},
		{CodeNotFound, http.StatusNotFound, "resource not found", false},
		{CodeConflict, http.StatusConflict, "conflict detected", false},
		{CodeInUse, http.StatusMethodNotAllowed, "resource is still referenced", false},
		{CodeInternal, http.StatusInternalServerError, "internal server error", true},
	}

	for _, tc := range tests {
		meta := MetadataFor(tc.code)
		if meta.HTTPStatus != tc.status {
			t.Errorf("%s: expected status %d, got %d", tc.code, tc.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tc.publicMsg {
			t.Errorf("%s: expected message %q, got %q", tc.code, tc.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tc.retryable {
			t.Errorf("%s: expected retryable %v, got %v", tc.code, tc.retryable, meta.Retryable)
		}
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	meta := MetadataFor(Code("NOT_A_CODE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestErrorWrappingAndAs(t *testing.T) {
	cause := stdErrors.New("root cause")
	err := Wrap(CodeConflict, cause, "sku already exists")

	if got := err.Error(); got != "CONFLICT: sku already exists" {
		t.Fatalf("unexpected error string %q", got)
	}
	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}

	typed := As(err)
	if typed == nil {
		t.Fatal("expected As to recover the typed error")
	}
	if typed.Code() != CodeConflict {
		t.Fatalf("expected conflict code, got %s", typed.Code())
	}
}

func TestWrapNilCause(t *testing.T) {
	err := Wrap(CodeNotFound, nil, "missing")
	if err.Unwrap() != nil {
		t.Fatal("expected nil cause")
	}
	if err.Code() != CodeNotFound {
		t.Fatalf("unexpected code %s", err.Code())
	}
}

func TestWithDetails(t *testing.T) {
	err := New(CodeValidation, "bad input").WithDetails(map[string]string{"field": "quantity"})
	details, ok := err.Details().(map[string]string)
	if !ok {
		t.Fatalf("unexpected details type %T", err.Details())
	}
	if details["field"] != "quantity" {
		t.Fatalf("unexpected details %v", details)
	}
}

func TestDumpCollectsPGFields(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "products_vendor_sku_key",
		TableName:      "products",
		Message:        "duplicate key value violates unique constraint",
	}
	err := Wrap(CodeConflict, pgErr, "vendor sku already exists")

	dump := Dump(err)
	if dump.Code != CodeConflict {
		t.Fatalf("expected conflict code, got %s", dump.Code)
	}
	if dump.PGCode != "23505" {
		t.Fatalf("expected pg code to surface, got %q", dump.PGCode)
	}
	if dump.PGConstraint != "products_vendor_sku_key" {
		t.Fatalf("expected constraint name, got %q", dump.PGConstraint)
	}
	if len(dump.Chain) < 2 {
		t.Fatalf("expected unwrap chain, got %v", dump.Chain)
	}
}

func TestDumpNil(t *testing.T) {
	if dump := Dump(nil); dump.TopMessage != "" {
		t.Fatalf("expected zero dump, got %+v", dump)
	}
}
