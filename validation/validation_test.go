package validation

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	apperrors "github.com/kbukum/grangerbatch/errors"
)

func TestValidatorRequired(t *testing.T) {
	v := New()
	v.Required("input_dir", "/data/in")
	if v.HasErrors() {
		t.Error("expected no errors for valid input")
	}

	v2 := New()
	v2.Required("input_dir", "")
	if !v2.HasErrors() {
		t.Error("expected error for empty required field")
	}

	v3 := New()
	v3.Required("input_dir", "   ")
	if !v3.HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorRequiredUUID(t *testing.T) {
	validUUID := uuid.New().String()

	v := New()
	v.RequiredUUID("run_id", validUUID)
	if v.HasErrors() {
		t.Errorf("expected no errors for valid UUID, got %v", v.Errors())
	}

	v2 := New()
	v2.RequiredUUID("run_id", "")
	if !v2.HasErrors() {
		t.Error("expected error for empty UUID")
	}

	v3 := New()
	v3.RequiredUUID("run_id", "not-a-uuid")
	if !v3.HasErrors() {
		t.Error("expected error for invalid UUID")
	}

	v4 := New()
	v4.RequiredUUID("run_id", uuid.Nil.String())
	if !v4.HasErrors() {
		t.Error("expected error for nil UUID")
	}
}

func TestValidatorOptionalUUID(t *testing.T) {
	v := New()
	v.OptionalUUID("run_id", "")
	if v.HasErrors() {
		t.Error("expected no error for empty optional UUID")
	}

	v2 := New()
	v2.OptionalUUID("run_id", uuid.New().String())
	if v2.HasErrors() {
		t.Error("expected no error for valid optional UUID")
	}

	v3 := New()
	v3.OptionalUUID("run_id", "bad-uuid")
	if !v3.HasErrors() {
		t.Error("expected error for invalid optional UUID")
	}
}

func TestValidatorMinMax(t *testing.T) {
	v := New()
	v.Min("max_concurrent", 2, 1)
	v.Max("max_concurrent", 2, 64)
	if v.HasErrors() {
		t.Error("expected no errors")
	}

	v2 := New()
	v2.Min("max_concurrent", 0, 1)
	if !v2.HasErrors() {
		t.Error("expected error for value below min")
	}

	v3 := New()
	v3.Max("max_concurrent", 100, 64)
	if !v3.HasErrors() {
		t.Error("expected error for value above max")
	}
}

func TestValidatorRange(t *testing.T) {
	v := New()
	v.Range("max_concurrent", 4, 1, 64)
	if v.HasErrors() {
		t.Error("expected no error for value in range")
	}

	v2 := New()
	v2.Range("max_concurrent", 0, 1, 64)
	if !v2.HasErrors() {
		t.Error("expected error for value below range")
	}

	v3 := New()
	v3.Range("max_concurrent", 65, 1, 64)
	if !v3.HasErrors() {
		t.Error("expected error for value above range")
	}
}

func TestValidatorLengths(t *testing.T) {
	v := New()
	v.MinLength("id", "matrix", 2)
	v.MaxLength("id", "matrix", 32)
	if v.HasErrors() {
		t.Error("expected no errors for valid lengths")
	}

	v2 := New()
	v2.MinLength("id", "m", 2)
	if !v2.HasErrors() {
		t.Error("expected error for string below min length")
	}

	v3 := New()
	v3.MaxLength("id", strings.Repeat("x", 40), 32)
	if !v3.HasErrors() {
		t.Error("expected error for string exceeding max length")
	}
}

func TestValidatorPattern(t *testing.T) {
	v := New()
	v.Pattern("id", "global-metrics", `^[a-z][a-z0-9-]*$`)
	if v.HasErrors() {
		t.Error("expected no error for matching pattern")
	}

	v2 := New()
	v2.Pattern("id", "Global Metrics", `^[a-z][a-z0-9-]*$`)
	if !v2.HasErrors() {
		t.Error("expected error for non-matching pattern")
	}

	// Empty value should be skipped
	v3 := New()
	v3.Pattern("id", "", `^[a-z]+$`)
	if v3.HasErrors() {
		t.Error("expected no error for empty value with pattern")
	}
}

func TestValidatorOneOf(t *testing.T) {
	v := New()
	v.OneOf("log_level", "info", []string{"debug", "info", "warn", "error"})
	if v.HasErrors() {
		t.Error("expected no error for valid oneOf value")
	}

	v2 := New()
	v2.OneOf("log_level", "loud", []string{"debug", "info", "warn", "error"})
	if !v2.HasErrors() {
		t.Error("expected error for invalid oneOf value")
	}

	// Empty should be skipped
	v3 := New()
	v3.OneOf("log_level", "", []string{"info"})
	if v3.HasErrors() {
		t.Error("expected no error for empty oneOf value")
	}
}

func TestValidatorCustom(t *testing.T) {
	v := New()
	v.Custom(true, "field", "should pass")
	if v.HasErrors() {
		t.Error("expected no error for true condition")
	}

	v2 := New()
	v2.Custom(false, "jobs", "at least one job type must be selected")
	if !v2.HasErrors() {
		t.Error("expected error for false condition")
	}
	if v2.Errors()[0].Message != "at least one job type must be selected" {
		t.Errorf("unexpected message: %q", v2.Errors()[0].Message)
	}
}

func TestValidatorValidate(t *testing.T) {
	v := New()
	v.Required("input_dir", "/data/in")
	if batchErr := v.Validate(); batchErr != nil {
		t.Error("expected nil for valid input")
	}

	v2 := New()
	v2.Required("input_dir", "")
	v2.Required("output_dir", "")
	batchErr := v2.Validate()
	if batchErr == nil {
		t.Fatal("expected error")
	}
	if batchErr.Code != apperrors.ErrCodeInvalidConfiguration {
		t.Fatalf("expected INVALID_CONFIGURATION, got %s", batchErr.Code)
	}
	if batchErr.Details == nil {
		t.Fatal("expected details in error")
	}
	if !strings.Contains(batchErr.Message, "input_dir") || !strings.Contains(batchErr.Message, "output_dir") {
		t.Errorf("expected both fields in message, got %q", batchErr.Message)
	}
}

func TestValidatorChaining(t *testing.T) {
	v := New()
	result := v.Required("input_dir", "/in").MaxLength("input_dir", "/in", 100).Min("max_concurrent", 2, 1)
	if result != v {
		t.Error("expected chaining to return same validator")
	}
	if v.HasErrors() {
		t.Error("expected no errors for valid chained validation")
	}
}

func TestStructValidateValid(t *testing.T) {
	type Manifest struct {
		ID   string `json:"id" validate:"required,min=2"`
		Name string `json:"name" validate:"required"`
	}

	err := Validate(Manifest{ID: "matrix", Name: "Connectivity Matrices"})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestStructValidateInvalid(t *testing.T) {
	type Manifest struct {
		ID   string `json:"id" validate:"required,min=2"`
		Name string `json:"name" validate:"required"`
	}

	err := Validate(Manifest{ID: "", Name: ""})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if apperrors.CodeOf(err) != apperrors.ErrCodeInvalidConfiguration {
		t.Fatalf("expected INVALID_CONFIGURATION, got %s", apperrors.CodeOf(err))
	}
	if !strings.Contains(err.Error(), "id") {
		t.Errorf("expected error to mention 'id', got %q", err.Error())
	}
}

func TestStructValidateMaxMin(t *testing.T) {
	type Input struct {
		Code string `json:"code" validate:"required,min=3,max=10"`
	}

	if err := Validate(Input{Code: "abc"}); err != nil {
		t.Errorf("expected valid, got %v", err)
	}

	if err := Validate(Input{Code: "ab"}); err == nil {
		t.Error("expected error for code too short")
	}
}

func TestValidateUUIDFunc(t *testing.T) {
	validUUID := uuid.New().String()
	id, err := ValidateUUID("run_id", validUUID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if id.String() != validUUID {
		t.Errorf("expected %s, got %s", validUUID, id.String())
	}
}

func TestValidateUUIDFuncEmpty(t *testing.T) {
	_, err := ValidateUUID("run_id", "")
	if err == nil {
		t.Error("expected error for empty UUID")
	}
}

func TestValidateUUIDFuncInvalid(t *testing.T) {
	_, err := ValidateUUID("run_id", "bad")
	if err == nil {
		t.Error("expected error for invalid UUID")
	}
}

func TestRequiredFunc(t *testing.T) {
	err := Required("input_dir", "/data/in")
	if err != nil {
		t.Errorf("expected nil, got %v", err)
	}

	err = Required("input_dir", "")
	if err == nil {
		t.Error("expected error for empty required field")
	}
}
