package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/cadmin/cadmin-api/internal/core/domain"
)

type sample struct {
	Title    string  `validate:"required,min=1,max=5"`
	Email    string  `validate:"omitempty,email"`
	Status   *string `validate:"omitempty,oneof=ACTIVE DRAFT"`
	Category string  `validate:"max=3"`
}

func TestStruct_Valid(t *testing.T) {
	if err := New().Struct(sample{Title: "ok"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestStruct_CollectsEveryField(t *testing.T) {
	bad := "PUBLISHED"
	err := New().Struct(sample{Title: "", Email: "nope", Status: &bad, Category: "toolong"})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %T (%v)", err, err)
	}
	if len(ve.Fields) != 4 {
		t.Fatalf("expected 4 field errors, got %d: %+v", len(ve.Fields), ve.Fields)
	}

	byField := make(map[string]string)
	for _, f := range ve.Fields {
		byField[f.Field] = f.Message
	}
	if byField["title"] != "title is required" {
		t.Errorf("title: %q", byField["title"])
	}
	if byField["email"] != "email must be a valid email" {
		t.Errorf("email: %q", byField["email"])
	}
	if !strings.Contains(byField["status"], "ACTIVE, DRAFT") {
		t.Errorf("status: %q", byField["status"])
	}
	if byField["category"] != "category must be at most 3 characters" {
		t.Errorf("category: %q", byField["category"])
	}
}

func TestStruct_NonStruct(t *testing.T) {
	err := New().Struct("not a struct")
	if err == nil {
		t.Fatal("expected an error for a non-struct value")
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		t.Fatal("non-struct input must not be reported as a validation error")
	}
}
