package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/hobbylab/hobbylab-core/internal/domain/shared"
)

var validate = validator.New()

// Command-line input shapes, checked before they reach the store.

type hobbyInput struct {
	Name  string `validate:"required,max=80"`
	Color string `validate:"omitempty,hexcolor"`
	Icon  string `validate:"max=64"`
}

type hobbyPatch struct {
	Name  string `validate:"max=80"`
	Color string `validate:"omitempty,hexcolor"`
	Icon  string `validate:"max=64"`
}

type projectInput struct {
	Name        string `validate:"required,max=120"`
	Description string `validate:"max=2000"`
}

type taskInput struct {
	Title string `validate:"required,max=200"`
}

type sessionInput struct {
	Duration time.Duration `validate:"gt=0,lte=24h"`
	Notes    string        `validate:"max=2000"`
	Tags     []string      `validate:"dive,required,max=40"`
}

type ideaInput struct {
	Title string   `validate:"required,max=200"`
	Tags  []string `validate:"dive,required,max=40"`
	Links []string `validate:"dive,url"`
}

type profileInput struct {
	Name string `validate:"max=40"`
}

// check validates v and reports every failing field in one validation error.
func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return shared.NewDomainError("input", "Validate", shared.ErrValidation, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "hexcolor":
		return fmt.Sprintf("%s %q is not a hex color", field, fe.Value())
	case "url":
		return fmt.Sprintf("%q is not a URL", fe.Value())
	case "gt":
		return field + " must be positive"
	case "max", "lte":
		return fmt.Sprintf("%s exceeds %s", field, fe.Param())
	}
	return fmt.Sprintf("%s failed %s", field, fe.Tag())
}
