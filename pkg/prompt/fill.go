package prompt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/form"
)

// Fill prompts for every field of f and returns the collected values. Text
// answers are checked against the field's validators inside the prompt, so
// invalid input is asked again rather than accepted.
func Fill(ctx context.Context, f *form.Form, driver Driver) (map[string]any, error) {
	if f == nil {
		return nil, errors.New("prompt: form is required")
	}
	if driver == nil {
		return nil, errors.New("prompt: driver is required")
	}
	if title := f.Schema().Title; title != "" {
		if err := driver.Info(ctx, title); err != nil {
			return nil, err
		}
	}
	for _, fld := range f.Fields() {
		if err := ask(ctx, driver, fld); err != nil {
			return nil, err
		}
	}
	return f.Values(), nil
}

func ask(ctx context.Context, driver Driver, fld field.Field) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch fld.Kind() {
	case field.TypeButton:
		return nil
	case field.TypeObject:
		return askObject(ctx, driver, fld)
	case field.TypeArray:
		return askList(ctx, driver, fld)
	case field.TypeBoolean:
		return askBool(ctx, driver, fld)
	}
	if choices := fld.Choices(); len(choices) > 0 {
		return askChoice(ctx, driver, fld, choices)
	}
	return askText(ctx, driver, fld)
}

func askObject(ctx context.Context, driver Driver, fld field.Field) error {
	if label := fld.Label(); label != "" {
		if err := driver.Info(ctx, label); err != nil {
			return err
		}
	}
	composite, ok := fld.(field.Composite)
	if !ok {
		return nil
	}
	for _, child := range composite.Children() {
		if err := ask(ctx, driver, child); err != nil {
			return err
		}
	}
	return nil
}

func askBool(ctx context.Context, driver Driver, fld field.Field) error {
	current, _ := fld.Value().(bool)
	answer, err := driver.Confirm(ctx, ConfirmConfig{
		Message: message(fld),
		Default: current,
		Help:    fld.Spec().Description,
	})
	if err != nil {
		return err
	}
	fld.SetValue(answer)
	return nil
}

func askChoice(ctx context.Context, driver Driver, fld field.Field, choices []any) error {
	options := make([]string, len(choices))
	defaultIndex := -1
	current := fmt.Sprint(fld.Value())
	for i, choice := range choices {
		options[i] = fmt.Sprint(choice)
		if fld.Value() != nil && options[i] == current {
			defaultIndex = i
		}
	}
	idx, err := driver.Select(ctx, SelectConfig{
		Message:      message(fld),
		Options:      options,
		DefaultIndex: defaultIndex,
		Help:         fld.Spec().Description,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(choices) {
		return fmt.Errorf("prompt: %s: answer out of range", fld.Name())
	}
	fld.SetValue(choices[idx])
	return nil
}

func askText(ctx context.Context, driver Driver, fld field.Field) error {
	numeric := fld.Kind() == field.TypeInteger
	answer, err := driver.Input(ctx, InputConfig{
		Message:   message(fld),
		Default:   defaultText(fld.Value()),
		Help:      fld.Spec().Description,
		Validator: checker(fld, numeric),
	})
	if err != nil {
		return err
	}
	fld.SetValue(convert(answer, numeric))
	return nil
}

// askList reads a comma separated answer. Each item is validated through the
// item fields the array builds.
func askList(ctx context.Context, driver Driver, fld field.Field) error {
	answer, err := driver.Input(ctx, InputConfig{
		Message: message(fld) + " (comma separated)",
		Default: defaultList(fld.Value()),
		Help:    fld.Spec().Description,
		Validator: func(text string) error {
			fld.SetValue(splitList(text))
			if fld.Validate() {
				return nil
			}
			return firstError(fld)
		},
	})
	if err != nil {
		return err
	}
	fld.SetValue(splitList(answer))
	return nil
}

func checker(fld field.Field, numeric bool) func(string) error {
	return func(text string) error {
		previous := fld.Value()
		fld.SetValue(convert(text, numeric))
		if fld.Validate() {
			return nil
		}
		err := firstError(fld)
		fld.SetValue(previous)
		return err
	}
}

func firstError(fld field.Field) error {
	if errs := fld.Errors(); len(errs) > 0 {
		return errors.New(errs[0])
	}
	if composite, ok := fld.(field.Composite); ok {
		for _, child := range composite.Children() {
			if err := firstError(child); err != nil {
				return fmt.Errorf("%s: %w", child.Name(), err)
			}
		}
	}
	return nil
}

func message(fld field.Field) string {
	label := fld.Label()
	if label == "" {
		label = fld.Name()
	}
	if fld.Spec().Required {
		return label + " *"
	}
	return label
}

func convert(text string, numeric bool) any {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	if numeric {
		if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return f
		}
	}
	return text
}

func splitList(text string) []any {
	if strings.TrimSpace(text) == "" {
		return []any{}
	}
	parts := strings.Split(text, ",")
	out := make([]any, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultText(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

func defaultList(value any) string {
	items, ok := value.([]any)
	if !ok {
		return ""
	}
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprint(item)
	}
	return strings.Join(parts, ", ")
}
