package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/registry"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// scriptedDriver answers prompts from queues. Input answers rejected by the
// validator are recorded and the next answer is tried, as a terminal user
// would retype.
type scriptedDriver struct {
	inputs   []string
	confirms []bool
	selects  []int
	rejected []string
	infos    []string
	asked    []string
}

func (d *scriptedDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	d.asked = append(d.asked, cfg.Message)
	for len(d.inputs) > 0 {
		answer := d.inputs[0]
		d.inputs = d.inputs[1:]
		if cfg.Validator != nil {
			if err := cfg.Validator(answer); err != nil {
				d.rejected = append(d.rejected, err.Error())
				continue
			}
		}
		return answer, nil
	}
	return "", ErrAborted
}

func (d *scriptedDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	d.asked = append(d.asked, cfg.Message)
	if len(d.confirms) == 0 {
		return false, ErrAborted
	}
	answer := d.confirms[0]
	d.confirms = d.confirms[1:]
	return answer, nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	d.asked = append(d.asked, cfg.Message)
	if len(d.selects) == 0 {
		return 0, ErrAborted
	}
	answer := d.selects[0]
	d.selects = d.selects[1:]
	return answer, nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func newForm(t *testing.T) *form.Form {
	t.Helper()
	s := &schema.Schema{
		Title: "Signup",
		Fields: []field.Spec{
			{Name: "name", Label: "Name", Type: field.TypeString, Required: true, MinLength: 2},
			{Name: "age", Label: "Age", Type: field.TypeInteger},
			{Name: "plan", Label: "Plan", Type: field.TypeEnum, Choices: []any{"free", "pro"}},
			{Name: "agree", Label: "Agree", Type: field.TypeBoolean, MustBeTrue: true},
			{Name: "address", Label: "Address", Type: field.TypeObject, Properties: []field.Spec{
				{Name: "city", Label: "City", Type: field.TypeString},
			}},
			{Name: "tags", Label: "Tags", Type: field.TypeArray, Items: &field.Spec{Type: field.TypeString, MaxLength: 4}},
			{Name: "go", Label: "Go", Type: field.TypeButton},
		},
	}
	f, err := form.New(registry.New(), s)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return f
}

func TestFillCollectsValidatedAnswers(t *testing.T) {
	driver := &scriptedDriver{
		inputs:   []string{"A", "Ada", "x", "36", "Paris", "go, toolong", "go, web"},
		confirms: []bool{true},
		selects:  []int{1},
	}

	values, err := Fill(context.Background(), newForm(t), driver)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	want := map[string]any{
		"name":    "Ada",
		"age":     int64(36),
		"plan":    "pro",
		"agree":   true,
		"address": map[string]any{"city": "Paris"},
		"tags":    []any{"go", "web"},
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	wantRejected := []string{
		"Length must be at least 2!",
		"Value must be an integer",
		"1: Length must be no more than 4!",
	}
	if diff := cmp.Diff(wantRejected, driver.rejected); diff != "" {
		t.Fatalf("rejections mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Signup", "Address"}, driver.infos); diff != "" {
		t.Fatalf("infos mismatch (-want +got):\n%s", diff)
	}
	wantAsked := []string{"Name *", "Age", "Plan", "Agree", "City", "Tags (comma separated)"}
	if diff := cmp.Diff(wantAsked, driver.asked); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}
}

func TestFillPropagatesAbort(t *testing.T) {
	_, err := Fill(context.Background(), newForm(t), &scriptedDriver{})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestFillHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Fill(ctx, newForm(t), &scriptedDriver{inputs: []string{"Ada"}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFillRequiresArguments(t *testing.T) {
	if _, err := Fill(context.Background(), nil, &scriptedDriver{}); err == nil {
		t.Fatalf("nil form should fail")
	}
	if _, err := Fill(context.Background(), newForm(t), nil); err == nil {
		t.Fatalf("nil driver should fail")
	}
}

func TestConvert(t *testing.T) {
	cases := []struct {
		in      string
		numeric bool
		want    any
	}{
		{"", false, nil},
		{"  ", true, nil},
		{"42", true, int64(42)},
		{"4.5", true, 4.5},
		{"abc", true, "abc"},
		{"42", false, "42"},
	}
	for _, tc := range cases {
		if got := convert(tc.in, tc.numeric); got != tc.want {
			t.Fatalf("convert(%q, %v) = %#v, want %#v", tc.in, tc.numeric, got, tc.want)
		}
	}
}
