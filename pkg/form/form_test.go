package form

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/registry"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/validators"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

func contactSchema() *schema.Schema {
	return &schema.Schema{
		Title: "Contact",
		Fields: []field.Spec{
			{Name: "email", Label: "Email", Type: field.TypeString, Required: true, MinLength: 5, Pattern: `^\S+@\S+$`},
			{Name: "age", Label: "Age", Type: field.TypeInteger},
			{Name: "agree", Label: "Agree", Type: field.TypeBoolean, MustBeTrue: true},
			{
				Name:  "address",
				Label: "Address",
				Type:  field.TypeObject,
				Properties: []field.Spec{
					{Name: "city", Label: "City", Type: field.TypeString, Required: true},
				},
			},
			{Name: "tags", Type: field.TypeArray, Items: &field.Spec{Type: field.TypeString, MaxLength: 3}},
			{Name: "send", Label: "Send", Type: field.TypeButton},
		},
	}
}

func mustForm(t *testing.T, reg *registry.Registry, s *schema.Schema, opts ...Option) *Form {
	t.Helper()
	f, err := New(reg, s, opts...)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return f
}

func TestNewResolvesFieldsThroughRegistry(t *testing.T) {
	f := mustForm(t, registry.New(), contactSchema())

	names := make([]string, 0)
	for _, fld := range f.Fields() {
		names = append(names, fld.Name())
	}
	if diff := cmp.Diff([]string{"email", "age", "agree", "address", "tags", "send"}, names); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}

	city, ok := f.Field("address.city")
	if !ok || city.Label() != "City" {
		t.Fatalf("nested lookup failed: %v %v", city, ok)
	}
	if _, ok := f.Field("address.nope"); ok {
		t.Fatalf("unknown path should miss")
	}

	email, _ := f.Field("email")
	if _, isText := email.Widget().(widgets.Text); !isText {
		t.Fatalf("string fields should default to the text widget, got %T", email.Widget())
	}
	send, _ := f.Field("send")
	if _, isButton := send.Widget().(widgets.Button); !isButton {
		t.Fatalf("button fields should default to the button widget, got %T", send.Widget())
	}
	address, _ := f.Field("address")
	if address.Widget() != nil {
		t.Fatalf("objects should render as a fieldset, got %T", address.Widget())
	}
}

func TestNewUsesOverriddenFieldTypes(t *testing.T) {
	reg := registry.New()
	var built []string
	reg.RegisterField(field.TypeString, func(spec field.Spec, b field.Builder) (field.Field, error) {
		built = append(built, spec.Name)
		return field.NewString(spec, b)
	})
	mustForm(t, reg, contactSchema())
	if diff := cmp.Diff([]string{"email", "city"}, built); diff != "" {
		t.Fatalf("override not used (-want +got):\n%s", diff)
	}
}

func TestNewErrors(t *testing.T) {
	reg := registry.New()
	cases := map[string]struct {
		schema *schema.Schema
		want   error
	}{
		"unknown type":   {&schema.Schema{Fields: []field.Spec{{Name: "x", Type: "color"}}}, ErrUnknownFieldType},
		"unknown widget": {&schema.Schema{Fields: []field.Spec{{Name: "x", Type: "string", Widget: "slider"}}}, ErrUnknownWidget},
		"nested type":    {&schema.Schema{Fields: []field.Spec{{Name: "o", Type: "object", Properties: []field.Spec{{Name: "y", Type: "color"}}}}}, ErrUnknownFieldType},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := New(reg, tc.schema); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
	if _, err := New(nil, contactSchema()); err == nil {
		t.Fatalf("nil registry should fail")
	}
	if _, err := New(reg, nil); err == nil {
		t.Fatalf("nil schema should fail")
	}
}

func TestValidate(t *testing.T) {
	f := mustForm(t, registry.New(), contactSchema())
	f.SetValues(map[string]any{
		"email":   "a@b",
		"age":     "old",
		"agree":   false,
		"address": map[string]any{},
		"tags":    []any{"go", "toolong"},
	})

	result := f.Validate()
	if result.OK() {
		t.Fatalf("expected failures")
	}
	want := map[string][]string{
		"email":        {"Length must be at least 5!"},
		"age":          {"Value must be an integer"},
		"agree":        {validators.DefaultRequiredMessage},
		"address.city": {validators.DefaultRequiredMessage},
		"tags.1":       {"Length must be no more than 3!"},
	}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"address.city", "age", "agree", "email", "tags.1"}, result.Paths()); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}

	f.SetValues(map[string]any{
		"email":   "ada@example.com",
		"age":     36,
		"agree":   true,
		"address": map[string]any{"city": "London"},
		"tags":    []any{"go"},
	})
	if result := f.Validate(); !result.OK() {
		t.Fatalf("expected a clean pass, got %v", result.Errors)
	}

	wantValues := map[string]any{
		"email":   "ada@example.com",
		"age":     36,
		"agree":   true,
		"address": map[string]any{"city": "London"},
		"tags":    []any{"go"},
	}
	if diff := cmp.Diff(wantValues, f.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateAllCollectsEveryMessage(t *testing.T) {
	f := mustForm(t, registry.New(), contactSchema())
	f.SetValues(map[string]any{"email": "bad"})

	if got := f.Validate().Messages("email"); len(got) != 1 {
		t.Fatalf("fail-fast should keep one message, got %v", got)
	}
	got := f.ValidateAll().Messages("email")
	want := []string{"Length must be at least 5!", `Value must match the pattern: ^\S+@\S+$`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestExtensions(t *testing.T) {
	reg := registry.New()
	reg.MustUse(registry.PluginFunc(func(*registry.Registry) (registry.Features, error) {
		return registry.Bundle{Extensions: map[string]registry.Extension{
			"summary": func(host registry.Host, args ...any) (any, error) {
				email, _ := host.Field("email")
				return strings.Repeat("!", len(args)) + email.Value().(string), nil
			},
		}}, nil
	}))

	local := func(registry.Host, ...any) (any, error) { return "local", nil }
	f := mustForm(t, reg, contactSchema(), WithExtensions(map[string]registry.Extension{"local": local}))
	f.SetValues(map[string]any{"email": "ada@example.com"})

	got, err := f.Call("summary", 1, 2)
	if err != nil || got != "!!ada@example.com" {
		t.Fatalf("Call returned %v, %v", got, err)
	}
	if diff := cmp.Diff([]string{"local", "summary"}, f.Extensions()); diff != "" {
		t.Fatalf("extensions mismatch (-want +got):\n%s", diff)
	}
	if _, err := f.Call("missing"); !errors.Is(err, ErrUnknownExtension) {
		t.Fatalf("expected ErrUnknownExtension, got %v", err)
	}

	reg.MustUse(registry.PluginFunc(func(*registry.Registry) (registry.Features, error) {
		return registry.Bundle{Extensions: map[string]registry.Extension{"late": local}}, nil
	}))
	if f.HasExtension("late") {
		t.Fatalf("extensions installed after construction should not leak into existing forms")
	}
	if !mustForm(t, reg, contactSchema()).HasExtension("late") {
		t.Fatalf("new forms should see the late extension")
	}
}

func TestRegistryWidgetsShadowBuiltins(t *testing.T) {
	reg := registry.New()
	tpl, err := widgets.NewTemplate("text", `<input name="{{ name }}" data-custom="yes">`)
	if err != nil {
		t.Fatalf("template: %v", err)
	}
	reg.RegisterWidget("text", func() widgets.Widget { return tpl })

	f := mustForm(t, reg, &schema.Schema{Fields: []field.Spec{{Name: "nick", Type: field.TypeString}}})
	out, err := f.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `data-custom="yes"`) {
		t.Fatalf("registry widget not used:\n%s", out)
	}
}

func TestRender(t *testing.T) {
	f := mustForm(t, registry.New(), contactSchema())
	f.SetValues(map[string]any{"email": `"><script>alert(1)</script>`})

	out, err := f.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		`<form class="mutt-form">`,
		`<fieldset class="mutt-field mutt-field-object" name="address"><legend>Address</legend>`,
		`class="mutt-field mutt-field-button"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("output not sanitised:\n%s", out)
	}
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	return s.selection, s.err
}

func TestThemeTokensAddClasses(t *testing.T) {
	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:    "acme",
			Version: "1.0.0",
			Tokens: map[string]string{
				"class.form":   "acme-form",
				"class.button": "btn",
			},
			Variants: map[string]theme.Variant{
				"dark": {Tokens: map[string]string{"class.button": "btn btn-dark"}},
			},
		},
	}}

	f := mustForm(t, registry.New(), contactSchema(), WithThemeSelector(selector, "acme", "dark"))
	out, err := f.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		`<form class="mutt-form acme-form">`,
		`class="mutt-field mutt-field-button btn btn-dark"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}

	failing := &stubThemeSelector{err: errors.New("no theme")}
	if _, err := New(registry.New(), contactSchema(), WithThemeSelector(failing, "x", "")); err == nil {
		t.Fatalf("selector errors should fail construction")
	}
}
