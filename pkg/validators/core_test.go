package validators

import (
	"encoding/json"
	"math"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type validateCase struct {
	name  string
	value any
	want  bool
}

func runCases(t *testing.T, v Validator, cases []validateCase) {
	t.Helper()
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := v.Validate(tc.value); got != tc.want {
				t.Fatalf("Validate(%#v): want %v, got %v (message %q)", tc.value, tc.want, got, v.Message())
			}
		})
	}
}

func TestRequired(t *testing.T) {
	empty := ""
	zero := 0
	var nilPtr *string
	runCases(t, NewRequired(), []validateCase{
		{name: "zero int is present", value: 0, want: true},
		{name: "zero float is present", value: 0.0, want: true},
		{name: "zero json number is present", value: json.Number("0"), want: true},
		{name: "pointer to zero", value: &zero, want: true},
		{name: "empty string", value: "", want: false},
		{name: "false", value: false, want: false},
		{name: "nil", value: nil, want: false},
		{name: "NaN", value: math.NaN(), want: false},
		{name: "nil pointer", value: nilPtr, want: false},
		{name: "pointer to empty string", value: &empty, want: false},
		{name: "nil slice", value: []string(nil), want: false},
		{name: "empty slice is present", value: []string{}, want: true},
		{name: "text", value: "hello", want: true},
		{name: "true", value: true, want: true},
	})
}

func TestRequiredMessage(t *testing.T) {
	v := NewRequired()
	if v.Message() != "" {
		t.Fatalf("expected empty message before validation, got %q", v.Message())
	}
	if v.Validate("") {
		t.Fatalf("expected empty string to fail")
	}
	if v.Message() != DefaultRequiredMessage {
		t.Fatalf("expected default message, got %q", v.Message())
	}
	if !v.Validate("x") {
		t.Fatalf("expected value to pass")
	}
	if v.Message() != "" {
		t.Fatalf("expected message reset after passing validation, got %q", v.Message())
	}
}

func TestBooleanRequired(t *testing.T) {
	type flag bool
	runCases(t, NewBooleanRequired(), []validateCase{
		{name: "true", value: true, want: true},
		{name: "false", value: false, want: true},
		{name: "named bool", value: flag(false), want: true},
		{name: "nil", value: nil, want: false},
		{name: "string true", value: "true", want: false},
		{name: "one", value: 1, want: false},
	})
}

func TestBooleanTrue(t *testing.T) {
	runCases(t, NewBooleanTrue(), []validateCase{
		{name: "true", value: true, want: true},
		{name: "false", value: false, want: false},
		{name: "nil", value: nil, want: false},
		{name: "string", value: "true", want: false},
	})
}

func TestLength(t *testing.T) {
	v := NewLength(2, 4)
	runCases(t, v, []validateCase{
		{name: "too short", value: "a", want: false},
		{name: "within bounds", value: "abc", want: true},
		{name: "upper bound", value: "abcd", want: true},
		{name: "too long", value: "abcde", want: false},
		{name: "empty", value: "", want: false},
		{name: "runes not bytes", value: "héé", want: true},
		{name: "slice", value: []int{1, 2, 3}, want: true},
		{name: "short slice", value: []int{1}, want: false},
		{name: "number has no length", value: 7, want: true},
	})
}

func TestLengthMessages(t *testing.T) {
	v := NewLength(2, 4)
	cases := []struct {
		value any
		want  string
	}{
		{value: "", want: DefaultRequiredMessage},
		{value: "a", want: "Length must be at least 2!"},
		{value: "abcde", want: "Length must be no more than 4!"},
	}
	for _, tc := range cases {
		v.Validate(tc.value)
		if v.Message() != tc.want {
			t.Fatalf("Validate(%q): want message %q, got %q", tc.value, tc.want, v.Message())
		}
	}

	custom := NewLength(3, 0, WithMessage(KindMinLength, "too short"))
	custom.Validate("ab")
	if custom.Message() != "too short" {
		t.Fatalf("expected override message, got %q", custom.Message())
	}
	if !custom.Validate("a much longer value than any max") {
		t.Fatalf("zero max should disable the upper bound")
	}
}

func TestInteger(t *testing.T) {
	runCases(t, NewInteger(), []validateCase{
		{name: "absent passes", value: nil, want: true},
		{name: "empty string passes", value: "", want: true},
		{name: "letters", value: "abc", want: false},
		{name: "int", value: 42, want: true},
		{name: "numeric string", value: "42", want: true},
		{name: "padded numeric string", value: " 42 ", want: true},
		{name: "float string", value: "4.2e1", want: true},
		{name: "hex string", value: "0x2A", want: true},
		{name: "infinity", value: "Infinity", want: true},
		{name: "go infinity spelling", value: "inf", want: false},
		{name: "nan string", value: "NaN", want: false},
		{name: "mixed", value: "12a", want: false},
		{name: "bool", value: true, want: true},
		{name: "single element list", value: []any{"7"}, want: true},
		{name: "list", value: []any{1, 2}, want: false},
		{name: "map", value: map[string]any{"a": 1}, want: false},
	})

	v := NewInteger()
	v.Validate("abc")
	if v.Message() != "Value must be an integer" {
		t.Fatalf("unexpected message %q", v.Message())
	}
}

func TestRegex(t *testing.T) {
	v := NewRegex(regexp.MustCompile(`^\d+$`))
	runCases(t, v, []validateCase{
		{name: "digits", value: "123", want: true},
		{name: "mixed", value: "12a", want: false},
		{name: "empty", value: "", want: false},
		{name: "number formatted", value: 123, want: true},
	})

	v.Validate("12a")
	if want := `Value must match the pattern: ^\d+$`; v.Message() != want {
		t.Fatalf("want message %q, got %q", want, v.Message())
	}
	v.Validate("")
	if v.Message() != DefaultRequiredMessage {
		t.Fatalf("empty value should report the required message, got %q", v.Message())
	}
}

func TestCompileRegexRejectsInvalidPattern(t *testing.T) {
	if _, err := CompileRegex("("); err == nil {
		t.Fatalf("expected compile error")
	}
}

func TestChoice(t *testing.T) {
	v := NewChoice([]any{"red", "green", 3})
	runCases(t, v, []validateCase{
		{name: "member", value: "red", want: true},
		{name: "decoded number", value: float64(3), want: true},
		{name: "absent passes", value: "", want: true},
		{name: "not a member", value: "blue", want: false},
	})
	v.Validate("blue")
	if want := "Value must be one of: red, green, 3"; v.Message() != want {
		t.Fatalf("want %q, got %q", want, v.Message())
	}
}

func TestMessagesMergeCallerWins(t *testing.T) {
	v := NewRegex(regexp.MustCompile("x"), WithMessages(Messages{
		KindRequired: "fill me",
	}))
	want := Messages{
		KindRequired:       "fill me",
		KindInvalidPattern: "Value must match the pattern: x",
	}
	if diff := cmp.Diff(want, v.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}

	got := v.Messages()
	got[KindRequired] = "mutated"
	if v.Messages()[KindRequired] != "fill me" {
		t.Fatalf("Messages should return a copy")
	}
}
