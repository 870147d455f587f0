package registry

import (
	"bytes"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

func sameFactory(a, b any) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

func TestNewRegistryBootstrap(t *testing.T) {
	reg := New()

	want := []string{"array", "boolean", "button", "date", "datetime", "enum", "integer", "object", "string"}
	if diff := cmp.Diff(want, reg.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if got := reg.GetWidgets(); len(got) != 0 {
		t.Fatalf("expected no widgets, got %v", got)
	}
	if diff := cmp.Diff(map[string]any{"debug": false}, reg.Settings()); diff != "" {
		t.Fatalf("settings mismatch (-want +got):\n%s", diff)
	}
	if !sameFactory(reg.GetField("date"), field.Factory(field.NewString)) {
		t.Fatalf("date should alias the string field")
	}
	if !sameFactory(reg.GetField("datetime"), field.Factory(field.NewString)) {
		t.Fatalf("datetime should alias the string field")
	}
}

func TestSettings(t *testing.T) {
	reg := New()

	if got := reg.GetSetting("missing"); got != nil {
		t.Fatalf("unset setting should be nil, got %v", got)
	}
	if _, ok := reg.LookupSetting("missing"); ok {
		t.Fatalf("unset setting should not be present")
	}

	cases := []struct {
		name  string
		value any
	}{
		{"flag", false},
		{"count", 0},
		{"label", "hello"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg.SetSetting(tc.name, tc.value)
			if got := reg.GetSetting(tc.name); got != tc.value {
				t.Fatalf("GetSetting(%q) = %v, want %v", tc.name, got, tc.value)
			}
			if _, ok := reg.LookupSetting(tc.name); !ok {
				t.Fatalf("setting %q should be present", tc.name)
			}
		})
	}

	copied := reg.Settings()
	copied["label"] = "changed"
	if reg.GetSetting("label") != "hello" {
		t.Fatalf("Settings should return a copy")
	}
}

func TestRegisterFieldLastWriteWins(t *testing.T) {
	reg := New()

	reg.RegisterField("color", field.NewString)
	if !reg.HasField("color") || !sameFactory(reg.GetField("color"), field.Factory(field.NewString)) {
		t.Fatalf("color should be bound to the string field")
	}
	reg.RegisterField("color", field.NewChoice)
	if !sameFactory(reg.GetField("color"), field.Factory(field.NewChoice)) {
		t.Fatalf("second registration should replace the first")
	}

	if reg.HasField("nope") || reg.GetField("nope") != nil {
		t.Fatalf("unknown type should miss")
	}

	reg.RegisterFields(nil)
	reg.RegisterFields(map[string]field.Factory{"email": field.NewString, "age": field.NewInteger})
	if !reg.HasField("email") || !reg.HasField("age") {
		t.Fatalf("RegisterFields should bind every entry")
	}
}

func TestRegisterWidgets(t *testing.T) {
	reg := New()
	live := reg.GetWidgets()

	reg.RegisterWidgets(nil)
	reg.RegisterWidget("text", func() widgets.Widget { return widgets.Text{} })
	reg.RegisterWidgets(map[string]widgets.Factory{"checkbox": func() widgets.Widget { return widgets.Checkbox{} }})

	if !reg.HasWidget("text") || reg.GetWidget("text") == nil {
		t.Fatalf("text widget should be registered")
	}
	if reg.HasWidget("select") || reg.GetWidget("select") != nil {
		t.Fatalf("select widget should be missing")
	}
	if len(live) != 2 {
		t.Fatalf("GetWidgets should expose the live map, got %d entries", len(live))
	}
	if diff := cmp.Diff([]string{"checkbox", "text"}, reg.Widgets()); diff != "" {
		t.Fatalf("widgets mismatch (-want +got):\n%s", diff)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	reg := New()
	reg.SetSetting("theme", "dark")
	clone := reg.Clone()

	clone.RegisterField("email", field.NewString)
	clone.SetSetting("theme", "light")

	if reg.HasField("email") {
		t.Fatalf("clone registration leaked into the original")
	}
	if reg.GetSetting("theme") != "dark" {
		t.Fatalf("clone setting leaked into the original")
	}
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	reg := New(WithLogger(logger))

	reg.RegisterField("quiet", field.NewString)
	if buf.Len() != 0 {
		t.Fatalf("expected no output with debug off, got %q", buf.String())
	}

	reg.SetSetting(SettingDebug, true)
	buf.Reset()
	reg.RegisterField("string", field.NewString)
	out := buf.String()
	for _, want := range []string{"kind=field", "name=string", "replaced=true"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q: %q", want, out)
		}
	}
}

func TestWithSettings(t *testing.T) {
	reg := New(WithSettings(map[string]any{"locale": "en"}), WithLogger(nil))
	if reg.GetSetting("locale") != "en" || reg.GetSetting(SettingDebug) != false {
		t.Fatalf("unexpected settings %v", reg.Settings())
	}
}
