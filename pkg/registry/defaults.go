package registry

import "github.com/goliatone/go-formkit/pkg/field"

// DefaultSettings returns the settings every new registry starts with.
func DefaultSettings() map[string]any {
	return map[string]any{SettingDebug: false}
}

// DefaultFields returns the nine default type bindings. date and datetime
// alias the string field.
func DefaultFields() map[string]field.Factory {
	return map[string]field.Factory{
		field.TypeArray:    field.NewArray,
		field.TypeBoolean:  field.NewBoolean,
		field.TypeEnum:     field.NewChoice,
		field.TypeInteger:  field.NewInteger,
		field.TypeObject:   field.NewObject,
		field.TypeString:   field.NewString,
		field.TypeDate:     field.NewString,
		field.TypeDateTime: field.NewString,
		field.TypeButton:   field.NewButton,
	}
}
