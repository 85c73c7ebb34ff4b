package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cmmoran/flugen/internal/model"
)

func TestResolve(t *testing.T) {
	enum := &model.FieldOptions{ForceEnum: true}
	tests := []struct {
		name string
		raw  string
		opts *model.FieldOptions
		want model.Type
	}{
		{name: "int", raw: "int", want: model.Primitive{Kind: model.KindInt}},
		{name: "nullable double", raw: "double?", want: model.Primitive{Kind: model.KindDouble, Nullable: true}},
		{name: "bool", raw: "bool", want: model.Primitive{Kind: model.KindBool}},
		{name: "nullable string", raw: "String?", want: model.Primitive{Kind: model.KindString, Nullable: true}},
		{name: "datetime", raw: "DateTime", want: model.Primitive{Kind: model.KindDateTime}},
		{name: "dynamic drops the sigil", raw: "dynamic?", want: model.Primitive{Kind: model.KindDynamic}},
		{name: "custom", raw: "Address", want: model.CustomRef{Name: "Address"}},
		{name: "nullable custom", raw: "Address?", want: model.CustomRef{Name: "Address", Nullable: true}},
		{name: "forced enum", raw: "Role?", opts: enum, want: model.EnumRef{Name: "Role", Nullable: true}},
		{name: "forced enum wins over vocabulary", raw: "String", opts: enum, want: model.EnumRef{Name: "String"}},
		{name: "options without enum", raw: "String", opts: &model.FieldOptions{Key: "k"}, want: model.Primitive{Kind: model.KindString}},
		{
			name: "list of int",
			raw:  "List<int>",
			want: model.ListOf{Elem: model.Primitive{Kind: model.KindInt}},
		},
		{
			name: "nullable list of nullable custom",
			raw:  "List<Item?>?",
			want: model.ListOf{Elem: model.CustomRef{Name: "Item", Nullable: true}, Nullable: true},
		},
		{
			name: "list of forced enum",
			raw:  "List<Role>",
			opts: enum,
			want: model.ListOf{Elem: model.EnumRef{Name: "Role"}},
		},
		{
			name: "nested list degrades to custom element",
			raw:  "List<List<int>>",
			want: model.ListOf{Elem: model.CustomRef{Name: "List<int>"}},
		},
		{name: "map is custom", raw: "Map<String, int>", want: model.CustomRef{Name: "Map<String, int>"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.raw, tt.opts)
			assert.Equal(t, tt.want, got)
			// classification is a pure function of its inputs
			assert.Equal(t, got, Resolve(tt.raw, tt.opts))
		})
	}
}

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    *model.FieldOptions
	}{
		{name: "quoted key", payload: `key="user_name"`, want: &model.FieldOptions{Key: "user_name"}},
		{name: "bare key", payload: "key=userName", want: &model.FieldOptions{Key: "userName"}},
		{name: "enum", payload: "enum", want: &model.FieldOptions{ForceEnum: true}},
		{name: "both", payload: `enum key="r"`, want: &model.FieldOptions{Key: "r", ForceEnum: true}},
		{name: "unknown keys are ignored", payload: "default=3 nullable", want: &model.FieldOptions{}},
		{name: "valueless key is ignored", payload: "key", want: &model.FieldOptions{}},
		{name: "valued enum is ignored", payload: "enum=yes", want: &model.FieldOptions{}},
		{name: "empty", payload: "", want: &model.FieldOptions{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOptions(tt.payload))
		})
	}
}
