// Package emitter renders parsed model classes into the generated companion
// unit: constructor, JSON factory and encoder, copyWith, toString, equality and
// hashCode for every class.
package emitter

import (
	"bytes"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/cmmoran/flugen/internal/model"
)

// DefaultHeader is the preamble template. It is executed with HeaderData.
const DefaultHeader = "// dart format off\n" +
	"{{ with .Ignores }}\n// ignore_for_file: {{ join \", \" . }}\n{{ end }}" +
	"\npart of '{{ base .Source }}';"

// DefaultIgnores are the lints silenced in generated units.
var DefaultIgnores = []string{
	"avoid_equals_and_hash_code_on_mutable_classes",
	"document_ignores",
	"lines_longer_than_80_chars",
}

// Options configure the preamble of generated units.
type Options struct {
	Header  string   // text/template with sprig functions; DefaultHeader when empty
	Ignores []string // lints for the ignore_for_file directive; none when empty
}

// HeaderData is the value the header template executes against.
type HeaderData struct {
	Source  string   // slash-separated logical identifier of the source unit
	Ignores []string // configured lints
	Classes []string // generated class names, in order
}

// Emitter is safe for concurrent use.
type Emitter struct {
	header  *template.Template
	ignores []string
}

// New parses the header template once.
func New(opts Options) (*Emitter, error) {
	text := opts.Header
	if text == "" {
		text = DefaultHeader
	}
	tmpl, err := template.New("header").Option("missingkey=error").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse header template: %w", err)
	}
	return &Emitter{
		header:  tmpl,
		ignores: append([]string(nil), opts.Ignores...),
	}, nil
}

// Emit renders the generated unit for f. It reports false, with no content,
// when f has no classes.
func (e *Emitter) Emit(f *model.File) (string, bool, error) {
	if f == nil || len(f.Classes) == 0 {
		return "", false, nil
	}

	names := make([]string, 0, len(f.Classes))
	for _, c := range f.Classes {
		names = append(names, c.Name)
	}
	header, err := e.Header(f.Source, names)
	if err != nil {
		return "", false, err
	}

	out := lines{header}
	for _, c := range f.Classes {
		renderClass(c, &out)
	}
	return strings.Join(out, "\n"), true, nil
}

// Header renders the preamble of the generated unit for source.
func (e *Emitter) Header(source string, classes []string) (string, error) {
	var header bytes.Buffer
	err := e.header.Execute(&header, HeaderData{
		Source:  path.Clean(filepath.ToSlash(source)),
		Ignores: e.ignores,
		Classes: classes,
	})
	if err != nil {
		return "", fmt.Errorf("render header for %s: %w", source, err)
	}
	return header.String(), nil
}
