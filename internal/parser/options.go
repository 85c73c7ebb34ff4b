package parser

import (
	"strings"

	"github.com/cmmoran/flugen/internal/model"
)

// ParseOptions reads a `key="json_key" enum` directive list. Unknown keys, a
// valueless `key` and a valued `enum` are ignored.
func ParseOptions(payload string) *model.FieldOptions {
	opts := &model.FieldOptions{}
	keyIdx := optionTokenPattern.SubexpIndex("key")
	valueIdx := optionTokenPattern.SubexpIndex("value")

	for _, m := range optionTokenPattern.FindAllStringSubmatchIndex(payload, -1) {
		key := payload[m[2*keyIdx]:m[2*keyIdx+1]]
		hasValue := m[2*valueIdx] >= 0

		switch {
		case key == "key" && hasValue:
			value := payload[m[2*valueIdx]:m[2*valueIdx+1]]
			if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
				value = value[1 : len(value)-1]
			}
			opts.Key = value
		case key == "enum" && !hasValue:
			opts.ForceEnum = true
		}
	}
	return opts
}
