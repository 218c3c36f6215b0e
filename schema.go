package formkit

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

// formSchema is the YAML document shape accepted by DefinitionFromYAML.
type formSchema struct {
	Name           string        `yaml:"name"`
	SuccessMessage string        `yaml:"success_message"`
	ErrorMessage   string        `yaml:"error_message"`
	Fields         []fieldSchema `yaml:"fields"`
}

type fieldSchema struct {
	Name        string            `yaml:"name"`
	Label       string            `yaml:"label"`
	Kind        string            `yaml:"kind"`
	Placeholder string            `yaml:"placeholder"`
	Hint        string            `yaml:"hint"`
	Default     string            `yaml:"default"`
	Attrs       map[string]string `yaml:"attrs"`
	Choices     []Choice          `yaml:"choices"`
	Rules       []schemaRule      `yaml:"rules"`
}

// schemaRule accepts either a bare rule name or a single-key mapping with
// the rule's argument:
//
//	rules:
//	  - required
//	  - min_len: 3
//	  - pattern: "^[a-z]+$"
//	  - one_of: [small, medium, large]
type schemaRule struct {
	Name string
	Int  int
	Str  string
	List []string
}

func (r *schemaRule) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&r.Name)
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("rule mapping must have exactly one key")
		}
		key, arg := node.Content[0], node.Content[1]
		r.Name = key.Value
		switch arg.Kind {
		case yaml.SequenceNode:
			return arg.Decode(&r.List)
		default:
			if err := arg.Decode(&r.Int); err == nil {
				return nil
			}
			return arg.Decode(&r.Str)
		}
	default:
		return fmt.Errorf("rule must be a string or a single-key mapping")
	}
}

func (r schemaRule) build() (Rule, error) {
	switch r.Name {
	case "required":
		return Required(), nil
	case "min_len":
		return MinLen(r.Int), nil
	case "max_len":
		return MaxLen(r.Int), nil
	case "exact_len":
		return ExactLen(r.Int), nil
	case "email":
		return ValidEmail(), nil
	case "url":
		return ValidURL(), nil
	case "numeric":
		return Numeric(), nil
	case "pattern":
		re, err := regexp.Compile(r.Str)
		if err != nil {
			return Rule{}, fmt.Errorf("invalid pattern %q: %w", r.Str, err)
		}
		return Pattern(re), nil
	case "one_of":
		return OneOf(r.List...), nil
	default:
		return Rule{}, fmt.Errorf("unknown rule %q", r.Name)
	}
}

// DefinitionFromYAML builds a form definition from a declarative YAML
// document. Schemas are data, so everything is checked up front and any
// problem is an ErrInvalidSchema configuration error; the returned
// definition then behaves exactly like a hand-written one.
//
//	def, err := formkit.DefinitionFromYAML(raw)
//	form, err := formkit.Make(def)
func DefinitionFromYAML(raw []byte) (Definition, error) {
	var schema formSchema
	if err := yaml.Unmarshal(raw, &schema); err != nil {
		return Definition{}, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	if schema.Name == "" {
		return Definition{}, fmt.Errorf("%w: missing form name", ErrInvalidSchema)
	}
	if len(schema.Fields) == 0 {
		return Definition{}, fmt.Errorf("%w: no fields in form %s", ErrInvalidSchema, schema.Name)
	}

	fields := make([]Field, 0, len(schema.Fields))
	for _, fs := range schema.Fields {
		field, err := fs.toField()
		if err != nil {
			return Definition{}, fmt.Errorf("%w: field %q in form %s: %v", ErrInvalidSchema, fs.Name, schema.Name, err)
		}
		fields = append(fields, field)
	}

	return Definition{
		Name:           schema.Name,
		Fields:         func() []Field { return fields },
		SuccessMessage: schema.SuccessMessage,
		ErrorMessage:   schema.ErrorMessage,
	}, nil
}

func (fs fieldSchema) toField() (Field, error) {
	opts := []FieldOption{}
	if fs.Placeholder != "" {
		opts = append(opts, WithPlaceholder(fs.Placeholder))
	}
	if fs.Hint != "" {
		opts = append(opts, WithHint(fs.Hint))
	}
	if fs.Default != "" {
		opts = append(opts, WithDefault(fs.Default))
	}
	for k, v := range fs.Attrs {
		opts = append(opts, WithAttr(k, v))
	}

	rules := make([]Rule, 0, len(fs.Rules))
	for _, sr := range fs.Rules {
		rule, err := sr.build()
		if err != nil {
			return Field{}, err
		}
		rules = append(rules, rule)
	}
	if len(rules) > 0 {
		opts = append(opts, WithRules(rules...))
	}

	kind := Kind(fs.Kind)
	if fs.Kind == "" {
		kind = KindText
	}

	switch kind {
	case KindText:
		return Text(fs.Name, fs.Label, opts...), nil
	case KindEmail:
		return Email(fs.Name, fs.Label, opts...), nil
	case KindPassword:
		return Password(fs.Name, fs.Label, opts...), nil
	case KindTextarea:
		return Textarea(fs.Name, fs.Label, opts...), nil
	case KindHidden:
		return Hidden(fs.Name, fs.Label, opts...), nil
	case KindCheckbox:
		return Checkbox(fs.Name, fs.Label, opts...), nil
	case KindNumber:
		return Number(fs.Name, fs.Label, opts...), nil
	case KindSelect:
		if len(fs.Choices) == 0 {
			return Field{}, fmt.Errorf("select field needs choices")
		}
		return Select(fs.Name, fs.Label, fs.Choices, opts...), nil
	default:
		// registered custom kinds pass through with no kind-specific rules
		return NewField(fs.Name, fs.Label, kind, opts...), nil
	}
}
