package schema

import "fmt"

type Kind int

const (
	KindText Kind = iota
	KindDate
	KindMultiValue
	KindLabelSelect
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindDate:
		return "date"
	case KindMultiValue:
		return "multi_value"
	case KindLabelSelect:
		return "label_select"
	default:
		return "unknown"
	}
}

// CanonicalField is one column of the SIOT schema. OutputKey is the Pipefy
// field id the value is sent under.
type CanonicalField struct {
	Name      string
	Aliases   []string
	OutputKey string
	Kind      Kind
}

// Registry is ordered: coercion emits output fields in registry order.
type Registry []CanonicalField

func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for _, f := range r {
		names = append(names, f.Name)
	}
	return names
}

func (r Registry) Field(name string) (CanonicalField, bool) {
	for _, f := range r {
		if f.Name == name {
			return f, true
		}
	}
	return CanonicalField{}, false
}

// Validate checks the registry is self-consistent: unique names and output
// keys, and that the anchor and every required field are registered.
// Alias overlap is checked by the header resolver, which owns normalization.
func (r Registry) Validate(anchor string, required []string) error {
	names := make(map[string]struct{}, len(r))
	keys := make(map[string]string, len(r))
	for _, f := range r {
		if f.Name == "" || f.OutputKey == "" {
			return fmt.Errorf("schema: field %q has empty name or output key", f.Name)
		}
		if _, ok := names[f.Name]; ok {
			return fmt.Errorf("schema: duplicate field %q", f.Name)
		}
		names[f.Name] = struct{}{}
		if other, ok := keys[f.OutputKey]; ok {
			return fmt.Errorf("schema: output key %q used by %q and %q", f.OutputKey, other, f.Name)
		}
		keys[f.OutputKey] = f.Name
	}
	if _, ok := names[anchor]; !ok {
		return fmt.Errorf("schema: anchor field %q not registered", anchor)
	}
	for _, req := range required {
		if _, ok := names[req]; !ok {
			return fmt.Errorf("schema: required field %q not registered", req)
		}
	}
	return nil
}
