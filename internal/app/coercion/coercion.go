package coercion

import (
	"sort"
	"strings"
	"time"

	"github.com/init-pkg/siot-loader/domain/app"
	"github.com/init-pkg/siot-loader/domain/schema"
)

// text dates are tried in this order; days and months may be one or two digits
var dateLayouts = []string{"2006-1-2", "2/1/2006", "2-1-2006", "1/2/2006"}

// Coercer converts records into Pipefy output fields for one batch. The
// label map is read-only; unresolved label names accumulate across rows.
type Coercer struct {
	registry schema.Registry
	labels   map[string]string
	missing  map[string]struct{}
}

func NewCoercer(registry schema.Registry, labels map[string]string) *Coercer {
	return &Coercer{
		registry: registry,
		labels:   labels,
		missing:  make(map[string]struct{}),
	}
}

// Coerce emits one OutputField per registry field present in rec that
// carries data, in registry order.
func (c *Coercer) Coerce(rec app.Record) []app.OutputField {
	var out []app.OutputField
	for _, f := range c.registry {
		v, ok := rec.Values[f.Name]
		if !ok {
			continue
		}

		switch f.Kind {
		case schema.KindText:
			if s, ok := Text(v); ok {
				out = append(out, app.OutputField{FieldID: f.OutputKey, FieldValue: s})
			}
		case schema.KindDate:
			if s, ok := FormatDate(v); ok {
				out = append(out, app.OutputField{FieldID: f.OutputKey, FieldValue: s})
			}
		case schema.KindMultiValue:
			if items := ParseMulti(v); len(items) > 0 {
				out = append(out, app.OutputField{FieldID: f.OutputKey, FieldValue: items})
			}
		case schema.KindLabelSelect:
			if ids := c.resolveLabels(ParseMulti(v)); len(ids) > 0 {
				out = append(out, app.OutputField{FieldID: f.OutputKey, FieldValue: ids})
			}
		}
	}
	return out
}

func (c *Coercer) resolveLabels(names []string) []string {
	var ids []string
	for _, name := range names {
		if id, ok := c.labels[name]; ok {
			ids = append(ids, id)
			continue
		}
		c.missing[name] = struct{}{}
	}
	return ids
}

// MissingLabels lists label names seen so far with no id, sorted.
func (c *Coercer) MissingLabels() []string {
	out := make([]string, 0, len(c.missing))
	for name := range c.missing {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Text is the trimmed text of v; false when empty or "nan".
func Text(v app.CellValue) (string, bool) {
	if v.Kind == app.CellNull {
		return "", false
	}
	s := strings.TrimSpace(v.String())
	if s == "" || strings.EqualFold(s, "nan") {
		return "", false
	}
	return s, true
}

// FormatDate renders v as YYYY-MM-DD. A time-only cell carries no date and
// keeps its clock text. Text that matches none of the known layouts passes
// through trimmed.
func FormatDate(v app.CellValue) (string, bool) {
	switch v.Kind {
	case app.CellDate:
		return v.Time.Format("2006-01-02"), true
	case app.CellTime:
		return v.String(), true
	}

	s, ok := Text(v)
	if !ok {
		return "", false
	}
	if v.Kind != app.CellString {
		return s, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return s, true
}

// ParseMulti splits a multi-value cell on ';' or ','. Lists are trimmed
// item by item. Empty and "nan" items are dropped.
func ParseMulti(v app.CellValue) []string {
	var parts []string
	switch v.Kind {
	case app.CellNull:
		return nil
	case app.CellList:
		parts = v.List
	default:
		s, ok := Text(v)
		if !ok {
			return nil
		}
		parts = strings.Split(strings.ReplaceAll(s, ",", ";"), ";")
	}

	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || strings.EqualFold(p, "nan") {
			continue
		}
		out = append(out, p)
	}
	return out
}
