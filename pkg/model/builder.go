package model

import "sort"

// BuildFields turns an extracted placeholder set into the sorted manual-entry
// field list. Placeholders named in excluded are reserved for auxiliary
// injection and never appear in the form. Ordering is plain lexicographic
// string order, case-sensitive, matching what users see on the form page.
func BuildFields(templateFile string, placeholders []string, excluded map[string]bool) FormModel {
	manual := make([]string, 0, len(placeholders))
	for _, placeholder := range placeholders {
		if excluded[placeholder] {
			continue
		}
		manual = append(manual, placeholder)
	}
	sort.Strings(manual)

	fields := make([]Field, 0, len(manual))
	for _, placeholder := range manual {
		fields = append(fields, Field{
			Name:  placeholder,
			Key:   Sanitize(placeholder),
			Label: placeholder,
		})
	}
	return FormModel{TemplateFile: templateFile, Fields: fields}
}

// ContextInput carries everything BuildContext needs for one request.
type ContextInput struct {
	// Placeholders is the full extracted set for the template.
	Placeholders []string
	// Excluded names placeholders reserved for auxiliary injection.
	Excluded map[string]bool
	// Values holds user input keyed by sanitized key, exactly as submitted.
	// Missing entries mean the user left the field empty.
	Values map[string]string
	// Injected holds auxiliary values keyed by the excluded placeholder's
	// literal name. Empty when no auxiliary record was selected.
	Injected map[string]string
}

// BuildContext produces the render context and the raw-value record for one
// generation request. Non-excluded placeholders are sanitized and looked up
// in Values; absent input becomes an empty value, never an error. Excluded
// placeholders receive their injected value under their literal name, or stay
// absent from the context when nothing was injected.
func BuildContext(in ContextInput) (*RenderContext, RawValues, error) {
	context := NewRenderContext()
	raw := make(RawValues, len(in.Placeholders))

	for _, placeholder := range in.Placeholders {
		if in.Excluded[placeholder] {
			value, ok := in.Injected[placeholder]
			if !ok {
				continue
			}
			if err := context.SetRaw(placeholder, value); err != nil {
				return nil, nil, err
			}
			continue
		}
		key := Sanitize(placeholder)
		value := in.Values[string(key)]
		raw[placeholder] = value
		context.Set(key, value)
	}
	return context, raw, nil
}
