package model

// Field models one manual-entry input inside a generated form. Name carries
// the raw placeholder (used for labels and filename derivation); Key is the
// sanitized identifier doubling as the form control name.
type Field struct {
	Name  string `json:"name"`
	Key   Key    `json:"key"`
	Label string `json:"label"`
	Value string `json:"value,omitempty"`
}

// FormModel is the renderer-facing representation of a field-entry form for
// one template.
type FormModel struct {
	TemplateFile string  `json:"templateFile"`
	Fields       []Field `json:"fields"`
}
