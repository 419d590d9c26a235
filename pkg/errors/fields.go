package errors

// FieldErrors collects validation failures keyed by field name. The first
// failure becomes the error message; all of them are returned as details.
type FieldErrors struct {
	first    string
	messages map[string]string
}

// Add records message for field unless the field already failed.
func (f *FieldErrors) Add(field, message string) {
	if f.messages == nil {
		f.messages = make(map[string]string)
	}
	if _, ok := f.messages[field]; ok {
		return
	}
	if f.first == "" {
		f.first = message
	}
	f.messages[field] = message
}

// Required records the standard "<field> is required" failure.
func (f *FieldErrors) Required(field string) {
	f.Add(field, field+" is required")
}

// Empty reports whether nothing was recorded.
func (f *FieldErrors) Empty() bool {
	return len(f.messages) == 0
}

// Err returns a validation error carrying every recorded field, or nil.
func (f *FieldErrors) Err() error {
	if f.Empty() {
		return nil
	}
	return New(CodeValidation, f.first).WithDetails(f.messages)
}
