package dataset

// Validate checks that every required column is present. The first missing
// column, in the order given, is reported as a *SchemaError.
func Validate(t *Table, required []string) error {
	for _, col := range required {
		if !t.HasColumn(col) {
			return &SchemaError{Column: col}
		}
	}
	return nil
}
