package queryir

import "fmt"

// Validate checks that every field referenced by p is a product column and
// that Equals values have a supported type. A nil predicate is valid.
func Validate(p Predicate) error {
	if p == nil {
		return nil
	}

	switch pred := p.(type) {
	case Equals:
		return validateEquals(pred)
	case *Equals:
		return validateEquals(*pred)
	case Contains:
		return validateField(pred.Field)
	case *Contains:
		return validateField(pred.Field)
	case And:
		return validateAnd(pred)
	case *And:
		return validateAnd(*pred)
	default:
		return fmt.Errorf("unsupported predicate type: %T", p)
	}
}

func validateEquals(eq Equals) error {
	if err := validateField(eq.Field); err != nil {
		return err
	}
	switch eq.Value.(type) {
	case string, int, int64:
		return nil
	default:
		return fmt.Errorf("field %q: unsupported value type %T", eq.Field, eq.Value)
	}
}

func validateAnd(and And) error {
	for i, p := range and.Predicates {
		if err := Validate(p); err != nil {
			return fmt.Errorf("and[%d]: %w", i, err)
		}
	}
	return nil
}

func validateField(field string) error {
	if !IsField(field) {
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

// IsField reports whether field names a product column.
func IsField(field string) bool {
	for _, f := range Fields {
		if f == field {
			return true
		}
	}
	return false
}
