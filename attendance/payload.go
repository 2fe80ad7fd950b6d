package attendance

import (
	"strconv"

	"github.com/mbliznikova/check-in-backend/models"
)

// ParseConfirmations validates the decoded "confirmationList" payload and
// coerces it into the map ReconcileConfirmation consumes. JSON object keys
// always arrive as strings and some clients send ids as strings too, so both
// keys and values go through explicit coercion. Entries for the same student
// are merged.
func ParseConfirmations(raw any) (map[uint]map[uint]bool, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, models.NewValidationError("Invalid data format: 'confirmationList' should be a list")
	}

	out := make(map[uint]map[uint]bool)
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, models.NewValidationError("Invalid data format: Each item in 'confirmationList' should be a dictionary")
		}
		for studentKey, confirmations := range entry {
			studentID, err := coerceID(studentKey)
			if err != nil {
				return nil, err
			}
			byOccurrence, ok := confirmations.(map[string]any)
			if !ok {
				return nil, models.NewValidationError("Invalid data format: Each item in 'confirmationList' should be a dictionary")
			}
			dst := out[studentID]
			if dst == nil {
				dst = make(map[uint]bool, len(byOccurrence))
				out[studentID] = dst
			}
			for occurrenceKey, value := range byOccurrence {
				occurrenceID, err := coerceID(occurrenceKey)
				if err != nil {
					return nil, err
				}
				showedUp, err := coerceBool(value)
				if err != nil {
					return nil, err
				}
				dst[occurrenceID] = showedUp
			}
		}
	}
	return out, nil
}

func coerceID(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, models.NewValidationError("Invalid data format: %q is not a valid id", s)
	}
	return uint(n), nil
}

func coerceBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(b)
		if err != nil {
			return false, models.NewValidationError("Invalid data format: %q is not a valid boolean", b)
		}
		return parsed, nil
	case float64:
		return b != 0, nil
	}
	return false, models.NewValidationError("Invalid data format: confirmation values should be booleans")
}
