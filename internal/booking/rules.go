package booking

import "time"

// The form sends datetime-local values with or without seconds.
const (
	dateTimeLayout        = "2006-01-02T15:04"
	dateTimeSecondsLayout = "2006-01-02T15:04:05"
)

// ParseLocalDateTime reads a form date value as local wall-clock time.
func ParseLocalDateTime(raw string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateTimeSecondsLayout, raw, time.Local); err == nil {
		return t, nil
	}
	return time.ParseInLocation(dateTimeLayout, raw, time.Local)
}

// ValidateDateTime checks a raw date value against the variant's opening
// rules and returns the validity message to surface on the field. An empty
// value is valid: required-field enforcement happens elsewhere. An
// unparsable value is invalid.
func ValidateDateTime(v Variant, raw string) (bool, string) {
	if raw == "" {
		return true, ""
	}
	t, err := ParseLocalDateTime(raw)
	if err != nil {
		return false, "Date ou heure invalide."
	}
	if v == VariantAtelier {
		return validateAtelier(t)
	}
	return validateCoaching(t)
}

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// Coaching runs Tuesday to Saturday, 09:30-18:00, closed over lunch.
func validateCoaching(t time.Time) (bool, string) {
	day := t.Weekday()
	mins := minutesOfDay(t)
	const (
		minAllowed = 9*60 + 30
		maxAllowed = 18 * 60
		noonStart  = 12 * 60
		noonEnd    = 14 * 60
	)

	if day == time.Sunday || day == time.Monday {
		return false, "Les réservations ne sont pas possibles le dimanche et le lundi."
	}
	if mins >= noonStart && mins < noonEnd {
		return false, "Les réservations ne sont pas possibles entre 12:00 et 14:00."
	}
	if mins < minAllowed || mins > maxAllowed {
		return false, "Heure hors plage autorisée (09:30 - 18:00)."
	}
	return true, ""
}

// Ateliers run Tuesday, Thursday and Saturday, in two windows with inclusive
// bounds: 14:00-16:00 and 16:30-18:30.
func validateAtelier(t time.Time) (bool, string) {
	switch t.Weekday() {
	case time.Tuesday, time.Thursday, time.Saturday:
	default:
		return false, "Les ateliers sont disponibles uniquement le mardi, jeudi et samedi."
	}

	mins := minutesOfDay(t)
	inWindow1 := mins >= 14*60 && mins <= 16*60
	inWindow2 := mins >= 16*60+30 && mins <= 18*60+30
	if !inWindow1 && !inWindow2 {
		return false, "Heure hors plages d'atelier : 14:00-16:00 ou 16:30-18:30."
	}
	return true, ""
}
