package registration

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CanonicalDisagreementObservation is the text the public form stores when
// the applicant does not accept being assigned to any venue on demand.
const CanonicalDisagreementObservation = "POSTULACION - NO ESTA DE ACUERDO CON DESIGNACION DE ACUERDO A REQUERIMIENTO"

// DisagreementMarker is the phrase that triggers the warning stamp.
const DisagreementMarker = "NO ESTA DE ACUERDO CON DESIGNACION"

// foldObservation upper-cases s, strips accents and collapses whitespace so
// that "no está de acuerdo" and "NO ESTA DE ACUERDO" compare equal.
func foldObservation(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToUpper(folded)), " ")
}

// IsCanonicalDisagreement reports whether obs is exactly the auto-generated
// disagreement text, ignoring case, accents and surrounding whitespace.
func IsCanonicalDisagreement(obs string) bool {
	return foldObservation(obs) == CanonicalDisagreementObservation
}

// ContainsDisagreementMarker reports whether obs contains the marker phrase
// in any casing.
func ContainsDisagreementMarker(obs string) bool {
	if obs == "" {
		return false
	}
	return strings.Contains(foldObservation(obs), DisagreementMarker)
}
