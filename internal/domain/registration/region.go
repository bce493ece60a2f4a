package registration

import "strings"

// IssuingRegion is the department that issued an identity card (expedición).
type IssuingRegion string

const (
	RegionLaPaz      IssuingRegion = "LP"
	RegionSantaCruz  IssuingRegion = "SC"
	RegionCochabamba IssuingRegion = "CB"
	RegionOruro      IssuingRegion = "OR"
	RegionChuquisaca IssuingRegion = "CH"
	RegionBeni       IssuingRegion = "BN"
	RegionPotosi     IssuingRegion = "PT"
	RegionTarija     IssuingRegion = "TJ"
	RegionPando      IssuingRegion = "PN"
)

var regionNames = map[IssuingRegion]string{
	RegionLaPaz:      "La Paz",
	RegionSantaCruz:  "Santa Cruz",
	RegionCochabamba: "Cochabamba",
	RegionOruro:      "Oruro",
	RegionChuquisaca: "Chuquisaca",
	RegionBeni:       "Beni",
	RegionPotosi:     "Potosí",
	RegionTarija:     "Tarija",
	RegionPando:      "Pando",
}

// ParseIssuingRegion accepts the two-letter code in any case.
func ParseIssuingRegion(s string) (IssuingRegion, bool) {
	r := IssuingRegion(strings.ToUpper(strings.TrimSpace(s)))
	return r, r.IsValid()
}

// IsValid checks if the region is one of the nine departments
func (r IssuingRegion) IsValid() bool {
	_, ok := regionNames[r]
	return ok
}

// DisplayName returns the department name, or the raw code when unknown.
func (r IssuingRegion) DisplayName() string {
	if name, ok := regionNames[r]; ok {
		return name
	}
	return string(r)
}

func (r IssuingRegion) String() string {
	return string(r)
}
