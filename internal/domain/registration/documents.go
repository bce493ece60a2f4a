package registration

// DocumentKind identifies one of the four supporting documents.
type DocumentKind string

const (
	DocumentCI                   DocumentKind = "archivo_ci"
	DocumentNoMilitancia         DocumentKind = "archivo_no_militancia"
	DocumentHojaDeVida           DocumentKind = "archivo_hoja_de_vida"
	DocumentCertificadoOfimatica DocumentKind = "archivo_certificado_ofimatica"
)

// AllDocumentKinds returns the document kinds in display order.
func AllDocumentKinds() []DocumentKind {
	return []DocumentKind{DocumentCI, DocumentNoMilitancia, DocumentHojaDeVida, DocumentCertificadoOfimatica}
}

// Label returns the short label used on the receipt.
func (k DocumentKind) Label() string {
	switch k {
	case DocumentCI:
		return "CI"
	case DocumentNoMilitancia:
		return "No Militancia"
	case DocumentHojaDeVida:
		return "Hoja de Vida"
	case DocumentCertificadoOfimatica:
		return "Certificado Exp."
	default:
		return string(k)
	}
}

// Documents holds storage keys of the attached files. An empty key means
// the document was not attached.
type Documents struct {
	CI                   string
	NoMilitancia         string
	HojaDeVida           string
	CertificadoOfimatica string
}

// Get returns the storage key for kind.
func (d Documents) Get(kind DocumentKind) string {
	switch kind {
	case DocumentCI:
		return d.CI
	case DocumentNoMilitancia:
		return d.NoMilitancia
	case DocumentHojaDeVida:
		return d.HojaDeVida
	case DocumentCertificadoOfimatica:
		return d.CertificadoOfimatica
	}
	return ""
}

// Set stores key for kind.
func (d *Documents) Set(kind DocumentKind, key string) {
	switch kind {
	case DocumentCI:
		d.CI = key
	case DocumentNoMilitancia:
		d.NoMilitancia = key
	case DocumentHojaDeVida:
		d.HojaDeVida = key
	case DocumentCertificadoOfimatica:
		d.CertificadoOfimatica = key
	}
}

// Attached reports whether kind has a stored file.
func (d Documents) Attached(kind DocumentKind) bool {
	return d.Get(kind) != ""
}
