package registration

// Declarations are the ten eligibility statements an applicant ticks on the
// form. They are self-declared and never verified by the system.
type Declarations struct {
	EsBoliviano                   bool
	RegistradoEnPadronElectoral   bool
	CIVigente                     bool
	DisponibilidadTiempoCompleto  bool
	LineaEntel                    bool
	NingunaMilitanciaPolitica     bool
	SinConflictosConLaInstitucion bool
	SinSentenciaEjecutoriada      bool
	CuentaConCelularAndroid       bool
	CuentaConPowerbank            bool
}

// DeclarationItem is one labelled declaration in display order.
type DeclarationItem struct {
	Field string
	Label string
	Value bool
}

// Items returns the declarations in the order they are printed.
func (d Declarations) Items() []DeclarationItem {
	return []DeclarationItem{
		{Field: "es_boliviano", Label: "Es ciudadano/a boliviano/a", Value: d.EsBoliviano},
		{Field: "registrado_en_padron_electoral", Label: "Registrado en el Padrón Electoral", Value: d.RegistradoEnPadronElectoral},
		{Field: "ci_vigente", Label: "Cédula de Identidad vigente", Value: d.CIVigente},
		{Field: "disponibilidad_tiempo_completo", Label: "Disponibilidad a tiempo completo", Value: d.DisponibilidadTiempoCompleto},
		{Field: "linea_entel", Label: "Cuenta con línea Entel", Value: d.LineaEntel},
		{Field: "ninguna_militancia_politica", Label: "Sin militancia política", Value: d.NingunaMilitanciaPolitica},
		{Field: "sin_conflictos_con_la_institucion", Label: "Sin conflictos con la institución", Value: d.SinConflictosConLaInstitucion},
		{Field: "sin_sentencia_ejecutoriada", Label: "Sin sentencia ejecutoriada", Value: d.SinSentenciaEjecutoriada},
		{Field: "cuenta_con_celular_android", Label: "Cuenta con celular Android", Value: d.CuentaConCelularAndroid},
		{Field: "cuenta_con_powerbank", Label: "Cuenta con Powerbank", Value: d.CuentaConPowerbank},
	}
}

// Count returns how many declarations are true.
func (d Declarations) Count() int {
	n := 0
	for _, item := range d.Items() {
		if item.Value {
			n++
		}
	}
	return n
}

// Set assigns the declaration stored under the internal field name.
// It reports false for unknown fields.
func (d *Declarations) Set(field string, value bool) bool {
	switch field {
	case "es_boliviano":
		d.EsBoliviano = value
	case "registrado_en_padron_electoral":
		d.RegistradoEnPadronElectoral = value
	case "ci_vigente":
		d.CIVigente = value
	case "disponibilidad_tiempo_completo":
		d.DisponibilidadTiempoCompleto = value
	case "linea_entel":
		d.LineaEntel = value
	case "ninguna_militancia_politica":
		d.NingunaMilitanciaPolitica = value
	case "sin_conflictos_con_la_institucion":
		d.SinConflictosConLaInstitucion = value
	case "sin_sentencia_ejecutoriada":
		d.SinSentenciaEjecutoriada = value
	case "cuenta_con_celular_android":
		d.CuentaConCelularAndroid = value
	case "cuenta_con_powerbank":
		d.CuentaConPowerbank = value
	default:
		return false
	}
	return true
}
