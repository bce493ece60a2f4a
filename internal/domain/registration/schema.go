package registration

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FieldKind describes how a form value is decoded.
type FieldKind int

const (
	KindString FieldKind = iota
	KindInt
	KindOptionalInt
	KindDate
	KindDocument
	KindVenue
)

// FieldSpec maps the external form keys of one applicant field to its
// internal name.
type FieldSpec struct {
	Field    string
	Keys     []string // accepted external keys, first one is canonical
	Kind     FieldKind
	Required bool
}

// ApplicantSchema is the single mapping between the public form and the
// applicant model. Both the camelCase keys the form sends and the
// snake_case model names are accepted.
var ApplicantSchema = []FieldSpec{
	{Field: "nombre", Keys: []string{"nombre"}, Kind: KindString, Required: true},
	{Field: "apellido_paterno", Keys: []string{"apellidoPaterno", "apellido_paterno"}, Kind: KindString},
	{Field: "apellido_materno", Keys: []string{"apellidoMaterno", "apellido_materno"}, Kind: KindString},
	{Field: "fecha_nacimiento", Keys: []string{"fechaNacimiento", "fecha_nacimiento"}, Kind: KindDate, Required: true},
	{Field: "cedula_identidad", Keys: []string{"cedulaIdentidad", "cedula_identidad"}, Kind: KindInt, Required: true},
	{Field: "complemento", Keys: []string{"complemento"}, Kind: KindString},
	{Field: "expedicion", Keys: []string{"expedicion"}, Kind: KindString, Required: true},
	{Field: "grado_instruccion", Keys: []string{"gradoInstruccion", "grado_instruccion"}, Kind: KindString},
	{Field: "carrera", Keys: []string{"carrera"}, Kind: KindString},
	{Field: "ciudad", Keys: []string{"ciudad"}, Kind: KindString, Required: true},
	{Field: "zona", Keys: []string{"zona"}, Kind: KindString, Required: true},
	{Field: "calle_avenida", Keys: []string{"calleAvenida", "calle_avenida"}, Kind: KindString, Required: true},
	{Field: "numero_domicilio", Keys: []string{"numeroDomicilio", "numero_domicilio"}, Kind: KindString},
	{Field: "email", Keys: []string{"email"}, Kind: KindString, Required: true},
	{Field: "telefono", Keys: []string{"telefono"}, Kind: KindOptionalInt},
	{Field: "celular", Keys: []string{"celular"}, Kind: KindInt, Required: true},
	{Field: "cargo_postulacion", Keys: []string{"cargoPostulacion", "cargo_postulacion"}, Kind: KindString, Required: true},
	{Field: "experiencia_especifica", Keys: []string{"experienciaEspecifica", "experiencia_especifica"}, Kind: KindString},
	{Field: "experiencia_general", Keys: []string{"experienciaGeneral", "experiencia_general"}, Kind: KindString},
	{Field: "experiencia_procesos_rural", Keys: []string{"experienciaProcesosRural", "experiencia_procesos_rural"}, Kind: KindString},
	{Field: "observacion", Keys: []string{"observacion"}, Kind: KindString},
	{Field: string(DocumentCI), Keys: []string{"archivoCI", "archivo_ci"}, Kind: KindDocument},
	{Field: string(DocumentNoMilitancia), Keys: []string{"archivoNoMilitancia", "archivo_no_militancia"}, Kind: KindDocument},
	{Field: string(DocumentHojaDeVida), Keys: []string{"archivoHojaDeVida", "archivo_hoja_de_vida", "archivoCurriculum", "archivo_curriculum"}, Kind: KindDocument},
	{Field: string(DocumentCertificadoOfimatica), Keys: []string{"archivoCertificadoOfimatica", "archivo_certificado_ofimatica"}, Kind: KindDocument},
	{Field: "recinto_primera_opcion", Keys: []string{"recintoPrimeraOpcion", "recinto_primera_opcion"}, Kind: KindVenue},
	{Field: "recinto_segunda_opcion", Keys: []string{"recintoSegundaOpcion", "recinto_segunda_opcion"}, Kind: KindVenue},
}

// DeclarationSchema maps the keys inside the "requisitos" JSON object to
// declaration fields.
var DeclarationSchema = map[string]string{
	"esBoliviano":                  "es_boliviano",
	"registradoPadronElectoral":    "registrado_en_padron_electoral",
	"ciVigente":                    "ci_vigente",
	"disponibilidadTiempoCompleto": "disponibilidad_tiempo_completo",
	"lineaEntel":                   "linea_entel",
	"ningunaMilitanciaPolitica":    "ninguna_militancia_politica",
	"sinConflictosInstitucion":     "sin_conflictos_con_la_institucion",
	"sinSentenciaEjecutoriada":     "sin_sentencia_ejecutoriada",
	"cuentaConCelularAndroid":      "cuenta_con_celular_android",
	"cuentaConPowerbank":           "cuenta_con_powerbank",
}

// RequisitosKey is the form key holding the declarations JSON.
const RequisitosKey = "requisitos"

var keyIndex = func() map[string]*FieldSpec {
	idx := make(map[string]*FieldSpec)
	for i := range ApplicantSchema {
		for _, k := range ApplicantSchema[i].Keys {
			idx[k] = &ApplicantSchema[i]
		}
	}
	return idx
}()

// LookupField resolves an external form key.
func LookupField(key string) (FieldSpec, bool) {
	spec, ok := keyIndex[key]
	if !ok {
		return FieldSpec{}, false
	}
	return *spec, true
}

// DocumentKindForKey resolves a multipart file part name.
func DocumentKindForKey(key string) (DocumentKind, bool) {
	spec, ok := LookupField(key)
	if !ok || spec.Kind != KindDocument {
		return "", false
	}
	return DocumentKind(spec.Field), true
}

// DecodedForm is the result of mapping a submission form.
type DecodedForm struct {
	Input ApplicantInput
	// DocumentRefs holds uploaded-file IDs given as text for documents
	// that were not sent as file parts.
	DocumentRefs map[DocumentKind]string
}

// DecodeApplicantForm maps raw form values keyed by external name onto an
// ApplicantInput. Unknown keys are ignored.
func DecodeApplicantForm(values map[string][]string) (*DecodedForm, error) {
	out := &DecodedForm{DocumentRefs: make(map[DocumentKind]string)}

	for _, spec := range ApplicantSchema {
		raw := firstValue(values, spec.Keys)
		if spec.Required && raw == "" {
			return nil, NewFieldError(spec.Field, "Este campo es obligatorio")
		}
		if err := out.assign(spec, raw); err != nil {
			return nil, err
		}
	}

	if raw, ok := values[RequisitosKey]; ok {
		decl, err := DecodeDeclarations(raw)
		if err != nil {
			return nil, err
		}
		out.Input.Declarations = decl
	}
	return out, nil
}

// firstValue returns the first non-empty value among keys, in key order.
func firstValue(values map[string][]string, keys []string) string {
	for _, k := range keys {
		if vals := values[k]; len(vals) > 0 {
			if v := strings.TrimSpace(vals[0]); v != "" {
				return v
			}
		}
	}
	return ""
}

func (f *DecodedForm) assign(spec FieldSpec, raw string) error {
	in := &f.Input
	switch spec.Kind {
	case KindString:
		setStringField(in, spec.Field, raw)
	case KindInt:
		n, err := parseInt(raw)
		if err != nil {
			return NewFieldError(spec.Field, "Debe ser un número entero válido")
		}
		switch spec.Field {
		case "cedula_identidad":
			in.CedulaIdentidad = n
		case "celular":
			in.Celular = n
		}
	case KindOptionalInt:
		if raw == "" || raw == "null" {
			return nil
		}
		n, err := parseInt(raw)
		if err != nil {
			return NewFieldError(spec.Field, "Debe ser un número entero válido")
		}
		if spec.Field == "telefono" {
			in.Telefono = &n
		}
	case KindDate:
		d, err := ParseDate(raw)
		if err != nil {
			return NewFieldError(spec.Field, "Formato de fecha inválido, use AAAA-MM-DD")
		}
		in.FechaNacimiento = d
	case KindDocument:
		if raw != "" && raw != "null" && raw != "undefined" {
			f.DocumentRefs[DocumentKind(spec.Field)] = raw
		}
	case KindVenue:
		if raw == "" || raw == "null" {
			return nil
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return NewFieldError(spec.Field, "Identificador de recinto inválido")
		}
		if spec.Field == "recinto_primera_opcion" {
			in.RecintoPrimeraOpcionID = &id
		} else {
			in.RecintoSegundaOpcionID = &id
		}
	}
	return nil
}

func setStringField(in *ApplicantInput, field, v string) {
	switch field {
	case "nombre":
		in.Nombre = v
	case "apellido_paterno":
		in.ApellidoPaterno = v
	case "apellido_materno":
		in.ApellidoMaterno = v
	case "complemento":
		in.Complemento = v
	case "expedicion":
		in.Expedicion = v
	case "grado_instruccion":
		in.GradoInstruccion = v
	case "carrera":
		in.Carrera = v
	case "ciudad":
		in.Ciudad = v
	case "zona":
		in.Zona = v
	case "calle_avenida":
		in.CalleAvenida = v
	case "numero_domicilio":
		in.NumeroDomicilio = v
	case "email":
		in.Email = v
	case "cargo_postulacion":
		in.CargoPostulacion = v
	case "experiencia_especifica":
		in.ExperienciaEspecifica = v
	case "experiencia_general":
		in.ExperienciaGeneral = v
	case "experiencia_procesos_rural":
		in.ExperienciaProcesosRural = v
	case "observacion":
		in.Observacion = v
	}
}

func parseInt(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

var dateLayouts = []string{"2006-01-02", "02/01/2006", time.RFC3339}

// ParseDate accepts ISO dates, dd/mm/yyyy and RFC 3339 timestamps.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// DecodeDeclarations reads the "requisitos" form values. A single value is a
// JSON object of camelCase keys. Several values are either JSON fragments or
// bare key names meaning true.
func DecodeDeclarations(values []string) (Declarations, error) {
	var decl Declarations
	merged := make(map[string]any)

	switch {
	case len(values) == 0:
		return decl, nil
	case len(values) == 1:
		raw := strings.TrimSpace(values[0])
		if raw == "" {
			return decl, nil
		}
		if err := json.Unmarshal([]byte(raw), &merged); err != nil {
			return decl, ErrInvalidRequisitos
		}
	default:
		for _, item := range values {
			part := make(map[string]any)
			if err := json.Unmarshal([]byte(item), &part); err != nil {
				merged[strings.TrimSpace(item)] = true
				continue
			}
			for k, v := range part {
				merged[k] = v
			}
		}
	}

	for key, field := range DeclarationSchema {
		decl.Set(field, truthy(merged[key]))
	}
	return decl, nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return err == nil && b
	case float64:
		return t != 0
	}
	return false
}
