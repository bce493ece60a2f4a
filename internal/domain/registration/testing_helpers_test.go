package registration

import "time"

func validInput() ApplicantInput {
	return ApplicantInput{
		Nombre:           "María",
		ApellidoPaterno:  "Quispe",
		ApellidoMaterno:  "Mamani",
		FechaNacimiento:  time.Date(1995, 4, 12, 0, 0, 0, 0, time.UTC),
		CedulaIdentidad:  4567890,
		Complemento:      "1a",
		Expedicion:       "lp",
		Ciudad:           "El Alto",
		Zona:             "Villa Adela",
		CalleAvenida:     "Av. Bolivia",
		Email:            "Maria@Example.com ",
		Celular:          71234567,
		CargoPostulacion: "Notario Electoral",
	}
}
