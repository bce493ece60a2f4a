// Package docs registers the OpenAPI description of the SIREPRE API with
// swag so gin-swagger can serve it under /swagger.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/postulantes/": {
            "post": {
                "tags": ["postulantes"],
                "summary": "Registrar postulante",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Postulante registrado, incluye pdfUrl"},
                    "400": {"description": "Datos invalidos o postulante duplicado"},
                    "403": {"description": "Convocatoria cerrada"}
                }
            }
        },
        "/postulantes/existe/": {
            "get": {
                "tags": ["postulantes"],
                "summary": "Consultar si una cedula ya esta registrada",
                "parameters": [
                    {"name": "cedula_identidad", "in": "query", "required": true, "type": "string"},
                    {"name": "complemento", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "{existe: bool}"}}
            }
        },
        "/postulantes/recintos/": {
            "get": {
                "tags": ["postulantes"],
                "summary": "Listar recintos",
                "responses": {"200": {"description": "Lista de recintos"}}
            }
        },
        "/postulantes/upload/": {
            "post": {
                "tags": ["postulantes"],
                "summary": "Subir documento suelto",
                "consumes": ["multipart/form-data"],
                "responses": {
                    "201": {"description": "Archivo guardado"},
                    "413": {"description": "Archivo demasiado grande"}
                }
            }
        },
        "/postulantes/status/": {
            "get": {
                "tags": ["postulantes"],
                "summary": "Estado de la convocatoria",
                "responses": {"200": {"description": "{sistema_activo, mensaje}"}}
            }
        },
        "/postulantes/pdf/{ci}/": {
            "get": {
                "tags": ["postulantes"],
                "summary": "Descargar comprobante",
                "produces": ["application/pdf"],
                "parameters": [{"name": "ci", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "Comprobante PDF"},
                    "404": {"description": "Comprobante no encontrado"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Iniciar sesion del personal",
                "responses": {"200": {"description": "Tokens de acceso y refresco"}, "401": {"description": "Credenciales invalidas"}}
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["auth"],
                "summary": "Renovar tokens",
                "responses": {"200": {"description": "Nuevo par de tokens"}, "401": {"description": "Token invalido"}}
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Cerrar sesion",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Sesion cerrada"}}
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["auth"],
                "summary": "Usuario actual",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Datos del usuario"}}
            }
        },
        "/admin/postulantes": {
            "get": {
                "tags": ["admin"],
                "summary": "Listar postulantes",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "Pagina de postulantes con meta"}}
            }
        },
        "/admin/postulantes/export": {
            "get": {
                "tags": ["admin"],
                "summary": "Exportar postulantes a Excel",
                "security": [{"BearerAuth": []}],
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "responses": {"200": {"description": "Libro XLSX"}}
            }
        },
        "/admin/postulantes/{id}": {
            "get": {
                "tags": ["admin"],
                "summary": "Detalle de postulante",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "Postulante con revisiones"}, "404": {"description": "No encontrado"}}
            }
        },
        "/admin/postulantes/{id}/revisiones": {
            "post": {
                "tags": ["admin"],
                "summary": "Registrar revision",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"201": {"description": "Revision registrada"}}
            }
        },
        "/admin/postulantes/{id}/comprobante": {
            "post": {
                "tags": ["admin"],
                "summary": "Regenerar comprobante",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "Comprobante regenerado"}}
            }
        },
        "/admin/estadisticas": {
            "get": {
                "tags": ["admin"],
                "summary": "Estadisticas de registro",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Totales y series"}}
            }
        },
        "/admin/configuracion": {
            "get": {
                "tags": ["admin"],
                "summary": "Leer configuracion",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Configuracion del sistema"}}
            },
            "put": {
                "tags": ["admin"],
                "summary": "Abrir o cerrar la convocatoria",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Configuracion guardada"}, "403": {"description": "Requiere rol admin"}}
            }
        },
        "/admin/recintos/import": {
            "post": {
                "tags": ["admin"],
                "summary": "Importar recintos desde CSV",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "responses": {"200": {"description": "Resumen de la importacion"}}
            }
        },
        "/admin/recintos/{id}/nomina.pdf": {
            "get": {
                "tags": ["admin"],
                "summary": "Nomina de postulantes por recinto",
                "security": [{"BearerAuth": []}],
                "produces": ["application/pdf"],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "Nomina PDF"}, "503": {"description": "Navegador no disponible"}}
            }
        },
        "/health/": {
            "get": {"tags": ["health"], "summary": "Liveness", "responses": {"200": {"description": "ok"}}}
        },
        "/health/ready": {
            "get": {
                "tags": ["health"],
                "summary": "Readiness",
                "responses": {"200": {"description": "Dependencias listas"}, "503": {"description": "Alguna dependencia falla"}}
            }
        }
    }
}`

// SwaggerInfo holds the values substituted into docTemplate.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "SIREPRE API",
	Description:      "Registro de postulantes, revision y comprobantes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
