// Package docs registra o documento OpenAPI servido em /swagger/.
// Regerar com: swag init -g cmd/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Autentica email, segredo e papel declarado",
                "parameters": [
                    {"description": "Email, senha e papel", "name": "login", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Login realizado", "schema": {"$ref": "#/definitions/auth.LoginResponse"}},
                    "400": {"description": "Payload inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "401": {"description": "Credenciais inválidas", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "429": {"description": "Muitas tentativas", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/api/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Cadastra uma conta de papel público",
                "parameters": [
                    {"description": "Dados do formulário de cadastro", "name": "registration", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.RegisterData"}}
                ],
                "responses": {
                    "201": {"description": "Conta criada", "schema": {"$ref": "#/definitions/auth.RegisterResponse"}},
                    "400": {"description": "Formulário inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "403": {"description": "Papel exige provisionamento por administrador", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "409": {"description": "Email já cadastrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/api/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Encerra a sessão",
                "responses": {
                    "200": {"description": "Sessão encerrada", "schema": {"$ref": "#/definitions/auth.MessageResponse"}}
                }
            }
        },
        "/api/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Retorna a sessão corrente",
                "responses": {
                    "200": {"description": "Sessão corrente", "schema": {"$ref": "#/definitions/auth.SessionResponse"}}
                }
            }
        },
        "/api/password-recovery": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Solicita um link de recuperação de senha",
                "parameters": [
                    {"description": "Email da conta", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.PasswordRecoveryRequest"}}
                ],
                "responses": {
                    "202": {"description": "Solicitação aceita", "schema": {"$ref": "#/definitions/auth.MessageResponse"}},
                    "400": {"description": "Email inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/api/password-recovery/verify": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Valida um link de recuperação de senha",
                "parameters": [
                    {"type": "string", "description": "Token recebido no link", "name": "token", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "Link válido", "schema": {"$ref": "#/definitions/auth.VerifyResponse"}},
                    "401": {"description": "Link inválido ou expirado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/api/admin/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Lista o diretório de identidades",
                "responses": {
                    "200": {"description": "Diretório", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Identity"}}},
                    "401": {"description": "Sem sessão", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "403": {"description": "Papel sem permissão", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Provisiona uma conta de qualquer papel",
                "parameters": [
                    {"description": "Dados da conta", "name": "account", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.ProvisionData"}}
                ],
                "responses": {
                    "201": {"description": "Conta criada", "schema": {"$ref": "#/definitions/domain.Identity"}},
                    "400": {"description": "Dados inválidos", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "401": {"description": "Sem sessão", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "403": {"description": "Papel sem permissão", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "409": {"description": "Email já cadastrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/api/admin/activity": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Lista o log de atividades, mais recentes primeiro",
                "parameters": [
                    {"type": "integer", "description": "Quantidade máxima de entradas (padrão 50, máximo 500)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Entradas", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.ActivityEntry"}}},
                    "400": {"description": "Limite inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "401": {"description": "Sem sessão", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "403": {"description": "Papel sem permissão", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Identity": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"},
                "serviceType": {"type": "string"}
            }
        },
        "domain.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "domain.RegisterData": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "confirmPassword": {"type": "string"},
                "role": {"type": "string"},
                "acceptTerms": {"type": "boolean"}
            }
        },
        "domain.ProvisionData": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"},
                "serviceType": {"type": "string"}
            }
        },
        "domain.PasswordRecoveryRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"}
            }
        },
        "domain.ActivityEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "action": {"type": "string"},
                "actor": {"type": "string"},
                "role": {"type": "string"},
                "details": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "domain.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer", "example": 401},
                "category": {"type": "string", "example": "UNAUTHORIZED"},
                "message": {"type": "string", "example": "Invalid credentials. Please try again."}
            }
        },
        "auth.LoginResponse": {
            "type": "object",
            "properties": {
                "user": {"$ref": "#/definitions/domain.Identity"},
                "roleLabel": {"type": "string", "example": "Vice Chancellor"},
                "redirect": {"type": "string", "example": "/dashboard"}
            }
        },
        "auth.RegisterResponse": {
            "type": "object",
            "properties": {
                "user": {"$ref": "#/definitions/domain.Identity"},
                "message": {"type": "string", "example": "Account created. Please log in."},
                "redirect": {"type": "string", "example": "/login"}
            }
        },
        "auth.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "redirect": {"type": "string"}
            }
        },
        "auth.SessionResponse": {
            "type": "object",
            "properties": {
                "authenticated": {"type": "boolean"},
                "user": {"$ref": "#/definitions/domain.Identity"},
                "roleLabel": {"type": "string"},
                "navigation": {"type": "array", "items": {"type": "object"}}
            }
        },
        "auth.VerifyResponse": {
            "type": "object",
            "properties": {
                "email": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo guarda as informações exportadas do documento.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Eventra API",
	Description:      "Autenticação, sessão e guarda de rotas por papel do Eventra.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
