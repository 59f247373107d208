package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/budgetbook/budgetbook-backend/docs"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

// OpenAPI3Spec represents an OpenAPI 3.0 spec structure
type OpenAPI3Spec struct {
	OpenAPI    string                 `json:"openapi"`
	Info       map[string]interface{} `json:"info"`
	Servers    []Server               `json:"servers"`
	Paths      map[string]interface{} `json:"paths"`
	Components map[string]interface{} `json:"components,omitempty"`
}

// Server represents an OpenAPI 3.0 server
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

var openAPIServers = []Server{
	{URL: "http://localhost:8080/api/v1", Description: "Local Development"},
	{URL: "https://api.budgetbook.app/api/v1", Description: "Production"},
}

// rewriteRefs points every $ref at components/schemas instead of definitions
func rewriteRefs(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, value := range v {
			if ref, ok := value.(string); ok && key == "$ref" {
				out[key] = strings.Replace(ref, "#/definitions/", "#/components/schemas/", 1)
				continue
			}
			out[key] = rewriteRefs(value)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = rewriteRefs(item)
		}
		return out
	}
	return data
}

// convertOperation moves a Swagger 2.0 body parameter into requestBody and wraps the
// type fields of the remaining parameters in a schema object.
func convertOperation(op map[string]interface{}) map[string]interface{} {
	params, _ := op["parameters"].([]interface{})
	var kept []interface{}
	for _, p := range params {
		param, ok := p.(map[string]interface{})
		if !ok {
			continue
		}
		if param["in"] == "body" {
			op["requestBody"] = map[string]interface{}{
				"required": param["required"],
				"content": map[string]interface{}{
					"application/json": map[string]interface{}{"schema": param["schema"]},
				},
			}
			continue
		}
		converted := map[string]interface{}{}
		schema := map[string]interface{}{}
		for key, value := range param {
			switch key {
			case "name", "in", "description", "required":
				converted[key] = value
			case "type", "format", "enum", "default", "minimum", "maximum", "items":
				schema[key] = value
			}
		}
		if len(schema) > 0 {
			converted["schema"] = schema
		}
		kept = append(kept, converted)
	}
	if kept != nil {
		op["parameters"] = kept
	} else {
		delete(op, "parameters")
	}

	if responses, ok := op["responses"].(map[string]interface{}); ok {
		for code, r := range responses {
			resp, ok := r.(map[string]interface{})
			if !ok {
				continue
			}
			if schema, ok := resp["schema"]; ok {
				delete(resp, "schema")
				resp["content"] = map[string]interface{}{
					"application/json": map[string]interface{}{"schema": schema},
				}
			}
			responses[code] = resp
		}
	}
	return op
}

// toOpenAPI3 converts a Swagger 2.0 document produced by swag
func toOpenAPI3(swagger2 map[string]interface{}) OpenAPI3Spec {
	info, _ := swagger2["info"].(map[string]interface{})

	paths := map[string]interface{}{}
	if rawPaths, ok := rewriteRefs(swagger2["paths"]).(map[string]interface{}); ok {
		for path, item := range rawPaths {
			methods, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			for method, op := range methods {
				if operation, ok := op.(map[string]interface{}); ok {
					methods[method] = convertOperation(operation)
				}
			}
			paths[path] = methods
		}
	}

	components := make(map[string]interface{})
	if secDefs, ok := swagger2["securityDefinitions"].(map[string]interface{}); ok {
		components["securitySchemes"] = secDefs
	}
	if definitions, ok := swagger2["definitions"].(map[string]interface{}); ok {
		components["schemas"] = rewriteRefs(definitions)
	}

	return OpenAPI3Spec{
		OpenAPI:    "3.0.3",
		Info:       info,
		Servers:    openAPIServers,
		Paths:      paths,
		Components: components,
	}
}

// ServeOpenAPI3Spec serves the generated Swagger 2.0 document as OpenAPI 3.0
func ServeOpenAPI3Spec(c echo.Context) error {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		return NewInternalError(c, "Failed to read swagger doc")
	}

	var swagger2 map[string]interface{}
	if err := json.Unmarshal([]byte(doc), &swagger2); err != nil {
		return NewInternalError(c, "Failed to parse swagger doc")
	}

	return c.JSON(http.StatusOK, toOpenAPI3(swagger2))
}
