package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToOpenAPI3_ConvertsBodyAndRefs(t *testing.T) {
	swagger2 := map[string]interface{}{
		"info": map[string]interface{}{"title": "x"},
		"paths": map[string]interface{}{
			"/groups": map[string]interface{}{
				"post": map[string]interface{}{
					"parameters": []interface{}{
						map[string]interface{}{
							"name": "request", "in": "body", "required": true,
							"schema": map[string]interface{}{"$ref": "#/definitions/handler.GroupCredentialsRequest"},
						},
						map[string]interface{}{"name": "type", "in": "query", "type": "string"},
					},
					"responses": map[string]interface{}{
						"201": map[string]interface{}{
							"description": "Created",
							"schema":      map[string]interface{}{"$ref": "#/definitions/handler.LedgerResponse"},
						},
					},
				},
			},
		},
		"definitions": map[string]interface{}{"handler.LedgerResponse": map[string]interface{}{"type": "object"}},
	}

	spec := toOpenAPI3(swagger2)

	op := spec.Paths["/groups"].(map[string]interface{})["post"].(map[string]interface{})
	body := op["requestBody"].(map[string]interface{})
	schema := body["content"].(map[string]interface{})["application/json"].(map[string]interface{})["schema"].(map[string]interface{})
	assert.Equal(t, "#/components/schemas/handler.GroupCredentialsRequest", schema["$ref"])

	params := op["parameters"].([]interface{})
	require.Len(t, params, 1)
	assert.Equal(t, map[string]interface{}{"type": "string"}, params[0].(map[string]interface{})["schema"])

	resp := op["responses"].(map[string]interface{})["201"].(map[string]interface{})
	assert.NotContains(t, resp, "schema")
	assert.Contains(t, resp, "content")
	assert.Contains(t, spec.Components["schemas"], "handler.LedgerResponse")
}

func TestServeOpenAPI3Spec(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/openapi.json", nil), rec)

	require.NoError(t, ServeOpenAPI3Spec(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var spec OpenAPI3Spec
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &spec))
	assert.Equal(t, "3.0.3", spec.OpenAPI)
	assert.Contains(t, spec.Paths, "/transactions")
}
