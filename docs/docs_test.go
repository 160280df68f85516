package docs

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

type swaggerDoc struct {
	Paths       map[string]map[string]json.RawMessage `json:"paths"`
	Definitions map[string]json.RawMessage            `json:"definitions"`
}

func readDoc(t *testing.T) (swaggerDoc, string) {
	t.Helper()
	raw, err := swag.ReadDoc()
	require.NoError(t, err)
	var doc swaggerDoc
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc, raw
}

func TestRequestBodiesAreTyped(t *testing.T) {
	doc, _ := readDoc(t)
	for path, ops := range doc.Paths {
		for method, rawOp := range ops {
			var op struct {
				Parameters []struct {
					In     string         `json:"in"`
					Schema map[string]any `json:"schema"`
				} `json:"parameters"`
			}
			require.NoError(t, json.Unmarshal(rawOp, &op))
			for _, p := range op.Parameters {
				if p.In == "body" {
					assert.Contains(t, p.Schema, "$ref", "%s %s body", method, path)
				}
			}
		}
	}
}

func TestEveryRefResolves(t *testing.T) {
	doc, raw := readDoc(t)
	const prefix = `"$ref": "#/definitions/`
	for rest := raw; ; {
		i := strings.Index(rest, prefix)
		if i < 0 {
			break
		}
		rest = rest[i+len(prefix):]
		name := rest[:strings.IndexByte(rest, '"')]
		assert.Contains(t, doc.Definitions, name)
	}

	var signup struct {
		Required   []string                  `json:"required"`
		Properties map[string]map[string]any `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(doc.Definitions["service.SignupInput"], &signup))
	assert.ElementsMatch(t, []string{"email", "password"}, signup.Required)
	assert.Equal(t, float64(8), signup.Properties["password"]["minLength"])
}

func TestAdminRoutesDeclareSecurity(t *testing.T) {
	doc, _ := readDoc(t)
	for path, ops := range doc.Paths {
		if !strings.HasPrefix(path, "/admin/") {
			continue
		}
		for method, rawOp := range ops {
			var op struct {
				Security []map[string][]string `json:"security"`
			}
			require.NoError(t, json.Unmarshal(rawOp, &op))
			assert.NotEmpty(t, op.Security, "%s %s", method, path)
		}
	}
	assert.Contains(t, doc.Paths, "/admin/carts/recovered")
	assert.NotContains(t, doc.Paths, "/carts/recovered")
}
