// Package yamlload decodes YAML and JSON session documents into the schema
// types. It only parses; document validation happens in pkg/schema and again
// when the session is built.
package yamlload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/VoBaNguyen/qaconf/internal/ctxlog"
	"github.com/VoBaNguyen/qaconf/pkg/schema"
)

// Load reads the source and decodes it. Documents whose first non-blank byte
// is a brace go through the JSON decoder so JSON syntax errors keep their
// line/offset detail; everything else is treated as YAML.
func Load(ctx context.Context, src schema.Source) (schema.SessionSchema, error) {
	if src == nil {
		return schema.SessionSchema{}, fmt.Errorf("yamlload: source is nil")
	}

	logger := ctxlog.FromContext(ctx)
	logger.Debug("loading session document", "location", src.Location())

	data, err := src.Read(ctx)
	if err != nil {
		return schema.SessionSchema{}, fmt.Errorf("yamlload: read %s: %w", src.Location(), err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return schema.SessionSchema{}, fmt.Errorf("yamlload: %s is empty", src.Location())
	}

	var doc schema.SessionSchema
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return schema.SessionSchema{}, fmt.Errorf("yamlload: parse %s: %w", src.Location(), err)
		}
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return schema.SessionSchema{}, fmt.Errorf("yamlload: parse %s: %w", src.Location(), err)
	}
	return doc, nil
}
