package tool

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kbukum/mcp-huiting/errors"
	"github.com/kbukum/mcp-huiting/validation"
)

// Param declares one string argument of a tool.
type Param struct {
	Name        string
	Description string
	Required    bool
}

// Handler runs a tool with validated arguments and returns its text result.
type Handler[A any] func(ctx context.Context, args A) (string, error)

// Tool is a named operation with a declared input schema.
type Tool struct {
	Name        string
	Description string
	Params      []Param

	invoke func(ctx context.Context, raw map[string]any) (string, error)
}

// New declares a tool whose arguments bind to A through its json tags and
// are checked against its validate tags before h runs. Params marked
// Required must be present and non-null.
func New[A any](name, description string, params []Param, h Handler[A]) Tool {
	var required []string
	for _, p := range params {
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return Tool{
		Name:        name,
		Description: description,
		Params:      params,
		invoke: func(ctx context.Context, raw map[string]any) (string, error) {
			if err := validation.Present(name, raw, required...); err != nil {
				return "", err
			}
			var args A
			if err := bind(name, raw, &args); err != nil {
				return "", err
			}
			if err := validation.Arguments(name, &args); err != nil {
				return "", err
			}
			return h(ctx, args)
		},
	}
}

// bind decodes raw arguments into dst. A value of the wrong JSON type is a
// schema violation naming the field.
func bind(tool string, raw map[string]any, dst any) error {
	if raw == nil {
		raw = map[string]any{}
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return errors.SchemaViolation(tool, "arguments are not a JSON object").WithCause(err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if stderrors.As(err, &typeErr) {
			return errors.SchemaViolation(tool, fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type))
		}
		return errors.SchemaViolation(tool, err.Error())
	}
	return nil
}

// Definition returns the MCP tool declaration advertised to the host.
func (t Tool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(t.Description)}
	for _, p := range t.Params {
		propOpts := []mcp.PropertyOption{mcp.Description(p.Description)}
		if p.Required {
			propOpts = append(propOpts, mcp.Required())
		}
		opts = append(opts, mcp.WithString(p.Name, propOpts...))
	}
	return mcp.NewTool(t.Name, opts...)
}
