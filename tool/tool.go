// Package tool dispatches JSON tool calls (simplify, canonicalize,
// simplify_batch, schema) to a symkernel engine. Expressions travel as
// MathJSON values.
package tool

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"

	sk "github.com/njchilds90/symkernel"
	"github.com/njchilds90/symkernel/mathjson"
)

// requestAPI keeps numbers as json.Number so big literals survive decoding.
var requestAPI = sonic.Config{UseNumber: true, DisallowUnknownFields: true}.Froze()

type Request struct {
	Tool   string         `json:"tool"`
	Params map[string]any `json:"params"`
}

type Response struct {
	Result any    `json:"result,omitempty"`
	LaTeX  string `json:"latex,omitempty"`
	String string `json:"string,omitempty"`
	Error  string `json:"error,omitempty"`
}

// DecodeRequest reads a single request object. Unknown fields and trailing
// data are rejected.
func DecodeRequest(r io.Reader) (Request, error) {
	var req Request
	dec := requestAPI.NewDecoder(r)
	if err := dec.Decode(&req); err != nil {
		return Request{}, fmt.Errorf("invalid request: %w", err)
	}
	if dec.More() {
		return Request{}, fmt.Errorf("invalid JSON: trailing data")
	}
	return req, nil
}

// Handler runs tool calls against one engine.
type Handler struct {
	engine  *sk.Engine
	codec   *mathjson.Codec
	workers int
}

// NewHandler binds an engine. workers bounds simplify_batch concurrency; a
// value below 1 means one worker.
func NewHandler(engine *sk.Engine, workers int) *Handler {
	if engine == nil {
		engine = sk.Default()
	}
	if workers < 1 {
		workers = 1
	}
	return &Handler{engine: engine, codec: mathjson.New(engine.Numbers()), workers: workers}
}

func (h *Handler) Handle(ctx context.Context, req Request) Response {
	getExpr := func(key string) (sk.Expr, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		x, err := h.codec.FromValue(v)
		if err != nil {
			return nil, fmt.Errorf("param %s: %w", key, err)
		}
		return x, nil
	}
	getExprList := func(key string) ([]sk.Expr, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		raw, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("param %s must be array", key)
		}
		out := make([]sk.Expr, len(raw))
		for i, r := range raw {
			x, err := h.codec.FromValue(r)
			if err != nil {
				return nil, fmt.Errorf("param %s[%d]: %w", key, i, err)
			}
			out[i] = x
		}
		return out, nil
	}
	respond := func(x sk.Expr) Response {
		return Response{Result: h.codec.ToValue(x), LaTeX: sk.LaTeX(x), String: x.String()}
	}

	switch req.Tool {
	case "simplify":
		x, err := getExpr("expr")
		if err != nil {
			return Response{Error: err.Error()}
		}
		return respond(h.engine.Simplify(x))

	case "canonicalize":
		x, err := getExpr("expr")
		if err != nil {
			return Response{Error: err.Error()}
		}
		return respond(h.engine.Canonicalize(x))

	case "simplify_batch":
		xs, err := getExprList("exprs")
		if err != nil {
			return Response{Error: err.Error()}
		}
		out, err := h.engine.SimplifyAll(ctx, xs, h.workers)
		if err != nil {
			return Response{Error: err.Error()}
		}
		vals := make([]any, len(out))
		strs := make([]string, len(out))
		for i, x := range out {
			vals[i] = h.codec.ToValue(x)
			strs[i] = x.String()
		}
		return Response{Result: vals, String: strings.Join(strs, ", ")}

	case "schema":
		return Response{Result: Schema()}
	}
	return Response{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// Schema describes the tools for agent registration.
func Schema() map[string]any {
	tools := []map[string]any{
		ts("simplify", "Simplify a MathJSON expression", []string{"expr"}, map[string]string{"expr": "any"}),
		ts("canonicalize", "Put a MathJSON expression in canonical form", []string{"expr"}, map[string]string{"expr": "any"}),
		ts("simplify_batch", "Simplify several expressions concurrently", []string{"exprs"}, map[string]string{"exprs": "array"}),
		ts("schema", "Return this tool schema", []string{}, map[string]string{}),
	}
	return map[string]any{"tools": tools}
}

var toolNames = func() map[string]bool {
	names := map[string]bool{}
	for _, t := range Schema()["tools"].([]map[string]any) {
		names[t["name"].(string)] = true
	}
	return names
}()

// Name returns name when it is one of the tools in Schema and "unknown"
// otherwise, so request input never becomes an unbounded label set.
func Name(name string) string {
	if toolNames[name] {
		return name
	}
	return "unknown"
}

func ts(name, description string, required []string, props map[string]string) map[string]any {
	properties := map[string]any{}
	for k, typ := range props {
		properties[k] = map[string]any{"type": typ}
	}
	return map[string]any{
		"name":        name,
		"description": description,
		"inputSchema": map[string]any{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
