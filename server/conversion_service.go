package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"connectrpc.com/connect"
	"github.com/tliron/commonlog"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/chazu/unitconv/dimension"
	"github.com/chazu/unitconv/input"
	"github.com/chazu/unitconv/registry"
)

// ServiceName is the fully-qualified name of the conversion service.
const ServiceName = "unitconv.v1.ConversionService"

// Procedure paths. Messages are google.protobuf.Struct, so the service can
// be called as plain JSON without generated stubs.
const (
	ConvertProcedure   = "/" + ServiceName + "/Convert"
	CheckProcedure     = "/" + ServiceName + "/Check"
	ListUnitsProcedure = "/" + ServiceName + "/ListUnits"
)

// ConversionService implements the ConversionService Connect handlers.
type ConversionService struct {
	reg *registry.Registry
	log commonlog.Logger
}

// NewConversionService creates a ConversionService backed by reg.
func NewConversionService(reg *registry.Registry) *ConversionService {
	return &ConversionService{
		reg: reg,
		log: commonlog.GetLogger("unitconv.server.conversion"),
	}
}

// Register mounts every procedure on mux.
func (s *ConversionService) Register(mux *http.ServeMux) {
	mux.Handle(ConvertProcedure, connect.NewUnaryHandler(ConvertProcedure, s.Convert))
	mux.Handle(CheckProcedure, connect.NewUnaryHandler(CheckProcedure, s.Check))
	mux.Handle(ListUnitsProcedure, connect.NewUnaryHandler(ListUnitsProcedure, s.ListUnits))
}

// Conversion is the result of a Convert call.
type Conversion struct {
	Input     float64
	Value     float64
	From      string
	To        string
	FromBase  string
	ToBase    string
	Dimension string
}

func (c *Conversion) toStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"input":     c.Input,
		"value":     c.Value,
		"from":      c.From,
		"to":        c.To,
		"from_base": c.FromBase,
		"to_base":   c.ToBase,
		"dimension": c.Dimension,
	})
}

func conversionFromStruct(s *structpb.Struct) *Conversion {
	f := s.GetFields()
	return &Conversion{
		Input:     f["input"].GetNumberValue(),
		Value:     f["value"].GetNumberValue(),
		From:      f["from"].GetStringValue(),
		To:        f["to"].GetStringValue(),
		FromBase:  f["from_base"].GetStringValue(),
		ToBase:    f["to_base"].GetStringValue(),
		Dimension: f["dimension"].GetStringValue(),
	}
}

// Convert converts either {"input": "10 m/s => mi/h"} or
// {"value": 10, "from": "m/s", "to": "mi/h"}. A missing value converts 1.
func (s *ConversionService) Convert(
	ctx context.Context,
	req *connect.Request[structpb.Struct],
) (*connect.Response[structpb.Struct], error) {
	in, err := requestInput(req.Msg)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	res, err := input.ConvertInput(s.reg, in)
	if err != nil {
		s.log.Debugf("convert %v %s => %s: %v", in.Value, in.From, in.To, err)
		return nil, connectError(err)
	}

	out, err := (&Conversion{
		Input:     in.Value,
		Value:     res.Value,
		From:      in.From,
		To:        in.To,
		FromBase:  res.From.AsBaseUnits(),
		ToBase:    res.To.AsBaseUnits(),
		Dimension: res.From.Summary(),
	}).toStruct()
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(out), nil
}

func requestInput(msg *structpb.Struct) (input.Input, error) {
	fields := msg.GetFields()
	if line := fields["input"].GetStringValue(); line != "" {
		return input.Parse(line)
	}

	in := input.Input{
		Value: 1,
		From:  fields["from"].GetStringValue(),
		To:    fields["to"].GetStringValue(),
	}
	if v, ok := fields["value"]; ok {
		if _, isNum := v.GetKind().(*structpb.Value_NumberValue); !isNum {
			return input.Input{}, fmt.Errorf("value must be a number")
		}
		in.Value = v.GetNumberValue()
	}
	if in.From == "" || in.To == "" {
		return input.Input{}, fmt.Errorf("either input or both from and to are required")
	}
	return in, nil
}

// connectError maps engine errors to Connect codes. Incompatible
// expressions are a failed precondition; everything else is bad input.
func connectError(err error) error {
	code := connect.CodeInvalidArgument
	if errors.Is(err, dimension.ErrDimensionMismatch) || errors.Is(err, dimension.ErrFractionalPower) {
		code = connect.CodeFailedPrecondition
	}
	return connect.NewError(code, err)
}

// Check validates a unit expression without converting anything. An
// invalid expression is reported in the response, not as an RPC error.
func (s *ConversionService) Check(
	ctx context.Context,
	req *connect.Request[structpb.Struct],
) (*connect.Response[structpb.Struct], error) {
	expr := req.Msg.GetFields()["expression"].GetStringValue()
	if expr == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("expression is required"))
	}

	var fields map[string]interface{}
	d, err := dimension.Parse(s.reg, expr)
	if err != nil {
		fields = map[string]interface{}{
			"valid": false,
			"error": err.Error(),
		}
	} else {
		fields = map[string]interface{}{
			"valid":       true,
			"base_units":  d.AsBaseUnits(),
			"superscript": d.Superscript(),
			"dimension":   d.Summary(),
		}
	}

	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(out), nil
}

// ListUnits returns the registry contents and digest, optionally limited to
// one space with {"space": "length"}.
func (s *ConversionService) ListUnits(
	ctx context.Context,
	req *connect.Request[structpb.Struct],
) (*connect.Response[structpb.Struct], error) {
	units := s.reg.Units()
	if space := req.Msg.GetFields()["space"].GetStringValue(); space != "" {
		units = s.reg.UnitsIn(registry.Space(space))
		if len(units) == 0 {
			return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("space %q not found", space))
		}
	}

	list := make([]interface{}, 0, len(units))
	for _, u := range units {
		aliases := make([]interface{}, len(u.Aliases))
		for i, a := range u.Aliases {
			aliases[i] = a
		}
		list = append(list, map[string]interface{}{
			"name":    u.Name,
			"aliases": aliases,
			"space":   string(u.Space),
			"metric":  u.Metric,
			"scale":   u.Scale(),
		})
	}
	spaces := make([]interface{}, 0)
	for _, sp := range s.reg.Spaces() {
		spaces = append(spaces, string(sp))
	}

	out, err := structpb.NewStruct(map[string]interface{}{
		"digest": s.reg.Digest(),
		"spaces": spaces,
		"units":  list,
	})
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(out), nil
}
