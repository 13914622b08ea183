package main

import (
	"context"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-valueprinter/descfile"
	"github.com/wippyai/wasm-valueprinter/errors"
	"github.com/wippyai/wasm-valueprinter/memory"
	"github.com/wippyai/wasm-valueprinter/printer"
	"github.com/wippyai/wasm-valueprinter/typedesc"
	"github.com/wippyai/wasm-valueprinter/witdesc"
)

// witPrefix selects a WIT type name instead of a C++ type expression.
const witPrefix = "wit:"

// session is one instantiated guest module plus the types its values are
// described with.
type session struct {
	rt      wazero.Runtime
	mod     api.Module
	types   *descfile.Registry
	printer *printer.Printer
	log     *zap.Logger
}

type sessionConfig struct {
	wasm        []byte
	typesFile   string
	logger      *zap.Logger
	maxElements uint32
	maxString   uint32
}

func openSession(ctx context.Context, cfg sessionConfig) (*session, error) {
	log := cfg.logger
	if log == nil {
		log = zap.NewNop()
	}

	types := descfile.NewRegistry()
	if cfg.typesFile != "" {
		var err error
		if types, err = descfile.LoadFile(cfg.typesFile); err != nil {
			return nil, err
		}
		log.Debug("loaded type description", zap.String("path", cfg.typesFile), zap.Strings("types", types.Names()))
	}

	rt := wazero.NewRuntime(ctx)
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
		rt.Close(ctx)
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err, "instantiate WASI")
	}

	modCfg := wazero.NewModuleConfig().
		WithStdout(os.Stderr).
		WithStderr(os.Stderr).
		WithStartFunctions("_initialize")
	mod, err := rt.InstantiateWithConfig(ctx, cfg.wasm, modCfg)
	if err != nil {
		rt.Close(ctx)
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err, "instantiate module")
	}

	mem := memory.NewWazero(mod.Memory())
	log.Debug("module instantiated", zap.Uint32("memory_bytes", mem.Size()))

	return &session{
		rt:    rt,
		mod:   mod,
		types: types,
		printer: printer.New(mem,
			printer.WithLogger(log),
			printer.WithMaxElements(cfg.maxElements),
			printer.WithMaxStringLength(cfg.maxString),
		),
		log: log,
	}, nil
}

func (s *session) Close(ctx context.Context) error {
	return s.rt.Close(ctx)
}

// lookupType resolves a C++ type expression against the loaded
// description, or a WIT type name when prefixed with "wit:".
func (s *session) lookupType(expr string) (*typedesc.Type, error) {
	if rest, ok := strings.CutPrefix(strings.TrimSpace(expr), witPrefix); ok {
		return witdesc.ParseType(rest)
	}
	return s.types.Lookup(expr)
}

type export struct {
	name    string
	params  []api.ValueType
	results []api.ValueType
}

func (e export) signature() string {
	names := func(vts []api.ValueType) string {
		out := make([]string, len(vts))
		for i, vt := range vts {
			out[i] = api.ValueTypeName(vt)
		}
		return strings.Join(out, ", ")
	}
	sig := e.name + "(" + names(e.params) + ")"
	if len(e.results) > 0 {
		sig += " -> " + names(e.results)
	}
	return sig
}

// exports lists the module's exported functions by name.
func (s *session) exports() []export {
	defs := s.mod.ExportedFunctionDefinitions()
	out := make([]export, 0, len(defs))
	for name, def := range defs {
		out = append(out, export{name: name, params: def.ParamTypes(), results: def.ResultTypes()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// eval calls an export and renders its first result as a value of the
// type typeExpr names.
func (s *session) eval(ctx context.Context, fn string, args []string, typeExpr string) (string, error) {
	typ, err := s.lookupType(typeExpr)
	if err != nil {
		return "", err
	}

	f := s.mod.ExportedFunction(fn)
	if f == nil {
		return "", errors.NotFound(errors.PhaseCall, "export", fn)
	}
	def := f.Definition()

	params, err := encodeArgs(def.ParamTypes(), args)
	if err != nil {
		return "", err
	}

	s.log.Debug("calling export", zap.String("func", fn), zap.Strings("args", args), zap.String("type", typ.DisplayName()))
	results, err := f.Call(ctx, params...)
	if err != nil {
		return "", errors.New(errors.PhaseCall, errors.KindInvalidData).
			Path(fn).
			Cause(err).
			Detail("call failed").
			Build()
	}
	if len(results) == 0 || typ.Kind == typedesc.KindVoid {
		return "void", nil
	}

	return s.printer.PrintTopLevel(printer.NewFlatAccessor(def.ResultTypes(), results), typ), nil
}

// inspect renders the value of the type typeExpr names stored at addr.
func (s *session) inspect(addr uint32, typeExpr string) (string, error) {
	typ, err := s.lookupType(typeExpr)
	if err != nil {
		return "", err
	}
	return s.printer.PrintNested(addr, typ), nil
}

// encodeArgs converts textual arguments to a core call's parameters.
func encodeArgs(types []api.ValueType, args []string) ([]uint64, error) {
	if len(args) != len(types) {
		return nil, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Detail("expected %d arguments, got %d", len(types), len(args)).
			Build()
	}

	out := make([]uint64, len(args))
	for i, arg := range args {
		path := []string{"arg" + strconv.Itoa(i)}
		arg = strings.TrimSpace(arg)
		switch types[i] {
		case api.ValueTypeI32:
			v, err := parseInt(arg, 32)
			if err != nil {
				return nil, errors.InvalidInput(errors.PhaseConfig, path, "not an i32: "+strconv.Quote(arg))
			}
			out[i] = api.EncodeU32(uint32(v))
		case api.ValueTypeI64:
			v, err := parseInt(arg, 64)
			if err != nil {
				return nil, errors.InvalidInput(errors.PhaseConfig, path, "not an i64: "+strconv.Quote(arg))
			}
			out[i] = v
		case api.ValueTypeF32:
			v, err := strconv.ParseFloat(arg, 32)
			if err != nil {
				return nil, errors.InvalidInput(errors.PhaseConfig, path, "not an f32: "+strconv.Quote(arg))
			}
			out[i] = api.EncodeF32(float32(v))
		case api.ValueTypeF64:
			v, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return nil, errors.InvalidInput(errors.PhaseConfig, path, "not an f64: "+strconv.Quote(arg))
			}
			out[i] = api.EncodeF64(v)
		default:
			return nil, errors.Unsupported(errors.PhaseConfig, path, "parameter type "+api.ValueTypeName(types[i]))
		}
	}
	return out, nil
}

// parseInt accepts signed and unsigned spellings of a bits wide integer
// and returns its two's complement bit pattern.
func parseInt(s string, bits int) (uint64, error) {
	if v, err := strconv.ParseInt(s, 0, bits); err == nil {
		return uint64(v), nil
	}
	return strconv.ParseUint(s, 0, bits)
}

// splitArgs splits a comma separated argument list.
func splitArgs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
