package compiler

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Parser is responsible for converting raw bytes into a MazeDefinition.
// It accepts YAML and, since JSON is a subset of it, JSON documents.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes the raw content into a MazeDefinition.
// Passage costs may be written as "unreachable" (or .inf) to declare impassable passages.
func (p *Parser) Parse(data []byte) (*domain.MazeDefinition, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse maze: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("failed to parse maze: empty document")
	}

	var def domain.MazeDefinition
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       costHook,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &def,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode maze: %w", err)
	}

	if def.Name == "" {
		return nil, fmt.Errorf("maze missing name")
	}
	return &def, nil
}

// costHook turns the spelled-out impassable markers into domain.Unreachable and
// rejects floating-point costs that do not map onto an int exactly.
func costHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Int {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "unreachable", "impassable", "inf", "infinity":
			return domain.Unreachable, nil
		}
	case float64:
		switch {
		case math.IsInf(v, 1):
			return domain.Unreachable, nil
		case math.IsNaN(v), v < math.MinInt, v >= math.MaxInt:
			return nil, fmt.Errorf("cost %v is out of range", v)
		case v != math.Trunc(v):
			return nil, fmt.Errorf("cost %v is not a whole number", v)
		}
		return int(v), nil
	}
	return data, nil
}
