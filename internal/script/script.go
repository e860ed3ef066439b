// Package script parses and runs YAML operation scripts against a hashset.Set.
//
// A script names its element kind, optionally overrides set sizing, and lists
// operations, one key per entry:
//
//	elements: int
//	set:
//	  bucket_count: 4
//	  load_factor_limit: 0.75
//	ops:
//	  - add: 1
//	  - contains: 1
//	  - remove: 1
//	  - rehash: 16
//	  - size: true
//	  - describe: true
//	  - expect: "[ 0, 16 |  ]"
package script

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Kind selects the element adapter a script runs with.
type Kind string

const (
	KindString Kind = "string"
	KindInt    Kind = "int"
)

// OpName enumerates script operations.
type OpName string

const (
	OpAdd      OpName = "add"
	OpRemove   OpName = "remove"
	OpContains OpName = "contains"
	OpRehash   OpName = "rehash"
	OpSize     OpName = "size"
	OpDescribe OpName = "describe"
	OpExpect   OpName = "expect"
)

var knownOps = map[OpName]bool{
	OpAdd: true, OpRemove: true, OpContains: true, OpRehash: true,
	OpSize: true, OpDescribe: true, OpExpect: true,
}

// SetOverrides replaces configured sizing for one script. Zero values keep the configured value.
type SetOverrides struct {
	BucketCount           int     `yaml:"bucket_count"`
	LoadFactorLimit       float64 `yaml:"load_factor_limit"`
	PreserveOrderOnRehash *bool   `yaml:"preserve_order_on_rehash"`
}

// Op is one scripted operation. Arg holds the raw scalar text.
type Op struct {
	Name OpName
	Arg  string
	Line int
}

// Script is a parsed operation script.
type Script struct {
	Elements Kind         `yaml:"elements"`
	Set      SetOverrides `yaml:"set"`
	Ops      []Op         `yaml:"-"`
}

type rawScript struct {
	Elements Kind         `yaml:"elements"`
	Set      SetOverrides `yaml:"set"`
	Ops      []yaml.Node  `yaml:"ops"`
}

// Parse decodes and validates a script document.
func Parse(data []byte) (*Script, error) {
	var raw rawScript
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}

	s := &Script{Elements: raw.Elements, Set: raw.Set}
	switch s.Elements {
	case "":
		s.Elements = KindString
	case KindString, KindInt:
	default:
		return nil, fmt.Errorf("unknown element kind %q (want %s or %s)", raw.Elements, KindString, KindInt)
	}
	if raw.Set.BucketCount < 0 {
		return nil, fmt.Errorf("set.bucket_count cannot be negative, got %d", raw.Set.BucketCount)
	}
	if raw.Set.LoadFactorLimit < 0 {
		return nil, fmt.Errorf("set.load_factor_limit cannot be negative, got %v", raw.Set.LoadFactorLimit)
	}

	for i := range raw.Ops {
		op, err := parseOp(&raw.Ops[i], s.Elements)
		if err != nil {
			return nil, fmt.Errorf("ops[%d]: %w", i, err)
		}
		s.Ops = append(s.Ops, op)
	}
	return s, nil
}

// ParseFile reads and parses the script at path.
func ParseFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func parseOp(n *yaml.Node, kind Kind) (Op, error) {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return Op{}, fmt.Errorf("line %d: each op must be a mapping with exactly one key", n.Line)
	}
	key, val := n.Content[0], n.Content[1]
	op := Op{Name: OpName(key.Value), Line: key.Line}
	if !knownOps[op.Name] {
		return Op{}, fmt.Errorf("line %d: unknown op %q", key.Line, key.Value)
	}
	if val.Kind != yaml.ScalarNode {
		return Op{}, fmt.Errorf("line %d: %s takes a scalar argument", key.Line, op.Name)
	}
	op.Arg = val.Value

	switch op.Name {
	case OpAdd, OpRemove, OpContains:
		if kind == KindInt {
			if _, err := strconv.Atoi(op.Arg); err != nil {
				return Op{}, fmt.Errorf("line %d: %s: %q is not an int", key.Line, op.Name, op.Arg)
			}
		}
	case OpRehash:
		if _, err := strconv.Atoi(op.Arg); err != nil {
			return Op{}, fmt.Errorf("line %d: rehash: %q is not a bucket count", key.Line, op.Arg)
		}
	}
	return op, nil
}
