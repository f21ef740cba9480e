package federation

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/vektah/gqlparser/v2/ast"
)

var _ yaml.InterfaceUnmarshaler = (*ConfigVersion)(nil)

// Config is the federation metadata of a subgraph in YAML form.
//
//	version: "2.3"
//	linkNamespace: federation
//	types:
//	  Product:
//	    directives:
//	      - name: key
//	        arguments:
//	          - name: fields
//	            values: upc
//	    fields:
//	      name:
//	        directives:
//	          - name: tag
//	            arguments: [{ name: name, values: public }]
type Config struct {
	Version       ConfigVersion          `yaml:"version"`
	LinkNamespace string                 `yaml:"linkNamespace"`
	Types         map[string]*TypeConfig `yaml:"types"`
}

// ConfigVersion accepts both `version: 2` and `version: "2.3"`.
type ConfigVersion string

func (v *ConfigVersion) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	if raw == nil {
		*v = ""
		return nil
	}
	*v = ConfigVersion(fmt.Sprint(raw))
	return nil
}

type TypeConfig struct {
	Directives []*DirectiveConfig      `yaml:"directives"`
	Fields     map[string]*FieldConfig `yaml:"fields"`
}

type FieldConfig struct {
	Directives []*DirectiveConfig `yaml:"directives"`
}

type DirectiveConfig struct {
	Name      string            `yaml:"name"`
	Arguments []*ArgumentConfig `yaml:"arguments"`
}

type ArgumentConfig struct {
	Name   string      `yaml:"name"`
	Values interface{} `yaml:"values"`
}

func ParseConfig(b []byte) (*Config, error) {
	cfg := &Config{}
	err := yaml.Unmarshal(b, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse federation config: %w", err)
	}

	return cfg, nil
}

func (cfg *Config) context() *Context {
	return &Context{
		Version:       string(cfg.Version),
		LinkNamespace: cfg.LinkNamespace,
	}
}

func (cfg *Config) typeNames() []string {
	typeNames := make([]string, 0, len(cfg.Types))
	for typeName := range cfg.Types {
		typeNames = append(typeNames, typeName)
	}
	sort.Strings(typeNames)
	return typeNames
}

// entityTypeNames returns object types in doc that have key directive.
// interfaces may carry key too, but they can't be members of _Entity.
func (cfg *Config) entityTypeNames(doc *ast.SchemaDocument) []string {
	var entities []string
	for _, typeName := range cfg.typeNames() {
		typeCfg := cfg.Types[typeName]
		if typeCfg == nil {
			continue
		}
		if !isObjectType(doc, typeName) {
			continue
		}
		for _, directiveCfg := range typeCfg.Directives {
			if directiveCfg.Name == "key" {
				entities = append(entities, typeName)
				break
			}
		}
	}
	return entities
}

func isObjectType(doc *ast.SchemaDocument, name string) bool {
	if def := doc.Definitions.ForName(name); def != nil {
		return def.Kind == ast.Object
	}
	if def := doc.Extensions.ForName(name); def != nil {
		return def.Kind == ast.Object
	}
	return false
}

func (cfg *Config) buildMetadata(schema *ast.Schema) (*Metadata, error) {
	metadata := NewMetadata()

	for _, typeName := range cfg.typeNames() {
		typeCfg := cfg.Types[typeName]
		if typeCfg == nil {
			continue
		}

		for _, directiveCfg := range typeCfg.Directives {
			directive, err := directiveCfg.build()
			if err != nil {
				return nil, fmt.Errorf("%s: %w", typeName, err)
			}
			err = metadata.AddTypeDirective(schema, typeName, directive)
			if err != nil {
				return nil, err
			}
		}

		fieldNames := make([]string, 0, len(typeCfg.Fields))
		for fieldName := range typeCfg.Fields {
			fieldNames = append(fieldNames, fieldName)
		}
		sort.Strings(fieldNames)

		for _, fieldName := range fieldNames {
			fieldCfg := typeCfg.Fields[fieldName]
			if fieldCfg == nil {
				continue
			}
			for _, directiveCfg := range fieldCfg.Directives {
				directive, err := directiveCfg.build()
				if err != nil {
					return nil, fmt.Errorf("%s.%s: %w", typeName, fieldName, err)
				}
				err = metadata.AddFieldDirective(schema, typeName, fieldName, directive)
				if err != nil {
					return nil, err
				}
			}
		}
	}

	return metadata, nil
}

func (directiveCfg *DirectiveConfig) build() (*Directive, error) {
	if directiveCfg.Name == "" {
		return nil, fmt.Errorf("directive name is required")
	}

	directive := &Directive{
		Name:      directiveCfg.Name,
		Arguments: make([]*DirectiveArgument, 0, len(directiveCfg.Arguments)),
	}
	for _, argCfg := range directiveCfg.Arguments {
		value, err := toValue(argCfg.Values)
		if err != nil {
			return nil, fmt.Errorf("@%s(%s:): %w", directiveCfg.Name, argCfg.Name, err)
		}
		directive.Arguments = append(directive.Arguments, &DirectiveArgument{
			Name:   argCfg.Name,
			Values: value,
		})
	}

	return directive, nil
}

// toValue converts a decoded YAML value into a GraphQL literal.
func toValue(v interface{}) (*ast.Value, error) {
	switch v := v.(type) {
	case nil:
		return &ast.Value{Kind: ast.NullValue, Raw: "null"}, nil
	case string:
		return &ast.Value{Kind: ast.StringValue, Raw: v}, nil
	case bool:
		return &ast.Value{Kind: ast.BooleanValue, Raw: strconv.FormatBool(v)}, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return &ast.Value{Kind: ast.IntValue, Raw: fmt.Sprint(v)}, nil
	case float32:
		return &ast.Value{Kind: ast.FloatValue, Raw: strconv.FormatFloat(float64(v), 'g', -1, 32)}, nil
	case float64:
		return &ast.Value{Kind: ast.FloatValue, Raw: strconv.FormatFloat(v, 'g', -1, 64)}, nil
	case []interface{}:
		value := &ast.Value{Kind: ast.ListValue}
		for _, elem := range v {
			child, err := toValue(elem)
			if err != nil {
				return nil, err
			}
			value.Children = append(value.Children, &ast.ChildValue{Value: child})
		}
		return value, nil
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		return toObjectValue(keys, func(key string) interface{} { return v[key] })
	case map[interface{}]interface{}:
		keys := make([]string, 0, len(v))
		values := make(map[string]interface{}, len(v))
		for key, elem := range v {
			keyStr := fmt.Sprint(key)
			keys = append(keys, keyStr)
			values[keyStr] = elem
		}
		return toObjectValue(keys, func(key string) interface{} { return values[key] })
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

func toObjectValue(keys []string, get func(key string) interface{}) (*ast.Value, error) {
	sort.Strings(keys)

	value := &ast.Value{Kind: ast.ObjectValue}
	for _, key := range keys {
		child, err := toValue(get(key))
		if err != nil {
			return nil, err
		}
		value.Children = append(value.Children, &ast.ChildValue{Name: key, Value: child})
	}
	return value, nil
}
