package gpf

import (
	"fmt"
	"reflect"
	"strconv"
)

// injectParameters is the Parameter Injector collaborator from spec.md
// §4.4: if nc's configuration is nil, it is a no-op and the operator
// keeps its defaults. Otherwise, if the operator declares a custom
// ParameterConverter via its Capabilities (the custom-parameter-conversion
// capability), that converter is used; any error from it is wrapped as a
// [ParameterInjectionFailedError]. Otherwise the default, schema-driven
// converter applies.
func injectParameters(nc *NodeContext, op Operator) error {
	config := nc.Node.Configuration
	if config == nil {
		return nil
	}

	if converter := op.Capabilities().ParameterConverter; converter != nil {
		if err := converter.SetParameterValues(op, config); err != nil {
			return &ParameterInjectionFailedError{NodeID: nc.Node.ID, Cause: err}
		}
		return nil
	}

	if err := defaultConvertParameters(op, config); err != nil {
		return &ParameterInjectionFailedError{NodeID: nc.Node.ID, Cause: err}
	}
	return nil
}

// defaultConvertParameters binds config's children onto op's exported
// fields by name: a child named "Gain" sets the field Gain (or a field
// tagged `gpf:"Gain"`), converting the child's string Value to the
// field's declared type. op must be a pointer to a struct; this is the
// operator's "declared parameter schema" per spec.md §4.4.
func defaultConvertParameters(op Operator, config *ConfigElement) error {
	v := reflect.ValueOf(op)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("gpf: default parameter converter requires a pointer to a struct, got %T", op)
	}
	elem := v.Elem()
	fieldByParamName := make(map[string]int, elem.NumField())
	t := elem.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := f.Name
		if tag, ok := f.Tag.Lookup("gpf"); ok && tag != "" {
			name = tag
		}
		fieldByParamName[name] = i
	}

	for _, child := range config.Children {
		idx, ok := fieldByParamName[child.Name]
		if !ok {
			continue
		}
		field := elem.Field(idx)
		if !field.CanSet() {
			continue
		}
		if err := setFieldFromString(field, child.Value); err != nil {
			return fmt.Errorf("gpf: parameter %q: %w", child.Name, err)
		}
	}
	return nil
}

func setFieldFromString(field reflect.Value, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		field.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported parameter field kind %s", field.Kind())
	}
	return nil
}
