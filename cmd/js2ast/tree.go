package main

import (
	"fmt"
	"io"
	"reflect"
)

// printTree dumps a syntax tree by walking its fields with reflection.
func printTree(w io.Writer, name string, node interface{}, indent string) {
	value := reflect.ValueOf(node)
	for value.Kind() == reflect.Ptr || value.Kind() == reflect.Interface {
		if value.IsNil() {
			fmt.Fprintf(w, "%s%s: nil\n", indent, name)
			return
		}
		value = value.Elem()
	}
	if !value.IsValid() {
		fmt.Fprintf(w, "%s%s: nil\n", indent, name)
		return
	}
	if value.Kind() != reflect.Struct {
		fmt.Fprintf(w, "%s%s: %v\n", indent, name, value.Interface())
		return
	}

	fmt.Fprintf(w, "%s%s: %s {\n", indent, name, value.Type().Name())

	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		fieldType := value.Type().Field(i)

		if field.Kind() == reflect.Slice {
			if field.IsNil() {
				fmt.Fprintf(w, "%s  %s: nil\n", indent, fieldType.Name)
				continue
			}
			fmt.Fprintf(w, "%s  %s: [\n", indent, fieldType.Name)
			for j := 0; j < field.Len(); j++ {
				printTree(w, fmt.Sprintf("[%d]", j), field.Index(j).Interface(), indent+"    ")
			}
			fmt.Fprintf(w, "%s  ]\n", indent)
		} else {
			printTree(w, fieldType.Name, field.Interface(), indent+"  ")
		}
	}

	fmt.Fprintf(w, "%s}\n", indent)
}
