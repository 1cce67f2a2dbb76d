package format

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/spf13/cast"
)

// TextFormatter handles simple text output formatting
type TextFormatter struct{}

// NewTextFormatter creates a new text formatter
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format formats data as simple text
func (f *TextFormatter) Format(data interface{}) error {
	if data == nil {
		fmt.Println("No data")
		return nil
	}

	switch v := data.(type) {
	case []map[string]interface{}:
		return f.formatMapSlice(v)
	case map[string]interface{}:
		return f.formatSingleMap(v)
	case []interface{}:
		return f.formatInterfaceSlice(v)
	case string:
		fmt.Println(v)
		return nil
	default:
		return f.formatReflection(data)
	}
}

// formatMapSlice formats a slice of maps as text
func (f *TextFormatter) formatMapSlice(data []map[string]interface{}) error {
	if len(data) == 0 {
		fmt.Println("No data")
		return nil
	}

	for i, item := range data {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("Item %d:\n", i+1)
		for _, key := range sortedKeys(item) {
			fmt.Printf("  %s: %v\n", key, f.formatValue(item[key]))
		}
	}

	return nil
}

// formatSingleMap formats a single map as text
func (f *TextFormatter) formatSingleMap(data map[string]interface{}) error {
	for _, key := range sortedKeys(data) {
		fmt.Printf("%s: %v\n", key, f.formatValue(data[key]))
	}
	return nil
}

// formatInterfaceSlice formats a slice of interfaces as text
func (f *TextFormatter) formatInterfaceSlice(data []interface{}) error {
	if len(data) == 0 {
		fmt.Println("No data")
		return nil
	}

	for i, item := range data {
		if m, ok := item.(map[string]interface{}); ok {
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("Item %d:\n", i+1)
			for _, key := range sortedKeys(m) {
				fmt.Printf("  %s: %v\n", key, f.formatValue(m[key]))
			}
		} else {
			fmt.Printf("%v\n", f.formatValue(item))
		}
	}

	return nil
}

// formatReflection uses reflection to format unknown types
func (f *TextFormatter) formatReflection(data interface{}) error {
	v := reflect.ValueOf(data)
	t := reflect.TypeOf(data)

	if v.Kind() == reflect.Ptr {
		v = v.Elem()
		t = t.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			field := t.Field(i)
			if field.IsExported() {
				fmt.Printf("%s: %v\n", field.Name, f.formatValue(v.Field(i).Interface()))
			}
		}
		return nil
	case reflect.Slice:
		if v.Len() == 0 {
			fmt.Println("No data")
			return nil
		}
		items := make([]interface{}, v.Len())
		for i := 0; i < v.Len(); i++ {
			items[i] = v.Index(i).Interface()
		}
		return f.formatInterfaceSlice(items)
	default:
		fmt.Printf("%v\n", data)
		return nil
	}
}

// formatValue formats a value for display
func (f *TextFormatter) formatValue(value interface{}) string {
	if value == nil {
		return "-"
	}
	return cast.ToString(value)
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
