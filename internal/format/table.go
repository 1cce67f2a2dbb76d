package format

import (
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cast"
)

// TableFormatter handles table output formatting for arbitrary data (auth
// results, single records, raw responses). Entity pages use the
// column-config-aware renderer in the dashboard package instead.
type TableFormatter struct {
	useColors bool
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(useColors bool) *TableFormatter {
	return &TableFormatter{
		useColors: useColors,
	}
}

// Format formats data as a table
func (f *TableFormatter) Format(data interface{}) error {
	if data == nil {
		fmt.Println("No data to display")
		return nil
	}

	switch v := data.(type) {
	case []map[string]interface{}:
		return f.formatMapSlice(v)
	case map[string]interface{}:
		return f.formatSingleMap(v)
	case []interface{}:
		return f.formatInterfaceSlice(v)
	default:
		return f.formatReflection(data)
	}
}

// formatMapSlice formats a slice of maps as a table. Column order is the
// sorted key set of the first row, so output is deterministic.
func (f *TableFormatter) formatMapSlice(data []map[string]interface{}) error {
	if len(data) == 0 {
		fmt.Println("No data to display")
		return nil
	}

	keys := make([]string, 0, len(data[0]))
	for key := range data[0] {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	headers := make([]string, len(keys))
	for i, key := range keys {
		headers[i] = f.formatHeader(key)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(headers)
	f.configureTable(table)

	for _, row := range data {
		values := make([]string, len(keys))
		for i, key := range keys {
			if val, exists := row[key]; exists {
				values[i] = f.formatValue(val)
			}
		}
		table.Append(values)
	}

	table.Render()
	return nil
}

// formatSingleMap formats a single map as a vertical table
func (f *TableFormatter) formatSingleMap(data map[string]interface{}) error {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Campo", "Valor"})
	f.configureTable(table)

	for _, key := range keys {
		table.Append([]string{
			f.formatHeader(key),
			f.formatValue(data[key]),
		})
	}

	table.Render()
	return nil
}

// formatInterfaceSlice formats a slice of interfaces
func (f *TableFormatter) formatInterfaceSlice(data []interface{}) error {
	if len(data) == 0 {
		fmt.Println("No data to display")
		return nil
	}

	mapData := make([]map[string]interface{}, 0, len(data))
	for _, item := range data {
		if m, ok := item.(map[string]interface{}); ok {
			mapData = append(mapData, m)
		} else {
			return f.formatSimpleList(data)
		}
	}

	return f.formatMapSlice(mapData)
}

// formatSimpleList formats a simple list of values
func (f *TableFormatter) formatSimpleList(data []interface{}) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Valor"})
	f.configureTable(table)

	for _, item := range data {
		table.Append([]string{f.formatValue(item)})
	}

	table.Render()
	return nil
}

// formatReflection uses reflection to format unknown types
func (f *TableFormatter) formatReflection(data interface{}) error {
	v := reflect.ValueOf(data)
	t := reflect.TypeOf(data)

	if v.Kind() == reflect.Ptr {
		v = v.Elem()
		t = t.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		return f.formatStruct(v, t)
	case reflect.Slice:
		return f.formatSlice(v)
	default:
		fmt.Printf("%v\n", data)
		return nil
	}
}

// formatStruct formats a struct as a vertical table
func (f *TableFormatter) formatStruct(v reflect.Value, t reflect.Type) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Campo", "Valor"})
	f.configureTable(table)

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		value := v.Field(i)

		if field.IsExported() {
			table.Append([]string{
				f.formatHeader(field.Name),
				f.formatValue(value.Interface()),
			})
		}
	}

	table.Render()
	return nil
}

// formatSlice formats a slice using reflection
func (f *TableFormatter) formatSlice(v reflect.Value) error {
	if v.Len() == 0 {
		fmt.Println("No data to display")
		return nil
	}

	data := make([]interface{}, v.Len())
	for i := 0; i < v.Len(); i++ {
		data[i] = v.Index(i).Interface()
	}

	return f.formatInterfaceSlice(data)
}

// configureTable sets up table appearance
func (f *TableFormatter) configureTable(table *tablewriter.Table) {
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)

	if f.useColors {
		table.SetHeaderColor(
			tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiBlueColor},
		)
	}
}

// formatHeader converts a camelCase or snake_case key to Title Case.
func (f *TableFormatter) formatHeader(header string) string {
	words := strings.Split(splitCamelCase(header), "_")
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

// splitCamelCase inserts underscores before interior capitals so camelCase
// keys split like snake_case ones.
func splitCamelCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// formatValue formats a value for display
func (f *TableFormatter) formatValue(value interface{}) string {
	if value == nil {
		return "-"
	}

	switch v := value.(type) {
	case bool:
		if f.useColors {
			if v {
				return color.GreenString("true")
			}
			return color.RedString("false")
		}
		return cast.ToString(v)
	case float32, float64:
		return fmt.Sprintf("%.2f", v)
	default:
		return cast.ToString(value)
	}
}
