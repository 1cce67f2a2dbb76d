package dashboard

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cast"

	"github.com/yavemu/bookadmin/internal/config"
	"github.com/yavemu/bookadmin/internal/models"
	"github.com/yavemu/bookadmin/internal/schema"
)

// RenderPage writes one dashboard page: breadcrumbs, title, the entity
// table, and the pagination footer.
func RenderPage(w io.Writer, cfg *schema.EntityConfig, data []models.Record, meta *models.PaginationMeta) {
	if len(cfg.UI.Breadcrumbs) > 0 {
		fmt.Fprintln(w, strings.Join(cfg.UI.Breadcrumbs, " > "))
	}
	fmt.Fprintln(w, cfg.DisplayName)
	fmt.Fprintln(w)

	renderTable(w, schema.GetTableColumns(cfg.Fields), data)

	fmt.Fprintln(w)
	fmt.Fprintln(w, FooterText(meta, len(data)))
}

// renderTable writes the records as a table using the derived columns.
func renderTable(w io.Writer, columns []schema.TableColumn, data []models.Record) {
	if len(data) == 0 {
		fmt.Fprintln(w, "No hay registros para mostrar")
		return
	}

	headers := make([]string, len(columns))
	alignments := make([]int, len(columns))
	for i, col := range columns {
		headers[i] = col.Label
		alignments[i] = alignFor(col.Align)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetColumnAlignment(alignments)
	configureTable(table, columns)

	for _, row := range data {
		values := make([]string, len(columns))
		for i, col := range columns {
			values[i] = CellValue(col, row)
		}
		table.Append(values)
	}

	table.Render()
}

// CellValue projects one record attribute into its display string: the
// field's render hook when configured, otherwise the raw value, with "-"
// for absent or falsy values.
func CellValue(col schema.TableColumn, row models.Record) string {
	value := row[col.Key]
	if col.Render != nil {
		return col.Render(value, row)
	}
	if isFalsy(value) {
		return "-"
	}
	return cast.ToString(value)
}

// FooterText builds the "Mostrando X - Y de Z" pagination line.
func FooterText(meta *models.PaginationMeta, shown int) string {
	if meta == nil || meta.TotalItems == 0 || shown == 0 {
		return "Mostrando 0 - 0 de 0"
	}
	first := (meta.CurrentPage-1)*meta.ItemsPerPage + 1
	last := first + shown - 1
	return fmt.Sprintf("Mostrando %d - %d de %d", first, last, meta.TotalItems)
}

func isFalsy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return cast.ToFloat64(v) == 0
	default:
		return false
	}
}

func alignFor(a schema.Align) int {
	switch a {
	case schema.AlignCenter:
		return tablewriter.ALIGN_CENTER
	case schema.AlignRight:
		return tablewriter.ALIGN_RIGHT
	default:
		return tablewriter.ALIGN_LEFT
	}
}

func configureTable(table *tablewriter.Table, columns []schema.TableColumn) {
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)

	for i, col := range columns {
		if width := cast.ToInt(col.Width); width > 0 {
			table.SetColMinWidth(i, width)
		}
	}

	if config.Get().Format.Colors {
		table.SetHeaderColor(headerColors(len(columns))...)
	}
}

func headerColors(n int) []tablewriter.Colors {
	colors := make([]tablewriter.Colors, n)
	for i := range colors {
		colors[i] = tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiBlueColor}
	}
	return colors
}

// RenderRecord writes a single record as a vertical field/value table,
// honoring the entity's render hooks.
func RenderRecord(w io.Writer, cfg *schema.EntityConfig, record models.Record) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Campo", "Valor"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)

	for _, col := range schema.GetTableColumns(cfg.Fields) {
		table.Append([]string{col.Label, CellValue(col, record)})
	}

	table.Render()
}

// RenderError writes the error banner with the retry hints the dashboard
// offers after a failed fetch.
func RenderError(w io.Writer, cfg *schema.EntityConfig, err error) {
	msg := color.RedString("Error: %v", err)
	if !config.Get().Format.Colors {
		msg = fmt.Sprintf("Error: %v", err)
	}
	fmt.Fprintln(w, msg)
	fmt.Fprintf(w, "Reintentar: bookadmin %s list\n", cfg.Entity)
}
