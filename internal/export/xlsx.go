// Package export renders a user's todo list as an xlsx workbook.
package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/eleven-am/tasknest/internal/store"
)

const sheet = "Sheet1"

// ContentType is the MIME type for the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Filename returns the download name for a user's export.
func Filename(username string) string {
	return fmt.Sprintf("todos_%s.xlsx", username)
}

// Write streams an xlsx workbook with one row per todo. Callers pass
// todos already ordered by descending position, matching the list view.
func Write(w io.Writer, todos []store.Todo) error {
	f := excelize.NewFile()
	defer f.Close()

	header := []interface{}{"Sno", "Title", "Description", "Priority", "Category", "Due Date", "Completed", "Created"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, t := range todos {
		dueDate := ""
		if t.DueDate != nil {
			dueDate = *t.DueDate
		}

		row := []interface{}{
			t.Sno, t.Title, t.Description, t.Priority, t.Category,
			dueDate, strconv.FormatBool(t.Completed),
			t.DateCreated.Format("2006-01-02 15:04:05"),
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row cell: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
