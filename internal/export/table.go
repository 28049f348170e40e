package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/julianstephens/habitrackr/internal/constants"
	"github.com/julianstephens/habitrackr/internal/models"
)

const (
	trackingSheet = "Tracking"
	habitsSheet   = "Habits"
)

var (
	trackingHeader = []string{"Habit Name", "Date", "Completed"}
	habitsHeader   = []string{"Name", "Icon", "Category", "Goal Days", "Start Date", "Reminder", "Created"}
)

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// Rows flattens the tracking history into (habit name, date, Yes/No) rows.
// Entries whose habit no longer exists are skipped.
func Rows(doc Document) [][]string {
	names := make(map[string]string, len(doc.Habits))
	for _, h := range doc.Habits {
		names[h.ID] = h.Name
	}
	rows := make([][]string, 0, len(doc.Tracking))
	for _, e := range doc.Tracking {
		name, ok := names[e.HabitID]
		if !ok {
			continue
		}
		rows = append(rows, []string{name, e.Date, yesNo(e.Completed)})
	}
	return rows
}

// WriteCSV writes the tracking table with a header row
func WriteCSV(w io.Writer, doc Document) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(trackingHeader); err != nil {
		return err
	}
	if err := cw.WriteAll(Rows(doc)); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

type workbook struct {
	file  *excelize.File
	bold  int
	sheet string
	row   int
}

func newWorkbook() (*workbook, error) {
	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}
	return &workbook{file: f, bold: bold}, nil
}

// addSheet renames the default sheet on first use and creates new ones after
func (wb *workbook) addSheet(name string) error {
	if wb.sheet == "" {
		if err := wb.file.SetSheetName("Sheet1", name); err != nil {
			return err
		}
	} else if _, err := wb.file.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}
	wb.sheet = name
	wb.row = 1
	return nil
}

func (wb *workbook) writeRow(values []interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, wb.row)
		if err != nil {
			return err
		}
		if err := wb.file.SetCellValue(wb.sheet, cell, v); err != nil {
			return err
		}
	}
	wb.row++
	return nil
}

func (wb *workbook) writeHeader(columns []string) error {
	values := make([]interface{}, len(columns))
	for i, c := range columns {
		values[i] = c
	}
	if err := wb.writeRow(values); err != nil {
		return err
	}
	start, _ := excelize.CoordinatesToCellName(1, wb.row-1)
	end, _ := excelize.CoordinatesToCellName(len(columns), wb.row-1)
	return wb.file.SetCellStyle(wb.sheet, start, end, wb.bold)
}

func habitRow(h models.Habit) []interface{} {
	return []interface{}{
		h.Name,
		h.Icon,
		h.Category,
		h.GoalDays,
		h.StartDate,
		h.ReminderTime,
		h.CreatedAt.UTC().Format(constants.DateFormat),
	}
}

// WriteXLSX writes a workbook with a Tracking sheet holding the same rows as
// the CSV export and a Habits sheet listing the habit definitions
func WriteXLSX(w io.Writer, doc Document) error {
	wb, err := newWorkbook()
	if err != nil {
		return err
	}
	defer wb.file.Close()

	if err := wb.addSheet(trackingSheet); err != nil {
		return err
	}
	if err := wb.writeHeader(trackingHeader); err != nil {
		return err
	}
	for _, r := range Rows(doc) {
		if err := wb.writeRow([]interface{}{r[0], r[1], r[2]}); err != nil {
			return err
		}
	}

	if err := wb.addSheet(habitsSheet); err != nil {
		return err
	}
	if err := wb.writeHeader(habitsHeader); err != nil {
		return err
	}
	for _, h := range doc.Habits {
		if err := wb.writeRow(habitRow(h)); err != nil {
			return err
		}
	}

	return wb.file.Write(w)
}
