package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"fjacquet/expense-tracker/internal/fileutils"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"

	"github.com/gocarina/gocsv"
)

// csvRow is the exported shape of an expense. Column order follows the
// field order.
type csvRow struct {
	Amount      string `csv:"Amount"`
	Category    string `csv:"Category"`
	Description string `csv:"Description"`
	Date        string `csv:"Date"`
}

func toRows(expenses []models.Expense) []csvRow {
	rows := make([]csvRow, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, csvRow{
			Amount:      models.FormatAmount(e.Amount),
			Category:    e.Category,
			Description: e.Description,
			Date:        e.Date,
		})
	}
	return rows
}

// WriteCSV writes the header and one row per expense to w.
func WriteCSV(w io.Writer, expenses []models.Expense, delimiter rune) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter

	if err := gocsv.MarshalCSV(toRows(expenses), gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("error flushing CSV data: %w", err)
	}
	return nil
}

// ExportCSV writes expenses to a CSV file, creating parent directories.
func ExportCSV(path string, expenses []models.Expense, delimiter rune, logger logging.Logger) error {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	logger.Info("Exporting expenses to CSV file",
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldCount, len(expenses)),
		logging.F(logging.FieldDelimiter, string(delimiter)))

	file, err := fileutils.CreateFile(path)
	if err != nil {
		logger.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := WriteCSV(file, expenses, delimiter); err != nil {
		logger.WithError(err).Error("Failed to marshal expenses to CSV")
		return err
	}

	logger.Info("Successfully wrote expenses to CSV file",
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldCount, len(expenses)))
	return nil
}
