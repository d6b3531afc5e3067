package database

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"gorm.io/gorm"
)

// ExportCSV dumps all rows of a model table into a CSV file, one column per
// database column, header line included.
func ExportCSV(db *gorm.DB, model any, fileName string) error {
	rows, err := db.Model(model).Rows()
	if err != nil {
		return fmt.Errorf("failed to query table rows: %s", err)
	}
	defer rows.Close()

	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("failed to create CSV file %s: %s", fileName, err)
	}

	err = writeRowsCSV(rows, file)
	if err != nil {
		file.Close()
		return err
	}

	return file.Close()
}

func writeRowsCSV(rows *sql.Rows, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)

	columnNames, err := rows.Columns()
	if err != nil {
		return err
	}

	err = csvWriter.Write(columnNames)
	if err != nil {
		return fmt.Errorf("failed to write CSV header: %s", err)
	}

	count := len(columnNames)
	values := make([]interface{}, count)
	valuePtrs := make([]interface{}, count)

	for rows.Next() {
		row := make([]string, count)

		for i := range columnNames {
			valuePtrs[i] = &values[i]
		}

		if err = rows.Scan(valuePtrs...); err != nil {
			return err
		}

		for i := range columnNames {
			value := values[i]

			if byteArray, ok := value.([]byte); ok {
				value = string(byteArray)
			}
			if timeValue, ok := value.(time.Time); ok {
				value = timeValue.Format(time.RFC3339)
			}

			if value == nil {
				row[i] = ""
			} else {
				row[i] = fmt.Sprintf("%v", value)
			}
		}

		err = csvWriter.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write data row to CSV: %s", err)
		}
	}
	err = rows.Err()
	csvWriter.Flush()

	return err
}
