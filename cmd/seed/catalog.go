package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// catalogRow una línea del catálogo: sku;name;description;category;unit;minimum_level;quantity
type catalogRow struct {
	Line         int
	SKU          string
	Name         string
	Description  string
	Category     string
	Unit         string
	MinimumLevel int
	Quantity     int
}

const catalogFields = 7

// lineError línea descartada del catálogo.
type lineError struct {
	Line int
	Err  error
}

func (e lineError) Error() string { return fmt.Sprintf("línea %d: %v", e.Line, e.Err) }

// readCatalog lee el CSV separado por ';'. Con latin1 decodifica ISO-8859-1 (exportaciones de Excel).
// Las líneas inválidas se devuelven aparte y no detienen la lectura.
func readCatalog(r io.Reader, latin1 bool) ([]catalogRow, []lineError, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []catalogRow
	var skipped []lineError
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				skipped = append(skipped, lineError{Line: line, Err: err})
				continue
			}
			return nil, nil, err
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "sku") {
			continue
		}
		row, err := parseCatalogRow(rec)
		if err != nil {
			skipped = append(skipped, lineError{Line: line, Err: err})
			continue
		}
		row.Line = line
		rows = append(rows, row)
	}
	return rows, skipped, nil
}

func parseCatalogRow(rec []string) (catalogRow, error) {
	if len(rec) != catalogFields {
		return catalogRow{}, fmt.Errorf("se esperaban %d campos, hay %d", catalogFields, len(rec))
	}
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	minimum, err := strconv.Atoi(rec[5])
	if err != nil {
		return catalogRow{}, fmt.Errorf("minimum_level no numérico: %q", rec[5])
	}
	qty, err := strconv.Atoi(rec[6])
	if err != nil {
		return catalogRow{}, fmt.Errorf("quantity no numérico: %q", rec[6])
	}
	return catalogRow{
		SKU:          rec[0],
		Name:         rec[1],
		Description:  rec[2],
		Category:     rec[3],
		Unit:         rec[4],
		MinimumLevel: minimum,
		Quantity:     qty,
	}, nil
}
