package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row es una fila normalizada: etiqueta de columna -> valor en texto.
type Row map[string]string

// NormalizeFile convierte los bytes de un export de OTA en filas. El
// nombre de fichero decide el decodificador: .xlsx/.xls pasa por
// excelize, el resto se trata como texto delimitado.
func NormalizeFile(filename string, data []byte) ([]Row, error) {
	lower := strings.ToLower(filename)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xls") {
		return normalizeSpreadsheet(data)
	}
	return normalizeDelimited(data)
}

// normalizeDelimited trocea texto CSV. El delimitador (coma o punto y
// coma) se detecta línea a línea porque hay exports que los mezclan.
func normalizeDelimited(data []byte) ([]Row, error) {
	// El BOM inicial rompería la primera cabecera
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(text, "\n")

	var headers []string
	var rows []Row
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitDelimitedLine(line)
		if headers == nil {
			headers = fields
			continue
		}
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(fields) {
				row[h] = strings.TrimSpace(fields[i])
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}

	if headers == nil {
		return nil, fmt.Errorf("el fichero no contiene cabecera")
	}
	return rows, nil
}

// splitDelimitedLine tokeniza una línea respetando campos entrecomillados
// (comillas dobladas incluidas) y eligiendo como delimitador el carácter
// más frecuente fuera de comillas.
func splitDelimitedLine(line string) []string {
	delimiter := detectDelimiter(line)

	var fields []string
	var field strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				// comilla escapada por doblado
				field.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case r == delimiter && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteRune(r)
		}
	}
	fields = append(fields, field.String())
	return fields
}

func detectDelimiter(line string) rune {
	commas, semicolons := 0, 0
	inQuotes := false
	for _, r := range line {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				commas++
			}
		case ';':
			if !inQuotes {
				semicolons++
			}
		}
	}
	if semicolons > commas {
		return ';'
	}
	return ','
}

// normalizeSpreadsheet lee la primera hoja de un libro Excel. Las
// celdas vacías quedan como cadena vacía.
func normalizeSpreadsheet(data []byte) ([]Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("no se pudo abrir el fichero Excel: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("el fichero Excel no contiene hojas")
	}

	cells, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("no se pudieron leer las filas: %w", err)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("el fichero no contiene cabecera")
	}

	headers := cells[0]
	var rows []Row
	for _, line := range cells[1:] {
		row := make(Row, len(headers))
		empty := true
		for i, h := range headers {
			value := ""
			if i < len(line) {
				value = strings.TrimSpace(line[i])
			}
			row[h] = value
			if value != "" {
				empty = false
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows, nil
}
