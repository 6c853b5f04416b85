package snapshot

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	readSourceErrorTemplateConstant  = "unable to read %s: %w"
	parseSourceErrorTemplateConstant = "unable to parse %s: %w"
	parseHeaderErrorTemplateConstant = "unable to parse header row: %w"
	variableFieldsPerRecordConstant  = -1
)

// FileSystem provides the file access used by Reader.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFileSystem reads files from the host operating system.
type OSFileSystem struct{}

// ReadFile reads the named file.
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Reader loads snapshot sources from a data directory.
type Reader struct {
	fileSystem FileSystem
}

// NewReader constructs a Reader. A nil file system falls back to the host file system.
func NewReader(fileSystem FileSystem) *Reader {
	if fileSystem == nil {
		fileSystem = OSFileSystem{}
	}
	return &Reader{fileSystem: fileSystem}
}

// Load reads every requested source from dataDirectory. When any file is
// missing the returned error is a MissingSourcesError naming all of them.
func (reader *Reader) Load(dataDirectory string, sources ...Source) (Tables, error) {
	tables := make(Tables, len(sources))
	var missingPaths []string

	for _, source := range sources {
		if validationError := source.validate(); validationError != nil {
			return nil, validationError
		}

		sourcePath := filepath.Join(dataDirectory, source.FileName())
		content, readError := reader.fileSystem.ReadFile(sourcePath)
		if readError != nil {
			if errors.Is(readError, fs.ErrNotExist) {
				missingPaths = append(missingPaths, sourcePath)
				continue
			}
			return nil, fmt.Errorf(readSourceErrorTemplateConstant, sourcePath, readError)
		}

		table, parseError := ParseTable(content)
		if parseError != nil {
			return nil, fmt.Errorf(parseSourceErrorTemplateConstant, sourcePath, parseError)
		}
		tables[source] = table
	}

	if len(missingPaths) > 0 {
		return nil, MissingSourcesError{Paths: missingPaths}
	}

	return tables, nil
}

// ParseTable decodes CSV content into rows keyed by the trimmed header names.
// Short rows omit the trailing columns; extra cells are ignored. Content
// without a header row yields an empty table.
func ParseTable(content []byte) (Table, error) {
	decodedReader := transform.NewReader(bytes.NewReader(content), unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	csvReader := csv.NewReader(decodedReader)
	csvReader.FieldsPerRecord = variableFieldsPerRecordConstant
	csvReader.LazyQuotes = true

	header, headerError := csvReader.Read()
	if headerError != nil {
		if errors.Is(headerError, io.EOF) {
			return Table{}, nil
		}
		return nil, fmt.Errorf(parseHeaderErrorTemplateConstant, headerError)
	}
	for columnIndex := range header {
		header[columnIndex] = strings.TrimSpace(header[columnIndex])
	}

	table := Table{}
	for {
		record, recordError := csvReader.Read()
		if errors.Is(recordError, io.EOF) {
			break
		}
		if recordError != nil {
			return nil, recordError
		}

		row := make(map[string]string, len(header))
		for columnIndex, columnName := range header {
			if columnIndex >= len(record) {
				break
			}
			if len(columnName) == 0 {
				continue
			}
			row[columnName] = record[columnIndex]
		}
		table = append(table, row)
	}

	return table, nil
}
