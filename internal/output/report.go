package output

import (
	"os"

	"github.com/rpgo/dca-calculator/internal/domain"
)

// AllFormats is the pseudo-format that writes every registered formatter.
const AllFormats = "all"

// Render formats a result with the named formatter or alias.
func Render(result *domain.SimulationResult, format string) ([]byte, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupported(format)
	}
	return f.Format(result)
}

// WriteReport renders a result into path.
func WriteReport(result *domain.SimulationResult, format, path string) error {
	data, err := Render(result, format)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GenerateReport writes timestamped report files into dir and returns their names.
// The format "all" writes one file per registered formatter.
func GenerateReport(result *domain.SimulationResult, format, dir string) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	if NormalizeFormatName(format) == AllFormats {
		var files []string
		for _, name := range AvailableFormatterNames() {
			f := GetFormatterByName(name)
			file, err := WriteFormatted(f, result, dir, name+"."+Extension(name))
			if err != nil {
				return files, err
			}
			files = append(files, file)
		}
		return files, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupported(format)
	}
	file, err := WriteFormatted(f, result, dir, Extension(f.Name()))
	if err != nil {
		return nil, err
	}
	return []string{file}, nil
}
