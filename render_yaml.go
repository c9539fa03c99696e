package tabulate

import "gopkg.in/yaml.v3"

// yamlRenderer emits the table as a YAML sequence of mappings, sharing the
// record shape of the JSON renderer.
type yamlRenderer struct{}

func (yamlRenderer) render(w *Writer) error {
	enc := yaml.NewEncoder(w.out)
	enc.SetIndent(2)
	if err := enc.Encode(tableRecords(w)); err != nil {
		return err
	}
	return enc.Close()
}
