package scene

// Manifest returns the ids of every resource the project depends on: the
// tileset followed by each "file" field of every event, in project order.
// Duplicates are kept. File fields whose data isn't a string name no
// resource and are left out.
func Manifest(p *Project) []string {
	files := []string{p.Tileset}
	for _, e := range p.AllEvents() {
		for _, f := range e.Fields {
			if f.Type != FieldFile {
				continue
			}
			if v, ok := f.Value.(FileValue); ok {
				files = append(files, string(v))
			}
		}
	}
	return files
}
