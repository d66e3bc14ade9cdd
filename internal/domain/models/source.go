package models

import "sort"

// SourceRegistry сопоставляет короткое имя источника с идентификатором у провайдера.
type SourceRegistry map[string]string

func DefaultSourceRegistry() SourceRegistry {
	return SourceRegistry{
		"bloomberg":  "bloomberg",
		"kommersant": "kommersant",
		"reuters":    "reuters",
		"bbc":        "bbc-news",
	}
}

func (r SourceRegistry) ProviderID(name string) (string, bool) {
	id, ok := r[name]
	return id, ok
}

func (r SourceRegistry) Has(name string) bool {
	_, ok := r[name]
	return ok
}

func (r SourceRegistry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
