package models

// Summary is the catalog entry of one registered diagram.
type Summary struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// Catalog is the authored landing page grouping table.
type Catalog struct {
	Groups []CatalogGroup `json:"groups" yaml:"groups"`
}

type CatalogGroup struct {
	Name     string   `json:"name" yaml:"name"`
	Image    string   `json:"image,omitempty" yaml:"image,omitempty"`
	Diagrams []string `json:"diagrams" yaml:"diagrams"`
}

// Section is a catalog group resolved against the registry.
type Section struct {
	Name    string    `json:"name"`
	Image   string    `json:"image,omitempty"`
	Entries []Summary `json:"entries"`
}
