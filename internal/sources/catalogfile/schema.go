package catalogfile

// File is the top-level structure of a catalog YAML document.
type File struct {
	Categories []CategoryProps `yaml:"categories"`
	Remedies   []RemedyProps   `yaml:"remedies"`
}

// CategoryProps mirrors one entry of the categories list.
type CategoryProps struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Icon        string `yaml:"icon,omitempty"`
	Color       string `yaml:"color,omitempty"`
	RemedyCount int    `yaml:"remedyCount"`
}

// RemedyProps mirrors one entry of the remedies list.
type RemedyProps struct {
	ID              string   `yaml:"id"`
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	Ingredients     []string `yaml:"ingredients"`
	Instructions    []string `yaml:"instructions"`
	PreparationTime string   `yaml:"preparationTime"`
	ReliefTime      string   `yaml:"reliefTime"`
	Precautions     []string `yaml:"precautions"`
	Category        string   `yaml:"category"`
	Difficulty      string   `yaml:"difficulty"`
	Effectiveness   int      `yaml:"effectiveness"`
}
