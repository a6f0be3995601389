package config

// Envyfile represents the structure of the envy.yaml configuration file.
// Every field is optional; zero values fall back to the defaults.
type Envyfile struct {
	Version     string         `yaml:"version"`
	Environment EnvironmentDTO `yaml:"environment"`
	Lock        LockDTO        `yaml:"lock"`
	Tools       ToolsDTO       `yaml:"tools"`
	Accelerator AcceleratorDTO `yaml:"accelerator"`
	Shell       string         `yaml:"shell"`
}

// EnvironmentDTO configures the isolated environment.
type EnvironmentDTO struct {
	Path   string `yaml:"path"`
	Python string `yaml:"python"`
}

// LockDTO configures the manifest and its compiled lock file.
type LockDTO struct {
	Manifest string `yaml:"manifest"`
	Output   string `yaml:"output"`
}

// ToolsDTO names the executables checked before a run.
type ToolsDTO struct {
	Interpreter string `yaml:"interpreter"`
	Resolver    string `yaml:"resolver"`
}

// AcceleratorDTO configures the hardware dependent install.
type AcceleratorDTO struct {
	Packages  []string `yaml:"packages"`
	IndexBase string   `yaml:"index_base"`
	IndexURL  string   `yaml:"index_url"`
	CUDAProbe string   `yaml:"cuda_probe"`
}
