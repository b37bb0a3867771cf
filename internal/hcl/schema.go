package hcl

// fileRoot decodes the top-level blocks of one file.
type fileRoot struct {
	Package  *packageBlock  `hcl:"package,block"`
	Settings *settingsBlock `hcl:"settings,block"`
	Targets  []*targetBlock `hcl:"target,block"`
}

type packageBlock struct {
	Name        string        `hcl:"name,label"`
	Description string        `hcl:"description,optional"`
	Author      string        `hcl:"author,optional"`
	Version     *versionBlock `hcl:"version,block"`
}

type versionBlock struct {
	Major int    `hcl:"major,optional"`
	Minor int    `hcl:"minor,optional"`
	Patch int    `hcl:"patch,optional"`
	Label string `hcl:"label,optional"`
}

type settingsBlock struct {
	Home     string `hcl:"home,optional"`
	Output   string `hcl:"output,optional"`
	Compiler string `hcl:"compiler,optional"`
}

type targetBlock struct {
	Name    string   `hcl:"name,label"`
	Library bool     `hcl:"library,optional"`
	Sources []string `hcl:"sources"`
	Include []string `hcl:"include,optional"`
}
