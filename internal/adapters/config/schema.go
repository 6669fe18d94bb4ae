package config

// Bundlefile represents the structure of the bundles.yaml configuration file.
type Bundlefile struct {
	Version  string                `yaml:"version"`
	Root     string                `yaml:"root"`
	Listen   string                `yaml:"listen"`
	Admin    string                `yaml:"admin"`
	Debounce string                `yaml:"debounce"`
	Warm     bool                  `yaml:"warm"`
	Less     *LessDTO              `yaml:"less"`
	Bundles  map[string]*BundleDTO `yaml:"bundles"`
}

// LessDTO holds the style compiler settings.
type LessDTO struct {
	Math              string            `yaml:"math"`
	StrictUnits       bool              `yaml:"strictUnits"`
	DumpLineNumbers   string            `yaml:"dumpLineNumbers"`
	JavascriptEnabled *bool             `yaml:"javascriptEnabled"`
	GlobalVars        map[string]string `yaml:"globalVars"`
	ModifyVars        map[string]string `yaml:"modifyVars"`
	ImportScope       string            `yaml:"importScope"`
}

// BundleDTO represents a bundle definition in the configuration.
type BundleDTO struct {
	URLPath       string   `yaml:"urlPath"`
	SourceFiles   []string `yaml:"sourceFiles"`
	CacheDuration string   `yaml:"cacheDuration"`
	Minify        bool     `yaml:"minify"`
	IsStyleBundle *bool    `yaml:"isStyleBundle"`
}
