package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Queue backends
const (
	QueueMemory = "memory"
	QueueRedis  = "redis"
)

// Default run sizes
const (
	DefaultIdeas            = 80
	DefaultIdeaProducers    = 2
	DefaultPackages         = 4000
	DefaultPackageProducers = 6
	DefaultStudents         = 6
)

// RunConfig represents the top-level hackathon.yml configuration
type RunConfig struct {
	Ideas            int    `yaml:"ideas"`
	IdeaProducers    int    `yaml:"idea_producers"`
	Packages         int    `yaml:"packages"`
	PackageProducers int    `yaml:"package_producers"`
	Students         int    `yaml:"students"`
	Queue            string `yaml:"queue,omitempty"`     // "memory" (default) or "redis"
	RedisURL         string `yaml:"redis_url,omitempty"` // Required when queue is "redis"
	RunID            string `yaml:"run_id,omitempty"`    // Namespaces Redis keys; generated when empty
	Data             Data   `yaml:"data,omitempty"`
}

// Data locates the name lists a run draws from
type Data struct {
	Dir           string `yaml:"dir,omitempty"` // Base directory for relative paths
	ProductsFile  string `yaml:"products,omitempty"`
	CustomersFile string `yaml:"customers,omitempty"`
	PackagesFile  string `yaml:"packages,omitempty"`
}

// Default returns the configuration used when nothing is specified
func Default() *RunConfig {
	return &RunConfig{
		Ideas:            DefaultIdeas,
		IdeaProducers:    DefaultIdeaProducers,
		Packages:         DefaultPackages,
		PackageProducers: DefaultPackageProducers,
		Students:         DefaultStudents,
		Queue:            QueueMemory,
		Data: Data{
			Dir:           "data",
			ProductsFile:  "ideas-products.txt",
			CustomersFile: "ideas-customers.txt",
			PackagesFile:  "packages.txt",
		},
	}
}

// ValidateCounts checks the five run sizes and how they relate to each other
func (c *RunConfig) ValidateCounts() error {
	counts := []struct {
		name  string
		value int
	}{
		{"ideas", c.Ideas},
		{"idea_producers", c.IdeaProducers},
		{"packages", c.Packages},
		{"package_producers", c.PackageProducers},
		{"students", c.Students},
	}
	for _, n := range counts {
		if n.value < 1 {
			return fmt.Errorf("%s must be >= 1, got %d", n.name, n.value)
		}
	}

	// Every idea producer needs at least one idea to carry its share of packages
	if c.Ideas < c.IdeaProducers {
		return fmt.Errorf("ideas (%d) must be >= idea_producers (%d)", c.Ideas, c.IdeaProducers)
	}

	// Every idea producer must own a WorkDone sentinel. A producer without one
	// can let the only students exit before its ideas are sent.
	if c.Students < c.IdeaProducers {
		return fmt.Errorf("students (%d) must be >= idea_producers (%d)", c.Students, c.IdeaProducers)
	}

	return nil
}

// Validate performs strict validation on the configuration
func (c *RunConfig) Validate() error {
	if err := c.ValidateCounts(); err != nil {
		return err
	}

	switch c.Queue {
	case QueueMemory:
	case QueueRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("redis_url is required when queue is '%s'", QueueRedis)
		}
	default:
		return fmt.Errorf("invalid queue: %s (must be '%s' or '%s')", c.Queue, QueueMemory, QueueRedis)
	}

	if c.Data.ProductsFile == "" || c.Data.CustomersFile == "" || c.Data.PackagesFile == "" {
		return fmt.Errorf("data files for products, customers and packages are required")
	}

	return nil
}

// ProductsPath returns the products file resolved against Dir
func (d Data) ProductsPath() string { return d.resolve(d.ProductsFile) }

// CustomersPath returns the customers file resolved against Dir
func (d Data) CustomersPath() string { return d.resolve(d.CustomersFile) }

// PackagesPath returns the packages file resolved against Dir
func (d Data) PackagesPath() string { return d.resolve(d.PackagesFile) }

func (d Data) resolve(file string) string {
	if filepath.IsAbs(file) || d.Dir == "" {
		return file
	}
	return filepath.Join(d.Dir, file)
}

// Load reads hackathon.yml from the specified path on top of the defaults and
// validates the result
func Load(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}
