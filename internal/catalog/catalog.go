// Package catalog loads the name lists a hackathon run draws from: products
// and customers for idea names, and the package catalog.
package catalog

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/dyluth/hackathon/internal/config"
)

// Lists holds the loaded names in file order.
type Lists struct {
	Products  []string
	Customers []string
	Packages  []string
}

// LoadLines reads one name per line, trimming whitespace and skipping blank
// lines. A file with no names is an error.
func LoadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("%s contains no names", path)
	}
	return names, nil
}

// Load reads all three lists described by data.
func Load(data config.Data) (*Lists, error) {
	products, err := LoadLines(data.ProductsPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	customers, err := LoadLines(data.CustomersPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}

	packages, err := LoadLines(data.PackagesPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	return &Lists{
		Products:  products,
		Customers: customers,
		Packages:  packages,
	}, nil
}
