package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Catalog maps activity names to their calorie coefficients
// (kcal per kg of body weight per hour). Immutable after load.
type Catalog struct {
	coefficients map[string]float64
	names        []string
}

// Load reads the activity catalog from a JSON file of the form
// {"name": coefficient, ...}. The catalog is read once at startup.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read activities file: %w", err)
	}

	var coefficients map[string]float64
	if err := json.Unmarshal(data, &coefficients); err != nil {
		return nil, fmt.Errorf("failed to parse activities file: %w", err)
	}

	return New(coefficients)
}

// New builds a catalog from an in-memory mapping.
func New(coefficients map[string]float64) (*Catalog, error) {
	if len(coefficients) == 0 {
		return nil, fmt.Errorf("activity catalog is empty")
	}

	names := make([]string, 0, len(coefficients))
	for name := range coefficients {
		names = append(names, name)
	}
	sort.Strings(names)

	copied := make(map[string]float64, len(coefficients))
	for name, coeff := range coefficients {
		copied[name] = coeff
	}

	return &Catalog{coefficients: copied, names: names}, nil
}

// Coefficient returns the kcal/kg/hour coefficient for an activity.
func (c *Catalog) Coefficient(name string) (float64, bool) {
	coeff, ok := c.coefficients[name]
	return coeff, ok
}

// Names returns all activity names in stable sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// ButtonRows groups activity names into rows of three for reply keyboards.
func (c *Catalog) ButtonRows() [][]string {
	const perRow = 3
	var rows [][]string
	for i := 0; i < len(c.names); i += perRow {
		end := i + perRow
		if end > len(c.names) {
			end = len(c.names)
		}
		row := make([]string, end-i)
		copy(row, c.names[i:end])
		rows = append(rows, row)
	}
	return rows
}
