package services

import (
	_ "embed"
	"fmt"
	"sync"

	"procure-chat-api/pkg/models"

	"gopkg.in/yaml.v3"
)

//go:embed data/query_dataset.yaml
var queryDatasetYAML []byte

// QueryDataset is the fixed world the local assistant answers from.
type QueryDataset struct {
	Stores            []models.Store    `yaml:"stores"`
	Vendors           []models.Vendor   `yaml:"vendors"`
	HighPriorityTasks []models.Task     `yaml:"high_priority_tasks"`
	Contracts         []models.Contract `yaml:"contracts"`
}

var (
	datasetOnce sync.Once
	dataset     *QueryDataset
)

// ParseQueryDataset decodes a dataset document.
func ParseQueryDataset(data []byte) (*QueryDataset, error) {
	var ds QueryDataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("query dataset: %w", err)
	}
	return &ds, nil
}

// DefaultQueryDataset returns a copy of the embedded dataset. The embedded
// file is part of the binary, so a decode failure is a build defect and panics.
func DefaultQueryDataset() QueryDataset {
	datasetOnce.Do(func() {
		ds, err := ParseQueryDataset(queryDatasetYAML)
		if err != nil {
			panic(err)
		}
		dataset = ds
	})
	return dataset.clone()
}

func (d *QueryDataset) clone() QueryDataset {
	out := QueryDataset{
		Stores:            make([]models.Store, len(d.Stores)),
		Vendors:           append([]models.Vendor(nil), d.Vendors...),
		HighPriorityTasks: append([]models.Task(nil), d.HighPriorityTasks...),
		Contracts:         append([]models.Contract(nil), d.Contracts...),
	}
	for i, s := range d.Stores {
		s.Aliases = append([]string(nil), s.Aliases...)
		out.Stores[i] = s
	}
	return out
}

// StoreByID returns the store with id, if any.
func (d QueryDataset) StoreByID(id string) (models.Store, bool) {
	for _, s := range d.Stores {
		if s.ID == id {
			return s, true
		}
	}
	return models.Store{}, false
}

// VendorByID returns the vendor with id, if any.
func (d QueryDataset) VendorByID(id string) (models.Vendor, bool) {
	for _, v := range d.Vendors {
		if v.ID == id {
			return v, true
		}
	}
	return models.Vendor{}, false
}

// TasksWithStatus filters high priority tasks by status, keeping table order.
func (d QueryDataset) TasksWithStatus(status string) []models.Task {
	var tasks []models.Task
	for _, t := range d.HighPriorityTasks {
		if t.Status == status {
			tasks = append(tasks, t)
		}
	}
	return tasks
}
