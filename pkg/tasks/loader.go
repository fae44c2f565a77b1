package tasks

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads and validates a single task file. A file may hold one task
// document or a list under a top-level "tasks" key.
func LoadFile(path string) ([]Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read task file %q: %w", path, err)
	}

	var multi struct {
		Tasks []Task `yaml:"tasks"`
	}
	if err := yaml.Unmarshal(data, &multi); err == nil && len(multi.Tasks) > 0 {
		return validateAll(path, multi.Tasks)
	}

	var single Task
	if err := yaml.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("failed to parse task file %q: %w", path, err)
	}
	return validateAll(path, []Task{single})
}

func validateAll(path string, list []Task) ([]Task, error) {
	for i := range list {
		if err := list[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid task in %q: %w", path, err)
		}
	}
	return list, nil
}

// LoadDir loads every .yaml/.yml task file under dir, sorted by path for a
// stable run order. Duplicate task names across files are an error.
func LoadDir(dir string) ([]Task, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if strings.HasPrefix(filepath.Base(path), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan task directory %q: %w", dir, err)
	}
	sort.Strings(files)

	var all []Task
	seen := make(map[string]string)
	for _, path := range files {
		list, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		for _, task := range list {
			if prev, dup := seen[task.Name]; dup {
				return nil, fmt.Errorf("duplicate task name %q in %q and %q", task.Name, prev, path)
			}
			seen[task.Name] = path
		}
		all = append(all, list...)
	}
	return all, nil
}
