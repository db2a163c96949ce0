// Package yamlstore provides the YAML document store for tasks, reports,
// contracts and the ledger.
package yamlstore

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/taskbridge/taskbridge/internal/domain"
)

const reportSuffix = ".report"

// TaskStore reads task documents from a directory of <id>.yaml files.
type TaskStore struct {
	dir string
}

// NewTaskStore creates a task store rooted at dir.
func NewTaskStore(dir string) *TaskStore {
	return &TaskStore{dir: dir}
}

// Ensure TaskStore implements domain.TaskStore interface.
var _ domain.TaskStore = (*TaskStore)(nil)

// Load retrieves a task by id.
func (s *TaskStore) Load(id string) (*domain.Task, error) {
	path := filepath.Join(s.dir, id+".yaml")
	data, err := os.ReadFile(path) // #nosec G304 - path is derived from a task id
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrTaskNotFound)
		}
		return nil, fmt.Errorf("read task %s: %w", id, err)
	}

	var task domain.Task
	if err := yaml.Unmarshal(data, &task); err != nil {
		return nil, fmt.Errorf("parse task %s: %w", id, err)
	}
	if task.ID == "" {
		task.ID = id
	}
	if task.Title == "" {
		task.Title = "Untitled"
	}
	return &task, nil
}

// IDs returns the task ids derived from filenames.
func (s *TaskStore) IDs() ([]string, error) {
	stems, err := yamlStems(s.dir)
	if err != nil {
		return nil, err
	}
	return stems, nil
}

// ReportStore reads report documents from a directory of
// <id>.report.yaml files.
type ReportStore struct {
	dir string
}

// NewReportStore creates a report store rooted at dir.
func NewReportStore(dir string) *ReportStore {
	return &ReportStore{dir: dir}
}

// Ensure ReportStore implements domain.ReportStore interface.
var _ domain.ReportStore = (*ReportStore)(nil)

// Load retrieves the report for a task id.
func (s *ReportStore) Load(id string) (*domain.Report, error) {
	path := filepath.Join(s.dir, id+reportSuffix+".yaml")
	data, err := os.ReadFile(path) // #nosec G304 - path is derived from a task id
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrReportNotFound)
		}
		return nil, fmt.Errorf("read report %s: %w", id, err)
	}

	var report domain.Report
	if err := yaml.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse report %s: %w", id, err)
	}
	return &report, nil
}

// IDs returns the report ids, with the .report suffix stripped.
func (s *ReportStore) IDs() ([]string, error) {
	stems, err := yamlStems(s.dir)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, stem := range stems {
		if strings.HasSuffix(stem, reportSuffix) {
			ids = append(ids, strings.TrimSuffix(stem, reportSuffix))
		}
	}
	return ids, nil
}

// LedgerFile loads and saves the ledger document as a whole.
type LedgerFile struct {
	path string
}

// NewLedgerFile creates a ledger store at path.
func NewLedgerFile(path string) *LedgerFile {
	return &LedgerFile{path: path}
}

// Ensure LedgerFile implements domain.LedgerStore interface.
var _ domain.LedgerStore = (*LedgerFile)(nil)

// Load returns the ledger. A missing file yields a fresh empty ledger; an
// unparsable file yields ErrLedgerUnparsable so the caller can degrade
// explicitly instead of silently losing state.
func (f *LedgerFile) Load() (*domain.Ledger, error) {
	data, err := os.ReadFile(f.path) // #nosec G304 - path comes from configuration
	if err != nil {
		if os.IsNotExist(err) {
			return domain.NewLedger(), nil
		}
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	var ledger domain.Ledger
	if err := yaml.Unmarshal(data, &ledger); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", f.path, domain.ErrLedgerUnparsable, err)
	}
	if ledger.Version == 0 {
		ledger.Version = domain.LedgerVersion
	}
	return &ledger, nil
}

// Save rewrites the whole ledger document. The write goes to a temporary
// file in the same directory followed by a rename, so readers never see a
// half-written ledger.
func (f *LedgerFile) Save(ledger *domain.Ledger) error {
	data, err := yaml.Marshal(ledger)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create ledger directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".ledger-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp ledger: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write ledger: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("chmod ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close ledger: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace ledger: %w", err)
	}
	return nil
}

// Contracts loads the task and report contract documents.
type Contracts struct {
	taskPath   string
	reportPath string
}

// NewContracts creates a contract store for the two contract paths.
func NewContracts(taskPath, reportPath string) *Contracts {
	return &Contracts{taskPath: taskPath, reportPath: reportPath}
}

// Ensure Contracts implements domain.ContractStore interface.
var _ domain.ContractStore = (*Contracts)(nil)

// LoadTask returns the task contract.
func (c *Contracts) LoadTask() (*domain.Contract, error) {
	return loadContract(c.taskPath)
}

// LoadReport returns the report contract.
func (c *Contracts) LoadReport() (*domain.Contract, error) {
	return loadContract(c.reportPath)
}

func loadContract(path string) (*domain.Contract, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path comes from configuration
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrContractNotFound)
		}
		return nil, fmt.Errorf("read contract %s: %w", path, err)
	}

	var contract domain.Contract
	if err := yaml.Unmarshal(data, &contract); err != nil {
		return nil, fmt.Errorf("parse contract %s: %w", path, err)
	}
	return &contract, nil
}

// Documents provides raw document access for batch validation.
type Documents struct{}

// NewDocuments creates a document source.
func NewDocuments() *Documents {
	return &Documents{}
}

// Ensure Documents implements domain.DocumentSource interface.
var _ domain.DocumentSource = (*Documents)(nil)

// Files lists the YAML files under path, recursively and sorted, or [path]
// when path is a single file.
func (Documents) Files(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(p, ".yaml") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", path, err)
	}
	sort.Strings(files)
	return files, nil
}

// Read decodes one document into a generic mapping. A document whose top
// level is not a mapping yields ErrNotMapping, distinct from a parse error.
func (Documents) Read(path string) (map[string]any, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path was enumerated by Files
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	mapping, ok := doc.(map[string]any)
	if !ok {
		return nil, domain.ErrNotMapping
	}
	return mapping, nil
}

// yamlStems returns the filename stems of all .yaml files under dir,
// sorted. A missing directory yields an empty set, matching the linkage
// validator's tolerance for absent stores.
func yamlStems(dir string) ([]string, error) {
	var stems []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(p, ".yaml") {
			stems = append(stems, strings.TrimSuffix(filepath.Base(p), ".yaml"))
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(stems)
	return stems, nil
}
