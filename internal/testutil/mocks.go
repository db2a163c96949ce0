// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/taskbridge/taskbridge/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockTaskStore is a test double for domain.TaskStore.
type MockTaskStore struct {
	Tasks   map[string]*domain.Task
	LoadErr error
	IDsErr  error
}

// NewMockTaskStore creates a new MockTaskStore with an initialized map.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{Tasks: make(map[string]*domain.Task)}
}

// Load retrieves a task by id.
func (m *MockTaskStore) Load(id string) (*domain.Task, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	task, ok := m.Tasks[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, domain.ErrTaskNotFound)
	}
	return task, nil
}

// IDs returns the ids of all tasks, unsorted.
func (m *MockTaskStore) IDs() ([]string, error) {
	if m.IDsErr != nil {
		return nil, m.IDsErr
	}
	var ids []string
	for id := range m.Tasks {
		ids = append(ids, id)
	}
	return ids, nil
}

// MockReportStore is a test double for domain.ReportStore.
type MockReportStore struct {
	Reports map[string]*domain.Report
	LoadErr error
}

// NewMockReportStore creates a new MockReportStore with an initialized map.
func NewMockReportStore() *MockReportStore {
	return &MockReportStore{Reports: make(map[string]*domain.Report)}
}

// Load retrieves the report for a task id.
func (m *MockReportStore) Load(id string) (*domain.Report, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	report, ok := m.Reports[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, domain.ErrReportNotFound)
	}
	return report, nil
}

// IDs returns the ids of all reports, unsorted.
func (m *MockReportStore) IDs() ([]string, error) {
	var ids []string
	for id := range m.Reports {
		ids = append(ids, id)
	}
	return ids, nil
}

// MockLedgerStore is a test double for domain.LedgerStore.
// Fields are ordered to minimize memory padding.
type MockLedgerStore struct {
	Ledger  *domain.Ledger
	Saved   *domain.Ledger
	LoadErr error
	SaveErr error
	Saves   int
}

// NewMockLedgerStore creates a MockLedgerStore holding a fresh ledger.
func NewMockLedgerStore() *MockLedgerStore {
	return &MockLedgerStore{Ledger: domain.NewLedger()}
}

// Load returns the configured ledger.
func (m *MockLedgerStore) Load() (*domain.Ledger, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Ledger, nil
}

// Save records the saved ledger.
func (m *MockLedgerStore) Save(ledger *domain.Ledger) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saved = ledger
	m.Saves++
	return nil
}

// MockContractStore is a test double for domain.ContractStore.
type MockContractStore struct {
	Task      *domain.Contract
	Report    *domain.Contract
	TaskErr   error
	ReportErr error
}

// LoadTask returns the configured task contract.
func (m *MockContractStore) LoadTask() (*domain.Contract, error) {
	if m.TaskErr != nil {
		return nil, m.TaskErr
	}
	return m.Task, nil
}

// LoadReport returns the configured report contract.
func (m *MockContractStore) LoadReport() (*domain.Contract, error) {
	if m.ReportErr != nil {
		return nil, m.ReportErr
	}
	return m.Report, nil
}

// MockDocumentSource is a test double for domain.DocumentSource. Docs maps
// paths to decoded documents; ReadErrs maps paths to read failures.
type MockDocumentSource struct {
	FileList []string
	Docs     map[string]map[string]any
	ReadErrs map[string]error
	FilesErr error
}

// NewMockDocumentSource creates a new MockDocumentSource with initialized maps.
func NewMockDocumentSource() *MockDocumentSource {
	return &MockDocumentSource{
		Docs:     make(map[string]map[string]any),
		ReadErrs: make(map[string]error),
	}
}

// Files returns the configured file list.
func (m *MockDocumentSource) Files(_ string) ([]string, error) {
	if m.FilesErr != nil {
		return nil, m.FilesErr
	}
	return m.FileList, nil
}

// Read returns the configured document or error for the path.
func (m *MockDocumentSource) Read(path string) (map[string]any, error) {
	if err, ok := m.ReadErrs[path]; ok {
		return nil, err
	}
	doc, ok := m.Docs[path]
	if !ok {
		return nil, fmt.Errorf("read %s: no such document", path)
	}
	return doc, nil
}

// MockGit is a test double for domain.Git.
// Fields are ordered to minimize memory padding.
type MockGit struct {
	RemoteURLV   string
	RemoteURLErr error

	LocalExists     bool
	LocalExistsErr  error
	RemoteExists    bool
	RemoteExistsErr error

	CheckedOut    string
	CheckedOutNew bool
	CheckoutErr   error

	Dirty    bool
	DirtyErr error

	StagedAll bool
	StageErr  error

	CommitMsg string
	CommitErr error

	// PushErrs is consumed one per call; nil entries mean success.
	PushErrs   []error
	PushCalls  []bool // force flag per call
	PushBranch string
}

// RemoteURL returns the configured remote URL.
func (m *MockGit) RemoteURL(_ string) (string, error) {
	return m.RemoteURLV, m.RemoteURLErr
}

// LocalBranchExists reports the configured local existence.
func (m *MockGit) LocalBranchExists(_ string) (bool, error) {
	return m.LocalExists, m.LocalExistsErr
}

// RemoteBranchExists reports the configured remote existence.
func (m *MockGit) RemoteBranchExists(_ context.Context, _ string) (bool, error) {
	return m.RemoteExists, m.RemoteExistsErr
}

// Checkout records the branch and create flag.
func (m *MockGit) Checkout(branch string, create bool) error {
	if m.CheckoutErr != nil {
		return m.CheckoutErr
	}
	m.CheckedOut = branch
	m.CheckedOutNew = create
	return nil
}

// HasUncommittedChanges reports the configured dirtiness.
func (m *MockGit) HasUncommittedChanges() (bool, error) {
	return m.Dirty, m.DirtyErr
}

// StageAll records that staging happened.
func (m *MockGit) StageAll() error {
	if m.StageErr != nil {
		return m.StageErr
	}
	m.StagedAll = true
	return nil
}

// Commit records the commit message.
func (m *MockGit) Commit(message string) error {
	if m.CommitErr != nil {
		return m.CommitErr
	}
	m.CommitMsg = message
	return nil
}

// Push records each call's force flag and pops the next configured error.
func (m *MockGit) Push(_ context.Context, branch string, force bool) error {
	m.PushBranch = branch
	m.PushCalls = append(m.PushCalls, force)
	if len(m.PushErrs) > 0 {
		err := m.PushErrs[0]
		m.PushErrs = m.PushErrs[1:]
		return err
	}
	return nil
}

// MockForge is a test double for domain.Forge.
// Fields are ordered to minimize memory padding.
type MockForge struct {
	SearchResult []domain.Issue
	SearchErr    error

	CreatedIssue  *domain.NewIssue
	CreateRef     *domain.IssueRef
	CreateErr     error
	UpdatedNumber int
	UpdatedBody   string
	UpdateRef     *domain.IssueRef
	UpdateErr     error

	CreatedPRs []domain.NewPullRequest
	// PRErrs is consumed one per CreatePullRequest call.
	PRErrs []error
	PRRef  *domain.PullRef
}

// SearchIssues returns the configured issues.
func (m *MockForge) SearchIssues(_ context.Context, _, _ string) ([]domain.Issue, error) {
	return m.SearchResult, m.SearchErr
}

// CreateIssue records the new issue.
func (m *MockForge) CreateIssue(_ context.Context, _ string, in domain.NewIssue) (*domain.IssueRef, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	m.CreatedIssue = &in
	return m.CreateRef, nil
}

// UpdateIssueBody records the update.
func (m *MockForge) UpdateIssueBody(_ context.Context, _ string, number int, body string) (*domain.IssueRef, error) {
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	m.UpdatedNumber = number
	m.UpdatedBody = body
	return m.UpdateRef, nil
}

// CreatePullRequest records the request and pops the next configured error.
func (m *MockForge) CreatePullRequest(_ context.Context, _ string, in domain.NewPullRequest) (*domain.PullRef, error) {
	m.CreatedPRs = append(m.CreatedPRs, in)
	if len(m.PRErrs) > 0 {
		err := m.PRErrs[0]
		m.PRErrs = m.PRErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return m.PRRef, nil
}

// MockSessionProbe is a test double for domain.SessionProbe.
type MockSessionProbe struct {
	Err error
}

// Status returns the configured error.
func (m *MockSessionProbe) Status(_ context.Context) error {
	return m.Err
}

// MockAuthPrompter is a test double for domain.AuthPrompter.
type MockAuthPrompter struct {
	Choice    domain.AuthChoice
	ChoiceErr error
	Token     string
	TokenErr  error
	Chooses   int
}

// Choose returns the configured choice.
func (m *MockAuthPrompter) Choose() (domain.AuthChoice, error) {
	m.Chooses++
	return m.Choice, m.ChoiceErr
}

// ReadToken returns the configured token.
func (m *MockAuthPrompter) ReadToken() (string, error) {
	return m.Token, m.TokenErr
}

// MockTokenSink is a test double for domain.TokenSink.
type MockTokenSink struct {
	SavedToken string
	Err        error
}

// SaveToken records the token.
func (m *MockTokenSink) SaveToken(token string) error {
	if m.Err != nil {
		return m.Err
	}
	m.SavedToken = token
	return nil
}

// MockCommandExecutor is a test double for domain.CommandExecutor.
// Outputs and Errs are keyed by the space-joined program and args.
type MockCommandExecutor struct {
	Outputs map[string][]byte
	Errs    map[string]error
	Calls   []*domain.ExecCommand
}

// NewMockCommandExecutor creates a new MockCommandExecutor with initialized maps.
func NewMockCommandExecutor() *MockCommandExecutor {
	return &MockCommandExecutor{
		Outputs: make(map[string][]byte),
		Errs:    make(map[string]error),
	}
}

// Execute returns the configured output or error for the command line.
func (m *MockCommandExecutor) Execute(_ context.Context, cmd *domain.ExecCommand) ([]byte, error) {
	m.Calls = append(m.Calls, cmd)
	key := cmd.Program
	for _, a := range cmd.Args {
		key += " " + a
	}
	if err, ok := m.Errs[key]; ok {
		return nil, err
	}
	return m.Outputs[key], nil
}

// NopLogger is a domain.Logger that discards everything.
type NopLogger struct{}

// Debug discards the record.
func (NopLogger) Debug(string, ...any) {}

// Info discards the record.
func (NopLogger) Info(string, ...any) {}

// Warn discards the record.
func (NopLogger) Warn(string, ...any) {}

// Error discards the record.
func (NopLogger) Error(string, ...any) {}
