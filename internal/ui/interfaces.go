package ui

import "github.com/ryo246912/gh-comment-pace/internal/models"

// Prompter defines interface for user interaction
type Prompter interface {
	SelectPRs(prs []models.PullRequestInfo) ([]int, error)
	ConfirmSelection(numbers []int) (bool, error)
}

// DefaultPrompter implements the actual prompting logic
type DefaultPrompter struct{}

// SelectPRs prompts user to select one or more PRs
func (p *DefaultPrompter) SelectPRs(prs []models.PullRequestInfo) ([]int, error) {
	return SelectPRs(prs)
}

// ConfirmSelection prompts user to confirm selection
func (p *DefaultPrompter) ConfirmSelection(numbers []int) (bool, error) {
	return ConfirmSelection(numbers)
}

// MockPrompter for testing
type MockPrompter struct {
	SelectedPRNumbers []int
	PRSelectionError  error

	ConfirmedSelection bool
	ConfirmationError  error

	// Call tracking
	SelectPRsCalled        bool
	ConfirmSelectionCalled bool
	OfferedPRs             []models.PullRequestInfo
}

// SelectPRs mocks PR selection
func (m *MockPrompter) SelectPRs(prs []models.PullRequestInfo) ([]int, error) {
	m.SelectPRsCalled = true
	m.OfferedPRs = prs
	return m.SelectedPRNumbers, m.PRSelectionError
}

// ConfirmSelection mocks confirmation
func (m *MockPrompter) ConfirmSelection(numbers []int) (bool, error) {
	m.ConfirmSelectionCalled = true
	return m.ConfirmedSelection, m.ConfirmationError
}
