package ui

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-runewidth"
	"github.com/ryo246912/gh-comment-pace/internal/models"
)

const doneItem = "Done"

// FormatPRItem renders one line of the PR picker
func FormatPRItem(pr models.PullRequestInfo) string {
	state := pr.State
	if pr.Draft {
		state += " (Draft)"
	}
	title := runewidth.Truncate(pr.Title, 75, "...")
	return fmt.Sprintf(
		"#%s %s %s %s %s",
		PadRight(fmt.Sprintf("%-6d", pr.Number), 7),
		PadRight(title, 75),
		PadRight(pr.User, 15),
		PadRight(state, 10),
		PadRight(pr.UpdatedAt, 20),
	)
}

// SelectPRs lets the user pick PRs one at a time until "Done" is chosen
func SelectPRs(prs []models.PullRequestInfo) ([]int, error) {
	if len(prs) == 0 {
		return nil, fmt.Errorf("no commented pull requests found")
	}

	remaining := append([]models.PullRequestInfo(nil), prs...)
	var selected []int
	for len(remaining) > 0 {
		items := make([]string, 0, len(remaining)+1)
		if len(selected) > 0 {
			items = append(items, doneItem)
		}
		for _, pr := range remaining {
			items = append(items, FormatPRItem(pr))
		}

		prompt := promptui.Select{
			Label: fmt.Sprintf("Select PR (%d selected)", len(selected)),
			Items: items,
			Size:  12,
			Searcher: func(input string, index int) bool {
				return strings.Contains(strings.ToLower(items[index]), strings.ToLower(input))
			},
		}

		idx, item, err := prompt.Run()
		if err != nil {
			return nil, fmt.Errorf("prompt failed: %w", err)
		}
		if item == doneItem && len(selected) > 0 {
			break
		}
		if len(selected) > 0 {
			idx--
		}
		selected = append(selected, remaining[idx].Number)
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return selected, nil
}

// ConfirmSelection asks for user confirmation
func ConfirmSelection(numbers []int) (bool, error) {
	labels := make([]string, len(numbers))
	for i, n := range numbers {
		labels[i] = fmt.Sprintf("#%d", n)
	}

	var confirm string
	for {
		fmt.Printf("You selected: %s. Is this correct? (y/n): ", strings.Join(labels, ", "))
		if _, err := fmt.Scan(&confirm); err != nil {
			return false, fmt.Errorf("failed to read confirmation: %w", err)
		}
		switch strings.ToLower(confirm) {
		case "yes", "y":
			return true, nil
		case "no", "n":
			return false, nil
		default:
			fmt.Println("Please enter 'y' or 'n'.")
		}
	}
}
