package main

import (
	"strings"

	"github.com/spf13/cobra"
)

// completeRepoKeys provides registry key completion for commands that take
// a repository argument.
func completeRepoKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	reg, _, err := loadRegistry()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var matches []string
	for _, key := range reg.Keys() {
		if strings.HasPrefix(key, toComplete) {
			matches = append(matches, key)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeRepoBranches provides branch completion for worktree commands.
// Worktree branches come from the repo named by -r, or the current repo.
func completeRepoBranches(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// Branch names are only knowable with a repo in hand; keep it simple
	// and fall back to no completion when resolution fails.
	reg, _, err := loadRegistry()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	repoFlag, _ := cmd.Flags().GetString("repository")
	rec, err := targetRepo(cmd.Context(), reg, repoFlag)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	infos, err := gitExec.Worktrees(cmd.Context(), rec.LocalPath)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var matches []string
	for _, wt := range infos {
		if wt.Branch != "" && strings.HasPrefix(wt.Branch, toComplete) {
			matches = append(matches, wt.Branch)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
