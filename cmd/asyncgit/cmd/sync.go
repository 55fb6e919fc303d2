// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gizzahub/asyncgit/internal/asyncjob"
	"github.com/gizzahub/asyncgit/internal/gitadapt"
	"github.com/gizzahub/asyncgit/internal/syncops"
)

var (
	remoteFlag    string
	branchFlag    string
	basicUserFlag string
	basicPassFlag string
	skipHooksFlag bool
)

func init() {
	for _, c := range []*cobra.Command{fetchCmd, pushCmd, pushTagsCmd} {
		c.Flags().StringVar(&remoteFlag, "remote", "origin", "remote name")
		c.Flags().StringVar(&basicUserFlag, "user", "", "basic-auth username (env GIT_ASYNCGIT_USER)")
		c.Flags().StringVar(&basicPassFlag, "password", "", "basic-auth password (env GIT_ASYNCGIT_PASSWORD)")
	}
	pushCmd.Flags().StringVar(&branchFlag, "branch", "", "branch to push (defaults to the current branch)")
	pushCmd.Flags().BoolVar(&skipHooksFlag, "no-verify", false, "skip the pre-push hook")
	pushTagsCmd.Flags().BoolVar(&skipHooksFlag, "no-verify", false, "skip the pre-push hook")

	rootCmd.AddCommand(fetchCmd, pushCmd, pushTagsCmd)
}

func openRepoForSync() (*gitadapt.Repository, error) {
	openPath := directoryFlag
	if workdirFlag != "" {
		openPath = workdirFlag
	}
	repo, err := gitadapt.Open(openPath)
	if err != nil {
		return nil, fmt.Errorf("open repository at %q: %w", openPath, err)
	}
	return repo, nil
}

func syncCredentials() asyncjob.Credentials {
	user := basicUserFlag
	if user == "" {
		user = os.Getenv("GIT_ASYNCGIT_USER")
	}
	pass := basicPassFlag
	if pass == "" {
		pass = os.Getenv("GIT_ASYNCGIT_PASSWORD")
	}
	if user == "" && pass == "" {
		return asyncjob.Credentials{}
	}
	return asyncjob.NewCredentials(&asyncjob.BasicAuth{Username: user, Password: pass}, nil)
}

// drainRelay prints the last progress line the transport reported, if any.
// The relay has already been joined by the time Fetch/Push return, so only
// its final slot value is left to print.
func drainRelay(relay *asyncjob.Relay[string]) {
	if relay == nil {
		return
	}
	if line, ok := relay.Slot.Load(); ok {
		fmt.Fprint(os.Stderr, line)
	}
}

// fetchCmd runs Fetch directly against the opened repository (spec §1
// PURPOSE: fetch is part of the async façade this module provides, not
// left to an external `git fetch` invocation).
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch refs from a remote",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepoForSync()
		if err != nil {
			return err
		}
		bus := asyncjob.NewBus()
		relay, err := syncops.Fetch(repo, bus, syncops.Options{Remote: remoteFlag, Credentials: syncCredentials()})
		drainRelay(relay)
		if err != nil {
			return err
		}
		fmt.Printf("fetched from %s\n", remoteFlag)
		return nil
	},
}

// pushCmd runs the pre-push hook (spec §6) and, unless rejected, pushes
// the current branch.
var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Run the pre-push hook and push the current branch",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepoForSync()
		if err != nil {
			return err
		}
		bus := asyncjob.NewBus()
		relay, err := syncops.Push(cmd.Context(), repo, bus, syncops.Options{
			Remote:      remoteFlag,
			Branch:      branchFlag,
			Credentials: syncCredentials(),
			SkipHooks:   skipHooksFlag,
		})
		drainRelay(relay)
		if err != nil {
			return err
		}
		fmt.Printf("pushed to %s\n", remoteFlag)
		return nil
	},
}

// pushTagsCmd uploads every local tag (spec §4.I "tag push").
var pushTagsCmd = &cobra.Command{
	Use:   "push-tags",
	Short: "Run the pre-push hook and push every local tag",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepoForSync()
		if err != nil {
			return err
		}
		bus := asyncjob.NewBus()
		relay, err := syncops.PushTags(cmd.Context(), repo, bus, syncops.Options{
			Remote:      remoteFlag,
			Credentials: syncCredentials(),
			SkipHooks:   skipHooksFlag,
		})
		drainRelay(relay)
		if err != nil {
			return err
		}
		fmt.Printf("pushed tags to %s\n", remoteFlag)
		return nil
	},
}
