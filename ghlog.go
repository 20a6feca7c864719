// Package ghlog generates changelogs from git history, grouped by GitHub
// release, issue label and path.
//
// Related packages: config, commit, runner, model, vcs, vcs/gitcli, vcs/github
package ghlog

import "github.com/jeffrom/ghlog/config"

// Config holds the configuration variables for ghlog. This struct is intended
// for command-line use, so not all of its attributes are applicable to every
// operation.
//
// See "go doc github.com/jeffrom/ghlog/config Config" for more information.
type Config = config.Config
