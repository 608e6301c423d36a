// Package gitcmd wraps the git binary for the handful of operations
// dit sequences: branch queries, checkout, stash, pull, push, commit
// and diff. Git semantics are never reimplemented here; every call
// shells out and propagates git's exit status.
package gitcmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Client runs git commands inside one working directory.
type Client struct {
	dir string
}

// New returns a client rooted at dir.
func New(dir string) *Client {
	return &Client{dir: dir}
}

// query runs git and captures its output for parsing.
func (c *Client) query(args ...string) (string, error) {
	cmd := exec.Command("git", append([]string{"-C", c.dir}, args...)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %w - %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return strings.TrimSpace(string(out)), nil
}

// run streams a git command to the terminal so the user sees git's own
// progress and prompts.
func (c *Client) run(args ...string) error {
	cmd := exec.Command("git", append([]string{"-C", c.dir}, args...)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// IsRepo reports whether the directory is inside a git work tree.
func (c *Client) IsRepo() bool {
	out, err := c.query("rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// Root returns the absolute path of the repository's top level. This
// is the project key the branch ledger is scoped by.
func (c *Client) Root() (string, error) {
	return c.query("rev-parse", "--show-toplevel")
}

// CurrentBranch returns the checked-out branch name.
func (c *Client) CurrentBranch() (string, error) {
	return c.query("rev-parse", "--abbrev-ref", "HEAD")
}

// Describe returns the most recent tag description for HEAD.
func (c *Client) Describe() (string, error) {
	return c.query("describe", "--tags", "--always")
}

func (c *Client) Checkout(branch string) error {
	return c.run("checkout", branch)
}

func (c *Client) Stash() error {
	return c.run("stash")
}

func (c *Client) StashPop() error {
	return c.run("stash", "pop")
}

func (c *Client) Pull() error {
	return c.run("pull")
}

func (c *Client) Push() error {
	return c.run("push")
}

// Commit stages everything and commits with the given message.
func (c *Client) Commit(message string) error {
	if err := c.run("add", "-A"); err != nil {
		return err
	}
	return c.run("commit", "-m", message)
}

func (c *Client) Diff() error {
	return c.run("diff")
}
