package versions

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/mhristof/ghup/cache"
	"github.com/mhristof/ghup/github"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const tagRefPrefix = "refs/tags/"

// Fetcher lists the remote refs the provider works from. *github.Client
// satisfies it.
type Fetcher interface {
	TagRefs(ctx context.Context) ([]string, error)
	Branches(ctx context.Context) ([]github.Branch, error)
	RepoURL() string
	RegistryURL(version string) string
}

// Config is the repository the provider upgrades from. Immutable after New.
type Config struct {
	Repository      string
	IncludeBranches bool
	Token           string
}

// Set holds the installable versions of a repository, newest first. Versions
// is Tags followed by Branches, duplicates and all, since the existence check
// is list membership.
type Set struct {
	Latest   string
	Versions []string
	Tags     []string
	Branches []string
}

// Request describes a single upgrade. From may be empty when the current
// version is unknown, To may be the literal "latest".
type Request struct {
	Name string
	From string
	To   string
}

// Provider resolves installable versions and decides whether an upgrade is
// warranted.
type Provider struct {
	config  Config
	fetcher Fetcher
	out     io.Writer
}

// Option mutates a Provider during New.
type Option func(*Provider)

// WithOutput redirects console output, used by tests.
func WithOutput(out io.Writer) Option {
	return func(p *Provider) {
		p.out = out
	}
}

func New(config Config, fetcher Fetcher, opts ...Option) *Provider {
	ret := &Provider{
		config:  config,
		fetcher: fetcher,
		out:     os.Stdout,
	}

	for _, opt := range opts {
		opt(ret)
	}

	return ret
}

// Versions fetches tags and branches concurrently and normalises them newest
// first. Nothing is cached, every call hits the network again.
func (p *Provider) Versions(ctx context.Context, name string) (Set, error) {
	var (
		refs        []string
		branches    []github.Branch
		refsErr     error
		branchesErr error
	)

	wg := sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()

		refs, refsErr = p.fetcher.TagRefs(ctx)
	}()

	go func() {
		defer wg.Done()

		branches, branchesErr = p.fetcher.Branches(ctx)
	}()

	wg.Wait()

	if refsErr != nil {
		return Set{}, errors.Wrapf(refsErr, "cannot list tags for %s", name)
	}

	if branchesErr != nil {
		return Set{}, errors.Wrapf(branchesErr, "cannot list branches for %s", name)
	}

	tags := make([]string, 0, len(refs))
	for i := len(refs) - 1; i >= 0; i-- {
		tags = append(tags, strings.TrimPrefix(refs[i], tagRefPrefix))
	}

	// unprotected branches first, protected last, ties keep API order
	sort.SliceStable(branches, func(i, j int) bool {
		return !branches[i].Protected && branches[j].Protected
	})

	branchNames := make([]string, 0, len(branches))
	for i := len(branches) - 1; i >= 0; i-- {
		branchName := branches[i].Name
		if branches[i].Protected {
			branchName += " (Protected)"
		}

		branchNames = append(branchNames, branchName)
	}

	ret := Set{
		Tags:     tags,
		Branches: branchNames,
		Versions: append(append([]string{}, tags...), branchNames...),
	}

	if len(tags) > 0 {
		ret.Latest = tags[0]
	}

	log.WithFields(log.Fields{
		"name":       name,
		"repository": p.fetcher.RepoURL(),
		"tags":       len(ret.Tags),
		"branches":   len(ret.Branches),
		"latest":     ret.Latest,
	}).Debug("resolved versions")

	return ret, nil
}

// IsOutdated reports whether the current version should be upgraded to the
// target one. "latest" resolves to the newest tag first.
func (p *Provider) IsOutdated(ctx context.Context, name, current, target string) (bool, error) {
	set, err := p.Versions(ctx, name)
	if err != nil {
		return false, err
	}

	resolved := target
	if resolved == "latest" {
		resolved = set.Latest
	}

	if resolved != "" && !contains(set.Versions, resolved) {
		return false, &ValidationError{Version: resolved}
	}

	if set.Latest == current && resolved == current {
		log.WithFields(log.Fields{
			"name":    name,
			"version": current,
		}).Warn("already the latest version")

		return false, nil
	}

	if resolved == current {
		log.WithFields(log.Fields{
			"name":    name,
			"version": current,
		}).Warn("already on the requested version")

		return false, nil
	}

	warnDowngrade(current, resolved)

	return true, nil
}

// Upgrade reports a successful upgrade to the resolved target version. The
// actual binary replacement is not implemented, only the receipt is recorded.
func (p *Provider) Upgrade(ctx context.Context, req Request) error {
	to := req.To
	if to == "latest" {
		set, err := p.Versions(ctx, req.Name)
		if err != nil {
			return err
		}

		to = set.Latest
	}

	url := p.fetcher.RegistryURL(to)

	fmt.Fprintf(p.out, "successfully upgraded %s to %s (%s)\n", req.Name, to, url)

	err := cache.Write(cache.Receipt{
		Name: req.Name,
		From: req.From,
		To:   to,
		URL:  url,
		Time: time.Now(),
	})
	if err != nil {
		log.WithFields(log.Fields{
			"err": err,
		}).Error("cannot record upgrade")
	}

	return nil
}

// List prints the available tags and branches, marking the current version.
func (p *Provider) List(ctx context.Context, name, current string) error {
	set, err := p.Versions(ctx, name)
	if err != nil {
		return err
	}

	fmt.Fprintln(p.out, "Tags:")
	fmt.Fprint(p.out, formatColumns(set.Tags, current, maxColumns, indentWidth))

	if p.config.IncludeBranches && len(set.Branches) > 0 {
		fmt.Fprintln(p.out, "Branches:")
		fmt.Fprint(p.out, formatColumns(set.Branches, current, maxColumns, indentWidth))
	}

	return nil
}

func contains(haystack []string, needle string) bool {
	for _, item := range haystack {
		if item == needle {
			return true
		}
	}

	return false
}

func warnDowngrade(current, target string) {
	currentVersion, err := semver.NewVersion(current)
	if err != nil {
		return
	}

	targetVersion, err := semver.NewVersion(target)
	if err != nil {
		return
	}

	if targetVersion.Compare(currentVersion) < 0 {
		log.WithFields(log.Fields{
			"current": current,
			"target":  target,
		}).Warn("target version is older than the current one")
	}
}
