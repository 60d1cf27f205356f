package gitutils

import (
	"path"
	"regexp"

	"github.com/go-git/go-git/v5"
	"github.com/pkg/errors"

	"prreport/internal/pkg/fs"
)

var (
	ErrCannotGetLocalRepository         = errors.New("cannot get local repository")
	ErrUnableToParseRemoteRepositoryURI = errors.New("unable to parse remote repository URI")
	ErrNoGithubRemote                   = errors.New("no github.com remote found")
)

// Remote identifies a hosted repository parsed from a git remote URL.
type Remote struct {
	Host  string
	Owner string
	Name  string
}

var (
	sshRemoteRe   = regexp.MustCompile(`^git@([^:]+):([^/]+)/(.+?)(?:\.git)?$`)
	httpsRemoteRe = regexp.MustCompile(`^https?://([^/]+)/([^/]+)/(.+?)(?:\.git)?$`)
)

func parseRemoteURL(url string) (*Remote, error) {
	for _, re := range []*regexp.Regexp{sshRemoteRe, httpsRemoteRe} {
		m := re.FindStringSubmatch(url)
		if len(m) == 4 {
			return &Remote{Host: m[1], Owner: m[2], Name: m[3]}, nil
		}
	}

	return nil, ErrUnableToParseRemoteRepositoryURI
}

var getWorkingDir = func(fs fs.Filesystem) (string, error) {
	return fs.Getwd()
}

var openRepo = func(p string) (*git.Repository, error) {
	return openRepoRecursively(p)
}

func openRepoRecursively(input string) (*git.Repository, error) {
	dir := input
	for dir != "/" && dir != "." {
		repo, err := git.PlainOpen(dir)
		if err == nil {
			return repo, nil
		}

		dir = path.Dir(dir)
	}

	return nil, errors.Wrap(ErrCannotGetLocalRepository, input)
}

var remoteURLs = func(r *git.Repository) ([]string, error) {
	remotes, err := r.Remotes()
	if err != nil {
		return nil, err
	}

	var urls []string
	for _, re := range remotes {
		urls = append(urls, re.Config().URLs...)
	}

	return urls, nil
}

// GetRemoteInfo returns the owner/repo of the working directory's
// first github.com remote, so the report can default to the clone it
// runs inside of.
func GetRemoteInfo() (*Remote, error) {
	wd, err := getWorkingDir(fs.OS{})
	if err != nil {
		return nil, errors.Wrap(err, ErrCannotGetLocalRepository.Error())
	}

	r, err := openRepo(wd)
	if err != nil {
		return nil, err
	}

	urls, err := remoteURLs(r)
	if err != nil {
		return nil, err
	}

	for _, url := range urls {
		remote, err := parseRemoteURL(url)
		if err != nil {
			continue
		}

		if remote.Host == "github.com" {
			return remote, nil
		}
	}

	return nil, ErrNoGithubRemote
}
