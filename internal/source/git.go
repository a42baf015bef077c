package source

import (
	"context"
	"time"

	"github.com/thiagokokada/tabfilter-go/internal/git"
	"github.com/thiagokokada/tabfilter-go/internal/table"
)

var gitColumns = []table.Column{
	{ID: "hash", Header: "Commit", Kind: table.KindText},
	{ID: "summary", Header: "Summary", Kind: table.KindFuzzy},
	{ID: "author", Header: "Author", Group: "Author", Kind: table.KindText},
	{ID: "email", Header: "Email", Group: "Author", Kind: table.KindText, Hidden: true},
	{ID: "date", Header: "Date", Group: "Author", Kind: table.KindText},
}

const gitDateLayout = "2006-01-02 15:04"

type gitLoader struct {
	svc   *git.Service
	limit uint
}

func newGitLoader(path string, limit uint) (*gitLoader, error) {
	svc, err := git.Open(path)
	if err != nil {
		return nil, err
	}
	return &gitLoader{svc: svc, limit: limit}, nil
}

func (l *gitLoader) Key() string { return "git:" + l.svc.RepoPath() }

func (l *gitLoader) WatchPaths() []string {
	return []string{l.svc.WatchPath()}
}

func (l *gitLoader) Relevant(string) bool { return true }

func (l *gitLoader) Load(ctx context.Context) (*Dataset, error) {
	commits, head, err := l.svc.Commits(ctx, l.limit)
	if err != nil {
		return nil, err
	}
	rows := make([]table.Row, 0, len(commits))
	for _, c := range commits {
		rows = append(rows, commitRow(c))
	}
	return &Dataset{
		Columns: append([]table.Column(nil), gitColumns...),
		Rows:    rows,
		Head:    head,
	}, nil
}

func commitRow(c git.Commit) table.Row {
	return table.Row{
		ID: c.Hash,
		Cells: map[string]string{
			"hash":    c.ShortHash(),
			"summary": c.Summary(),
			"author":  c.Author.Name,
			"email":   c.Author.Email,
			"date":    c.Author.When.In(time.Local).Format(gitDateLayout),
		},
	}
}
