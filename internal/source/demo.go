package source

import (
	"context"
	"math/rand/v2"
	"strconv"

	"github.com/thiagokokada/tabfilter-go/internal/table"
)

var demoColumns = []table.Column{
	{ID: "firstName", Header: "First Name", Group: "Name", Kind: table.KindFuzzy},
	{ID: "lastName", Header: "Last Name", Group: "Name", Kind: table.KindText},
	{ID: "age", Header: "Age", Group: "Info", Kind: table.KindNumber},
	{ID: "visits", Header: "Visits", Group: "Info", Kind: table.KindNumber},
	{ID: "status", Header: "Status", Group: "Info", Kind: table.KindText},
	{ID: "progress", Header: "Profile Progress", Group: "Info", Kind: table.KindNumber},
}

var (
	demoFirstNames = []string{
		"Ada", "Alan", "Barbara", "Claude", "Dennis", "Edsger", "Frances", "Grace",
		"Hedy", "Ivan", "Joan", "Ken", "Linus", "Margaret", "Niklaus", "Radia",
		"Rob", "Shafi", "Tim", "Yukihiro",
	}
	demoLastNames = []string{
		"Allen", "Backus", "Cerf", "Dijkstra", "Engelbart", "Goldwasser", "Hamilton",
		"Hopper", "Kay", "Knuth", "Lamarr", "Liskov", "Lovelace", "Perlman",
		"Pike", "Ritchie", "Shannon", "Sutherland", "Thompson", "Wirth",
	}
	demoStatuses = []string{"relationship", "complicated", "single"}
)

type demoLoader struct {
	rows int
	seed uint64
}

func (l *demoLoader) Key() string { return "demo" }

func (l *demoLoader) WatchPaths() []string { return nil }

func (l *demoLoader) Relevant(string) bool { return false }

// Load generates the same rows for the same seed and row count.
func (l *demoLoader) Load(ctx context.Context) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(l.seed, uint64(l.rows)))
	rows := make([]table.Row, 0, l.rows)
	for i := range l.rows {
		rows = append(rows, table.Row{
			ID: strconv.Itoa(i),
			Cells: map[string]string{
				"firstName": demoFirstNames[rng.IntN(len(demoFirstNames))],
				"lastName":  demoLastNames[rng.IntN(len(demoLastNames))],
				"age":       strconv.Itoa(rng.IntN(40)),
				"visits":    strconv.Itoa(rng.IntN(1000)),
				"status":    demoStatuses[rng.IntN(len(demoStatuses))],
				"progress":  strconv.Itoa(rng.IntN(100)),
			},
		})
	}
	return &Dataset{
		Columns: append([]table.Column(nil), demoColumns...),
		Rows:    rows,
		Head:    "demo",
	}, nil
}
