package dataset

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rshade/vtable/internal/table"
)

//nolint:gochecknoglobals // Sample vocabularies.
var (
	firstNames = []string{
		"Ada", "Bjørn", "Chloé", "Dmitri", "Emeka", "Frida", "Grace", "Hiro",
		"Ines", "Jonas", "Kalani", "Lena", "Mateo", "Nia", "Oskar", "Priya",
	}
	lastNames = []string{
		"Andersen", "Byrne", "Castillo", "Dubois", "Eze", "Fischer", "García",
		"Haddad", "Ito", "Jensen", "Kowalski", "Lindqvist", "Moreau", "Novak",
	}
	statuses = []string{"relationship", "complicated", "single"}

	sampleEpoch = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// PersonColumns describes the rows produced by Generate.
func PersonColumns() []table.Column {
	return []table.Column{
		{ID: "firstName", Header: "First Name", Sortable: true, Width: 14},
		{ID: "lastName", Header: "Last Name", Sortable: true, Width: 14},
		{ID: "age", Header: "Age", Sortable: true, Align: table.AlignRight, Width: 7},
		{ID: "visits", Header: "Visits", Sortable: true, Align: table.AlignRight, Width: 10},
		{
			ID: "progress", Header: "Profile Progress", Sortable: true, Align: table.AlignRight, Width: 19,
			Format: func(v any) string { return fmt.Sprintf("%v%%", v) },
		},
		{ID: "status", Header: "Status", Sortable: true, Width: 15},
		{ID: "createdAt", Header: "Created At", Sortable: true, Width: 13},
	}
}

// Generate returns n sample person rows. The same seed yields the same rows.
// Keys are ULIDs drawn from a monotonic source, so they are unique and sort
// in generation order.
func Generate(n int, seed int64) *Dataset {
	if n < 0 {
		n = 0
	}
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // Reproducible sample data.
	entropy := ulid.Monotonic(rng, 0)
	ms := ulid.Timestamp(sampleEpoch)

	ds := &Dataset{Columns: PersonColumns(), Rows: make([]table.Row, n)}
	for i := range ds.Rows {
		ds.Rows[i] = table.Row{
			Key: ulid.MustNew(ms, entropy).String(),
			Fields: map[string]any{
				"firstName": firstNames[rng.Intn(len(firstNames))],
				"lastName":  lastNames[rng.Intn(len(lastNames))],
				"age":       18 + rng.Intn(63),
				"visits":    rng.Intn(1000),
				"progress":  rng.Intn(101),
				"status":    statuses[rng.Intn(len(statuses))],
				"createdAt": sampleEpoch.AddDate(0, 0, rng.Intn(5*365)),
			},
		}
	}
	return ds
}
