package core

import (
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/JonMunkholm/easybill/internal/schema"
)

// Fixture file names, both embedded and in a FIXTURE_DIR override.
const (
	OrdersFile    = "bestellungen.csv"
	ShipmentsFile = "sendungen.csv"
	ChecklistFile = "checklisten.csv"
)

//go:embed fixtures/*.csv
var embedded embed.FS

// Fixtures is the source of the three CSV exports the dashboard loads.
type Fixtures struct {
	fsys   fs.FS
	source string
}

// EmbeddedFixtures returns the exports bundled with the binary.
func EmbeddedFixtures() Fixtures {
	sub, err := fs.Sub(embedded, "fixtures")
	if err != nil {
		panic(fmt.Sprintf("embedded fixtures: %v", err))
	}
	return Fixtures{fsys: sub, source: "embedded"}
}

// DirFixtures reads the exports from dir.
func DirFixtures(dir string) Fixtures {
	return Fixtures{fsys: os.DirFS(dir), source: dir}
}

// FSFixtures reads the exports from an arbitrary file system.
func FSFixtures(fsys fs.FS, source string) Fixtures {
	return Fixtures{fsys: fsys, source: source}
}

// Source names where the fixtures come from, for logs.
func (f Fixtures) Source() string { return f.source }

// Read returns the normalized text of one fixture file.
func (f Fixtures) Read(name string) (string, error) {
	file, err := f.fsys.Open(name)
	if err != nil {
		return "", fmt.Errorf("open fixture %s: %w", name, err)
	}
	defer file.Close()

	r := WrapFixtureReader(file)
	var b strings.Builder
	if _, err := io.Copy(&b, r); err != nil {
		return "", fmt.Errorf("read fixture %s: %w", name, err)
	}

	slog.Debug("fixture read", "file", name, "bytes", r.BytesRead, "source", f.source)
	return b.String(), nil
}

// Dataset is one complete load of the fixtures.
type Dataset struct {
	Orders    []schema.Order
	Shipments []schema.Order
	Checklist schema.ChecklistMap
	LoadedAt  time.Time
}

// Load reads and parses all three exports. Parsing itself never fails;
// only missing or unreadable files return an error.
func (f Fixtures) Load(ctx context.Context) (Dataset, error) {
	texts := make(map[string]string, 3)
	for _, name := range []string{OrdersFile, ShipmentsFile, ChecklistFile} {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		text, err := f.Read(name)
		if err != nil {
			return Dataset{}, err
		}
		texts[name] = text
	}

	ds := Dataset{
		Orders:    ParseOrders(texts[OrdersFile], schema.TypeBestellung),
		Shipments: ParseOrders(texts[ShipmentsFile], schema.TypeVersandvorgang),
		Checklist: ParseChecklist(texts[ChecklistFile]),
		LoadedAt:  time.Now(),
	}

	slog.Info("fixtures loaded",
		"source", f.source,
		"orders", len(ds.Orders),
		"shipments", len(ds.Shipments),
		"checklist", ds.Checklist.Len(),
	)
	return ds, nil
}
