package transfer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/julianstephens/habitrackr/internal/cli"
	"github.com/julianstephens/habitrackr/internal/export"
	"github.com/julianstephens/habitrackr/internal/logger"
)

type ExportCmd struct {
	Format string `arg:"" enum:"json,csv,xlsx" help:"Export format (json|csv|xlsx)."`
	Output string `short:"o" help:"Output file, or - for stdout. Defaults to habit-tracker-export-<date>.<format> in the current directory."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	u, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	kind, err := export.ParseKind(c.Format)
	if err != nil {
		return err
	}

	habits, err := ctx.Registry.ListHabits(u.ID)
	if err != nil {
		return err
	}
	entries, err := ctx.Ledger.GetEntries(u.ID, "")
	if err != nil {
		return err
	}
	now := ctx.Clock()
	doc := export.Snapshot(u, habits, entries, now)

	if c.Output == "-" {
		return write(ctx.Out, kind, doc)
	}

	path := c.Output
	if path == "" {
		path = export.FileName(kind, now)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := write(f, kind, doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	logger.Info("Exported data", "format", kind, "path", path, "habits", len(doc.Habits), "entries", len(doc.Tracking))
	ctx.Printf("✓ Exported %d habits and %d tracking entries to %s\n", len(doc.Habits), len(doc.Tracking), path)
	return nil
}

func write(w io.Writer, kind export.Kind, doc export.Document) error {
	switch kind {
	case export.KindCSV:
		return export.WriteCSV(w, doc)
	case export.KindXLSX:
		return export.WriteXLSX(w, doc)
	default:
		return export.WriteJSON(w, doc)
	}
}

type ImportCmd struct {
	File string `arg:"" type:"existingfile" help:"JSON snapshot written by 'export json'."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	u, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	doc, err := export.ReadSnapshot(f)
	if err != nil {
		return err
	}

	if mgr, err := ctx.BackupManager(); err == nil {
		backupPath, err := mgr.CreateBackup()
		if err != nil {
			return fmt.Errorf("backup before import failed: %w", err)
		}
		ctx.Printf("Backup created: %s\n", filepath.Base(backupPath))
	}

	res, err := export.Import(doc, u.ID, ctx.Registry, ctx.Ledger)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Imported %d new habits and %d tracking entries from %s\n", res.Habits, res.Entries, filepath.Base(c.File))
	if res.Skipped > 0 {
		ctx.Printf("  Skipped %d tracking entries of habits that belong to another user\n", res.Skipped)
	}
	return nil
}
