package mdbtools

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/nerrad567/itho-discovery/internal/infrastructure/config"
)

// filePermissions is the permission mode for exported artifact files.
const filePermissions = 0600

// Logger defines the logging interface for the adapter.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Adapter wraps the mdbtools utilities that read a legacy `.par` export
// (an MS Access database under the hood).
//
// Construction copies the input file into a private working directory and
// never touches the original again; exported artifacts (schema DDL, per-table
// INSERT scripts) are materialized next to the copy for inspection. Close
// removes the working directory on every exit path.
type Adapter struct {
	cfg    config.MDBToolsConfig
	logger Logger

	workDir  string // private temp dir, removed on Close
	tableDir string // holds exported schema and table scripts
	file     string // working copy of the input file
}

// New creates an Adapter for the given legacy export file.
//
// It fails before touching the file if any of the configured mdbtools
// binaries is missing from PATH, and fails with ErrInputFile if the input
// cannot be copied into the working directory. A `.par` extension is
// renamed to `.mdb` on the working copy so the tools recognise the format.
//
// Parameters:
//   - cfg: mdbtools configuration (binary names, per-invocation timeout)
//   - inputPath: Path to the legacy export file
//
// Returns:
//   - *Adapter: Ready adapter owning a private working directory
//   - error: ErrToolNotFound or ErrInputFile
func New(cfg config.MDBToolsConfig, inputPath string) (*Adapter, error) {
	for _, binary := range []string{cfg.SchemaBinary, cfg.TablesBinary, cfg.ExportBinary} {
		if _, err := exec.LookPath(binary); err != nil {
			return nil, fmt.Errorf("%w: %q is not in PATH (is mdbtools installed?)", ErrToolNotFound, binary)
		}
	}

	workDir, err := os.MkdirTemp("", "itho-discovery-")
	if err != nil {
		return nil, fmt.Errorf("creating working directory: %w", err)
	}

	a := &Adapter{
		cfg:     cfg,
		logger:  noopLogger{},
		workDir: workDir,
	}

	name := filepath.Base(inputPath)
	if strings.HasSuffix(name, ".par") {
		name = strings.TrimSuffix(name, ".par") + ".mdb"
	}
	a.file = filepath.Join(workDir, name)

	if err := copyFile(inputPath, a.file); err != nil {
		a.Close() //nolint:errcheck // Best effort cleanup on error path
		return nil, fmt.Errorf("%w: copying %s: %w", ErrInputFile, inputPath, err)
	}

	a.tableDir = filepath.Join(workDir, strings.TrimSuffix(name, filepath.Ext(name)))
	if err := os.Mkdir(a.tableDir, 0750); err != nil {
		a.Close() //nolint:errcheck
		return nil, fmt.Errorf("creating table directory: %w", err)
	}

	return a, nil
}

// SetLogger sets the logger for the adapter.
func (a *Adapter) SetLogger(logger Logger) {
	a.logger = logger
}

// Schema exports the database schema as SQLite DDL.
//
// The DDL is also written to schema.sql in the working directory.
func (a *Adapter) Schema(ctx context.Context) (string, error) {
	out, err := run(ctx, a.cfg.GetTimeout(), a.cfg.SchemaBinary, a.file, "sqlite")
	if err != nil {
		return "", fmt.Errorf("exporting schema of %s: %w", a.file, err)
	}

	artifact := filepath.Join(a.tableDir, "schema.sql")
	if err := os.WriteFile(artifact, out, filePermissions); err != nil {
		return "", fmt.Errorf("writing schema artifact: %w", err)
	}
	a.logger.Debug("exported database schema", "file", artifact, "bytes", len(out))

	return string(out), nil
}

// Tables enumerates the tables present in the export.
//
// Names beginning with "~" are Access-internal temporary tables and are
// dropped from the result; order is otherwise preserved as reported.
func (a *Adapter) Tables(ctx context.Context) ([]string, error) {
	out, err := run(ctx, a.cfg.GetTimeout(), a.cfg.TablesBinary, "-1", a.file)
	if err != nil {
		return nil, fmt.Errorf("listing tables of %s: %w", a.file, err)
	}

	var tables []string
	for _, line := range strings.Split(string(out), "\n") {
		name := strings.TrimSpace(line)
		if name == "" || strings.HasPrefix(name, "~") {
			continue
		}
		tables = append(tables, name)
		a.logger.Debug("found database table", "table", name)
	}

	return tables, nil
}

// ExportTable exports one table's rows as an SQLite INSERT script.
//
// The script is also written to <table>.sql in the working directory.
func (a *Adapter) ExportTable(ctx context.Context, table string) (string, error) {
	out, err := run(ctx, a.cfg.GetTimeout(), a.cfg.ExportBinary,
		"-D", "%Y-%m-%d %H:%M:%S",
		"-q", "'",
		"-H",
		"-I", "sqlite",
		a.file, table,
	)
	if err != nil {
		return "", fmt.Errorf("exporting table %s: %w", table, err)
	}

	artifact := filepath.Join(a.tableDir, table+".sql")
	if err := os.WriteFile(artifact, out, filePermissions); err != nil {
		return "", fmt.Errorf("writing export artifact for %s: %w", table, err)
	}
	a.logger.Debug("exported table", "table", table, "bytes", len(out))

	return string(out), nil
}

// WorkDir returns the private working directory holding the file copy and
// exported artifacts. Useful for debugging failed extractions before Close.
func (a *Adapter) WorkDir() string {
	return a.workDir
}

// Close removes the working directory and everything in it.
func (a *Adapter) Close() error {
	if a.workDir == "" {
		return nil
	}
	if err := os.RemoveAll(a.workDir); err != nil {
		return fmt.Errorf("removing working directory: %w", err)
	}
	a.workDir = ""
	return nil
}

// copyFile copies src to dst without mutating src.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePermissions)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close() //nolint:errcheck
		return err
	}
	return out.Close()
}
