package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"texture-scanner/core/config"
	"texture-scanner/core/database"
	"texture-scanner/core/logger"
	"texture-scanner/core/storage"
	"texture-scanner/feature/scan"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var texturesDir string

// scanCmd runs a one-shot scan from local files.
var scanCmd = &cobra.Command{
	Use:   "scan <settings-file>",
	Short: "Run a one-shot scan from a local settings file",
	Long: `Reads a settings script and a directory of texture images from the local
filesystem, runs the full reconciliation and prints the resulting summary.

The report, script and textures are persisted to the configured storage
bucket exactly as if they had been uploaded over HTTP.

Examples:
  # Scan a settings file with its textures
  scan settings.py --textures ./textures`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&texturesDir, "textures", "", "Directory containing texture images")
	RootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	script, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read settings file: %w", err)
	}

	var uploads []scan.Upload
	if texturesDir != "" {
		entries, err := os.ReadDir(texturesDir)
		if err != nil {
			return fmt.Errorf("failed to read textures directory: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".png") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(texturesDir, entry.Name()))
			if err != nil {
				return fmt.Errorf("failed to read texture %s: %w", entry.Name(), err)
			}
			uploads = append(uploads, scan.Upload{Filename: entry.Name(), Data: data})
		}
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}
	if err := ensureBucket(client, cfg.Storage.Bucket); err != nil {
		return fmt.Errorf("failed to ensure bucket: %w", err)
	}
	store := storage.NewStore(client, cfg.Storage.Bucket)

	// Registry is optional for one-shot scans.
	var db *gorm.DB
	if conn, err := database.Connect(cfg.Database); err != nil {
		l.Warn("Optional database connection failed", zap.Error(err))
	} else {
		db = conn
	}

	svc := scan.NewService(store, l, db)

	l.Info("Starting scan",
		zap.String("settings", args[0]),
		zap.Int("textures", len(uploads)))

	report, err := svc.StartScan(ctx, string(script), uploads)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	l.Info("Scan completed",
		zap.String("scan_id", report.ScanID),
		zap.Int("total_items", report.Summary.TotalItems),
		zap.Int("total_textures", report.Summary.TotalTextures),
		zap.Int("missing_textures", report.Summary.MissingTextures),
		zap.Int("missing_names", report.Summary.MissingNames),
		zap.Int("wrong_size", report.Summary.WrongSize),
		zap.Int("duplicates", report.Summary.Duplicates),
	)

	return nil
}
