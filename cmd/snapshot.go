package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/triagehq/triage/internal/contract"
	"github.com/triagehq/triage/internal/iosnapshot"
	"github.com/triagehq/triage/schema"
)

// snapshotSetup loads minimal configuration needed for snapshot operations.
// This is used by commands that need snapshot access without full shared setup.
func snapshotSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get snapshot-related config values
	backend := schema.DatabaseBackend(viper.GetString("snapshot-backend"))
	connStr := viper.GetString("snapshot-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize the snapshot store only (no run history for snapshot commands)
	if err := iosnapshot.InitStores(backend, connStr, "", ""); err != nil {
		return fmt.Errorf("failed to initialize snapshot store: %w", err)
	}

	cfg.SnapshotBackend = backend
	cfg.SnapshotDBConnect = connStr

	return nil
}

// snapshotSetupWrapper wraps snapshotSetup to provide PreRunE for snapshot commands.
func snapshotSetupWrapper(_ *cobra.Command, _ []string) error {
	return snapshotSetup()
}

// snapshotCmd focused on snapshot management.
//
// Note: Snapshot subcommands use minimal initialization (snapshotSetup) instead
// of the full sharedSetup used by triage commands. This avoids repository
// validation and GitHub token handling for simple storage operations.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage the issue snapshot cache (avoids repeated API calls)",
	Long: `Manage the issue snapshot cache that speeds up repeated triage runs.

Triage stores fetched issue sets so repeated runs against the same repository
skip the GitHub API entirely while the snapshot is fresh. Snapshots expire
after the configured TTL (default: 15 minutes) or when --refresh is passed.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status - Show snapshot statistics and connection info
  clear  - Remove all snapshot data

Examples:
  # Check snapshot status
  triage snapshot status

  # Clear snapshots after a big label cleanup upstream
  triage snapshot clear`,
}

// snapshotClearCmd clears the snapshot cache.
var snapshotClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached issue snapshots",
	Long: `Delete all cached issue snapshots from the configured backend.

Use this when:
- Issues were heavily relabeled or closed in bulk upstream
- The snapshot may be stale or corrupted
- Testing fetch behavior without the snapshot

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the snapshot table

Examples:
  # Clear SQLite snapshots (default)
  triage snapshot clear

  # Clear MySQL snapshots (set connection string via env variable)
  TRIAGE_SNAPSHOT_BACKEND=mysql TRIAGE_SNAPSHOT_DB_CONNECT="..." triage snapshot clear`,
	PreRunE: snapshotSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iosnapshot.ClearSnapshot(cfg.SnapshotBackend, iosnapshot.GetSnapshotDBFilePath(), cfg.SnapshotDBConnect); err != nil {
			contract.LogFatal("Failed to clear snapshots", err)
		}
		fmt.Println("Snapshots cleared successfully.")
	},
}

// snapshotStatusCmd shows snapshot status.
var snapshotStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display snapshot statistics and connection details",
	Long: `Show detailed information about the issue snapshot cache.

Displays:
- Backend type and connection status
- Total number of cached snapshots
- Last and oldest snapshot timestamps
- Snapshot database size

Examples:
  # Check snapshot status
  triage snapshot status`,
	PreRunE: snapshotSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iosnapshot.Manager.GetSnapshotStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get snapshot status", err)
		}
		iosnapshot.PrintSnapshotStatus(status)
	},
}
