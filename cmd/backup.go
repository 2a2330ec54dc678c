package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rnwolfe/tally/internal/backup"
	"github.com/rnwolfe/tally/internal/config"
	"github.com/rnwolfe/tally/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or restore every tracker",
	Long: `Write all trackers and their history to a file, or restore from one.

With --encrypt the file is protected with a passphrase (age). Set
TALLY_BACKUP_PASSPHRASE to skip the prompt.`,
	RunE: runBackupStatus,
}

var backupExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write a backup file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBackupExport,
}

var backupImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace every tracker with the contents of a backup",
	Long: `Restore a backup written by 'tally backup export'. The file is fully
checked before anything changes; then all current trackers are replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: runBackupImport,
}

const (
	passphraseEnv  = "TALLY_BACKUP_PASSPHRASE"
	lastExportKey  = "backup.last_export"
	backupDirName  = "backups"
	backupFileDate = "20060102"
)

var backupEncrypt bool

func init() {
	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupImportCmd)
	backupExportCmd.Flags().BoolVarP(&backupEncrypt, "encrypt", "e", false, "Protect the backup with a passphrase")
}

func runBackupStatus(_ *cobra.Command, _ []string) error {
	db, _, err := openTrackers()
	if err != nil {
		return err
	}
	defer db.Close()

	last, err := db.GetKV(lastExportKey)
	if err != nil {
		return err
	}

	fmt.Println()
	if last == "" {
		ui.Kv("Last export", "never")
	} else {
		ui.Kv("Last export", last)
	}
	ui.Kv("Folder", filepath.Join(config.GetPaths().DataDir, backupDirName))
	ui.TipRun("tally backup export --encrypt", "to write one now.")
	fmt.Println()
	return nil
}

func runBackupExport(_ *cobra.Command, args []string) error {
	day, err := today()
	if err != nil {
		return err
	}

	path := defaultBackupPath(day.Format(backupFileDate), backupEncrypt)
	if len(args) > 0 {
		path = args[0]
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	var passphrase string
	if backupEncrypt {
		if passphrase, err = readPassphrase(true); err != nil {
			return err
		}
	}

	db, ts, err := openTrackers()
	if err != nil {
		return err
	}
	defer db.Close()

	now := time.Now()
	n, err := backup.Export(ts, path, passphrase, now)
	if err != nil {
		return err
	}
	if err := db.SetKV(lastExportKey, now.Format(time.RFC3339)); err != nil {
		return err
	}

	ui.Ok(fmt.Sprintf("Backed up %d tracker%s to %s", n, plural(n), ui.Accent.Render(path)))
	return nil
}

func defaultBackupPath(stamp string, encrypted bool) string {
	name := "tally-" + stamp + ".json"
	if encrypted {
		name += ".age"
	}
	return filepath.Join(config.GetPaths().DataDir, backupDirName, name)
}

func runBackupImport(_ *cobra.Command, args []string) error {
	path := args[0]
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("backup file not found: %s", path)
		}
		return fmt.Errorf("reading backup: %w", err)
	}

	var passphrase string
	if backup.IsEncrypted(raw) {
		if passphrase, err = readPassphrase(false); err != nil {
			return err
		}
	}

	db, ts, err := openTrackers()
	if err != nil {
		return err
	}
	defer db.Close()

	snap, err := backup.Import(ts, path, passphrase)
	if err != nil {
		return formatBackupError(err)
	}

	n := len(snap.Trackers)
	ui.Ok(fmt.Sprintf("Restored %d tracker%s from %s", n, plural(n), snap.ExportedAt.Local().Format("Jan 2, 2006 15:04")))
	return nil
}

// readPassphrase takes the passphrase from TALLY_BACKUP_PASSPHRASE, or
// prompts for it on a terminal.
func readPassphrase(confirm bool) (string, error) {
	if p := os.Getenv(passphraseEnv); p != "" {
		return p, nil
	}

	if !isTerminal() {
		return "", fmt.Errorf("backup passphrase required: set %s or run interactively", passphraseEnv)
	}

	fmt.Fprint(os.Stderr, ui.Muted.Render("  Backup passphrase: "))
	fd := int(os.Stdin.Fd())
	pass, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	passphrase := strings.TrimSpace(string(pass))
	if passphrase == "" {
		return "", fmt.Errorf("passphrase can't be empty")
	}

	if confirm {
		fmt.Fprint(os.Stderr, ui.Muted.Render("  Confirm passphrase: "))
		again, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading passphrase confirmation: %w", err)
		}
		if strings.TrimSpace(string(again)) != passphrase {
			return "", fmt.Errorf("passphrases do not match")
		}
	}
	return passphrase, nil
}

// formatBackupError turns backup errors into actionable messages.
func formatBackupError(err error) error {
	switch {
	case errors.Is(err, backup.ErrWrongPassphrase):
		return fmt.Errorf("wrong passphrase; double-check %s or try again interactively", passphraseEnv)
	case errors.Is(err, backup.ErrCorrupted):
		return fmt.Errorf("that file isn't a readable tally backup: %w", err)
	}
	return err
}
