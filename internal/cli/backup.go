package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/solarwork/crewledger/internal/backup"
)

var backupCmd = &cobra.Command{
	Use:   "backup [file]",
	Short: "Export the full dataset to a backup file",
	Long: `Write everything - state, timer and plan documents - to a
single JSON backup file. With --encrypt the file is sealed with
AES-256-GCM under a passphrase.`,
	Args: cobra.ExactArgs(1),
	RunE: runBackup,
}

var restoreCmd = &cobra.Command{
	Use:   "restore [file]",
	Short: "Replace the full dataset from a backup file",
	Long: `Clear the store and write back the backup's contents. Any
running process must be restarted afterward: in-memory state and the
plan store are rebuilt together.`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

var backupEncrypt bool

func init() {
	backupCmd.Flags().BoolVar(&backupEncrypt, "encrypt", false, "Encrypt the backup with a passphrase")
}

func readPassphrase(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func runBackup(cmd *cobra.Command, args []string) error {
	_, st, err := openLedger()
	if err != nil {
		return err
	}
	defer st.Close()

	data, err := backup.ExportJSON(context.Background(), st)
	if err != nil {
		return err
	}

	if backupEncrypt {
		passphrase, err := readPassphrase("Passphrase: ")
		if err != nil {
			return err
		}
		if passphrase == "" {
			return fmt.Errorf("passphrase must not be empty")
		}
		again, err := readPassphrase("Repeat passphrase: ")
		if err != nil {
			return err
		}
		if passphrase != again {
			return fmt.Errorf("passphrases do not match")
		}
		data, err = backup.Encrypt(data, passphrase)
		if err != nil {
			return err
		}
	}

	if err := os.WriteFile(args[0], data, 0600); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	fmt.Printf("✓ Backup written to %s\n", args[0])
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}

	if backup.IsEncrypted(data) {
		passphrase, err := readPassphrase("Passphrase: ")
		if err != nil {
			return err
		}
		data, err = backup.Decrypt(data, passphrase)
		if err != nil {
			return err
		}
	}

	if !confirm("Replace ALL current data with this backup") {
		fmt.Println("Cancelled")
		return nil
	}

	_, st, err := openLedger()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := backup.Restore(context.Background(), st, data); err != nil {
		return err
	}
	fmt.Println("✓ Backup restored; restart any running crewledger processes")
	return nil
}
