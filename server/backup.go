package server

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/solarwork/crewledger/internal/backup"
	"github.com/solarwork/crewledger/internal/logger"
)

// maxBackupBytes caps restore uploads at 128 MiB. Backups embed plan
// PDFs, so they can be large.
const maxBackupBytes = 128 << 20

// handleBackup streams a full backup document as JSON.
func (s *Server) handleBackup(c echo.Context) error {
	data, err := backup.ExportJSON(c.Request().Context(), s.store)
	if err != nil {
		return httpError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="crewledger-backup.json"`)
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

// handleRestore replaces the entire ledger with the uploaded backup
// document. Encrypted backups must be decrypted client-side first; the
// server never sees a passphrase.
func (s *Server) handleRestore(c echo.Context) error {
	data, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBackupBytes))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "read body: " + err.Error()})
	}

	if backup.IsEncrypted(data) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "encrypted backups must be decrypted before upload"})
	}

	if err := backup.Restore(c.Request().Context(), s.store, data); err != nil {
		if backup.IsFormatError(err) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return httpError(c, err)
	}

	// The in-memory ledger is stale after a restore. Reload swaps the
	// state under the ledger's own lock, so concurrent handlers keep
	// using the same instance safely.
	if err := s.ledger.Reload(); err != nil {
		return httpError(c, err)
	}

	logger.Info("backup restored over HTTP")
	return c.JSON(http.StatusOK, map[string]string{"status": "restored"})
}
