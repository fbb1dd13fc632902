package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/somnahealth/somna-backend/internal/store"
	"github.com/somnahealth/somna-backend/internal/store/sqlite"
	"github.com/somnahealth/somna-backend/internal/store/storetest"
)

func TestSQLiteStoreCompliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		st, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
		if err != nil {
			t.Fatalf("open sqlite store: %v", err)
		}
		return st
	})
}
