package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/cybermatters/themis/pkg/cli/config"
)

func TestLoadCatalog_Default(t *testing.T) {
	catalog, err := config.LoadCatalog("")
	gt.NoError(t, err).Required()
	gt.Bool(t, len(catalog.Frameworks) > 0).True()

	models := catalog.Models()
	gt.Value(t, len(models)).Equal(len(catalog.Frameworks))
	for _, m := range models {
		gt.Bool(t, m.Active).True()
		gt.Bool(t, m.Name != "").True()
	}
}

func TestLoadCatalog_File(t *testing.T) {
	write := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "catalog.toml")
		gt.NoError(t, os.WriteFile(path, []byte(content), 0644)).Required()
		return path
	}

	t.Run("valid catalog", func(t *testing.T) {
		path := write(t, `
[[framework]]
id = "iso-27001"
name = "ISO/IEC 27001"
category = "security"
certification_available = true
`)
		catalog, err := config.LoadCatalog(path)
		gt.NoError(t, err).Required()
		gt.Value(t, len(catalog.Frameworks)).Equal(1)
		gt.Value(t, catalog.Frameworks[0].ID).Equal("iso-27001")
	})

	t.Run("duplicate IDs are rejected", func(t *testing.T) {
		path := write(t, `
[[framework]]
id = "dup"
name = "One"
category = "security"

[[framework]]
id = "dup"
name = "Two"
category = "security"
`)
		_, err := config.LoadCatalog(path)
		gt.Error(t, err)
	})

	t.Run("missing name is rejected", func(t *testing.T) {
		path := write(t, `
[[framework]]
id = "x"
category = "security"
`)
		_, err := config.LoadCatalog(path)
		gt.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadCatalog("/no/such/catalog.toml")
		gt.Error(t, err)
	})

	t.Run("broken TOML", func(t *testing.T) {
		path := write(t, `[[framework`)
		_, err := config.LoadCatalog(path)
		gt.Error(t, err)
	})
}
