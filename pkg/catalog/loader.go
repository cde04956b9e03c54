package catalog

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"firestige.xyz/aep/internal/log"
)

// Load reads a catalog file through viper, so the usual viper conveniences
// apply: format detection from the extension and AEP_* environment variable
// overrides.
func Load(path string) (*Catalog, error) {
	v := viper.New()

	dir := filepath.Dir(path)
	filename := filepath.Base(path)
	ext := filepath.Ext(filename)

	v.SetConfigName(strings.TrimSuffix(filename, ext))
	v.SetConfigType(strings.TrimPrefix(ext, "."))
	v.AddConfigPath(dir)

	v.SetEnvPrefix("AEP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("catalog: read config file %s: %w", path, err)
	}

	var c Catalog
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("catalog: unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	log.Get().WithFields(map[string]any{
		"path":  path,
		"types": len(c.PacketTypes),
	}).Debug("catalog loaded")
	return &c, nil
}
