package filter

import (
	"github.com/hupe1980/mdbook-private-chapters/internal/maputil"
	"github.com/hupe1980/mdbook-private-chapters/internal/version"
)

const (
	// EnvExportPrivate forces private chapters into the output when set to
	// a truthy value.
	EnvExportPrivate = "MDBOOK_EXPORT_PRIVATE"

	// ConfigExportPrivate is the boolean key in the preprocessor's table of
	// book.toml, i.e. [preprocessor.private-chapters] export-private = true.
	ConfigExportPrivate = "export-private"
)

// truthyValues are the exact spellings of EnvExportPrivate that enable
// export. Matching is case-sensitive.
var truthyValues = map[string]struct{}{
	"1":    {},
	"true": {},
	"TRUE": {},
	"yes":  {},
	"YES":  {},
}

// LookupEnvFunc has the signature of os.LookupEnv.
type LookupEnvFunc func(key string) (string, bool)

// ExportPrivate reports whether private chapters must be kept, either
// because the book config enables it or because the environment does.
func ExportPrivate(cfg map[string]interface{}, lookupEnv LookupEnvFunc) bool {
	return ExportPrivateFromConfig(cfg) || ExportPrivateFromEnv(lookupEnv)
}

// ExportPrivateFromConfig reads the export-private setting from the book
// config. A missing table, a missing key, or a non-boolean value is false.
func ExportPrivateFromConfig(cfg map[string]interface{}) bool {
	v, ok := maputil.Bool(cfg, "preprocessor", version.Name, ConfigExportPrivate)

	return ok && v
}

// ExportPrivateFromEnv reports whether EnvExportPrivate holds one of the
// accepted truthy spellings.
func ExportPrivateFromEnv(lookupEnv LookupEnvFunc) bool {
	if lookupEnv == nil {
		return false
	}

	v, ok := lookupEnv(EnvExportPrivate)
	if !ok {
		return false
	}

	_, truthy := truthyValues[v]

	return truthy
}
