package sql

import (
	"embed"
	"fmt"
)

//go:embed static
var staticFS embed.FS

// MustAsset returns the named static asset, panicking when it is missing.
func MustAsset(name string) []byte {
	bytes, err := staticFS.ReadFile(name)
	if err != nil {
		panic(fmt.Errorf("missing stats asset %s", name))
	}
	return bytes
}
