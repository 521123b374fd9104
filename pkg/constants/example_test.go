package constants_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentstation/railmap/pkg/constants"
)

// Example demonstrates laying out a bundle directory with the shared constants.
func Example() {
	dir, err := os.MkdirTemp("", "railmap-example")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	out := filepath.Join(dir, constants.DefaultOutputDir)
	if err := os.MkdirAll(out, constants.DirPermissions); err != nil {
		panic(err)
	}

	file := filepath.Join(out, constants.FeaturesFile)
	if err := os.WriteFile(file, []byte(`{"type":"FeatureCollection","features":[]}`), constants.FilePermissions); err != nil {
		panic(err)
	}

	fmt.Println(filepath.Base(file))
	fmt.Printf("text on dark lines: %s\n", constants.LightText)
	// Output:
	// features.json
	// text on dark lines: #FFFFFF
}
