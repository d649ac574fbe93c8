//go:build tools

// Pins the code generators run through go generate.
package journal

import (
	_ "go.uber.org/mock/mockgen"
)
