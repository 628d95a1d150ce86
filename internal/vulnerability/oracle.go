package vulnerability

import (
	"context"
	"strings"
)

// Placeholder is the in-process default oracle. It is a stand-in for a
// real vulnerability feed: it flags packages whose name contains
// "vulnerable" and the all-zero sentinel version. Deployments substitute
// a production oracle at the composition root; nothing else changes.
type Placeholder struct{}

func NewPlaceholder() *Placeholder {
	return &Placeholder{}
}

// Check never fails and honours no timeout; there is no I/O behind it.
func (o *Placeholder) Check(_ context.Context, packageName string, version string) (bool, error) {
	return strings.Contains(packageName, "vulnerable") || version == "0.0.0", nil
}
