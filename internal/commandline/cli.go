// Package commandline contains helper types for collecting
// command-line arguments.
package commandline // import "github.com/IndependentIP/xsd-reader/internal/commandline"

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/IndependentIP/xsd-reader/xsd"
)

var _ pflag.Value = (*Kinds)(nil)

// A Kinds value collects schema construct kinds from the command
// line, in the order provided. Each occurrence of the flag may name
// one kind or several, separated by commas.
type Kinds []xsd.Kind

func (k *Kinds) String() string {
	names := make([]string, len(*k))
	for i, kind := range *k {
		names[i] = kind.String()
	}
	return strings.Join(names, ",")
}

// Set adds the kinds named in s, such as "element,simpleType".
func (k *Kinds) Set(s string) error {
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		kind := xsd.ParseKind(name)
		if kind == xsd.Unknown {
			return fmt.Errorf("unknown construct %q", name)
		}
		*k = append(*k, kind)
	}
	return nil
}

// Type names the value in usage messages.
func (k *Kinds) Type() string {
	return "kind"
}

// Or returns k, or def if no kinds were given.
func (k Kinds) Or(def ...xsd.Kind) []xsd.Kind {
	if len(k) == 0 {
		return def
	}
	return k
}

// SplitPath splits a slash-separated construct path, such as
// "order/items/@id", into its steps. Empty steps are dropped.
func SplitPath(s string) []string {
	var steps []string
	for _, step := range strings.Split(s, "/") {
		if step != "" {
			steps = append(steps, step)
		}
	}
	return steps
}
