package testwrap

import (
	"context"

	"github.com/aretw0/testwrap/pkg/domain"
	"github.com/aretw0/testwrap/pkg/wrapper"
)

// Version is the release of the testwrap module.
var Version = "0.3.0"

// Run executes one wrapped test with the default process adapters.
// Options tune the wrapper, e.g. wrapper.WithLogger or wrapper.WithTempRoot.
func Run(ctx context.Context, opts domain.Options, wopts ...wrapper.Option) (*domain.Report, error) {
	return wrapper.New(wopts...).Run(ctx, opts)
}
