package app

import (
	"context"
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/starbuzz/internal/session"
)

// Run wires telemetry and configuration into a single ordering session over
// in and out. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config, in io.Reader, out io.Writer) error {
	lg.Debug("Initializing", zap.Bool("legacy_float_totals", cfg.Pricing.LegacyFloatTotals))
	ctx = zctx.Base(ctx, lg)

	opts := session.Options{
		LegacyFloatTotals: cfg.Pricing.LegacyFloatTotals,
	}
	if m != nil {
		opts.MeterProvider = m.MeterProvider()
		opts.TracerProvider = m.TracerProvider()
	}

	s, err := session.New(in, out, opts)
	if err != nil {
		return errors.Wrap(err, "create session")
	}
	if err := s.Run(ctx); err != nil {
		return errors.Wrap(err, "run session")
	}

	lg.Debug("Session done", zap.Stringer("state", s.State()))
	return nil
}
