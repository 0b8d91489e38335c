package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Zhima-Mochi/minishop-checkout/internal/application/checkout"
	"github.com/Zhima-Mochi/minishop-checkout/internal/application/narration"
	"github.com/Zhima-Mochi/minishop-checkout/internal/config"
	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/order"
	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/payment"
	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/shipping"
	"github.com/Zhima-Mochi/minishop-checkout/internal/infrastructure/id"
	infraobs "github.com/Zhima-Mochi/minishop-checkout/internal/infrastructure/observability"
	"github.com/Zhima-Mochi/minishop-checkout/internal/infrastructure/observability/oteltrace"
	"github.com/Zhima-Mochi/minishop-checkout/internal/infrastructure/observability/prometrics"
	"github.com/Zhima-Mochi/minishop-checkout/internal/infrastructure/observability/zaplogger"
	"github.com/Zhima-Mochi/minishop-checkout/internal/infrastructure/outbox"
	"github.com/Zhima-Mochi/minishop-checkout/internal/observability"
	"github.com/Zhima-Mochi/minishop-checkout/internal/observability/logctx"
	clipresentation "github.com/Zhima-Mochi/minishop-checkout/internal/presentation/cli"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

type demoLine struct {
	name  string
	value string
}

type demoOrder struct {
	scenario string
	lines    []demoLine
	payment  string
	shipping string
	giftWrap bool
}

func demoOrders() []demoOrder {
	return []demoOrder{
		{
			scenario: "instant-standard",
			lines: []demoLine{
				{"Invisibility Cloak", "150.00"},
				{"Flying Potion", "80.00"},
			},
			payment:  "instant transfer",
			shipping: "standard",
		},
		{
			scenario: "credit-express-giftwrap",
			lines: []demoLine{
				{"Magic Crystal", "600.00"},
			},
			payment:  "credit",
			shipping: "express",
			giftWrap: true,
		},
		{
			scenario: "credit-over-limit",
			lines: []demoLine{
				{"Dragon Egg", "1500.00"},
			},
			payment:  "credit",
			shipping: "standard",
		},
		{
			scenario: "deferred-teleport",
			lines: []demoLine{
				{"Phoenix Feather", "320.00"},
			},
			payment:  "deferred-transfer",
			shipping: "teleport",
		},
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	baseLogger, err := zaplogger.New(zaplogger.Options{
		Service: cfg.ServiceName,
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = baseLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := oteltrace.Setup(ctx, oteltrace.Config{
		ServiceName: cfg.ServiceName,
		Environment: cfg.AppEnv,
		Endpoint:    cfg.OTLPEndpoint,
	})
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			baseLogger.Warn("tracer_shutdown_error", observability.F("error", err))
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	counters, histograms := prometrics.Register(
		prometrics.New(reg, "", ""),
		observability.CounterSpecs,
		observability.HistogramSpecs,
	)
	tel := infraobs.New(oteltrace.New(cfg.ServiceName, nil), baseLogger, counters, histograms)

	// In-memory event bus fans checkout events out to the narration worker.
	bus := outbox.NewBus(baseLogger)
	narration.New(bus, tel).Start()
	bus.Start(ctx)

	registry := checkout.DefaultRegistry(cfg.DeferredTransferDelay)
	uc := checkout.NewUseCase(registry, id.NewUUIDGenerator(), bus, tel)

	var pending []*payment.Confirmation
	for _, o := range demoOrders() {
		if ctx.Err() != nil {
			break
		}
		if c := runOrder(ctx, uc, baseLogger, tel, o); c != nil {
			pending = append(pending, c)
		}
	}

	for _, c := range pending {
		if err := c.Wait(ctx); err != nil {
			c.Cancel()
			baseLogger.Warn("transfer_confirmation_abandoned", observability.F("error", err))
			continue
		}
		baseLogger.Info("transfer_confirmed", observability.F("due", c.Due()))
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := bus.Stop(stopCtx); err != nil {
		baseLogger.Warn("event_bus_drain_incomplete", observability.F("error", err))
	}

	dumpMetrics(reg, baseLogger)

	if cfg.MetricsAddr == "" {
		return nil
	}
	return serveMetrics(ctx, cfg.MetricsAddr, reg, baseLogger)
}

func runOrder(
	ctx context.Context,
	uc *checkout.UseCase,
	base observability.Logger,
	tel observability.Observability,
	o demoOrder,
) *payment.Confirmation {
	ctx, _ = clipresentation.WithRunContext(ctx, base, tel, map[string]string{
		"scenario": o.scenario,
	})

	items, err := buildItems(o.lines)
	if err != nil {
		logctx.FromOr(ctx, base).Error("checkout_input_invalid", observability.F("error", err))
		return nil
	}

	res, err := uc.Execute(ctx, checkout.Request{
		Items:          items,
		PaymentMethod:  payment.ParseMethod(o.payment),
		ShippingMethod: shipping.ParseMethod(o.shipping),
		GiftWrap:       o.giftWrap,
	})
	if err != nil {
		logctx.FromOr(ctx, base).Error("checkout_failed", observability.F("error", err))
		return nil
	}
	return res.Confirmation
}

func buildItems(lines []demoLine) ([]order.Item, error) {
	items := make([]order.Item, 0, len(lines))
	for _, l := range lines {
		value, err := decimal.NewFromString(l.value)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", l.name, err)
		}
		it, err := order.NewItem(l.name, value)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", l.name, err)
		}
		items = append(items, it)
	}
	return items, nil
}

func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry, logger observability.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics_server_start", observability.F("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics_server_shutdown_error", observability.F("error", err))
		return err
	}
	logger.Info("metrics_server_stopped")
	return nil
}

// dumpMetrics logs the checkout metric families gathered from reg at debug level.
func dumpMetrics(reg prometheus.Gatherer, logger observability.Logger) {
	families, err := reg.Gather()
	if err != nil {
		logger.Warn("metrics_gather_failed", observability.F("error", err))
		return
	}
	wanted := make(map[string]struct{})
	for _, s := range observability.CounterSpecs {
		wanted[string(s.Key)] = struct{}{}
	}
	for _, s := range observability.HistogramSpecs {
		wanted[string(s.Key)] = struct{}{}
	}

	for _, mf := range families {
		if _, ok := wanted[mf.GetName()]; !ok {
			continue
		}
		for _, m := range mf.GetMetric() {
			fields := []observability.Field{observability.F("metric", mf.GetName())}
			for _, lp := range m.GetLabel() {
				fields = append(fields, observability.F(lp.GetName(), lp.GetValue()))
			}
			switch {
			case m.GetCounter() != nil:
				fields = append(fields, observability.F("value", m.GetCounter().GetValue()))
			case m.GetHistogram() != nil:
				fields = append(fields,
					observability.F("count", m.GetHistogram().GetSampleCount()),
					observability.F("sum", m.GetHistogram().GetSampleSum()),
				)
			}
			logger.Debug("metric_snapshot", fields...)
		}
	}
}
