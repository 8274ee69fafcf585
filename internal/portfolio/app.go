package portfolio

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Zolinad/dsportfolio/internal/audit"
	"github.com/Zolinad/dsportfolio/internal/churn"
	"github.com/Zolinad/dsportfolio/internal/config"
	"github.com/Zolinad/dsportfolio/internal/docs"
	"github.com/Zolinad/dsportfolio/internal/geo"
	"github.com/Zolinad/dsportfolio/internal/kpi"
	"github.com/Zolinad/dsportfolio/internal/logistics"
	"github.com/Zolinad/dsportfolio/internal/metrics"
)

// OrdersSource loads the logistics dataset.
type OrdersSource interface {
	Load(ctx context.Context) logistics.Result
	URL() string
}

// App is built once per process. Datasets and the churn model are read-only after
// NewApp returns, so an App is safe to share between requests.
type App struct {
	Churn  *churn.Dashboard
	Geo    *geo.Dashboard
	Audit  *audit.Dashboard
	KPI    *kpi.Dashboard
	Orders OrdersSource
	Docs   *docs.Store
	Log    *zap.SugaredLogger
}

// NewApp generates every synthetic dataset and trains the churn model.
func NewApp(cfg *config.Global, orders OrdersSource, log *zap.SugaredLogger) (*App, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	churnParams := churn.DefaultParams()
	churnParams.Seed = cfg.Seed
	if cfg.ChurnTrees > 0 {
		churnParams.Trees = cfg.ChurnTrees
	}
	start := time.Now()
	ch, err := churn.NewDashboard(churnParams)
	if err != nil {
		return nil, fmt.Errorf("build churn dashboard: %w", err)
	}
	metrics.ModelFitDuration.WithLabelValues("churn_random_forest").Observe(time.Since(start).Seconds())
	log.Debugw("churn model trained", "rows", len(ch.Customers), "trees", churnParams.Trees, "elapsed", time.Since(start))

	geoParams := geo.DefaultParams()
	geoParams.Seed = cfg.Seed
	auditParams := audit.DefaultParams()
	auditParams.Seed = cfg.Seed
	if cfg.AuditTrees > 0 {
		auditParams.Trees = cfg.AuditTrees
	}
	kpiParams := kpi.DefaultParams()
	kpiParams.Seed = cfg.Seed

	return &App{
		Churn:  ch,
		Geo:    geo.NewDashboard(geoParams),
		Audit:  audit.NewDashboard(auditParams),
		KPI:    kpi.NewDashboard(kpiParams),
		Orders: orders,
		Docs:   docs.NewStore(cfg.DocsDir),
		Log:    log,
	}, nil
}
