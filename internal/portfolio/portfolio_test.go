package portfolio

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zolinad/dsportfolio/internal/config"
	"github.com/Zolinad/dsportfolio/internal/docs"
	"github.com/Zolinad/dsportfolio/internal/logistics"
)

type stubOrders struct {
	res   logistics.Result
	calls int
}

func (s *stubOrders) Load(context.Context) logistics.Result { s.calls++; return s.res }
func (s *stubOrders) URL() string { return "stub://orders.csv" }

func testConfig(t *testing.T) *config.Global {
	t.Helper()
	return &config.Global{DocsDir: t.TempDir(), Seed: 42, ChurnTrees: 20, AuditTrees: 50}
}

func TestPagesOrderAndParse(t *testing.T) {
	pages := Pages()
	require.Len(t, pages, 5)
	assert.Equal(t, "1. Predição de Churn", pages[0].Title())
	assert.Equal(t, "5. Logística Real", pages[4].Title())

	for _, p := range pages {
		got, err := ParsePage(p.Slug())
		require.NoError(t, err)
		assert.Equal(t, p, got)
		assert.NotEmpty(t, p.Icon())
	}
	p, err := ParsePage(" KPI ")
	require.NoError(t, err)
	assert.Equal(t, PageKPI, p)
	_, err = ParsePage("settings")
	assert.Error(t, err)
}

func TestRenderEveryPage(t *testing.T) {
	orders := &stubOrders{res: logistics.Result{Err: &logistics.LoadError{Kind: logistics.KindNetwork, URL: "stub://orders.csv"}}}
	app, err := NewApp(testConfig(t), orders, nil)
	require.NoError(t, err)

	for _, p := range Pages() {
		pv, err := app.Render(context.Background(), p, url.Values{})
		require.NoError(t, err, p.Slug())
		assert.Equal(t, p.Slug(), pv.Slug)
		require.NotNil(t, pv.Doc.Err)
		assert.Equal(t, docs.KindNotFound, pv.Doc.Err.Kind)

		md := pv.Markdown()
		assert.Contains(t, md, Author.Name)
		assert.Contains(t, md, p.Title())
		assert.Contains(t, md, docs.NotFoundMessage)
	}
	assert.Equal(t, 1, orders.calls)
}

func TestRenderSetsOnlyItsView(t *testing.T) {
	app, err := NewApp(testConfig(t), &stubOrders{}, nil)
	require.NoError(t, err)

	pv, err := app.Render(context.Background(), PageAudit, url.Values{"contamination": {"0.05"}})
	require.NoError(t, err)
	require.NotNil(t, pv.Audit)
	assert.Nil(t, pv.Churn)
	assert.Nil(t, pv.KPI)
	assert.Equal(t, 0.05, pv.Audit.Contamination)

	pv, err = app.Render(context.Background(), PageChurn, url.Values{"simulate": {"1"}, "complaints": {"5"}})
	require.NoError(t, err)
	require.NotNil(t, pv.Churn)
	require.NotNil(t, pv.Churn.Result)
}

func TestRenderIncludesDocumentation(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.DocsDir, "kpi"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.DocsDir, "kpi", "README.md"), []byte("# KPIs\n"), 0o644))

	app, err := NewApp(cfg, &stubOrders{}, nil)
	require.NoError(t, err)
	pv, err := app.Render(context.Background(), PageKPI, nil)
	require.NoError(t, err)
	require.Nil(t, pv.Doc.Err)
	assert.Contains(t, pv.Markdown(), "# KPIs")
}
