package portfolio

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Zolinad/dsportfolio/internal/audit"
	"github.com/Zolinad/dsportfolio/internal/churn"
	"github.com/Zolinad/dsportfolio/internal/docs"
	"github.com/Zolinad/dsportfolio/internal/geo"
	"github.com/Zolinad/dsportfolio/internal/kpi"
	"github.com/Zolinad/dsportfolio/internal/logistics"
	"github.com/Zolinad/dsportfolio/internal/metrics"
)

// PageView is one rendered page. Exactly one of the demo views is set.
type PageView struct {
	Page      Page            `json:"-"`
	Slug      string          `json:"page"`
	Title     string          `json:"title"`
	Doc       docs.Result     `json:"doc"`
	Churn     *churn.View     `json:"churn,omitempty"`
	Geo       *geo.View       `json:"geomarketing,omitempty"`
	Audit     *audit.View     `json:"audit,omitempty"`
	KPI       *kpi.View       `json:"kpi,omitempty"`
	Logistics *logistics.View `json:"logistics,omitempty"`
}

// Render builds page from the query parameters q.
func (a *App) Render(ctx context.Context, page Page, q url.Values) (PageView, error) {
	start := time.Now()
	defer func() {
		metrics.RenderDuration.WithLabelValues(page.Slug()).Observe(time.Since(start).Seconds())
	}()

	pv := PageView{Page: page, Slug: page.Slug(), Title: page.Title(), Doc: a.Docs.Load(page.DocName())}
	if pv.Doc.Err != nil {
		a.Log.Debugw("page documentation unavailable", "page", page.Slug(), "error", pv.Doc.Err)
	}

	switch page {
	case PageChurn:
		_, simulate := q["simulate"]
		v, err := a.Churn.Render(churn.ProfileFromQuery(q), simulate)
		if err != nil {
			return PageView{}, fmt.Errorf("render %s: %w", page, err)
		}
		pv.Churn = &v
	case PageGeomarketing:
		v := a.Geo.Render(geo.QueryFromValues(q))
		pv.Geo = &v
	case PageAudit:
		v, err := a.Audit.Render(audit.ContaminationFromQuery(q))
		if err != nil {
			return PageView{}, fmt.Errorf("render %s: %w", page, err)
		}
		pv.Audit = &v
	case PageKPI:
		v := a.KPI.Render(kpi.FilterFromQuery(q))
		pv.KPI = &v
	case PageLogistics:
		res := a.Orders.Load(ctx)
		v := logistics.Render(res, a.Orders.URL(), logistics.YearsFromQuery(q))
		pv.Logistics = &v
	default:
		return PageView{}, fmt.Errorf("unknown page %d", int(page))
	}
	return pv, nil
}

// Markdown renders the page as a plain report with the author header.
func (v PageView) Markdown() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s · %s\n", Author.Name, Author.Role))
	b.WriteString(fmt.Sprintf("LinkedIn: %s | GitHub: %s\n\n", Author.LinkedIn, Author.GitHub))
	b.WriteString(fmt.Sprintf("# %s %s\n\n", v.Page.Icon(), v.Title))
	b.WriteString(v.Page.Intro() + "\n\n")
	switch {
	case v.Churn != nil:
		b.WriteString(v.Churn.Markdown())
	case v.Geo != nil:
		b.WriteString(v.Geo.Markdown())
	case v.Audit != nil:
		b.WriteString(v.Audit.Markdown())
	case v.KPI != nil:
		b.WriteString(v.KPI.Markdown())
	case v.Logistics != nil:
		b.WriteString(v.Logistics.Markdown())
	}
	b.WriteString("\n---\n\n")
	if v.Doc.Err != nil {
		b.WriteString(v.Doc.Err.Message() + "\n")
	} else {
		b.WriteString("## 📖 Detalhes Técnicos e Metodologia (README)\n\n")
		b.WriteString(v.Doc.Markdown)
	}
	return b.String()
}
