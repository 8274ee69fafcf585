// Package portfolio defines the navigation shell: the fixed page list, the author
// header, and the application context shared by every render.
package portfolio

import (
	"fmt"
	"strings"
)

// Page identifies one demo.
type Page int

const (
	PageChurn Page = iota
	PageGeomarketing
	PageAudit
	PageKPI
	PageLogistics
)

type pageInfo struct {
	slug  string
	title string
	icon  string
	intro string
}

var pageTable = map[Page]pageInfo{
	PageChurn: {
		slug:  "churn",
		title: "1. Predição de Churn",
		icon:  "👥",
		intro: "Este modelo usa um algoritmo de aprendizagem de máquina para prever a probabilidade de um cliente cancelar o seu contrato (Churn).",
	},
	PageGeomarketing: {
		slug:  "geomarketing",
		title: "2. Geomarketing",
		icon:  "🗺️",
		intro: "Análise de Densidade de Consumo na Grande Belém.",
	},
	PageAudit: {
		slug:  "audit",
		title: "3. Auditoria Financeira",
		icon:  "🛡️",
		intro: "Sistema de auditoria contínua utilizando Machine Learning Não-Supervisionado (Isolation Forest) para identificar gastos corporativos desviantes do padrão (Outliers).",
	},
	PageKPI: {
		slug:  "kpi",
		title: "4. Dashboard Estratégico",
		icon:  "📈",
		intro: "Monitoramento de performance hierárquica: Região > Categoria > Rentabilidade.",
	},
	PageLogistics: {
		slug:  "logistics",
		title: "5. Logística Real",
		icon:  "📦",
		intro: "Este painel consome dados reais do repositório público da Olist, com foco no Tempo de Entrega (Lead Time).",
	},
}

// Pages returns every page in navigation order.
func Pages() []Page {
	return []Page{PageChurn, PageGeomarketing, PageAudit, PageKPI, PageLogistics}
}

// ParsePage resolves a slug, case-insensitively.
func ParsePage(slug string) (Page, error) {
	s := strings.ToLower(strings.TrimSpace(slug))
	for _, p := range Pages() {
		if pageTable[p].slug == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown page %q", slug)
}

// Slug is the URL and CLI identifier.
func (p Page) Slug() string { return pageTable[p].slug }

// Title is the navigation caption.
func (p Page) Title() string { return pageTable[p].title }

// Icon is the navigation emoji.
func (p Page) Icon() string { return pageTable[p].icon }

// Intro is the one-paragraph description shown under the title.
func (p Page) Intro() string { return pageTable[p].intro }

// DocName is the directory under the docs root holding the page README.
func (p Page) DocName() string { return pageTable[p].slug }

func (p Page) String() string { return p.Slug() }

// Contact is the author block shown above the navigation.
type Contact struct {
	Name     string
	Role     string
	LinkedIn string
	GitHub   string
}

// Author is the portfolio owner.
var Author = Contact{
	Name:     "Danilo Azevedo Figueiredo",
	Role:     "Cientista de Dados",
	LinkedIn: "https://www.linkedin.com/in/danilo-a-fig",
	GitHub:   "https://github.com/Zolinad",
}
