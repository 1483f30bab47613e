// Package report renders the final HTML narrative page. The four figure
// specifications are serialized to JSON and embedded into a fixed template
// with one Spanish prose paragraph per chart; the browser-side Plotly runtime
// (loaded from a CDN at view time) does the actual drawing.
//
// The output is a single self-contained document, fully overwriting any
// previous version at the destination path.
package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/alvaro-gj/bubblereport/internal/charts"
)

//go:embed templates/report.html
var pageTemplate string

var tmpl = template.Must(template.New("report").Parse(pageTemplate))

// Figures groups the four chart specifications in page order.
type Figures struct {
	NormalizedPrice    charts.Figure
	Drawdown           charts.Figure
	RollingVolatility  charts.Figure
	AnnotatedReference charts.Figure
}

// Section is one chapter of the page: heading, lead paragraph, and the
// figure drawn beneath them.
type Section struct {
	ID         string
	Heading    string
	Lead       string
	DivID      string
	FigureJSON template.JS
}

// Page is the full template payload.
type Page struct {
	Title       string
	Subtitle    string
	PlotlyURL   string
	RunID       string
	GeneratedAt string
	Sections    []Section
}

// narrative fixes the chapter order, headings, and lead prose of the report.
var narrative = []struct {
	id      string
	heading string
	lead    string
}{
	{
		id:      "capitulo1",
		heading: "1. Dos épocas, dos narrativas de mercado",
		lead: "Este primer gráfico muestra la evolución normalizada del Nasdaq y del S&P 500 en cada una de las dos épocas. " +
			"El panel de la izquierda recoge la burbuja puntocom (1997–2002) y el de la derecha la narrativa reciente de la IA (2020–2025). " +
			"Al fijar una base 100 en el inicio de cada periodo y compartir la escala vertical, podemos comparar de forma directa " +
			"la intensidad relativa de las subidas y de las correcciones entre ambas burbujas.",
	},
	{
		id:      "capitulo2",
		heading: "2. La profundidad de las caídas: drawdown",
		lead: "El segundo gráfico se centra en el drawdown, es decir, en la caída porcentual desde el máximo histórico hasta cada día. " +
			"De nuevo, el panel izquierdo muestra la fase puntocom y el derecho la época de la IA, compartiendo la misma escala vertical. " +
			"Esto permite visualizar de un vistazo la severidad de las correcciones en cada burbuja y comparar el comportamiento " +
			"de ambos índices en las fases de ajuste.",
	},
	{
		id:      "capitulo3",
		heading: "3. Volatilidad como síntoma de tensión",
		lead: "El tercer gráfico representa la volatilidad calculada como la desviación estándar de los retornos diarios en una ventana " +
			"móvil de 30 días. El panel izquierdo corresponde a la burbuja puntocom y el derecho a la narrativa de la IA. De este modo " +
			"se puede observar cómo la volatilidad se incrementa en los momentos de mayor tensión del mercado y hasta qué punto " +
			"los patrones difieren entre las dos épocas.",
	},
	{
		id:      "capitulo4",
		heading: "4. Eventos clave en el Nasdaq",
		lead: "Por último, este gráfico sitúa algunos eventos significativos sobre la trayectoria del Nasdaq en cada época, " +
			"desde fusiones emblemáticas y quiebras corporativas en la burbuja puntocom hasta hitos recientes como el lanzamiento de ChatGPT, " +
			"las inversiones en modelos fundacionales o la revalorización de Nvidia. " +
			"Las anotaciones permiten conectar la narrativa cualitativa con el comportamiento cuantitativo del índice.",
	},
}

const subtitle = "Comparación entre la burbuja puntocom y la actual narrativa de burbuja de la IA a través del Nasdaq y el S&P 500."

// NewPage assembles the template payload from the four figures.
func NewPage(title, plotlyURL, runID string, generatedAt time.Time, figs Figures) (Page, error) {
	ordered := [4]charts.Figure{
		figs.NormalizedPrice,
		figs.Drawdown,
		figs.RollingVolatility,
		figs.AnnotatedReference,
	}

	page := Page{
		Title:       title,
		Subtitle:    subtitle,
		PlotlyURL:   plotlyURL,
		RunID:       runID,
		GeneratedAt: generatedAt.Format("2006-01-02 15:04"),
	}

	for i, chapter := range narrative {
		raw, err := ordered[i].JSON()
		if err != nil {
			return Page{}, fmt.Errorf("failed to serialize figure for %s: %w", chapter.id, err)
		}
		page.Sections = append(page.Sections, Section{
			ID:         chapter.id,
			Heading:    chapter.heading,
			Lead:       chapter.lead,
			DivID:      fmt.Sprintf("fig-%s", chapter.id),
			FigureJSON: template.JS(raw),
		})
	}

	return page, nil
}

// Render writes the HTML document to w.
func Render(w io.Writer, page Page) error {
	if err := tmpl.Execute(w, page); err != nil {
		return fmt.Errorf("failed to execute report template: %w", err)
	}
	return nil
}

// WriteFile renders the page to path, truncating any previous version.
func WriteFile(path string, page Page) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := Render(f, page); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close report file: %w", err)
	}
	return nil
}
