package giornale

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
)

/*
 * Attention: tdewolff/canvas uses mm as the unit of measurement, the report
 * layout below is expressed in mm directly.
 */

// A4 geometry
const (
	pageWidthMM  = 210.0
	pageHeightMM = 297.0
	marginMM     = 18.0

	contentWidthMM = pageWidthMM - 2*marginMM
	bottomMM       = pageHeightMM - marginMM

	titleFontSize   = 16.0
	headingFontSize = 11.0
	bodyFontSize    = 9.0
	lineGapMM       = 2.0
	sectionGapMM    = 6.0
)

type ReportProject struct {
	Name       string
	Client     string
	Contractor string
}

type ReportAnnotation struct {
	Timestamp       time.Time
	Author          string
	Role            string
	Type            string
	Content         string
	AttachmentCount int
	Signed          bool
}

type ReportResource struct {
	Type        string
	Description string
	Name        string
	Quantity    int
	Company     string
	Notes       string
}

// ReportLog is one day of the journal, flattened to what the print layout
// needs.
type ReportLog struct {
	Date        time.Time
	Weather     string
	Validated   bool
	Annotations []ReportAnnotation
	Resources   []ReportResource
}

// FormatDate renders a date the way Italian site paperwork expects it.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

func annotationHeading(a ReportAnnotation) string {
	heading := fmt.Sprintf("%s - %s", a.Type, a.Author)
	if a.Role != "" {
		heading = fmt.Sprintf("%s (%s)", heading, a.Role)
	}
	if a.Signed {
		heading += " [firmato]"
	}
	return heading
}

func resourceLine(r ReportResource) string {
	line := fmt.Sprintf("%d x %s - %s", r.Quantity, r.Name, r.Description)
	if r.Company != "" {
		line = fmt.Sprintf("%s (%s)", line, r.Company)
	}
	if r.Notes != "" {
		line = fmt.Sprintf("%s. %s", line, r.Notes)
	}
	return line
}

type ReportGenerator struct {
	Cfg        *Config
	Project    ReportProject
	Logs       []ReportLog
	QrURL      string
	fontFamily *canvas.FontFamily
}

func NewReportGenerator(cfg *Config, project ReportProject, logs []ReportLog, qrURL string) (*ReportGenerator, error) {
	fontFamily, err := LoadFontFamily(cfg.FontPath)
	if err != nil {
		return nil, err
	}

	return &ReportGenerator{
		Cfg:        cfg,
		Project:    project,
		Logs:       logs,
		QrURL:      qrURL,
		fontFamily: fontFamily,
	}, nil
}

// pageWriter lays text blocks down a page and starts a fresh page when the
// next block would run past the bottom margin.
type pageWriter struct {
	gen   *ReportGenerator
	dir   string
	pages []string
	c     *canvas.Canvas
	ctx   *canvas.Context
	y     float64
}

func (pw *pageWriter) newPage() {
	pw.c = canvas.New(pageWidthMM, pageHeightMM)
	pw.ctx = canvas.NewContext(pw.c)
	// Change coordination from bottom-left to top-left
	pw.ctx.SetCoordSystem(canvas.CartesianIV)
	pw.y = marginMM
}

// flush writes the current page to its own temp PDF.
func (pw *pageWriter) flush() error {
	if pw.c == nil {
		return nil
	}

	outFile := filepath.Join(pw.dir, fmt.Sprintf("page_%04d.pdf", len(pw.pages)))
	if err := renderers.Write(outFile, pw.c); err != nil {
		return fmt.Errorf("failed to write page PDF: %w", err)
	}

	pw.pages = append(pw.pages, outFile)
	pw.c = nil
	pw.ctx = nil
	return nil
}

func (pw *pageWriter) layout(text string, size float64, style canvas.FontStyle) (*canvas.Text, float64) {
	face := pw.gen.fontFamily.Face(size, canvas.Black, style, canvas.FontNormal)
	rt := canvas.NewRichText(face)
	rt.WriteString(text)

	block := rt.ToText(contentWidthMM, pageHeightMM, canvas.Left, canvas.Top, 0.0, 0.0)
	return block, block.Bounds().H()
}

// writeBlock draws a wrapped text block at the cursor, moving to the next
// page first when it does not fit anymore.
func (pw *pageWriter) writeBlock(text string, size float64, style canvas.FontStyle) error {
	block, height := pw.layout(text, size, style)

	if pw.y+height > bottomMM && pw.y > marginMM {
		if err := pw.flush(); err != nil {
			return err
		}
		pw.newPage()
	}

	pw.ctx.DrawText(marginMM, pw.y, block)
	pw.y += height + lineGapMM
	return nil
}

func (pw *pageWriter) gap(mm float64) {
	pw.y += mm
}

// renderLog draws one day of the journal, always starting on a fresh page.
// It returns the page numbers (1-based, relative to pw.pages) the day ended
// up on.
func (pw *pageWriter) renderLog(log ReportLog) ([]int, error) {
	first := len(pw.pages) + 1
	pw.newPage()

	header := fmt.Sprintf("Giornale dei Lavori - %s", FormatDate(log.Date))
	if err := pw.writeBlock(header, titleFontSize, canvas.FontBold); err != nil {
		return nil, err
	}

	if err := pw.writeBlock(pw.gen.Project.Name, headingFontSize, canvas.FontRegular); err != nil {
		return nil, err
	}

	meta := fmt.Sprintf("Committente: %s - Impresa: %s", pw.gen.Project.Client, pw.gen.Project.Contractor)
	if err := pw.writeBlock(meta, bodyFontSize, canvas.FontRegular); err != nil {
		return nil, err
	}

	if err := pw.writeBlock("Condizioni meteo: "+log.Weather, bodyFontSize, canvas.FontRegular); err != nil {
		return nil, err
	}
	pw.gap(sectionGapMM)

	if len(log.Annotations) > 0 {
		if err := pw.writeBlock("Annotazioni", headingFontSize, canvas.FontBold); err != nil {
			return nil, err
		}

		for _, a := range log.Annotations {
			if err := pw.writeBlock(annotationHeading(a), bodyFontSize, canvas.FontBold); err != nil {
				return nil, err
			}
			if err := pw.writeBlock(a.Content, bodyFontSize, canvas.FontRegular); err != nil {
				return nil, err
			}
			if a.AttachmentCount > 0 {
				note := fmt.Sprintf("Allegati: %d", a.AttachmentCount)
				if err := pw.writeBlock(note, bodyFontSize, canvas.FontRegular); err != nil {
					return nil, err
				}
			}
			pw.gap(lineGapMM)
		}
		pw.gap(sectionGapMM)
	}

	if len(log.Resources) > 0 {
		if err := pw.writeBlock("Risorse impiegate", headingFontSize, canvas.FontBold); err != nil {
			return nil, err
		}

		for _, r := range log.Resources {
			line := fmt.Sprintf("[%s] %s", r.Type, resourceLine(r))
			if err := pw.writeBlock(line, bodyFontSize, canvas.FontRegular); err != nil {
				return nil, err
			}
		}
	}

	if err := pw.flush(); err != nil {
		return nil, err
	}

	pages := make([]int, 0, len(pw.pages)-first+1)
	for p := first; p <= len(pw.pages); p++ {
		pages = append(pages, p)
	}
	return pages, nil
}

// Generate renders the journal into a single PDF at outFile: one section per
// day in date order, a QR code on every page when a link is configured, and
// the validation stamp across the pages of validated days.
func (rg *ReportGenerator) Generate(outFile string) error {
	if len(rg.Logs) == 0 {
		return fmt.Errorf("report has no logs to render")
	}

	workDir, err := os.MkdirTemp(rg.Cfg.TmpDir, "report-*")
	if err != nil {
		return fmt.Errorf("failed to create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	pw := &pageWriter{gen: rg, dir: workDir}

	var validatedPages []string
	for _, log := range rg.Logs {
		pages, err := pw.renderLog(log)
		if err != nil {
			return fmt.Errorf("failed to render log of %s: %w", FormatDate(log.Date), err)
		}

		if log.Validated {
			for _, p := range pages {
				validatedPages = append(validatedPages, fmt.Sprintf("%d", p))
			}
		}
	}

	merged := filepath.Join(workDir, "merged.pdf")
	if err := MergePdfFiles(pw.pages, merged); err != nil {
		return err
	}

	current := merged

	if rg.QrURL != "" {
		qrPath := filepath.Join(workDir, "qr.png")
		if err := GenerateQRCode(rg.QrURL, qrPath, 50); err != nil {
			return err
		}

		withQr := filepath.Join(workDir, "with_qr.pdf")
		if err := EmbedQRCodeToPdf(current, withQr, qrPath, nil); err != nil {
			return err
		}
		current = withQr
	}

	if len(validatedPages) > 0 {
		stamped := filepath.Join(workDir, "stamped.pdf")
		if err := ApplyValidationStamp(current, stamped, validatedPages); err != nil {
			return err
		}
		current = stamped
	}

	data, err := os.ReadFile(current)
	if err != nil {
		return fmt.Errorf("failed to read rendered report: %w", err)
	}
	if err := os.WriteFile(outFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", outFile, err)
	}

	return nil
}
